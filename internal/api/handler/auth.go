package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/mcoot/playerhub-go/internal/api/request"
	"github.com/mcoot/playerhub-go/internal/api/response"
	"github.com/mcoot/playerhub-go/internal/api/schema"
	"github.com/mcoot/playerhub-go/internal/services/auth"
)

// AuthHandler handles account and token endpoints
type AuthHandler struct {
	authService *auth.Service
	validator   *schema.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, validator *schema.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
	}
}

// Signup handles POST /api/v1/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.validator.Validate(schema.Signup, body); err != nil {
		WriteError(w, NewInvalidRequestError(schema.Detail(err)))
		return
	}

	var req request.SignupRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	user, err := h.authService.Signup(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.UserFromModel(user))
}

// Token handles POST /api/v1/token
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req request.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	accessToken, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Token{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

// Logout handles POST /api/v1/logout.
// Tokens are stateless and cannot be revoked server-side; the endpoint
// acknowledges so clients know to discard their stored token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Message{Message: "Successfully logged out"})
}
