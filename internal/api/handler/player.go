package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/playerhub-go/internal/api/request"
	"github.com/mcoot/playerhub-go/internal/api/response"
	"github.com/mcoot/playerhub-go/internal/api/schema"
	"github.com/mcoot/playerhub-go/internal/model"
	"github.com/mcoot/playerhub-go/internal/services/player"
)

// Pagination defaults for list and search endpoints
const (
	defaultSkip  = 0
	defaultLimit = 100
)

// PlayerHandler handles player roster endpoints
type PlayerHandler struct {
	players   *player.Controller
	validator *schema.Validator
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(players *player.Controller, validator *schema.Validator) *PlayerHandler {
	return &PlayerHandler{
		players:   players,
		validator: validator,
	}
}

// Create handles POST /api/v1/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.validator.Validate(schema.PlayerCreate, body); err != nil {
		WriteError(w, NewInvalidRequestError(schema.Detail(err)))
		return
	}

	var req request.CreatePlayerRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	created, err := h.players.CreatePlayer(r.Context(), &model.Player{
		Name:         req.Name,
		Position:     req.Position,
		Team:         req.Team,
		Age:          req.Age,
		JerseyNumber: req.JerseyNumber,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(created))
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := playerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	p, err := h.players.GetPlayer(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pageParams(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	players, err := h.players.ListPlayers(r.Context(), skip, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModels(players))
}

// Search handles GET /api/v1/search
func (h *PlayerHandler) Search(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	skip, limit, err := pageParams(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	players, err := h.players.SearchPlayers(r.Context(), name, skip, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModels(players))
}

// Update handles PUT /api/v1/players/{id}
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := playerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.validator.Validate(schema.PlayerUpdate, body); err != nil {
		WriteError(w, NewInvalidRequestError(schema.Detail(err)))
		return
	}

	var req request.UpdatePlayerRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	updated, err := h.players.UpdatePlayer(r.Context(), id, model.PlayerUpdate{
		Name:         req.Name,
		Position:     req.Position,
		Team:         req.Team,
		Age:          req.Age,
		JerseyNumber: req.JerseyNumber,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(updated))
}

// Delete handles DELETE /api/v1/players/{id}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := playerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.players.DeletePlayer(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Message{Message: "Player deleted successfully"})
}

// playerID parses the player ID path variable
func playerID(r *http.Request) (model.PlayerID, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, NewInvalidRequestError("player id must be an integer")
	}
	return model.PlayerID(id), nil
}

// pageParams parses skip and limit query parameters with defaults
func pageParams(r *http.Request) (int, int, error) {
	skip, limit := defaultSkip, defaultLimit

	query := r.URL.Query()
	if raw := query.Get("skip"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, NewInvalidRequestError("skip must be an integer")
		}
		skip = parsed
	}
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, NewInvalidRequestError("limit must be an integer")
		}
		limit = parsed
	}

	return skip, limit, nil
}
