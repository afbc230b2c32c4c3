package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"

	"github.com/mcoot/playerhub-go/internal/api/handler"
	"github.com/mcoot/playerhub-go/internal/api/middleware"
	"github.com/mcoot/playerhub-go/internal/api/schema"
	"github.com/mcoot/playerhub-go/internal/services/auth"
	"github.com/mcoot/playerhub-go/internal/services/player"
	"github.com/mcoot/playerhub-go/internal/services/roster"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	AuthService        *auth.Service
	PlayerController   *player.Controller
	RosterService      *roster.Service
	Validator          *schema.Validator
	CORSAllowedOrigins []string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Validator)
	playerHandler := handler.NewPlayerHandler(cfg.PlayerController, cfg.Validator)
	rosterHandler := handler.NewRosterHandler(cfg.RosterService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no auth required for signing up/logging in)
	api.HandleFunc("/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/token", authHandler.Token).Methods(http.MethodPost)

	// Protected auth routes
	logout := api.PathPrefix("/logout").Subrouter()
	logout.Use(authMiddleware)
	logout.HandleFunc("", authHandler.Logout).Methods(http.MethodPost)

	// Player routes (all require auth)
	players := api.PathPrefix("/players").Subrouter()
	players.Use(authMiddleware)
	players.HandleFunc("", playerHandler.Create).Methods(http.MethodPost)
	players.HandleFunc("", playerHandler.List).Methods(http.MethodGet)
	players.HandleFunc("/upload-csv", rosterHandler.UploadCSV).Methods(http.MethodPost)
	players.HandleFunc("/{id}", playerHandler.Get).Methods(http.MethodGet)
	players.HandleFunc("/{id}", playerHandler.Update).Methods(http.MethodPut)
	players.HandleFunc("/{id}", playerHandler.Delete).Methods(http.MethodDelete)

	// Search routes (require auth)
	search := api.PathPrefix("/search").Subrouter()
	search.Use(authMiddleware)
	search.HandleFunc("", playerHandler.Search).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// CORS wraps the router itself so preflight requests are handled
	// even though no OPTIONS routes are registered
	corsMiddleware := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	return corsMiddleware(r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
