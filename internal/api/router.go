package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vizz0r/tic-tac-toe/internal/api/handler"
	"github.com/vizz0r/tic-tac-toe/internal/api/middleware"
	"github.com/vizz0r/tic-tac-toe/internal/services/capture"
	"github.com/vizz0r/tic-tac-toe/internal/services/roster"
	"github.com/vizz0r/tic-tac-toe/internal/services/score"
	"github.com/vizz0r/tic-tac-toe/internal/services/selection"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger              *slog.Logger
	RosterController    *roster.Controller
	SelectionController *selection.Controller
	ScoreService        *score.Service
	CaptureService      *capture.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.RosterController, cfg.CaptureService)
	selectionHandler := handler.NewSelectionHandler(cfg.RosterController, cfg.SelectionController)
	matchHandler := handler.NewMatchHandler(cfg.RosterController, cfg.SelectionController, cfg.ScoreService)
	scoreHandler := handler.NewScoreHandler(cfg.RosterController, cfg.ScoreService)
	captureHandler := handler.NewCaptureHandler(cfg.CaptureService)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Roster routes
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/players/{player_id}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players/{player_id}", playerHandler.Rename).Methods(http.MethodPatch)
	api.HandleFunc("/players/{player_id}", playerHandler.Delete).Methods(http.MethodDelete)

	// Score routes
	api.HandleFunc("/players/{player_id}/score", scoreHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players/{player_id}/score", scoreHandler.Increment).Methods(http.MethodPost)

	// Selection routes
	api.HandleFunc("/selection", selectionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/selection/toggle", selectionHandler.Toggle).Methods(http.MethodPost)

	// Match routes
	api.HandleFunc("/match/start", matchHandler.Start).Methods(http.MethodPost)

	// Capture session routes
	api.HandleFunc("/captures", captureHandler.Begin).Methods(http.MethodPost)
	api.HandleFunc("/captures/{capture_id}", captureHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/captures/{capture_id}/photo", captureHandler.Photo).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
