package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vizz0r/tic-tac-toe/internal/api/response"
	"github.com/vizz0r/tic-tac-toe/internal/model"
	"github.com/vizz0r/tic-tac-toe/internal/services/roster"
	"github.com/vizz0r/tic-tac-toe/internal/services/score"
)

// ScoreHandler handles score endpoints
type ScoreHandler struct {
	roster *roster.Controller
	scores *score.Service
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(rosterController *roster.Controller, scoreService *score.Service) *ScoreHandler {
	return &ScoreHandler{
		roster: rosterController,
		scores: scoreService,
	}
}

// Get handles GET /api/v1/players/{player_id}/score
func (h *ScoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["player_id"])

	if _, err := h.roster.Get(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	value, err := h.scores.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Score{PlayerID: string(id), Score: value})
}

// Increment handles POST /api/v1/players/{player_id}/score
func (h *ScoreHandler) Increment(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["player_id"])

	if _, err := h.roster.Get(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	value, err := h.scores.Increment(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Score{PlayerID: string(id), Score: value})
}
