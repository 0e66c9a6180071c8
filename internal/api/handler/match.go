package handler

import (
	"net/http"

	"github.com/vizz0r/tic-tac-toe/internal/api/response"
	"github.com/vizz0r/tic-tac-toe/internal/services/roster"
	"github.com/vizz0r/tic-tac-toe/internal/services/score"
	"github.com/vizz0r/tic-tac-toe/internal/services/selection"
)

// MatchHandler handles match lifecycle endpoints
type MatchHandler struct {
	roster    *roster.Controller
	selection *selection.Controller
	scores    *score.Service
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(rosterController *roster.Controller, selectionController *selection.Controller, scoreService *score.Service) *MatchHandler {
	return &MatchHandler{
		roster:    rosterController,
		selection: selectionController,
		scores:    scoreService,
	}
}

// Start handles POST /api/v1/match/start. It records the pairing, resets
// the counters when the pairing changed and returns the current scores for
// both players.
func (h *MatchHandler) Start(w http.ResponseWriter, r *http.Request) {
	players, err := h.roster.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	sel, err := h.selection.Get(r.Context(), players)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.scores.StartMatch(r.Context(), sel); err != nil {
		WriteError(w, err)
		return
	}

	ids := sel.IDs()
	scores := make([]response.Score, len(ids))
	for i, id := range ids {
		value, err := h.scores.Get(r.Context(), id)
		if err != nil {
			WriteError(w, err)
			return
		}
		scores[i] = response.Score{PlayerID: string(id), Score: value}
	}

	response.JSON(w, http.StatusOK, response.Match{
		Match:  sel.MatchKey(),
		Scores: scores,
	})
}
