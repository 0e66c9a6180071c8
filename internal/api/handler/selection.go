package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vizz0r/tic-tac-toe/internal/api/request"
	"github.com/vizz0r/tic-tac-toe/internal/api/response"
	"github.com/vizz0r/tic-tac-toe/internal/model"
	"github.com/vizz0r/tic-tac-toe/internal/services/roster"
	"github.com/vizz0r/tic-tac-toe/internal/services/selection"
)

// SelectionHandler handles selected-pair endpoints
type SelectionHandler struct {
	roster    *roster.Controller
	selection *selection.Controller
}

// NewSelectionHandler creates a new selection handler
func NewSelectionHandler(rosterController *roster.Controller, selectionController *selection.Controller) *SelectionHandler {
	return &SelectionHandler{
		roster:    rosterController,
		selection: selectionController,
	}
}

// Get handles GET /api/v1/selection
func (h *SelectionHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	response.JSON(w, http.StatusOK, response.SelectionFromModel(sel))
}

// Toggle handles POST /api/v1/selection/toggle
func (h *SelectionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req request.ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	players, err := h.roster.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	sel, err := h.selection.Toggle(r.Context(), players, model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SelectionFromModel(sel))
}
