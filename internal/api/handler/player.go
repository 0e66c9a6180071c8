package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vizz0r/tic-tac-toe/internal/api/request"
	"github.com/vizz0r/tic-tac-toe/internal/api/response"
	"github.com/vizz0r/tic-tac-toe/internal/model"
	"github.com/vizz0r/tic-tac-toe/internal/services/capture"
	"github.com/vizz0r/tic-tac-toe/internal/services/roster"
)

// maxUploadBytes bounds a photo upload before decoding.
const maxUploadBytes = 20 << 20

// PlayerHandler handles roster endpoints
type PlayerHandler struct {
	roster  *roster.Controller
	capture *capture.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(rosterController *roster.Controller, captureService *capture.Service) *PlayerHandler {
	return &PlayerHandler{
		roster:  rosterController,
		capture: captureService,
	}
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.roster.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerListFromModel(players))
}

// Get handles GET /api/v1/players/{player_id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["player_id"])

	player, err := h.roster.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Create handles POST /api/v1/players. The body is multipart form data
// with a "name" field and either a "photo" file or a "capture_id" field
// referencing a completed capture session.
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteError(w, NewInvalidRequestError("expected multipart form data"))
		return
	}

	photo, err := h.photoFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.roster.Create(r.Context(), r.FormValue("name"), photo)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}

// photoFromRequest pulls the upload bytes from the form file, falling back
// to a capture session when no file was posted.
func (h *PlayerHandler) photoFromRequest(r *http.Request) ([]byte, error) {
	file, _, err := r.FormFile("photo")
	if err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, NewInvalidRequestError("failed to read photo upload")
		}
		return data, nil
	}
	if !errors.Is(err, http.ErrMissingFile) {
		return nil, NewInvalidRequestError("failed to read photo upload")
	}

	if captureID := r.FormValue("capture_id"); captureID != "" {
		return h.capture.Take(r.Context(), captureID)
	}
	return nil, model.ErrNoFile
}

// Rename handles PATCH /api/v1/players/{player_id}
func (h *PlayerHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["player_id"])

	var req request.RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	player, err := h.roster.Rename(r.Context(), id, req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Delete handles DELETE /api/v1/players/{player_id}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["player_id"])

	remaining, sel, err := h.roster.Delete(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.DeleteResult{
		Players:   response.PlayerListFromModel(remaining).Players,
		Selection: response.SelectionFromModel(sel),
	})
}
