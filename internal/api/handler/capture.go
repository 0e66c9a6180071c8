package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vizz0r/tic-tac-toe/internal/api/response"
	"github.com/vizz0r/tic-tac-toe/internal/model"
	"github.com/vizz0r/tic-tac-toe/internal/services/capture"
)

// CaptureHandler handles camera capture session endpoints
type CaptureHandler struct {
	capture *capture.Service
}

// NewCaptureHandler creates a new capture handler
func NewCaptureHandler(captureService *capture.Service) *CaptureHandler {
	return &CaptureHandler{capture: captureService}
}

// Begin handles POST /api/v1/captures
func (h *CaptureHandler) Begin(w http.ResponseWriter, r *http.Request) {
	sess := h.capture.Begin(r.Context())
	response.JSON(w, http.StatusCreated, response.CaptureFromSession(sess))
}

// Get handles GET /api/v1/captures/{capture_id}
func (h *CaptureHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["capture_id"]

	sess, err := h.capture.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.CaptureFromSession(sess))
}

// Photo handles POST /api/v1/captures/{capture_id}/photo. The body is
// multipart form data with a "photo" file.
func (h *CaptureHandler) Photo(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["capture_id"]

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteError(w, NewInvalidRequestError("expected multipart form data"))
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			WriteError(w, model.ErrNoFile)
			return
		}
		WriteError(w, NewInvalidRequestError("failed to read photo upload"))
		return
	}
	defer file.Close()

	photo, err := io.ReadAll(file)
	if err != nil {
		WriteError(w, NewInvalidRequestError("failed to read photo upload"))
		return
	}

	sess, err := h.capture.Attach(r.Context(), id, photo)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.CaptureFromSession(sess))
}
