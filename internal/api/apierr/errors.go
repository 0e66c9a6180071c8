package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vizz0r/tic-tac-toe/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodePlayerNotFound    = "PLAYER_NOT_FOUND"
	CodeDuplicateName     = "DUPLICATE_NAME"
	CodeProtectedPlayer   = "PROTECTED_PLAYER"
	CodeUploadInFlight    = "UPLOAD_IN_FLIGHT"
	CodeNoFile            = "NO_FILE"
	CodeEmptyName         = "EMPTY_NAME"
	CodeUndecodableImage  = "UNDECODABLE_IMAGE"
	CodeSelectionFull     = "SELECTION_FULL"
	CodeSelectionPinned   = "SELECTION_PINNED"
	CodeSelectionNotReady = "SELECTION_NOT_READY"
	CodeCaptureNotFound   = "CAPTURE_NOT_FOUND"
	CodeCaptureFinished   = "CAPTURE_FINISHED"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrDuplicateName):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateName, "A player with this name already exists"}}
	case errors.Is(err, model.ErrProtectedRecord):
		return &httpError{http.StatusForbidden, APIError{CodeProtectedPlayer, "Default players cannot be deleted"}}
	case errors.Is(err, model.ErrUploadInFlight):
		return &httpError{http.StatusConflict, APIError{CodeUploadInFlight, "Another upload is already in progress"}}
	case errors.Is(err, model.ErrNoFile):
		return &httpError{http.StatusBadRequest, APIError{CodeNoFile, "No photo was provided"}}
	case errors.Is(err, model.ErrEmptyName):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyName, "Player name is required"}}
	case errors.Is(err, model.ErrUndecodableImage):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeUndecodableImage, "File is not a decodable image"}}
	case errors.Is(err, model.ErrSelectionFull):
		return &httpError{http.StatusConflict, APIError{CodeSelectionFull, "Deselect one player before selecting another"}}
	case errors.Is(err, model.ErrSelectionPinned):
		return &httpError{http.StatusConflict, APIError{CodeSelectionPinned, "At least two players must remain selected"}}
	case errors.Is(err, model.ErrSelectionNotReady):
		return &httpError{http.StatusConflict, APIError{CodeSelectionNotReady, "Exactly two players must be selected"}}
	case errors.Is(err, model.ErrCaptureNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeCaptureNotFound, "Capture session not found"}}
	case errors.Is(err, model.ErrCaptureFinished):
		return &httpError{http.StatusConflict, APIError{CodeCaptureFinished, "Capture session is no longer awaiting a photo"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
