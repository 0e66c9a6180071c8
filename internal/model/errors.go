package model

import "errors"

// Common errors used across the application
var (
	// Roster errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrDuplicateName   = errors.New("a player with this name already exists")
	ErrProtectedRecord = errors.New("default players cannot be deleted")
	ErrUploadInFlight  = errors.New("another upload is already in progress")

	// Upload validation errors
	ErrNoFile    = errors.New("no photo was provided")
	ErrEmptyName = errors.New("player name is required")

	// Image pipeline errors
	ErrUndecodableImage = errors.New("file is not a decodable image")

	// Selection errors
	ErrSelectionFull     = errors.New("deselect one player before selecting another")
	ErrSelectionPinned   = errors.New("at least two players must remain selected")
	ErrSelectionNotReady = errors.New("exactly two players must be selected")

	// Capture errors
	ErrCaptureNotFound = errors.New("capture session not found")
	ErrCaptureFinished = errors.New("capture session is no longer awaiting a photo")
)
