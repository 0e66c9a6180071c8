package request

// RenameRequest is the request body for renaming a player
type RenameRequest struct {
	Name string `json:"name"`
}

// ToggleRequest is the request body for toggling a player's selection
type ToggleRequest struct {
	PlayerID string `json:"player_id"`
}
