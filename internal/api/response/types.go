package response

import (
	"time"

	"github.com/vizz0r/tic-tac-toe/internal/model"
	"github.com/vizz0r/tic-tac-toe/internal/services/capture"
)

// Player represents a player in API responses
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	IsDefault bool   `json:"is_default"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		ID:        string(p.ID),
		Name:      p.Name,
		Image:     p.Avatar,
		IsDefault: p.IsDefault,
	}
}

// PlayerList is the response for listing the roster
type PlayerList struct {
	Players []Player `json:"players"`
}

// PlayerListFromModel converts a roster slice
func PlayerListFromModel(players []model.Player) PlayerList {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return PlayerList{Players: out}
}

// Selection represents the selected pair in API responses
type Selection struct {
	Player1 *string `json:"player1"`
	Player2 *string `json:"player2"`
	Ready   bool    `json:"ready"`
}

// SelectionFromModel converts model.Selection
func SelectionFromModel(sel model.Selection) Selection {
	var p1, p2 *string
	if sel.Player1 != nil {
		s := string(*sel.Player1)
		p1 = &s
	}
	if sel.Player2 != nil {
		s := string(*sel.Player2)
		p2 = &s
	}
	return Selection{Player1: p1, Player2: p2, Ready: sel.IsReady()}
}

// DeleteResult is the response after deleting a player
type DeleteResult struct {
	Players   []Player  `json:"players"`
	Selection Selection `json:"selection"`
}

// Score represents one player's win counter
type Score struct {
	PlayerID string `json:"player_id"`
	Score    int    `json:"score"`
}

// Match is the response after starting a match
type Match struct {
	Match  string  `json:"match"`
	Scores []Score `json:"scores"`
}

// Capture represents a capture session in API responses
type Capture struct {
	ID       string    `json:"id"`
	State    string    `json:"state"`
	Deadline time.Time `json:"deadline"`
}

// CaptureFromSession converts a capture.Session
func CaptureFromSession(s capture.Session) Capture {
	return Capture{
		ID:       s.ID,
		State:    string(s.State),
		Deadline: s.Deadline,
	}
}
