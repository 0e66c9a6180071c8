package model

import (
	"fmt"
	"strings"
	"time"
)

// PlayerID uniquely identifies a roster record for its whole lifetime.
// Renames never change it.
type PlayerID string

// Player is one roster record. Avatar is either a PNG data URI produced by
// the avatar pipeline or a bundled reference path for the seeded defaults.
type Player struct {
	ID        PlayerID `json:"id"`
	Name      string   `json:"name"`
	Avatar    string   `json:"image"`
	IsDefault bool     `json:"isDefault"`
}

// PlaceholderName is substituted when a rename trims down to nothing.
const PlaceholderName = "Unnamed"

// NewPlayerID derives a fresh id from the creation instant.
func NewPlayerID(t time.Time) PlayerID {
	return PlayerID(fmt.Sprintf("player_%d", t.UnixMilli()))
}

// NameEqual reports whether two display names collide under the roster's
// case-insensitive uniqueness rule.
func NameEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// DefaultPlayers returns the two protected seed records. They are written to
// storage on first start and can never be deleted.
func DefaultPlayers() []Player {
	return []Player{
		{ID: "player1", Name: "Alex", Avatar: "images/playerX.png", IsDefault: true},
		{ID: "player2", Name: "Martin", Avatar: "images/playerO.png", IsDefault: true},
	}
}

// OnlyDefaultsRemain reports whether the roster has shrunk back to exactly
// the two seed records.
func OnlyDefaultsRemain(players []Player) bool {
	if len(players) != 2 {
		return false
	}
	return players[0].IsDefault && players[1].IsDefault
}

// FindPlayer returns the record with the given id, or nil.
func FindPlayer(players []Player, id PlayerID) *Player {
	for i := range players {
		if players[i].ID == id {
			return &players[i]
		}
	}
	return nil
}
