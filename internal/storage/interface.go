package storage

import (
	"context"

	"github.com/vizz0r/tic-tac-toe/internal/model"
)

// Storage defines the interface for data persistence. The keys mirror the
// browser-era schema: a "players" document, a "selectedPlayers" pair,
// per-player "score_<id>" counters and a "lastMatch" marker.
//
// Absent values are not errors: GetPlayers and GetSelection return nil, and
// GetScore and GetLastMatch return zero values, when nothing has been
// persisted yet.
type Storage interface {
	// Roster document, insertion order preserved
	GetPlayers(ctx context.Context) ([]model.Player, error)
	SavePlayers(ctx context.Context, players []model.Player) error

	// Selected pair
	GetSelection(ctx context.Context) (*model.Selection, error)
	SaveSelection(ctx context.Context, sel model.Selection) error

	// Score counters, keyed by player id
	GetScore(ctx context.Context, id model.PlayerID) (int, error)
	SaveScore(ctx context.Context, id model.PlayerID, score int) error
	DeleteScore(ctx context.Context, id model.PlayerID) error

	// Last started pairing, "<id1>-<id2>"
	GetLastMatch(ctx context.Context) (string, error)
	SaveLastMatch(ctx context.Context, key string) error
}
