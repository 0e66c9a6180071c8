package memory

import (
	"context"
	"sync"

	"github.com/vizz0r/tic-tac-toe/internal/model"
	"github.com/vizz0r/tic-tac-toe/internal/storage"
)

// Storage is an in-memory implementation of the storage interface, used in
// tests and for ephemeral runs.
type Storage struct {
	mu sync.RWMutex

	players   []model.Player
	selection *model.Selection
	scores    map[model.PlayerID]int
	lastMatch string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		scores: make(map[model.PlayerID]int),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) GetPlayers(ctx context.Context) ([]model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.players == nil {
		return nil, nil
	}
	out := make([]model.Player, len(s.players))
	copy(out, s.players)
	return out, nil
}

func (s *Storage) SavePlayers(ctx context.Context, players []model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = make([]model.Player, len(players))
	copy(s.players, players)
	return nil
}

func (s *Storage) GetSelection(ctx context.Context) (*model.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selection == nil {
		return nil, nil
	}
	sel := *s.selection
	return &sel, nil
}

func (s *Storage) SaveSelection(ctx context.Context, sel model.Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = &sel
	return nil
}

func (s *Storage) GetScore(ctx context.Context, id model.PlayerID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scores[id], nil
}

func (s *Storage) SaveScore(ctx context.Context, id model.PlayerID, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[id] = score
	return nil
}

func (s *Storage) DeleteScore(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scores, id)
	return nil
}

func (s *Storage) GetLastMatch(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastMatch, nil
}

func (s *Storage) SaveLastMatch(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastMatch = key
	return nil
}
