// Package score keeps the per-player win counters and the last-started
// pairing. Counters survive restarts but reset when a match starts with a
// different pair than the previous one.
package score

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vizz0r/tic-tac-toe/internal/model"
	"github.com/vizz0r/tic-tac-toe/internal/storage"
)

// Service owns the score counters.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a score service.
func New(store storage.Storage, logger *slog.Logger) *Service {
	return &Service{storage: store, logger: logger}
}

// Get returns a player's counter, zero when none has been recorded.
func (s *Service) Get(ctx context.Context, id model.PlayerID) (int, error) {
	score, err := s.storage.GetScore(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("load score: %w", err)
	}
	return score, nil
}

// Increment adds one win to a player's counter and returns the new value.
func (s *Service) Increment(ctx context.Context, id model.PlayerID) (int, error) {
	score, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	score++
	if err := s.storage.SaveScore(ctx, id, score); err != nil {
		return 0, fmt.Errorf("save score: %w", err)
	}
	s.logger.Info("score incremented",
		slog.String("player_id", string(id)),
		slog.Int("score", score),
	)
	return score, nil
}

// Reset zeroes the counters for the given players.
func (s *Service) Reset(ctx context.Context, ids ...model.PlayerID) error {
	for _, id := range ids {
		if err := s.storage.SaveScore(ctx, id, 0); err != nil {
			return fmt.Errorf("reset score: %w", err)
		}
	}
	return nil
}

// StartMatch records the pairing about to play. A pairing different from
// the previous one zeroes both counters so a rematch between the same two
// players keeps its running tally while a new matchup starts fresh.
func (s *Service) StartMatch(ctx context.Context, sel model.Selection) error {
	if !sel.IsReady() {
		return model.ErrSelectionNotReady
	}

	key := sel.MatchKey()
	last, err := s.storage.GetLastMatch(ctx)
	if err != nil {
		return fmt.Errorf("load last match: %w", err)
	}

	if key != last {
		if err := s.Reset(ctx, sel.IDs()...); err != nil {
			return err
		}
		s.logger.Info("new pairing, scores reset", slog.String("match", key))
	}

	if err := s.storage.SaveLastMatch(ctx, key); err != nil {
		return fmt.Errorf("save last match: %w", err)
	}
	return nil
}
