package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vizz0r/tic-tac-toe/internal/model"
	"github.com/vizz0r/tic-tac-toe/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) GetPlayers(ctx context.Context) ([]model.Player, error) {
	data, err := s.client.Get(ctx, playersKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var players []model.Player
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, err
	}
	return players, nil
}

func (s *Storage) SavePlayers(ctx context.Context, players []model.Player) error {
	data, err := json.Marshal(players)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, playersKey(), data, 0).Err()
}

func (s *Storage) GetSelection(ctx context.Context) (*model.Selection, error) {
	data, err := s.client.Get(ctx, selectionKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var sel model.Selection
	if err := json.Unmarshal(data, &sel); err != nil {
		return nil, err
	}
	return &sel, nil
}

func (s *Storage) SaveSelection(ctx context.Context, sel model.Selection) error {
	data, err := json.Marshal(sel)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, selectionKey(), data, 0).Err()
}

func (s *Storage) GetScore(ctx context.Context, id model.PlayerID) (int, error) {
	score, err := s.client.Get(ctx, scoreKey(id)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return score, nil
}

func (s *Storage) SaveScore(ctx context.Context, id model.PlayerID, score int) error {
	return s.client.Set(ctx, scoreKey(id), score, 0).Err()
}

func (s *Storage) DeleteScore(ctx context.Context, id model.PlayerID) error {
	return s.client.Del(ctx, scoreKey(id)).Err()
}

func (s *Storage) GetLastMatch(ctx context.Context) (string, error) {
	key, err := s.client.Get(ctx, lastMatchKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return key, nil
}

func (s *Storage) SaveLastMatch(ctx context.Context, key string) error {
	return s.client.Set(ctx, lastMatchKey(), key, 0).Err()
}
