// Package file persists state as JSON documents in a local directory, one
// file per key. It is the default backend: the closest Go analog to the
// browser build's localStorage.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/vizz0r/tic-tac-toe/internal/model"
	"github.com/vizz0r/tic-tac-toe/internal/storage"
)

const (
	playersFile   = "players.json"
	selectionFile = "selectedPlayers.json"
	lastMatchFile = "lastMatch.json"
)

// Storage is a directory-of-JSON-files implementation of the storage
// interface. All operations hold a single lock; writes go through a temp
// file and rename so a crash never leaves a half-written document.
type Storage struct {
	mu  sync.Mutex
	fs  afero.Fs
	dir string
}

// New creates a file storage rooted at dir on the OS filesystem.
func New(dir string) (*Storage, error) {
	return NewWithFs(afero.NewOsFs(), dir)
}

// NewWithFs creates a file storage over the given filesystem (for testing).
func NewWithFs(fs afero.Fs, dir string) (*Storage, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Storage{fs: fs, dir: dir}, nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func scoreFile(id model.PlayerID) string {
	return fmt.Sprintf("score_%s.json", id)
}

// read unmarshals the named document into v. It reports found=false when the
// file does not exist.
func (s *Storage) read(name string, v any) (bool, error) {
	data, err := afero.ReadFile(s.fs, filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", name, err)
	}
	return true, nil
}

func (s *Storage) write(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit %s: %w", name, err)
	}
	return nil
}

func (s *Storage) GetPlayers(ctx context.Context) ([]model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var players []model.Player
	found, err := s.read(playersFile, &players)
	if err != nil || !found {
		return nil, err
	}
	return players, nil
}

func (s *Storage) SavePlayers(ctx context.Context, players []model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(playersFile, players)
}

func (s *Storage) GetSelection(ctx context.Context) (*model.Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sel model.Selection
	found, err := s.read(selectionFile, &sel)
	if err != nil || !found {
		return nil, err
	}
	return &sel, nil
}

func (s *Storage) SaveSelection(ctx context.Context, sel model.Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(selectionFile, sel)
}

func (s *Storage) GetScore(ctx context.Context, id model.PlayerID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var score int
	if _, err := s.read(scoreFile(id), &score); err != nil {
		return 0, err
	}
	return score, nil
}

func (s *Storage) SaveScore(ctx context.Context, id model.PlayerID, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(scoreFile(id), score)
}

func (s *Storage) DeleteScore(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.fs.Remove(filepath.Join(s.dir, scoreFile(id)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete score: %w", err)
	}
	return nil
}

func (s *Storage) GetLastMatch(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var key string
	if _, err := s.read(lastMatchFile, &key); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Storage) SaveLastMatch(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(lastMatchFile, key)
}
