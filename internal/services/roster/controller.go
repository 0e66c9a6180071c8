// Package roster manages the player list: seeding the default pair,
// creating players from photo uploads, renaming and deleting. The roster is
// persisted as one document, so every mutation rewrites it whole.
package roster

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/vizz0r/tic-tac-toe/internal/dependencies/clock"
	"github.com/vizz0r/tic-tac-toe/internal/model"
	"github.com/vizz0r/tic-tac-toe/internal/services/selection"
	"github.com/vizz0r/tic-tac-toe/internal/storage"
)

// Processor turns raw upload bytes into a stored avatar data URI.
type Processor interface {
	Process(ctx context.Context, raw []byte) (string, error)
}

// Controller owns the roster document.
type Controller struct {
	storage   storage.Storage
	selection *selection.Controller
	pipeline  Processor
	clock     clock.Clock
	logger    *slog.Logger

	// uploadGate rejects a second create while one is still processing.
	uploadGate atomic.Bool
}

// New creates a roster controller.
func New(store storage.Storage, sel *selection.Controller, pipeline Processor, clk clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		storage:   store,
		selection: sel,
		pipeline:  pipeline,
		clock:     clk,
		logger:    logger,
	}
}

// Seed loads the roster, writing the default pair on first run. It also
// repairs the selection against whatever roster came back.
func (c *Controller) Seed(ctx context.Context) error {
	players, err := c.storage.GetPlayers(ctx)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	if players == nil {
		players = model.DefaultPlayers()
		if err := c.storage.SavePlayers(ctx, players); err != nil {
			return fmt.Errorf("seed roster: %w", err)
		}
		c.logger.Info("seeded default players")
	}

	if _, err := c.selection.Load(ctx, players); err != nil {
		return err
	}
	return nil
}

// List returns the roster in insertion order.
func (c *Controller) List(ctx context.Context) ([]model.Player, error) {
	players, err := c.storage.GetPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	return players, nil
}

// Get returns one player by id.
func (c *Controller) Get(ctx context.Context, id model.PlayerID) (model.Player, error) {
	players, err := c.List(ctx)
	if err != nil {
		return model.Player{}, err
	}
	p := model.FindPlayer(players, id)
	if p == nil {
		return model.Player{}, model.ErrPlayerNotFound
	}
	return *p, nil
}

// Create adds a player from a name and a raw photo upload. Only one create
// runs at a time; a concurrent call fails fast with ErrUploadInFlight
// instead of queueing. Validation happens before the image pipeline so a
// bad name never burns a background-removal credit.
func (c *Controller) Create(ctx context.Context, name string, photo []byte) (model.Player, error) {
	if !c.uploadGate.CompareAndSwap(false, true) {
		return model.Player{}, model.ErrUploadInFlight
	}
	defer c.uploadGate.Store(false)

	name = strings.TrimSpace(name)
	if name == "" {
		return model.Player{}, model.ErrEmptyName
	}
	if len(photo) == 0 {
		return model.Player{}, model.ErrNoFile
	}

	players, err := c.List(ctx)
	if err != nil {
		return model.Player{}, err
	}
	for _, p := range players {
		if model.NameEqual(p.Name, name) {
			return model.Player{}, model.ErrDuplicateName
		}
	}

	avatar, err := c.pipeline.Process(ctx, photo)
	if err != nil {
		return model.Player{}, err
	}

	player := model.Player{
		ID:     c.nextID(players),
		Name:   name,
		Avatar: avatar,
	}
	players = append(players, player)
	if err := c.storage.SavePlayers(ctx, players); err != nil {
		return model.Player{}, fmt.Errorf("save roster: %w", err)
	}

	c.logger.Info("player created",
		slog.String("player_id", string(player.ID)),
		slog.String("name", player.Name),
	)
	return player, nil
}

// Rename changes a player's display name. A blank name falls back to the
// placeholder; a name already held by another player is rejected.
func (c *Controller) Rename(ctx context.Context, id model.PlayerID, name string) (model.Player, error) {
	players, err := c.List(ctx)
	if err != nil {
		return model.Player{}, err
	}

	target := model.FindPlayer(players, id)
	if target == nil {
		return model.Player{}, model.ErrPlayerNotFound
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = model.PlaceholderName
	}
	for _, p := range players {
		if p.ID != id && model.NameEqual(p.Name, name) {
			return model.Player{}, model.ErrDuplicateName
		}
	}

	target.Name = name
	if err := c.storage.SavePlayers(ctx, players); err != nil {
		return model.Player{}, fmt.Errorf("save roster: %w", err)
	}

	c.logger.Info("player renamed",
		slog.String("player_id", string(id)),
		slog.String("name", name),
	)
	return *target, nil
}

// Delete removes a player, their score counter and their selection slot.
// Default players cannot be deleted. When only the default pair remains
// afterwards, the selection snaps back to the defaults.
func (c *Controller) Delete(ctx context.Context, id model.PlayerID) ([]model.Player, model.Selection, error) {
	players, err := c.List(ctx)
	if err != nil {
		return nil, model.Selection{}, err
	}

	target := model.FindPlayer(players, id)
	if target == nil {
		return nil, model.Selection{}, model.ErrPlayerNotFound
	}
	if target.IsDefault {
		return nil, model.Selection{}, model.ErrProtectedRecord
	}

	remaining := make([]model.Player, 0, len(players)-1)
	for _, p := range players {
		if p.ID != id {
			remaining = append(remaining, p)
		}
	}

	if err := c.storage.SavePlayers(ctx, remaining); err != nil {
		return nil, model.Selection{}, fmt.Errorf("save roster: %w", err)
	}
	if err := c.storage.DeleteScore(ctx, id); err != nil {
		return nil, model.Selection{}, fmt.Errorf("delete score: %w", err)
	}

	sel, err := c.selection.HandleRemoved(ctx, id, remaining)
	if err != nil {
		return nil, model.Selection{}, err
	}

	c.logger.Info("player deleted", slog.String("player_id", string(id)))
	return remaining, sel, nil
}

// nextID mints an id from the clock, bumping by a millisecond on the
// unlikely collision with an existing player.
func (c *Controller) nextID(players []model.Player) model.PlayerID {
	t := c.clock.Now()
	for {
		id := model.NewPlayerID(t)
		if model.FindPlayer(players, id) == nil {
			return id
		}
		t = t.Add(time.Millisecond)
	}
}
