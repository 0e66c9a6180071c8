// Package selection manages the persisted pair of chosen players. Every
// mutation is written through to storage before returning, so a restart
// never loses the pair.
package selection

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vizz0r/tic-tac-toe/internal/model"
	"github.com/vizz0r/tic-tac-toe/internal/storage"
)

// Controller owns the selected pair.
type Controller struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a selection controller.
func New(store storage.Storage, logger *slog.Logger) *Controller {
	return &Controller{storage: store, logger: logger}
}

// Load reads the persisted selection, pruning ids that no longer exist in
// the roster. An empty result seeds the default pair when the roster holds
// only the default players. Any repair is written back immediately.
func (c *Controller) Load(ctx context.Context, roster []model.Player) (model.Selection, error) {
	stored, err := c.storage.GetSelection(ctx)
	if err != nil {
		return model.Selection{}, fmt.Errorf("load selection: %w", err)
	}

	var sel model.Selection
	if stored != nil {
		sel = *stored
	}

	dirty := stored == nil
	for _, id := range sel.IDs() {
		if model.FindPlayer(roster, id) == nil {
			c.logger.Warn("pruning selected player missing from roster",
				slog.String("player_id", string(id)),
			)
			sel.Remove(id)
			dirty = true
		}
	}

	if sel.Size() == 0 && model.OnlyDefaultsRemain(roster) {
		defaults := model.DefaultPlayers()
		sel = model.SelectionOf(defaults[0].ID, defaults[1].ID)
		dirty = true
	}

	if dirty {
		if err := c.storage.SaveSelection(ctx, sel); err != nil {
			return model.Selection{}, fmt.Errorf("save selection: %w", err)
		}
	}
	return sel, nil
}

// Get returns the current selection after validating it against the roster.
func (c *Controller) Get(ctx context.Context, roster []model.Player) (model.Selection, error) {
	return c.Load(ctx, roster)
}

// Toggle flips the selection state of one player. Selecting a third player
// fails with ErrSelectionFull; deselecting below two when only two players
// exist fails with ErrSelectionPinned, because a two-player roster must stay
// fully selected.
func (c *Controller) Toggle(ctx context.Context, roster []model.Player, id model.PlayerID) (model.Selection, error) {
	if model.FindPlayer(roster, id) == nil {
		return model.Selection{}, model.ErrPlayerNotFound
	}

	sel, err := c.Load(ctx, roster)
	if err != nil {
		return model.Selection{}, err
	}

	if sel.Contains(id) {
		if len(roster) == 2 && sel.Size() == 2 {
			return model.Selection{}, model.ErrSelectionPinned
		}
		sel.Remove(id)
	} else {
		if err := sel.Add(id); err != nil {
			return model.Selection{}, err
		}
	}

	if err := c.storage.SaveSelection(ctx, sel); err != nil {
		return model.Selection{}, fmt.Errorf("save selection: %w", err)
	}
	c.logger.Info("selection changed",
		slog.String("player_id", string(id)),
		slog.Int("selected", sel.Size()),
	)
	return sel, nil
}

// HandleRemoved drops a deleted player from the selection and reseeds the
// default pair when only the default players remain in the roster.
func (c *Controller) HandleRemoved(ctx context.Context, removed model.PlayerID, remaining []model.Player) (model.Selection, error) {
	sel, err := c.Load(ctx, remaining)
	if err != nil {
		return model.Selection{}, err
	}

	sel.Remove(removed)
	if model.OnlyDefaultsRemain(remaining) {
		defaults := model.DefaultPlayers()
		sel = model.SelectionOf(defaults[0].ID, defaults[1].ID)
	}

	if err := c.storage.SaveSelection(ctx, sel); err != nil {
		return model.Selection{}, fmt.Errorf("save selection: %w", err)
	}
	return sel, nil
}
