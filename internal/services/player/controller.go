package player

import (
	"context"
	"strings"

	"github.com/mcoot/playerhub-go/internal/model"
	"github.com/mcoot/playerhub-go/internal/storage"
)

// Controller manages roster player records
type Controller struct {
	storage storage.Storage
}

// NewController creates a new player Controller
func NewController(storage storage.Storage) *Controller {
	return &Controller{storage: storage}
}

// CreatePlayer validates and inserts a new player
func (c *Controller) CreatePlayer(ctx context.Context, player *model.Player) (*model.Player, error) {
	if strings.TrimSpace(player.Name) == "" {
		return nil, model.ErrNameRequired
	}
	return c.storage.CreatePlayer(ctx, player)
}

// GetPlayer retrieves a player by ID
func (c *Controller) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return c.storage.GetPlayer(ctx, id)
}

// ListPlayers returns a page of players ordered by ID
func (c *Controller) ListPlayers(ctx context.Context, skip, limit int) ([]*model.Player, error) {
	return c.storage.ListPlayers(ctx, skip, limit)
}

// SearchPlayers returns a page of players whose names contain the given
// substring, matched case-insensitively. An empty result fails with
// ErrNoPlayersFound rather than returning an empty page.
func (c *Controller) SearchPlayers(ctx context.Context, name string, skip, limit int) ([]*model.Player, error) {
	players, err := c.storage.SearchPlayersByName(ctx, name, skip, limit)
	if err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, model.ErrNoPlayersFound
	}
	return players, nil
}

// UpdatePlayer applies a partial update, leaving absent fields untouched
func (c *Controller) UpdatePlayer(ctx context.Context, id model.PlayerID, update model.PlayerUpdate) (*model.Player, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, model.ErrNameRequired
	}
	// An empty update is a read; updated_at stays unchanged
	if update.IsEmpty() {
		return c.storage.GetPlayer(ctx, id)
	}
	return c.storage.UpdatePlayer(ctx, id, update)
}

// DeletePlayer removes a player by ID
func (c *Controller) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return c.storage.DeletePlayer(ctx, id)
}

// Interface for dependency injection
type ControllerInterface interface {
	CreatePlayer(ctx context.Context, player *model.Player) (*model.Player, error)
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	ListPlayers(ctx context.Context, skip, limit int) ([]*model.Player, error)
	SearchPlayers(ctx context.Context, name string, skip, limit int) ([]*model.Player, error)
	UpdatePlayer(ctx context.Context, id model.PlayerID, update model.PlayerUpdate) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error
}

var _ ControllerInterface = (*Controller)(nil)
