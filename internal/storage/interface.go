package storage

import (
	"context"

	"github.com/mcoot/playerhub-go/internal/model"
)

// Storage defines the interface for data persistence.
// Backends assign IDs and creation timestamps on insert.
type Storage interface {
	// User operations
	//
	// CreateUser persists a new user, assigning ID and CreatedAt.
	// Returns model.ErrUserExists if the username is already taken.
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// Player operations
	//
	// ListPlayers and SearchPlayersByName return players ordered by ID
	// ascending. Negative skip or limit values are treated as zero.
	// SearchPlayersByName matches case-insensitive substrings of the name;
	// an empty result is not an error at this layer.
	CreatePlayer(ctx context.Context, player *model.Player) (*model.Player, error)
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	ListPlayers(ctx context.Context, skip, limit int) ([]*model.Player, error)
	SearchPlayersByName(ctx context.Context, name string, skip, limit int) ([]*model.Player, error)
	UpdatePlayer(ctx context.Context, id model.PlayerID, update model.PlayerUpdate) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Close releases any resources held by the backend
	Close() error
}
