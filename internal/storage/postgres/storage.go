package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcoot/playerhub-go/internal/model"
	"github.com/mcoot/playerhub-go/internal/storage"
)

//go:embed schema.sql
var schemaSQL string

// pgUniqueViolation is the SQLSTATE for unique constraint violations
const pgUniqueViolation = "23505"

// Storage is a PostgreSQL-backed implementation of the storage interface.
// IDs and timestamps are assigned by the database.
type Storage struct {
	pool *pgxpool.Pool
}

// New creates a new PostgreSQL storage instance and verifies the connection
func New(ctx context.Context, cfg Config) (*Storage, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Storage{pool: pool}, nil
}

// NewWithPool creates a PostgreSQL storage with an existing pool (for testing)
func NewWithPool(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

// EnsureSchema creates the tables this backend needs if they do not exist
func (s *Storage) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Close releases the connection pool
func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (email, username, hashed_password, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, user.Email, user.Username, user.HashedPassword, user.IsActive)

	stored := *user
	if err := row.Scan(&stored.ID, &stored.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, model.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &stored, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, username, hashed_password, is_active, created_at
		FROM users
		WHERE username = $1
	`, username)

	var user model.User
	err := row.Scan(&user.ID, &user.Email, &user.Username, &user.HashedPassword, &user.IsActive, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// Player operations

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) (*model.Player, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO players (name, position, team, age, jersey_number)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, player.Name, player.Position, player.Team, player.Age, player.JerseyNumber)

	stored := *player
	stored.UpdatedAt = nil
	if err := row.Scan(&stored.ID, &stored.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert player: %w", err)
	}
	return &stored, nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, position, team, age, jersey_number, created_at, updated_at
		FROM players
		WHERE id = $1
	`, int64(id))

	player, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("get player: %w", err)
	}
	return player, nil
}

func (s *Storage) ListPlayers(ctx context.Context, skip, limit int) ([]*model.Player, error) {
	skip, limit = clampPage(skip, limit)
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, position, team, age, jersey_number, created_at, updated_at
		FROM players
		ORDER BY id
		OFFSET $1 LIMIT $2
	`, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	return collectPlayers(rows)
}

func (s *Storage) SearchPlayersByName(ctx context.Context, name string, skip, limit int) ([]*model.Player, error) {
	skip, limit = clampPage(skip, limit)
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, position, team, age, jersey_number, created_at, updated_at
		FROM players
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY id
		OFFSET $2 LIMIT $3
	`, name, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}
	defer rows.Close()

	return collectPlayers(rows)
}

func (s *Storage) UpdatePlayer(ctx context.Context, id model.PlayerID, update model.PlayerUpdate) (*model.Player, error) {
	// COALESCE keeps the stored value for every field the update leaves nil
	row := s.pool.QueryRow(ctx, `
		UPDATE players
		SET name          = COALESCE($2, name),
		    position      = COALESCE($3, position),
		    team          = COALESCE($4, team),
		    age           = COALESCE($5, age),
		    jersey_number = COALESCE($6, jersey_number),
		    updated_at    = now()
		WHERE id = $1
		RETURNING id, name, position, team, age, jersey_number, created_at, updated_at
	`, int64(id), update.Name, update.Position, update.Team, update.Age, update.JerseyNumber)

	player, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("update player: %w", err)
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM players WHERE id = $1`, int64(id))
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

// scanPlayer reads one player row; nullable columns land in pointer fields
func scanPlayer(row pgx.Row) (*model.Player, error) {
	var player model.Player
	err := row.Scan(
		&player.ID,
		&player.Name,
		&player.Position,
		&player.Team,
		&player.Age,
		&player.JerseyNumber,
		&player.CreatedAt,
		&player.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func collectPlayers(rows pgx.Rows) ([]*model.Player, error) {
	players := make([]*model.Player, 0)
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return players, nil
}

func clampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 0
	}
	return skip, limit
}
