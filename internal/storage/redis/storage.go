package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/playerhub-go/internal/dependencies/clock"
	"github.com/mcoot/playerhub-go/internal/model"
	"github.com/mcoot/playerhub-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Entities are stored as JSON values; IDs come from INCR sequences.
type Storage struct {
	client *redis.Client
	clock  clock.Clock
}

// New creates a new Redis storage instance
func New(cfg Config, clk clock.Clock) (*Storage, error) {
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
		clock:  clk,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, clk clock.Clock) *Storage {
	return &Storage{
		client: client,
		clock:  clk,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	id, err := s.client.Incr(ctx, userSeqKey()).Result()
	if err != nil {
		return nil, err
	}

	stored := *user
	stored.ID = model.UserID(id)
	stored.CreatedAt = s.clock.Now().UTC()

	// Reserve the username first so concurrent signups cannot both win
	reserved, err := s.client.SetNX(ctx, usernameIndexKey(stored.Username), id, 0).Result()
	if err != nil {
		return nil, err
	}
	if !reserved {
		return nil, model.ErrUserExists
	}

	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, err
	}
	if err := s.client.Set(ctx, userKey(stored.ID), data, 0).Err(); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	// Look up user ID from username index
	idStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, err
	}

	data, err := s.client.Get(ctx, userKey(model.UserID(id))).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Player operations

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) (*model.Player, error) {
	id, err := s.client.Incr(ctx, playerSeqKey()).Result()
	if err != nil {
		return nil, err
	}

	stored := *player
	stored.ID = model.PlayerID(id)
	stored.CreatedAt = s.clock.Now().UTC()
	stored.UpdatedAt = nil

	if err := s.savePlayer(ctx, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) ListPlayers(ctx context.Context, skip, limit int) ([]*model.Player, error) {
	ids, err := s.sortedPlayerIDs(ctx)
	if err != nil {
		return nil, err
	}
	return s.fetchPlayers(ctx, paginateIDs(ids, skip, limit))
}

func (s *Storage) SearchPlayersByName(ctx context.Context, name string, skip, limit int) ([]*model.Player, error) {
	ids, err := s.sortedPlayerIDs(ctx)
	if err != nil {
		return nil, err
	}

	players, err := s.fetchPlayers(ctx, ids)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(name)
	matched := make([]*model.Player, 0, len(players))
	for _, player := range players {
		if strings.Contains(strings.ToLower(player.Name), needle) {
			matched = append(matched, player)
		}
	}
	return paginatePlayers(matched, skip, limit), nil
}

func (s *Storage) UpdatePlayer(ctx context.Context, id model.PlayerID, update model.PlayerUpdate) (*model.Player, error) {
	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		player.Name = *update.Name
	}
	if update.Position != nil {
		player.Position = update.Position
	}
	if update.Team != nil {
		player.Team = update.Team
	}
	if update.Age != nil {
		player.Age = update.Age
	}
	if update.JerseyNumber != nil {
		player.JerseyNumber = update.JerseyNumber
	}
	now := s.clock.Now().UTC()
	player.UpdatedAt = &now

	if err := s.savePlayer(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	// Delete record and index entry together; the Del count tells us
	// whether the player existed
	pipe := s.client.Pipeline()
	delCmd := pipe.Del(ctx, playerKey(id))
	pipe.SRem(ctx, playerIndexKey(), int64(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	if delCmd.Val() == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

// savePlayer writes the player JSON and its index entry in one pipeline
func (s *Storage) savePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(player.ID), data, 0)
	pipe.SAdd(ctx, playerIndexKey(), int64(player.ID))
	_, err = pipe.Exec(ctx)
	return err
}

// sortedPlayerIDs returns all player IDs in ascending order
func (s *Storage) sortedPlayerIDs(ctx context.Context) ([]model.PlayerID, error) {
	members, err := s.client.SMembers(ctx, playerIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]model.PlayerID, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			continue // Skip malformed index entries
		}
		ids = append(ids, model.PlayerID(id))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// fetchPlayers loads the given players with a single MGET
func (s *Storage) fetchPlayers(ctx context.Context, ids []model.PlayerID) ([]*model.Player, error) {
	if len(ids) == 0 {
		return []*model.Player{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = playerKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Record deleted between index read and fetch
		}
		var player model.Player
		if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
			continue // Skip invalid data
		}
		players = append(players, &player)
	}
	return players, nil
}

func paginateIDs(ids []model.PlayerID, skip, limit int) []model.PlayerID {
	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 0
	}
	if skip >= len(ids) {
		return nil
	}
	end := skip + limit
	if end > len(ids) {
		end = len(ids)
	}
	return ids[skip:end]
}

func paginatePlayers(players []*model.Player, skip, limit int) []*model.Player {
	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 0
	}
	if skip >= len(players) {
		return []*model.Player{}
	}
	end := skip + limit
	if end > len(players) {
		end = len(players)
	}
	return players[skip:end]
}
