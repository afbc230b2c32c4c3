package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/mcoot/playerhub-go/internal/dependencies/clock"
	"github.com/mcoot/playerhub-go/internal/model"
	"github.com/mcoot/playerhub-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	clock clock.Clock

	mu            sync.RWMutex
	users         map[model.UserID]*model.User
	usernameIndex map[string]model.UserID
	players       map[model.PlayerID]*model.Player
	nextUserID    model.UserID
	nextPlayerID  model.PlayerID
}

// New creates a new in-memory storage instance
func New(clk clock.Clock) *Storage {
	return &Storage{
		clock:         clk,
		users:         make(map[model.UserID]*model.User),
		usernameIndex: make(map[string]model.UserID),
		players:       make(map[model.PlayerID]*model.Player),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.usernameIndex[user.Username]; ok {
		return nil, model.ErrUserExists
	}

	s.nextUserID++
	stored := *user
	stored.ID = s.nextUserID
	stored.CreatedAt = s.clock.Now().UTC()

	s.users[stored.ID] = &stored
	s.usernameIndex[stored.Username] = stored.ID

	result := stored
	return &result, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	result := *user
	return &result, nil
}

// Player operations

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextPlayerID++
	stored := clonePlayer(player)
	stored.ID = s.nextPlayerID
	stored.CreatedAt = s.clock.Now().UTC()
	stored.UpdatedAt = nil

	s.players[stored.ID] = stored
	return clonePlayer(stored), nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return clonePlayer(player), nil
}

func (s *Storage) ListPlayers(ctx context.Context, skip, limit int) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return paginate(s.sortedPlayers(), skip, limit), nil
}

func (s *Storage) SearchPlayersByName(ctx context.Context, name string, skip, limit int) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(name)
	var matched []*model.Player
	for _, player := range s.sortedPlayers() {
		if strings.Contains(strings.ToLower(player.Name), needle) {
			matched = append(matched, player)
		}
	}
	return paginate(matched, skip, limit), nil
}

func (s *Storage) UpdatePlayer(ctx context.Context, id model.PlayerID, update model.PlayerUpdate) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}

	updated := clonePlayer(player)
	if update.Name != nil {
		updated.Name = *update.Name
	}
	if update.Position != nil {
		updated.Position = update.Position
	}
	if update.Team != nil {
		updated.Team = update.Team
	}
	if update.Age != nil {
		updated.Age = update.Age
	}
	if update.JerseyNumber != nil {
		updated.JerseyNumber = update.JerseyNumber
	}
	now := s.clock.Now().UTC()
	updated.UpdatedAt = &now

	s.players[id] = updated
	return clonePlayer(updated), nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[id]; !ok {
		return model.ErrPlayerNotFound
	}
	delete(s.players, id)
	return nil
}

// Close is a no-op for the in-memory backend
func (s *Storage) Close() error {
	return nil
}

// sortedPlayers returns all players ordered by ID. Callers must hold the lock.
func (s *Storage) sortedPlayers() []*model.Player {
	players := make([]*model.Player, 0, len(s.players))
	for _, player := range s.players {
		players = append(players, player)
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].ID < players[j].ID
	})
	return players
}

func paginate(players []*model.Player, skip, limit int) []*model.Player {
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
	page := make([]*model.Player, 0, end-skip)
	for _, player := range players[skip:end] {
		page = append(page, clonePlayer(player))
	}
	return page
}

// clonePlayer returns a copy of a player record so callers never hold
// a reference into the backing maps
func clonePlayer(p *model.Player) *model.Player {
	cp := *p
	return &cp
}
