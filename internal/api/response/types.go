package response

import (
	"time"

	"github.com/mcoot/playerhub-go/internal/model"
)

// User represents a user account in API responses.
// The password hash is never included.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:        int64(u.ID),
		Email:     u.Email,
		Username:  u.Username,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// Token is the response for the token endpoint
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Player represents a roster player in API responses
type Player struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Position     *string    `json:"position"`
	Team         *string    `json:"team"`
	Age          *int       `json:"age"`
	JerseyNumber *int       `json:"jersey_number"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:           int64(p.ID),
		Name:         p.Name,
		Position:     p.Position,
		Team:         p.Team,
		Age:          p.Age,
		JerseyNumber: p.JerseyNumber,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// PlayersFromModels converts a page of players
func PlayersFromModels(players []*model.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// Message is a simple acknowledgement response
type Message struct {
	Message string `json:"message"`
}
