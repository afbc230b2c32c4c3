package redis

import (
	"fmt"

	"github.com/mcoot/playerhub-go/internal/model"
)

// Key prefix for all roster data
const keyPrefix = "playerhub"

// Key generation functions for each entity type

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%d", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%d", keyPrefix, id)
}

// playerIndexKey returns the Redis key for the SET of all player IDs
func playerIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// userSeqKey returns the Redis key for the user ID sequence
func userSeqKey() string {
	return fmt.Sprintf("%s:seq:user", keyPrefix)
}

// playerSeqKey returns the Redis key for the player ID sequence
func playerSeqKey() string {
	return fmt.Sprintf("%s:seq:player", keyPrefix)
}
