package model

import "time"

// PlayerID uniquely identifies a player record.
// IDs are assigned by the backing store and are never reused.
type PlayerID int64

// Player represents a roster entry
type Player struct {
	ID           PlayerID
	Name         string // never empty or whitespace-only
	Position     *string
	Team         *string
	Age          *int
	JerseyNumber *int
	CreatedAt    time.Time
	UpdatedAt    *time.Time // nil until the first update
}

// PlayerUpdate carries a partial update of a player record.
// Nil fields keep their stored value.
type PlayerUpdate struct {
	Name         *string
	Position     *string
	Team         *string
	Age          *int
	JerseyNumber *int
}

// IsEmpty reports whether the update supplies no fields at all
func (u PlayerUpdate) IsEmpty() bool {
	return u.Name == nil && u.Position == nil && u.Team == nil &&
		u.Age == nil && u.JerseyNumber == nil
}
