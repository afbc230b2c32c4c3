package model

import "time"

// UserID uniquely identifies a registered user
type UserID int64

// User is a registered account that can authenticate against the API.
// Created at signup and immutable afterwards; there are no user update
// or delete operations.
type User struct {
	ID             UserID
	Email          string
	Username       string // login username (unique)
	HashedPassword string // bcrypt digest, never exposed in responses
	IsActive       bool
	CreatedAt      time.Time
}
