package request

// SignupRequest is the request body for creating a user account
type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenRequest is the request body for exchanging credentials for a token
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreatePlayerRequest is the request body for creating a player
type CreatePlayerRequest struct {
	Name         string  `json:"name"`
	Position     *string `json:"position"`
	Team         *string `json:"team"`
	Age          *int    `json:"age"`
	JerseyNumber *int    `json:"jersey_number"`
}

// UpdatePlayerRequest is the request body for partially updating a player.
// Absent fields leave the stored value untouched.
type UpdatePlayerRequest struct {
	Name         *string `json:"name"`
	Position     *string `json:"position"`
	Team         *string `json:"team"`
	Age          *int    `json:"age"`
	JerseyNumber *int    `json:"jersey_number"`
}
