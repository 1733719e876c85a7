package domain

import "time"

// User is a registered quiz player. Username comparisons are
// case-insensitive; Password is stored as submitted (clients pre-digest
// it, the server treats it as an opaque credential blob).
type User struct {
	Username  string
	Password  string
	Email     string
	ResetCode *string // set by the password-reset flow (nullable)
	Score     int
	Balance   int
	CreatedAt time.Time
	UpdatedAt time.Time
}
