package models

import "time"

// RefreshToken is a session renewal token. Token holds the raw value only
// while it is being issued or looked up; storage keeps its digest.
type RefreshToken struct {
	Owner     string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
