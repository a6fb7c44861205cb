package domain

import "time"

// User is the domain entity for a registered account holder.
// Users are created once at registration and never updated or deleted.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
