package models

import "time"

// User represents a player account in the system
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Record       int // highest score reached across all sessions
	PlayCount    int // number of sessions ever started
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
