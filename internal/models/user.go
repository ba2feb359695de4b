package models

import "time"

// User represents a registered account.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Bio          string
	CreatedAt    time.Time
}
