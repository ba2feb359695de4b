package models

import "time"

// ShareCode represents a short-lived code granting read access to a snippet,
// primarily for importing it into an editor extension. Fields are immutable
// after creation; a code is only ever created and later deleted.
type ShareCode struct {
	// ID is the unique identifier for the share code record.
	ID int64
	// Code is the 6-character lowercase alphanumeric value presented to users.
	Code string
	// SnippetID references the snippet this code resolves to.
	SnippetID string
	// CreatedAt is the timestamp indicating when the code was issued.
	CreatedAt time.Time
	// ExpiresAt is the absolute timestamp past which the code is dead.
	// The window is fixed at creation and never renewed.
	ExpiresAt time.Time
}

// Active reports whether the code is still usable at the given instant.
func (c *ShareCode) Active(now time.Time) bool {
	return now.Before(c.ExpiresAt)
}
