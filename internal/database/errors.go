package database

import "errors"

var (
	// ErrUserExists is returned when a registration collides with an existing
	// username or email.
	ErrUserExists = errors.New("user exists")
	// ErrUserNotFound is returned when no user matches the given identifier.
	ErrUserNotFound = errors.New("user not found")
	// ErrSnippetNotFound is returned when no snippet matches the given id.
	ErrSnippetNotFound = errors.New("snippet not found")
	// ErrCommentNotFound is returned when no comment matches the given id.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrShareCodeExists is returned when an attempt is made to persist
	// a share code whose value is already stored. Callers are expected to
	// retry with a fresh candidate.
	ErrShareCodeExists = errors.New("share code exists")
	// ErrShareCodeNotFound is returned when no share code row matches the
	// given value. An expired row still counts as found; expiry is the
	// caller's concern.
	ErrShareCodeNotFound = errors.New("share code not found")
)
