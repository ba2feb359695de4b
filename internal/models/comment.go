package models

import "time"

// Comment represents a comment left on a snippet.
type Comment struct {
	ID        string
	SnippetID string
	AuthorID  string
	Content   string
	CreatedAt time.Time

	Author *User
}
