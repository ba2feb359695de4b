package models

import "time"

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Snippet represents a stored unit of code with its metadata.
type Snippet struct {
	ID          string
	AuthorID    string
	Title       string
	Description string
	Language    string
	Code        string
	Visibility  string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Author is the denormalized author view attached by read paths.
	Author *User
	// CommentCount and UpvoteCount are aggregates attached by read paths.
	CommentCount int64
	UpvoteCount  int64
}

// SnippetFilters narrows and paginates public snippet listings.
type SnippetFilters struct {
	Language string
	Search   string
	Page     int
	Limit    int
}
