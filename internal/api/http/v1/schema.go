package http

import (
	"time"

	"github.com/snipvault/snipvault/internal/models"
)

// registerRequest represents the request payload for creating an account.
type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// loginRequest represents the request payload for logging in.
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// snippetRequest represents the request payload for creating a snippet.
type snippetRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
	Language    string `json:"language" validate:"required,max=50"`
	Code        string `json:"code" validate:"required"`
	Visibility  string `json:"visibility" validate:"omitempty,oneof=public private"`
}

// snippetUpdateRequest represents the request payload for updating a snippet.
// Absent fields are left unchanged.
type snippetUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Language    *string `json:"language" validate:"omitempty,max=50"`
	Code        *string `json:"code"`
	Visibility  *string `json:"visibility" validate:"omitempty,oneof=public private"`
}

// commentRequest represents the request payload for commenting on a snippet.
type commentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// userResponse represents the public view of a user.
type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bio      string `json:"bio,omitempty"`
}

// snippetResponse represents the response payload for a snippet operation.
type snippetResponse struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Language     string        `json:"language"`
	Code         string        `json:"code"`
	Visibility   string        `json:"visibility"`
	Author       *userResponse `json:"author,omitempty"`
	CommentCount int64         `json:"comment_count"`
	UpvoteCount  int64         `json:"upvote_count"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// commentResponse represents the response payload for a comment operation.
type commentResponse struct {
	ID        string        `json:"id"`
	SnippetID string        `json:"snippet_id"`
	Content   string        `json:"content"`
	Author    *userResponse `json:"author,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// shareCodeResponse represents the response payload for an issued share code.
type shareCodeResponse struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// paginatedResponse wraps a snippet listing with its pagination metadata.
type paginatedResponse struct {
	Snippets []snippetResponse `json:"snippets"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

func toUserResponse(user *models.User) *userResponse {
	if user == nil {
		return nil
	}

	return &userResponse{
		ID:       user.ID,
		Username: user.Username,
		Bio:      user.Bio,
	}
}

func toSnippetResponse(snippet *models.Snippet) snippetResponse {
	return snippetResponse{
		ID:           snippet.ID,
		Title:        snippet.Title,
		Description:  snippet.Description,
		Language:     snippet.Language,
		Code:         snippet.Code,
		Visibility:   snippet.Visibility,
		Author:       toUserResponse(snippet.Author),
		CommentCount: snippet.CommentCount,
		UpvoteCount:  snippet.UpvoteCount,
		CreatedAt:    snippet.CreatedAt,
		UpdatedAt:    snippet.UpdatedAt,
	}
}

func toSnippetResponses(snippets []*models.Snippet) []snippetResponse {
	resps := make([]snippetResponse, 0, len(snippets))
	for _, snippet := range snippets {
		resps = append(resps, toSnippetResponse(snippet))
	}
	return resps
}

func toCommentResponse(comment *models.Comment) commentResponse {
	return commentResponse{
		ID:        comment.ID,
		SnippetID: comment.SnippetID,
		Content:   comment.Content,
		Author:    toUserResponse(comment.Author),
		CreatedAt: comment.CreatedAt,
	}
}

func toShareCodeResponse(sc *models.ShareCode) shareCodeResponse {
	return shareCodeResponse{
		Code:      sc.Code,
		ExpiresAt: sc.ExpiresAt,
	}
}
