package service

import (
	"context"
	"fmt"

	"github.com/snipvault/snipvault/internal/database"
	"github.com/snipvault/snipvault/internal/models"
)

// CommentRepository defines the comment persistence interface used by the
// business logic layer.
type CommentRepository interface {
	Create(ctx context.Context, snippetID, authorID, content string) (*models.Comment, error)
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListBySnippet(ctx context.Context, snippetID string) ([]*models.Comment, error)
	Delete(ctx context.Context, id string) error
}

// CommentService manages comments on snippets.
type CommentService struct {
	comments CommentRepository
	snippets snippetChecker
}

func NewCommentService(comments CommentRepository, snippets snippetChecker) *CommentService {
	return &CommentService{
		comments: comments,
		snippets: snippets,
	}
}

func (s *CommentService) Add(ctx context.Context, snippetID, authorID, content string) (*models.Comment, error) {
	const op = "service.CommentService.Add"

	exists, err := s.snippets.Exists(ctx, snippetID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to check snippet existence: %w", op, err)
	}
	if !exists {
		return nil, fmt.Errorf("%s: %w", op, database.ErrSnippetNotFound)
	}

	comment, err := s.comments.Create(ctx, snippetID, authorID, content)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create comment: %w", op, err)
	}

	return comment, nil
}

func (s *CommentService) ListForSnippet(ctx context.Context, snippetID string) ([]*models.Comment, error) {
	const op = "service.CommentService.ListForSnippet"

	comments, err := s.comments.ListBySnippet(ctx, snippetID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list comments: %w", op, err)
	}

	return comments, nil
}

// Delete removes a comment; only its author may do so.
func (s *CommentService) Delete(ctx context.Context, id, userID string) error {
	const op = "service.CommentService.Delete"

	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: failed to get comment: %w", op, err)
	}
	if comment.AuthorID != userID {
		return fmt.Errorf("%s: %w", op, ErrAccessDenied)
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: failed to delete comment: %w", op, err)
	}

	return nil
}
