package service

import (
	"context"
	"fmt"

	"github.com/snipvault/snipvault/internal/database"
)

// UpvoteRepository defines the upvote persistence interface used by the
// business logic layer.
type UpvoteRepository interface {
	Exists(ctx context.Context, snippetID, userID string) (bool, error)
	Add(ctx context.Context, snippetID, userID string) error
	Remove(ctx context.Context, snippetID, userID string) error
}

// UpvoteService toggles upvotes on snippets.
type UpvoteService struct {
	upvotes  UpvoteRepository
	snippets snippetChecker
}

func NewUpvoteService(upvotes UpvoteRepository, snippets snippetChecker) *UpvoteService {
	return &UpvoteService{
		upvotes:  upvotes,
		snippets: snippets,
	}
}

// Toggle flips the caller's upvote on a snippet and reports the resulting
// state: true when the upvote now exists, false when it was removed.
func (s *UpvoteService) Toggle(ctx context.Context, snippetID, userID string) (bool, error) {
	const op = "service.UpvoteService.Toggle"

	exists, err := s.snippets.Exists(ctx, snippetID)
	if err != nil {
		return false, fmt.Errorf("%s: failed to check snippet existence: %w", op, err)
	}
	if !exists {
		return false, fmt.Errorf("%s: %w", op, database.ErrSnippetNotFound)
	}

	upvoted, err := s.upvotes.Exists(ctx, snippetID, userID)
	if err != nil {
		return false, fmt.Errorf("%s: failed to check upvote: %w", op, err)
	}

	if upvoted {
		if err := s.upvotes.Remove(ctx, snippetID, userID); err != nil {
			return false, fmt.Errorf("%s: failed to remove upvote: %w", op, err)
		}

		return false, nil
	}

	if err := s.upvotes.Add(ctx, snippetID, userID); err != nil {
		return false, fmt.Errorf("%s: failed to add upvote: %w", op, err)
	}

	return true, nil
}
