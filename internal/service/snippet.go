package service

import (
	"context"
	"fmt"

	"github.com/snipvault/snipvault/internal/models"
)

// SnippetRepository defines the snippet persistence interface used by the
// business logic layer.
type SnippetRepository interface {
	Create(ctx context.Context, authorID, title, description, language, code, visibility string) (*models.Snippet, error)
	GetByID(ctx context.Context, id string) (*models.Snippet, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListPublic(ctx context.Context, filters models.SnippetFilters) ([]*models.Snippet, int64, error)
	ListByAuthor(ctx context.Context, authorID string, includePrivate bool) ([]*models.Snippet, error)
	Update(ctx context.Context, id, title, description, language, code, visibility string) (*models.Snippet, error)
	Delete(ctx context.Context, id string) error
}

// SnippetUpdate carries the fields of a snippet update. Nil fields are left
// unchanged.
type SnippetUpdate struct {
	Title       *string
	Description *string
	Language    *string
	Code        *string
	Visibility  *string
}

// SnippetService owns snippet CRUD with the ownership and visibility rules:
// private snippets are visible to their author only, and only the author may
// update or delete a snippet.
type SnippetService struct {
	snippets SnippetRepository
}

func NewSnippetService(snippets SnippetRepository) *SnippetService {
	return &SnippetService{
		snippets: snippets,
	}
}

func (s *SnippetService) Create(ctx context.Context, authorID, title, description, language, code, visibility string) (*models.Snippet, error) {
	const op = "service.SnippetService.Create"

	if visibility == "" {
		visibility = models.VisibilityPublic
	}

	snippet, err := s.snippets.Create(ctx, authorID, title, description, language, code, visibility)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create snippet: %w", op, err)
	}

	return snippet, nil
}

// GetByID returns the snippet if the viewer may see it. viewerID is empty for
// anonymous callers.
func (s *SnippetService) GetByID(ctx context.Context, id, viewerID string) (*models.Snippet, error) {
	const op = "service.SnippetService.GetByID"

	snippet, err := s.snippets.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get snippet: %w", op, err)
	}

	if snippet.Visibility == models.VisibilityPrivate && snippet.AuthorID != viewerID {
		return nil, fmt.Errorf("%s: %w", op, ErrAccessDenied)
	}

	return snippet, nil
}

// Exists reports whether a snippet with the given id is stored, with no
// visibility filtering. Used by the share code collaborator contract.
func (s *SnippetService) Exists(ctx context.Context, id string) (bool, error) {
	const op = "service.SnippetService.Exists"

	exists, err := s.snippets.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("%s: failed to check snippet existence: %w", op, err)
	}

	return exists, nil
}

func (s *SnippetService) ListPublic(ctx context.Context, filters models.SnippetFilters) ([]*models.Snippet, int64, error) {
	const op = "service.SnippetService.ListPublic"

	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 || filters.Limit > 100 {
		filters.Limit = 20
	}

	snippets, total, err := s.snippets.ListPublic(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to list snippets: %w", op, err)
	}

	return snippets, total, nil
}

// ListByAuthor returns an author's snippets, including private ones only when
// the requester is the author.
func (s *SnippetService) ListByAuthor(ctx context.Context, authorID, requesterID string) ([]*models.Snippet, error) {
	const op = "service.SnippetService.ListByAuthor"

	snippets, err := s.snippets.ListByAuthor(ctx, authorID, authorID == requesterID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list snippets: %w", op, err)
	}

	return snippets, nil
}

func (s *SnippetService) Update(ctx context.Context, id, userID string, update SnippetUpdate) (*models.Snippet, error) {
	const op = "service.SnippetService.Update"

	snippet, err := s.snippets.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get snippet: %w", op, err)
	}
	if snippet.AuthorID != userID {
		return nil, fmt.Errorf("%s: %w", op, ErrAccessDenied)
	}

	title := valueOr(update.Title, snippet.Title)
	description := valueOr(update.Description, snippet.Description)
	language := valueOr(update.Language, snippet.Language)
	code := valueOr(update.Code, snippet.Code)
	visibility := valueOr(update.Visibility, snippet.Visibility)

	updated, err := s.snippets.Update(ctx, id, title, description, language, code, visibility)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to update snippet: %w", op, err)
	}

	return updated, nil
}

func (s *SnippetService) Delete(ctx context.Context, id, userID string) error {
	const op = "service.SnippetService.Delete"

	snippet, err := s.snippets.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: failed to get snippet: %w", op, err)
	}
	if snippet.AuthorID != userID {
		return fmt.Errorf("%s: %w", op, ErrAccessDenied)
	}

	if err := s.snippets.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: failed to delete snippet: %w", op, err)
	}

	return nil
}

func valueOr(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}
