package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/snipvault/snipvault/internal/database"
	"github.com/snipvault/snipvault/internal/models"
)

// DefaultShareCodeTTL is the fixed validity window of an issued share code.
const DefaultShareCodeTTL = 5 * time.Minute

// ShareCodeRepository defines the share code persistence interface used by the
// business logic layer.
type ShareCodeRepository interface {
	// Create inserts a new share code row.
	// Returns database.ErrShareCodeExists when the value is already stored.
	Create(ctx context.Context, snippetID, code string, expiresAt time.Time) (*models.ShareCode, error)

	// GetByCode retrieves a share code by value without expiry filtering.
	GetByCode(ctx context.Context, code string) (*models.ShareCode, error)

	// DeleteByID removes a share code row. Removing a missing row is not an error.
	DeleteByID(ctx context.Context, id int64) error

	// DeleteExpiredBefore removes all rows that expired before t and returns
	// the number removed.
	DeleteExpiredBefore(ctx context.Context, t time.Time) (int64, error)

	// GetActiveForSnippet retrieves the most recent non-expired code for a snippet.
	GetActiveForSnippet(ctx context.Context, snippetID string, now time.Time) (*models.ShareCode, error)
}

// SnippetReader is the snippet collaborator surface the share code service
// depends on. It never mutates snippets.
type SnippetReader interface {
	Exists(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*models.Snippet, error)
}

// snippetChecker is the narrower snippet surface for services that only need
// existence checks.
type snippetChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type codeGenerator interface {
	Generate() (string, error)
}

// ShareCodeService issues and resolves temporary share codes. Issuance is
// optimistic: candidates are checked against the store, and an insert losing
// the race to a concurrent issuance of the same value is retried with a fresh
// candidate rather than serialized behind a lock.
type ShareCodeService struct {
	codes    ShareCodeRepository
	snippets SnippetReader
	gen      codeGenerator
	ttl      time.Duration
	now      func() time.Time
}

// maxIssueAttempts bounds candidate generation per issuance.
const maxIssueAttempts = 10

type ShareCodeOption func(*ShareCodeService)

// WithTTL overrides the share code validity window.
func WithTTL(ttl time.Duration) ShareCodeOption {
	return func(s *ShareCodeService) {
		s.ttl = ttl
	}
}

// WithGenerator overrides the candidate generator.
func WithGenerator(gen codeGenerator) ShareCodeOption {
	return func(s *ShareCodeService) {
		s.gen = gen
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) ShareCodeOption {
	return func(s *ShareCodeService) {
		s.now = now
	}
}

func NewShareCodeService(codes ShareCodeRepository, snippets SnippetReader, opts ...ShareCodeOption) *ShareCodeService {
	s := &ShareCodeService{
		codes:    codes,
		snippets: snippets,
		gen:      NewCodeGenerator(DefaultShareCodeLength),
		ttl:      DefaultShareCodeTTL,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// IssueCode mints a fresh share code for the snippet, valid for the configured
// window from now. Any caller may mint a code for any existing snippet; the
// ownership check is deliberately absent to keep codes usable as temporary
// public links.
//
// Up to maxIssueAttempts candidates are tried; a candidate is rejected when an
// active row holds its value, and an expired row holding it is deleted so the
// value frees up. A lost insert race surfaces as database.ErrShareCodeExists
// and consumes an attempt like any other collision.
func (s *ShareCodeService) IssueCode(ctx context.Context, snippetID string) (*models.ShareCode, error) {
	const op = "service.ShareCodeService.IssueCode"

	exists, err := s.snippets.Exists(ctx, snippetID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to check snippet existence: %w", op, err)
	}
	if !exists {
		return nil, fmt.Errorf("%s: %w", op, database.ErrSnippetNotFound)
	}

	for i := 0; i < maxIssueAttempts; i++ {
		code, err := s.gen.Generate()
		if err != nil {
			return nil, fmt.Errorf("%s: failed to generate code: %w", op, err)
		}

		existing, err := s.codes.GetByCode(ctx, code)
		if err != nil && !errors.Is(err, database.ErrShareCodeNotFound) {
			return nil, fmt.Errorf("%s: failed to check code collision: %w", op, err)
		}
		if existing != nil {
			if existing.Active(s.now()) {
				continue
			}

			// Expired row still occupying the value; clear it so the
			// insert below can reuse the code.
			if err := s.codes.DeleteByID(ctx, existing.ID); err != nil {
				return nil, fmt.Errorf("%s: failed to delete expired code: %w", op, err)
			}
		}

		sc, err := s.codes.Create(ctx, snippetID, code, s.now().Add(s.ttl))
		if err != nil {
			if errors.Is(err, database.ErrShareCodeExists) {
				continue
			}

			return nil, fmt.Errorf("%s: failed to create share code: %w", op, err)
		}

		return sc, nil
	}

	return nil, fmt.Errorf("%s: %w", op, ErrGenerationExhausted)
}

// ResolveCode exchanges a share code for its snippet. An expired row is
// deleted on the way out (lazy cleanup) and reported as ErrShareCodeExpired,
// distinct from database.ErrShareCodeNotFound. Resolution does not consume
// the code; it stays redeemable until expiry.
func (s *ShareCodeService) ResolveCode(ctx context.Context, code string) (*models.Snippet, error) {
	const op = "service.ShareCodeService.ResolveCode"

	sc, err := s.codes.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to look up code: %w", op, err)
	}

	if !sc.Active(s.now()) {
		if err := s.codes.DeleteByID(ctx, sc.ID); err != nil {
			return nil, fmt.Errorf("%s: failed to delete expired code: %w", op, err)
		}

		return nil, fmt.Errorf("%s: %w", op, ErrShareCodeExpired)
	}

	snippet, err := s.snippets.GetByID(ctx, sc.SnippetID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get snippet: %w", op, err)
	}

	return snippet, nil
}

// ActiveCode returns the most recently issued still-valid code for a snippet,
// so listings can show whether a usable code is out there.
func (s *ShareCodeService) ActiveCode(ctx context.Context, snippetID string) (*models.ShareCode, error) {
	const op = "service.ShareCodeService.ActiveCode"

	sc, err := s.codes.GetActiveForSnippet(ctx, snippetID, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get active code: %w", op, err)
	}

	return sc, nil
}
