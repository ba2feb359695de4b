package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type UpvoteRepository struct {
	db *sqlx.DB
}

func NewUpvoteRepository(db *sqlx.DB) *UpvoteRepository {
	return &UpvoteRepository{
		db: db,
	}
}

func (r *UpvoteRepository) Exists(ctx context.Context, snippetID, userID string) (bool, error) {
	const op = "database.postgres.UpvoteRepository.Exists"

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM upvotes WHERE snippet_id = $1 AND user_id = $2)`

	if err := r.db.GetContext(ctx, &exists, query, snippetID, userID); err != nil {
		return false, fmt.Errorf("%s: failed to check upvote existence: %w", op, err)
	}

	return exists, nil
}

// Add records an upvote. A concurrent duplicate is absorbed by the
// (snippet_id, user_id) constraint rather than reported.
func (r *UpvoteRepository) Add(ctx context.Context, snippetID, userID string) error {
	const op = "database.postgres.UpvoteRepository.Add"

	query := `INSERT INTO upvotes(snippet_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (snippet_id, user_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, snippetID, userID); err != nil {
		return fmt.Errorf("%s: failed to create upvote record: %w", op, err)
	}

	return nil
}

func (r *UpvoteRepository) Remove(ctx context.Context, snippetID, userID string) error {
	const op = "database.postgres.UpvoteRepository.Remove"

	query := `DELETE FROM upvotes
		WHERE snippet_id = $1 AND user_id = $2`

	if _, err := r.db.ExecContext(ctx, query, snippetID, userID); err != nil {
		return fmt.Errorf("%s: failed to delete upvote record: %w", op, err)
	}

	return nil
}
