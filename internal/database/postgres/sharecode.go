package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/snipvault/snipvault/internal/database"
	"github.com/snipvault/snipvault/internal/models"
)

type shareCodeRecord struct {
	ID        int64     `db:"id"`
	Code      string    `db:"code"`
	SnippetID string    `db:"snippet_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

func (r *shareCodeRecord) ToShareCode() *models.ShareCode {
	return &models.ShareCode{
		ID:        r.ID,
		Code:      r.Code,
		SnippetID: r.SnippetID,
		CreatedAt: r.CreatedAt,
		ExpiresAt: r.ExpiresAt,
	}
}

// ShareCodeRepository persists share codes. Uniqueness of the code column is
// enforced by a database constraint; concurrent writers losing the insert race
// observe database.ErrShareCodeExists.
type ShareCodeRepository struct {
	db *sqlx.DB
}

func NewShareCodeRepository(db *sqlx.DB) *ShareCodeRepository {
	return &ShareCodeRepository{
		db: db,
	}
}

func (r *ShareCodeRepository) Create(ctx context.Context, snippetID, code string, expiresAt time.Time) (*models.ShareCode, error) {
	const op = "database.postgres.ShareCodeRepository.Create"

	rec := new(shareCodeRecord)
	query := `INSERT INTO share_codes(code, snippet_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query, code, snippetID, expiresAt)
	if err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrShareCodeExists)
		}

		return nil, fmt.Errorf("%s: failed to create share code record: %w", op, err)
	}

	return rec.ToShareCode(), nil
}

// GetByCode looks up a share code by its value with no expiry filtering.
// Callers must check ExpiresAt themselves so that "found but expired" stays
// distinguishable from "not found".
func (r *ShareCodeRepository) GetByCode(ctx context.Context, code string) (*models.ShareCode, error) {
	const op = "database.postgres.ShareCodeRepository.GetByCode"

	rec := new(shareCodeRecord)
	query := `SELECT * FROM share_codes
		WHERE code = $1`

	err := r.db.GetContext(ctx, rec, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, database.ErrShareCodeNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get share code record: %w", op, err)
	}

	return rec.ToShareCode(), nil
}

// DeleteByID removes a share code row. Deleting an already removed row is not
// an error; the lazy cleanup on read races harmlessly with the periodic sweep.
func (r *ShareCodeRepository) DeleteByID(ctx context.Context, id int64) error {
	const op = "database.postgres.ShareCodeRepository.DeleteByID"

	query := `DELETE FROM share_codes
		WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%s: failed to delete share code record: %w", op, err)
	}

	return nil
}

// DeleteExpiredBefore bulk-removes every share code whose window closed before
// the given instant and reports how many rows went away.
func (r *ShareCodeRepository) DeleteExpiredBefore(ctx context.Context, t time.Time) (int64, error) {
	const op = "database.postgres.ShareCodeRepository.DeleteExpiredBefore"

	query := `DELETE FROM share_codes
		WHERE expires_at < $1`

	res, err := r.db.ExecContext(ctx, query, t)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to delete expired share codes: %w", op, err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}

	return count, nil
}

// GetActiveForSnippet returns the most recently issued non-expired code for
// a snippet, or database.ErrShareCodeNotFound if none is currently usable.
func (r *ShareCodeRepository) GetActiveForSnippet(ctx context.Context, snippetID string, now time.Time) (*models.ShareCode, error) {
	const op = "database.postgres.ShareCodeRepository.GetActiveForSnippet"

	rec := new(shareCodeRecord)
	query := `SELECT * FROM share_codes
		WHERE snippet_id = $1 AND expires_at > $2
		ORDER BY created_at DESC
		LIMIT 1`

	err := r.db.GetContext(ctx, rec, query, snippetID, now)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, database.ErrShareCodeNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get active share code record: %w", op, err)
	}

	return rec.ToShareCode(), nil
}
