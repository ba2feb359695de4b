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

type snippetRecord struct {
	ID             string    `db:"id"`
	AuthorID       string    `db:"author_id"`
	Title          string    `db:"title"`
	Description    string    `db:"description"`
	Language       string    `db:"language"`
	Code           string    `db:"code"`
	Visibility     string    `db:"visibility"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
	AuthorUsername string    `db:"author_username"`
	AuthorBio      string    `db:"author_bio"`
	CommentCount   int64     `db:"comment_count"`
	UpvoteCount    int64     `db:"upvote_count"`
}

func (r *snippetRecord) ToSnippet() *models.Snippet {
	return &models.Snippet{
		ID:          r.ID,
		AuthorID:    r.AuthorID,
		Title:       r.Title,
		Description: r.Description,
		Language:    r.Language,
		Code:        r.Code,
		Visibility:  r.Visibility,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Author: &models.User{
			ID:       r.AuthorID,
			Username: r.AuthorUsername,
			Bio:      r.AuthorBio,
		},
		CommentCount: r.CommentCount,
		UpvoteCount:  r.UpvoteCount,
	}
}

const snippetSelect = `SELECT s.id, s.author_id, s.title, s.description, s.language, s.code,
		s.visibility, s.created_at, s.updated_at,
		u.username AS author_username, u.bio AS author_bio,
		(SELECT COUNT(*) FROM comments c WHERE c.snippet_id = s.id) AS comment_count,
		(SELECT COUNT(*) FROM upvotes up WHERE up.snippet_id = s.id) AS upvote_count
	FROM snippets s
	JOIN users u ON u.id = s.author_id`

// SnippetRepository persists snippets together with the denormalized author
// view and aggregate counts read paths attach.
type SnippetRepository struct {
	db *sqlx.DB
}

func NewSnippetRepository(db *sqlx.DB) *SnippetRepository {
	return &SnippetRepository{
		db: db,
	}
}

func (r *SnippetRepository) Create(ctx context.Context, authorID, title, description, language, code, visibility string) (*models.Snippet, error) {
	const op = "database.postgres.SnippetRepository.Create"

	var id string
	query := `INSERT INTO snippets(author_id, title, description, language, code, visibility)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.GetContext(ctx, &id, query, authorID, title, description, language, code, visibility)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create snippet record: %w", op, err)
	}

	return r.GetByID(ctx, id)
}

func (r *SnippetRepository) GetByID(ctx context.Context, id string) (*models.Snippet, error) {
	const op = "database.postgres.SnippetRepository.GetByID"

	rec := new(snippetRecord)
	query := snippetSelect + `
	WHERE s.id = $1`

	err := r.db.GetContext(ctx, rec, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, database.ErrSnippetNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get snippet record: %w", op, err)
	}

	return rec.ToSnippet(), nil
}

func (r *SnippetRepository) Exists(ctx context.Context, id string) (bool, error) {
	const op = "database.postgres.SnippetRepository.Exists"

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM snippets WHERE id = $1)`

	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("%s: failed to check snippet existence: %w", op, err)
	}

	return exists, nil
}

// ListPublic returns a page of public snippets, newest first, optionally
// narrowed by language and a title/description substring search.
func (r *SnippetRepository) ListPublic(ctx context.Context, filters models.SnippetFilters) ([]*models.Snippet, int64, error) {
	const op = "database.postgres.SnippetRepository.ListPublic"

	where := `WHERE s.visibility = 'public'`
	args := []any{}

	if filters.Language != "" {
		args = append(args, filters.Language)
		where += fmt.Sprintf(" AND s.language = $%d", len(args))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		where += fmt.Sprintf(" AND (s.title ILIKE $%d OR s.description ILIKE $%d)", len(args), len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM snippets s ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("%s: failed to count snippet records: %w", op, err)
	}

	args = append(args, filters.Limit, (filters.Page-1)*filters.Limit)
	query := fmt.Sprintf(`%s
	%s
	ORDER BY s.created_at DESC
	LIMIT $%d OFFSET $%d`, snippetSelect, where, len(args)-1, len(args))

	var recs []snippetRecord
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("%s: failed to list snippet records: %w", op, err)
	}

	snippets := make([]*models.Snippet, 0, len(recs))
	for i := range recs {
		snippets = append(snippets, recs[i].ToSnippet())
	}

	return snippets, total, nil
}

// ListByAuthor returns an author's snippets, newest first. Private snippets
// are included only when includePrivate is set.
func (r *SnippetRepository) ListByAuthor(ctx context.Context, authorID string, includePrivate bool) ([]*models.Snippet, error) {
	const op = "database.postgres.SnippetRepository.ListByAuthor"

	query := snippetSelect + `
	WHERE s.author_id = $1 AND (s.visibility = 'public' OR $2)
	ORDER BY s.created_at DESC`

	var recs []snippetRecord
	if err := r.db.SelectContext(ctx, &recs, query, authorID, includePrivate); err != nil {
		return nil, fmt.Errorf("%s: failed to list snippet records: %w", op, err)
	}

	snippets := make([]*models.Snippet, 0, len(recs))
	for i := range recs {
		snippets = append(snippets, recs[i].ToSnippet())
	}

	return snippets, nil
}

func (r *SnippetRepository) Update(ctx context.Context, id, title, description, language, code, visibility string) (*models.Snippet, error) {
	const op = "database.postgres.SnippetRepository.Update"

	query := `UPDATE snippets
		SET title = $1, description = $2, language = $3, code = $4, visibility = $5, updated_at = now()
		WHERE id = $6`

	res, err := r.db.ExecContext(ctx, query, title, description, language, code, visibility, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to update snippet record: %w", op, err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%s: %w", op, database.ErrSnippetNotFound)
	}

	return r.GetByID(ctx, id)
}

// Delete removes a snippet. Share codes, comments and upvotes referencing it
// are cascade-deleted by foreign key constraints.
func (r *SnippetRepository) Delete(ctx context.Context, id string) error {
	const op = "database.postgres.SnippetRepository.Delete"

	query := `DELETE FROM snippets
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: failed to delete snippet record: %w", op, err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, database.ErrSnippetNotFound)
	}

	return nil
}
