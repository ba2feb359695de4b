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

type commentRecord struct {
	ID             string    `db:"id"`
	SnippetID      string    `db:"snippet_id"`
	AuthorID       string    `db:"author_id"`
	Content        string    `db:"content"`
	CreatedAt      time.Time `db:"created_at"`
	AuthorUsername string    `db:"author_username"`
}

func (r *commentRecord) ToComment() *models.Comment {
	return &models.Comment{
		ID:        r.ID,
		SnippetID: r.SnippetID,
		AuthorID:  r.AuthorID,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
		Author: &models.User{
			ID:       r.AuthorID,
			Username: r.AuthorUsername,
		},
	}
}

const commentSelect = `SELECT c.id, c.snippet_id, c.author_id, c.content, c.created_at,
		u.username AS author_username
	FROM comments c
	JOIN users u ON u.id = c.author_id`

type CommentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{
		db: db,
	}
}

func (r *CommentRepository) Create(ctx context.Context, snippetID, authorID, content string) (*models.Comment, error) {
	const op = "database.postgres.CommentRepository.Create"

	var id string
	query := `INSERT INTO comments(snippet_id, author_id, content)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.GetContext(ctx, &id, query, snippetID, authorID, content)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create comment record: %w", op, err)
	}

	return r.GetByID(ctx, id)
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	const op = "database.postgres.CommentRepository.GetByID"

	rec := new(commentRecord)
	query := commentSelect + `
	WHERE c.id = $1`

	err := r.db.GetContext(ctx, rec, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, database.ErrCommentNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get comment record: %w", op, err)
	}

	return rec.ToComment(), nil
}

func (r *CommentRepository) ListBySnippet(ctx context.Context, snippetID string) ([]*models.Comment, error) {
	const op = "database.postgres.CommentRepository.ListBySnippet"

	query := commentSelect + `
	WHERE c.snippet_id = $1
	ORDER BY c.created_at DESC`

	var recs []commentRecord
	if err := r.db.SelectContext(ctx, &recs, query, snippetID); err != nil {
		return nil, fmt.Errorf("%s: failed to list comment records: %w", op, err)
	}

	comments := make([]*models.Comment, 0, len(recs))
	for i := range recs {
		comments = append(comments, recs[i].ToComment())
	}

	return comments, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	const op = "database.postgres.CommentRepository.Delete"

	query := `DELETE FROM comments
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: failed to delete comment record: %w", op, err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, database.ErrCommentNotFound)
	}

	return nil
}
