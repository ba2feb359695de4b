package service

import (
	"context"
	"time"

	"github.com/snipvault/snipvault/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockShareCodeRepository struct {
	mock.Mock
}

func (r *MockShareCodeRepository) Create(ctx context.Context, snippetID, code string, expiresAt time.Time) (*models.ShareCode, error) {
	args := r.Called(ctx, snippetID, code, expiresAt)
	sc, _ := args.Get(0).(*models.ShareCode)
	return sc, args.Error(1)
}

func (r *MockShareCodeRepository) GetByCode(ctx context.Context, code string) (*models.ShareCode, error) {
	args := r.Called(ctx, code)
	sc, _ := args.Get(0).(*models.ShareCode)
	return sc, args.Error(1)
}

func (r *MockShareCodeRepository) DeleteByID(ctx context.Context, id int64) error {
	args := r.Called(ctx, id)
	return args.Error(0)
}

func (r *MockShareCodeRepository) DeleteExpiredBefore(ctx context.Context, t time.Time) (int64, error) {
	args := r.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}

func (r *MockShareCodeRepository) GetActiveForSnippet(ctx context.Context, snippetID string, now time.Time) (*models.ShareCode, error) {
	args := r.Called(ctx, snippetID, now)
	sc, _ := args.Get(0).(*models.ShareCode)
	return sc, args.Error(1)
}

type MockSnippetReader struct {
	mock.Mock
}

func (r *MockSnippetReader) Exists(ctx context.Context, id string) (bool, error) {
	args := r.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (r *MockSnippetReader) GetByID(ctx context.Context, id string) (*models.Snippet, error) {
	args := r.Called(ctx, id)
	snippet, _ := args.Get(0).(*models.Snippet)
	return snippet, args.Error(1)
}

type MockCodeGenerator struct {
	mock.Mock
}

func (g *MockCodeGenerator) Generate() (string, error) {
	args := g.Called()
	return args.String(0), args.Error(1)
}

type MockSnippetRepository struct {
	mock.Mock
}

func (r *MockSnippetRepository) Create(ctx context.Context, authorID, title, description, language, code, visibility string) (*models.Snippet, error) {
	args := r.Called(ctx, authorID, title, description, language, code, visibility)
	snippet, _ := args.Get(0).(*models.Snippet)
	return snippet, args.Error(1)
}

func (r *MockSnippetRepository) GetByID(ctx context.Context, id string) (*models.Snippet, error) {
	args := r.Called(ctx, id)
	snippet, _ := args.Get(0).(*models.Snippet)
	return snippet, args.Error(1)
}

func (r *MockSnippetRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := r.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (r *MockSnippetRepository) ListPublic(ctx context.Context, filters models.SnippetFilters) ([]*models.Snippet, int64, error) {
	args := r.Called(ctx, filters)
	snippets, _ := args.Get(0).([]*models.Snippet)
	return snippets, args.Get(1).(int64), args.Error(2)
}

func (r *MockSnippetRepository) ListByAuthor(ctx context.Context, authorID string, includePrivate bool) ([]*models.Snippet, error) {
	args := r.Called(ctx, authorID, includePrivate)
	snippets, _ := args.Get(0).([]*models.Snippet)
	return snippets, args.Error(1)
}

func (r *MockSnippetRepository) Update(ctx context.Context, id, title, description, language, code, visibility string) (*models.Snippet, error) {
	args := r.Called(ctx, id, title, description, language, code, visibility)
	snippet, _ := args.Get(0).(*models.Snippet)
	return snippet, args.Error(1)
}

func (r *MockSnippetRepository) Delete(ctx context.Context, id string) error {
	args := r.Called(ctx, id)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (r *MockUserRepository) Create(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	args := r.Called(ctx, username, email, passwordHash)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (r *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := r.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (r *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := r.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type MockCommentRepository struct {
	mock.Mock
}

func (r *MockCommentRepository) Create(ctx context.Context, snippetID, authorID, content string) (*models.Comment, error) {
	args := r.Called(ctx, snippetID, authorID, content)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func (r *MockCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	args := r.Called(ctx, id)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func (r *MockCommentRepository) ListBySnippet(ctx context.Context, snippetID string) ([]*models.Comment, error) {
	args := r.Called(ctx, snippetID)
	comments, _ := args.Get(0).([]*models.Comment)
	return comments, args.Error(1)
}

func (r *MockCommentRepository) Delete(ctx context.Context, id string) error {
	args := r.Called(ctx, id)
	return args.Error(0)
}

type MockUpvoteRepository struct {
	mock.Mock
}

func (r *MockUpvoteRepository) Exists(ctx context.Context, snippetID, userID string) (bool, error) {
	args := r.Called(ctx, snippetID, userID)
	return args.Bool(0), args.Error(1)
}

func (r *MockUpvoteRepository) Add(ctx context.Context, snippetID, userID string) error {
	args := r.Called(ctx, snippetID, userID)
	return args.Error(0)
}

func (r *MockUpvoteRepository) Remove(ctx context.Context, snippetID, userID string) error {
	args := r.Called(ctx, snippetID, userID)
	return args.Error(0)
}
