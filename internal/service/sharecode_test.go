package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/snipvault/snipvault/internal/database"
	"github.com/snipvault/snipvault/internal/models"
	"github.com/stretchr/testify/suite"
)

type ShareCodeServiceTestSuite struct {
	suite.Suite
	errUnknown   error
	now          time.Time
	codesMock    *MockShareCodeRepository
	snippetsMock *MockSnippetReader
	genMock      *MockCodeGenerator
	svc          *ShareCodeService
}

func (suite *ShareCodeServiceTestSuite) SetupSuite() {
	suite.errUnknown = errors.New("unknown error")
	suite.now = time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)
}

func (suite *ShareCodeServiceTestSuite) SetupSubTest() {
	suite.codesMock = new(MockShareCodeRepository)
	suite.snippetsMock = new(MockSnippetReader)
	suite.genMock = new(MockCodeGenerator)
	suite.svc = NewShareCodeService(
		suite.codesMock,
		suite.snippetsMock,
		WithGenerator(suite.genMock),
		WithClock(func() time.Time { return suite.now }),
	)
}

func (suite *ShareCodeServiceTestSuite) TearDownSubTest() {
	suite.codesMock.AssertExpectations(suite.T())
	suite.snippetsMock.AssertExpectations(suite.T())
	suite.genMock.AssertExpectations(suite.T())
}

func (suite *ShareCodeServiceTestSuite) TestIssueCode() {
	ctx := context.Background()

	suite.Run("snippet not found", func() {
		suite.snippetsMock.
			On("Exists", ctx, "snip1").
			Once().
			Return(false, nil)

		sc, err := suite.svc.IssueCode(ctx, "snip1")

		suite.Error(err)
		suite.ErrorIs(err, database.ErrSnippetNotFound)
		suite.Nil(sc)
	})

	suite.Run("snippet existence check error", func() {
		suite.snippetsMock.
			On("Exists", ctx, "snip1").
			Once().
			Return(false, suite.errUnknown)

		sc, err := suite.svc.IssueCode(ctx, "snip1")

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(sc)
	})

	suite.Run("success", func() {
		expiresAt := suite.now.Add(DefaultShareCodeTTL)

		suite.snippetsMock.
			On("Exists", ctx, "snip1").
			Once().
			Return(true, nil)
		suite.genMock.
			On("Generate").
			Once().
			Return("q7x2m9", nil)
		suite.codesMock.
			On("GetByCode", ctx, "q7x2m9").
			Once().
			Return(nil, database.ErrShareCodeNotFound)
		suite.codesMock.
			On("Create", ctx, "snip1", "q7x2m9", expiresAt).
			Once().
			Return(&models.ShareCode{
				ID:        1,
				Code:      "q7x2m9",
				SnippetID: "snip1",
				CreatedAt: suite.now,
				ExpiresAt: expiresAt,
			}, nil)

		sc, err := suite.svc.IssueCode(ctx, "snip1")

		suite.NoError(err)
		suite.NotNil(sc)
		suite.Equal("q7x2m9", sc.Code)
		suite.Equal("snip1", sc.SnippetID)
		suite.Equal(expiresAt, sc.ExpiresAt)
	})

	suite.Run("custom ttl", func() {
		svc := NewShareCodeService(
			suite.codesMock,
			suite.snippetsMock,
			WithGenerator(suite.genMock),
			WithClock(func() time.Time { return suite.now }),
			WithTTL(30*time.Second),
		)
		expiresAt := suite.now.Add(30 * time.Second)

		suite.snippetsMock.
			On("Exists", ctx, "snip1").
			Once().
			Return(true, nil)
		suite.genMock.
			On("Generate").
			Once().
			Return("q7x2m9", nil)
		suite.codesMock.
			On("GetByCode", ctx, "q7x2m9").
			Once().
			Return(nil, database.ErrShareCodeNotFound)
		suite.codesMock.
			On("Create", ctx, "snip1", "q7x2m9", expiresAt).
			Once().
			Return(&models.ShareCode{Code: "q7x2m9", SnippetID: "snip1", ExpiresAt: expiresAt}, nil)

		sc, err := svc.IssueCode(ctx, "snip1")

		suite.NoError(err)
		suite.NotNil(sc)
		suite.Equal(expiresAt, sc.ExpiresAt)
	})

	suite.Run("retries past active collision", func() {
		suite.snippetsMock.
			On("Exists", ctx, "snip1").
			Once().
			Return(true, nil)
		suite.genMock.
			On("Generate").
			Once().
			Return("taken1", nil)
		suite.codesMock.
			On("GetByCode", ctx, "taken1").
			Once().
			Return(&models.ShareCode{
				ID:        7,
				Code:      "taken1",
				SnippetID: "other",
				ExpiresAt: suite.now.Add(time.Minute),
			}, nil)
		suite.genMock.
			On("Generate").
			Once().
			Return("free42", nil)
		suite.codesMock.
			On("GetByCode", ctx, "free42").
			Once().
			Return(nil, database.ErrShareCodeNotFound)
		suite.codesMock.
			On("Create", ctx, "snip1", "free42", suite.now.Add(DefaultShareCodeTTL)).
			Once().
			Return(&models.ShareCode{Code: "free42", SnippetID: "snip1"}, nil)

		sc, err := suite.svc.IssueCode(ctx, "snip1")

		suite.NoError(err)
		suite.NotNil(sc)
		suite.Equal("free42", sc.Code)
		suite.codesMock.AssertNotCalled(suite.T(), "DeleteByID", ctx, int64(7))
	})

	suite.Run("frees value held by expired code", func() {
		suite.snippetsMock.
			On("Exists", ctx, "snip1").
			Once().
			Return(true, nil)
		suite.genMock.
			On("Generate").
			Once().
			Return("stale9", nil)
		suite.codesMock.
			On("GetByCode", ctx, "stale9").
			Once().
			Return(&models.ShareCode{
				ID:        9,
				Code:      "stale9",
				SnippetID: "other",
				ExpiresAt: suite.now.Add(-time.Second),
			}, nil)
		suite.codesMock.
			On("DeleteByID", ctx, int64(9)).
			Once().
			Return(nil)
		suite.codesMock.
			On("Create", ctx, "snip1", "stale9", suite.now.Add(DefaultShareCodeTTL)).
			Once().
			Return(&models.ShareCode{Code: "stale9", SnippetID: "snip1"}, nil)

		sc, err := suite.svc.IssueCode(ctx, "snip1")

		suite.NoError(err)
		suite.NotNil(sc)
		suite.Equal("stale9", sc.Code)
	})

	suite.Run("retries lost insert race", func() {
		suite.snippetsMock.
			On("Exists", ctx, "snip1").
			Once().
			Return(true, nil)
		suite.genMock.
			On("Generate").
			Once().
			Return("raced1", nil)
		suite.codesMock.
			On("GetByCode", ctx, "raced1").
			Once().
			Return(nil, database.ErrShareCodeNotFound)
		suite.codesMock.
			On("Create", ctx, "snip1", "raced1", suite.now.Add(DefaultShareCodeTTL)).
			Once().
			Return(nil, database.ErrShareCodeExists)
		suite.genMock.
			On("Generate").
			Once().
			Return("fresh2", nil)
		suite.codesMock.
			On("GetByCode", ctx, "fresh2").
			Once().
			Return(nil, database.ErrShareCodeNotFound)
		suite.codesMock.
			On("Create", ctx, "snip1", "fresh2", suite.now.Add(DefaultShareCodeTTL)).
			Once().
			Return(&models.ShareCode{Code: "fresh2", SnippetID: "snip1"}, nil)

		sc, err := suite.svc.IssueCode(ctx, "snip1")

		suite.NoError(err)
		suite.NotNil(sc)
		suite.Equal("fresh2", sc.Code)
	})

	suite.Run("generation exhausted", func() {
		suite.snippetsMock.
			On("Exists", ctx, "snip1").
			Once().
			Return(true, nil)
		suite.genMock.
			On("Generate").
			Times(10).
			Return("busy00", nil)
		suite.codesMock.
			On("GetByCode", ctx, "busy00").
			Times(10).
			Return(&models.ShareCode{
				ID:        3,
				Code:      "busy00",
				SnippetID: "other",
				ExpiresAt: suite.now.Add(time.Hour),
			}, nil)

		sc, err := suite.svc.IssueCode(ctx, "snip1")

		suite.Error(err)
		suite.ErrorIs(err, ErrGenerationExhausted)
		suite.Nil(sc)
		suite.genMock.AssertNumberOfCalls(suite.T(), "Generate", 10)
	})

	suite.Run("generator error", func() {
		suite.snippetsMock.
			On("Exists", ctx, "snip1").
			Once().
			Return(true, nil)
		suite.genMock.
			On("Generate").
			Once().
			Return("", suite.errUnknown)

		sc, err := suite.svc.IssueCode(ctx, "snip1")

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(sc)
	})
}

func (suite *ShareCodeServiceTestSuite) TestResolveCode() {
	ctx := context.Background()

	suite.Run("code not found", func() {
		suite.codesMock.
			On("GetByCode", ctx, "q7x2m9").
			Once().
			Return(nil, database.ErrShareCodeNotFound)

		snippet, err := suite.svc.ResolveCode(ctx, "q7x2m9")

		suite.Error(err)
		suite.ErrorIs(err, database.ErrShareCodeNotFound)
		suite.Nil(snippet)
	})

	suite.Run("expired code is deleted and reported expired", func() {
		suite.codesMock.
			On("GetByCode", ctx, "q7x2m9").
			Once().
			Return(&models.ShareCode{
				ID:        5,
				Code:      "q7x2m9",
				SnippetID: "snip1",
				ExpiresAt: suite.now.Add(-time.Minute),
			}, nil)
		suite.codesMock.
			On("DeleteByID", ctx, int64(5)).
			Once().
			Return(nil)

		snippet, err := suite.svc.ResolveCode(ctx, "q7x2m9")

		suite.Error(err)
		suite.ErrorIs(err, ErrShareCodeExpired)
		suite.NotErrorIs(err, database.ErrShareCodeNotFound)
		suite.Nil(snippet)
	})

	suite.Run("code expiring this instant is already dead", func() {
		suite.codesMock.
			On("GetByCode", ctx, "q7x2m9").
			Once().
			Return(&models.ShareCode{
				ID:        5,
				Code:      "q7x2m9",
				SnippetID: "snip1",
				ExpiresAt: suite.now,
			}, nil)
		suite.codesMock.
			On("DeleteByID", ctx, int64(5)).
			Once().
			Return(nil)

		snippet, err := suite.svc.ResolveCode(ctx, "q7x2m9")

		suite.Error(err)
		suite.ErrorIs(err, ErrShareCodeExpired)
		suite.Nil(snippet)
	})

	suite.Run("success", func() {
		suite.codesMock.
			On("GetByCode", ctx, "q7x2m9").
			Once().
			Return(&models.ShareCode{
				ID:        5,
				Code:      "q7x2m9",
				SnippetID: "snip1",
				ExpiresAt: suite.now.Add(time.Minute),
			}, nil)
		suite.snippetsMock.
			On("GetByID", ctx, "snip1").
			Once().
			Return(&models.Snippet{ID: "snip1", Title: "quick sort"}, nil)

		snippet, err := suite.svc.ResolveCode(ctx, "q7x2m9")

		suite.NoError(err)
		suite.NotNil(snippet)
		suite.Equal("snip1", snippet.ID)
	})

	suite.Run("resolution does not consume the code", func() {
		suite.codesMock.
			On("GetByCode", ctx, "q7x2m9").
			Twice().
			Return(&models.ShareCode{
				ID:        5,
				Code:      "q7x2m9",
				SnippetID: "snip1",
				ExpiresAt: suite.now.Add(time.Minute),
			}, nil)
		suite.snippetsMock.
			On("GetByID", ctx, "snip1").
			Twice().
			Return(&models.Snippet{ID: "snip1"}, nil)

		first, err := suite.svc.ResolveCode(ctx, "q7x2m9")
		suite.NoError(err)
		suite.NotNil(first)

		second, err := suite.svc.ResolveCode(ctx, "q7x2m9")
		suite.NoError(err)
		suite.NotNil(second)

		suite.codesMock.AssertNotCalled(suite.T(), "DeleteByID", ctx, int64(5))
	})
}

func (suite *ShareCodeServiceTestSuite) TestActiveCode() {
	ctx := context.Background()

	suite.Run("no active code", func() {
		suite.codesMock.
			On("GetActiveForSnippet", ctx, "snip1", suite.now).
			Once().
			Return(nil, database.ErrShareCodeNotFound)

		sc, err := suite.svc.ActiveCode(ctx, "snip1")

		suite.Error(err)
		suite.ErrorIs(err, database.ErrShareCodeNotFound)
		suite.Nil(sc)
	})

	suite.Run("success", func() {
		suite.codesMock.
			On("GetActiveForSnippet", ctx, "snip1", suite.now).
			Once().
			Return(&models.ShareCode{
				ID:        2,
				Code:      "q7x2m9",
				SnippetID: "snip1",
				ExpiresAt: suite.now.Add(time.Minute),
			}, nil)

		sc, err := suite.svc.ActiveCode(ctx, "snip1")

		suite.NoError(err)
		suite.NotNil(sc)
		suite.Equal("q7x2m9", sc.Code)
	})
}

func TestShareCodeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ShareCodeServiceTestSuite))
}
