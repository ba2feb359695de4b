package service

import (
	"context"
	"errors"
	"testing"

	"github.com/snipvault/snipvault/internal/database"
	"github.com/snipvault/snipvault/internal/models"
	"github.com/stretchr/testify/suite"
)

type SnippetServiceTestSuite struct {
	suite.Suite
	errUnknown   error
	snippetsMock *MockSnippetRepository
	svc          *SnippetService
}

func (suite *SnippetServiceTestSuite) SetupSuite() {
	suite.errUnknown = errors.New("unknown error")
}

func (suite *SnippetServiceTestSuite) SetupSubTest() {
	suite.snippetsMock = new(MockSnippetRepository)
	suite.svc = NewSnippetService(suite.snippetsMock)
}

func (suite *SnippetServiceTestSuite) TearDownSubTest() {
	suite.snippetsMock.AssertExpectations(suite.T())
}

func (suite *SnippetServiceTestSuite) TestCreate() {
	ctx := context.Background()

	suite.Run("defaults to public visibility", func() {
		suite.snippetsMock.
			On("Create", ctx, "user1", "quick sort", "", "go", "func Sort() {}", models.VisibilityPublic).
			Once().
			Return(&models.Snippet{ID: "snip1", Visibility: models.VisibilityPublic}, nil)

		snippet, err := suite.svc.Create(ctx, "user1", "quick sort", "", "go", "func Sort() {}", "")

		suite.NoError(err)
		suite.NotNil(snippet)
		suite.Equal(models.VisibilityPublic, snippet.Visibility)
	})

	suite.Run("keeps requested visibility", func() {
		suite.snippetsMock.
			On("Create", ctx, "user1", "quick sort", "", "go", "func Sort() {}", models.VisibilityPrivate).
			Once().
			Return(&models.Snippet{ID: "snip1", Visibility: models.VisibilityPrivate}, nil)

		snippet, err := suite.svc.Create(ctx, "user1", "quick sort", "", "go", "func Sort() {}", models.VisibilityPrivate)

		suite.NoError(err)
		suite.NotNil(snippet)
	})

	suite.Run("unknown error", func() {
		suite.snippetsMock.
			On("Create", ctx, "user1", "quick sort", "", "go", "func Sort() {}", models.VisibilityPublic).
			Once().
			Return(nil, suite.errUnknown)

		snippet, err := suite.svc.Create(ctx, "user1", "quick sort", "", "go", "func Sort() {}", "")

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(snippet)
	})
}

func (suite *SnippetServiceTestSuite) TestGetByID() {
	ctx := context.Background()

	suite.Run("snippet not found", func() {
		suite.snippetsMock.
			On("GetByID", ctx, "snip1").
			Once().
			Return(nil, database.ErrSnippetNotFound)

		snippet, err := suite.svc.GetByID(ctx, "snip1", "user1")

		suite.Error(err)
		suite.ErrorIs(err, database.ErrSnippetNotFound)
		suite.Nil(snippet)
	})

	suite.Run("private snippet hidden from others", func() {
		suite.snippetsMock.
			On("GetByID", ctx, "snip1").
			Once().
			Return(&models.Snippet{
				ID:         "snip1",
				AuthorID:   "user1",
				Visibility: models.VisibilityPrivate,
			}, nil)

		snippet, err := suite.svc.GetByID(ctx, "snip1", "user2")

		suite.Error(err)
		suite.ErrorIs(err, ErrAccessDenied)
		suite.Nil(snippet)
	})

	suite.Run("private snippet hidden from anonymous viewers", func() {
		suite.snippetsMock.
			On("GetByID", ctx, "snip1").
			Once().
			Return(&models.Snippet{
				ID:         "snip1",
				AuthorID:   "user1",
				Visibility: models.VisibilityPrivate,
			}, nil)

		snippet, err := suite.svc.GetByID(ctx, "snip1", "")

		suite.Error(err)
		suite.ErrorIs(err, ErrAccessDenied)
		suite.Nil(snippet)
	})

	suite.Run("private snippet visible to its author", func() {
		suite.snippetsMock.
			On("GetByID", ctx, "snip1").
			Once().
			Return(&models.Snippet{
				ID:         "snip1",
				AuthorID:   "user1",
				Visibility: models.VisibilityPrivate,
			}, nil)

		snippet, err := suite.svc.GetByID(ctx, "snip1", "user1")

		suite.NoError(err)
		suite.NotNil(snippet)
	})

	suite.Run("public snippet visible to anyone", func() {
		suite.snippetsMock.
			On("GetByID", ctx, "snip1").
			Once().
			Return(&models.Snippet{
				ID:         "snip1",
				AuthorID:   "user1",
				Visibility: models.VisibilityPublic,
			}, nil)

		snippet, err := suite.svc.GetByID(ctx, "snip1", "")

		suite.NoError(err)
		suite.NotNil(snippet)
	})
}

func (suite *SnippetServiceTestSuite) TestListPublic() {
	ctx := context.Background()

	suite.Run("clamps pagination", func() {
		suite.snippetsMock.
			On("ListPublic", ctx, models.SnippetFilters{Page: 1, Limit: 20}).
			Once().
			Return([]*models.Snippet{}, int64(0), nil)

		_, _, err := suite.svc.ListPublic(ctx, models.SnippetFilters{Page: -3, Limit: 1000})

		suite.NoError(err)
	})

	suite.Run("success", func() {
		filters := models.SnippetFilters{Language: "go", Page: 2, Limit: 10}

		suite.snippetsMock.
			On("ListPublic", ctx, filters).
			Once().
			Return([]*models.Snippet{{ID: "snip1"}}, int64(11), nil)

		snippets, total, err := suite.svc.ListPublic(ctx, filters)

		suite.NoError(err)
		suite.Len(snippets, 1)
		suite.Equal(int64(11), total)
	})
}

func (suite *SnippetServiceTestSuite) TestListByAuthor() {
	ctx := context.Background()

	suite.Run("includes private for the author", func() {
		suite.snippetsMock.
			On("ListByAuthor", ctx, "user1", true).
			Once().
			Return([]*models.Snippet{{ID: "snip1"}}, nil)

		snippets, err := suite.svc.ListByAuthor(ctx, "user1", "user1")

		suite.NoError(err)
		suite.Len(snippets, 1)
	})

	suite.Run("public only for other requesters", func() {
		suite.snippetsMock.
			On("ListByAuthor", ctx, "user1", false).
			Once().
			Return([]*models.Snippet{}, nil)

		snippets, err := suite.svc.ListByAuthor(ctx, "user1", "user2")

		suite.NoError(err)
		suite.Empty(snippets)
	})
}

func (suite *SnippetServiceTestSuite) TestUpdate() {
	ctx := context.Background()

	stored := &models.Snippet{
		ID:          "snip1",
		AuthorID:    "user1",
		Title:       "quick sort",
		Description: "sorting",
		Language:    "go",
		Code:        "func Sort() {}",
		Visibility:  models.VisibilityPublic,
	}

	suite.Run("snippet not found", func() {
		suite.snippetsMock.
			On("GetByID", ctx, "snip1").
			Once().
			Return(nil, database.ErrSnippetNotFound)

		snippet, err := suite.svc.Update(ctx, "snip1", "user1", SnippetUpdate{})

		suite.Error(err)
		suite.ErrorIs(err, database.ErrSnippetNotFound)
		suite.Nil(snippet)
	})

	suite.Run("only the author may update", func() {
		suite.snippetsMock.
			On("GetByID", ctx, "snip1").
			Once().
			Return(stored, nil)

		snippet, err := suite.svc.Update(ctx, "snip1", "user2", SnippetUpdate{})

		suite.Error(err)
		suite.ErrorIs(err, ErrAccessDenied)
		suite.Nil(snippet)
	})

	suite.Run("nil fields keep stored values", func() {
		title := "merge sort"

		suite.snippetsMock.
			On("GetByID", ctx, "snip1").
			Once().
			Return(stored, nil)
		suite.snippetsMock.
			On("Update", ctx, "snip1", "merge sort", "sorting", "go", "func Sort() {}", models.VisibilityPublic).
			Once().
			Return(&models.Snippet{ID: "snip1", Title: "merge sort"}, nil)

		snippet, err := suite.svc.Update(ctx, "snip1", "user1", SnippetUpdate{Title: &title})

		suite.NoError(err)
		suite.NotNil(snippet)
		suite.Equal("merge sort", snippet.Title)
	})
}

func (suite *SnippetServiceTestSuite) TestDelete() {
	ctx := context.Background()

	suite.Run("only the author may delete", func() {
		suite.snippetsMock.
			On("GetByID", ctx, "snip1").
			Once().
			Return(&models.Snippet{ID: "snip1", AuthorID: "user1"}, nil)

		err := suite.svc.Delete(ctx, "snip1", "user2")

		suite.Error(err)
		suite.ErrorIs(err, ErrAccessDenied)
	})

	suite.Run("success", func() {
		suite.snippetsMock.
			On("GetByID", ctx, "snip1").
			Once().
			Return(&models.Snippet{ID: "snip1", AuthorID: "user1"}, nil)
		suite.snippetsMock.
			On("Delete", ctx, "snip1").
			Once().
			Return(nil)

		err := suite.svc.Delete(ctx, "snip1", "user1")

		suite.NoError(err)
	})
}

func TestSnippetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SnippetServiceTestSuite))
}
