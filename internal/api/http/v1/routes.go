package http

import (
	"context"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	"github.com/snipvault/snipvault/internal/models"
)

// AuthService defines the authentication surface used by the handlers and the
// auth middleware.
type AuthService interface {
	// Register creates a new account from the given credentials.
	Register(ctx context.Context, username, email, password string) (*models.User, error)

	// Login verifies credentials and returns the user with a signed access token.
	Login(ctx context.Context, email, password string) (*models.User, string, error)

	// VerifyToken validates an access token and returns the user id it belongs to.
	VerifyToken(token string) (string, error)
}

// SnippetService defines the interface for the snippet business logic.
type SnippetService interface {
	// Create stores a new snippet owned by authorID.
	Create(ctx context.Context, authorID, title, description, language, code, visibility string) (*models.Snippet, error)

	// GetByID returns a snippet if the viewer is allowed to see it.
	GetByID(ctx context.Context, id, viewerID string) (*models.Snippet, error)

	// ListPublic returns a page of public snippets and the total match count.
	ListPublic(ctx context.Context, filters models.SnippetFilters) ([]*models.Snippet, int64, error)

	// ListByAuthor returns an author's snippets visible to the requester.
	ListByAuthor(ctx context.Context, authorID, requesterID string) ([]*models.Snippet, error)

	// Update modifies a snippet; only the author may do so.
	Update(ctx context.Context, id, userID string, update SnippetUpdate) (*models.Snippet, error)

	// Delete removes a snippet; only the author may do so.
	Delete(ctx context.Context, id, userID string) error
}

// ShareCodeService defines the interface for the temporary share code
// business logic.
type ShareCodeService interface {
	// IssueCode mints a fresh time-boxed code for the snippet.
	IssueCode(ctx context.Context, snippetID string) (*models.ShareCode, error)

	// ResolveCode exchanges a code for the snippet it points to.
	ResolveCode(ctx context.Context, code string) (*models.Snippet, error)
}

// CommentService defines the interface for the comment business logic.
type CommentService interface {
	Add(ctx context.Context, snippetID, authorID, content string) (*models.Comment, error)
	ListForSnippet(ctx context.Context, snippetID string) ([]*models.Comment, error)
	Delete(ctx context.Context, id, userID string) error
}

// UpvoteService defines the interface for the upvote business logic.
type UpvoteService interface {
	// Toggle flips the caller's upvote and reports the resulting state.
	Toggle(ctx context.Context, snippetID, userID string) (bool, error)
}

// Services bundles the business logic dependencies of the router.
type Services struct {
	Auth       AuthService
	Snippets   SnippetService
	ShareCodes ShareCodeService
	Comments   CommentService
	Upvotes    UpvoteService
}

// getValidate initializes a new validator instance for validating incoming request payloads.
// It customizes tag name extraction from struct fields to match JSON tags.
func getValidate() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// NewRouter initializes and returns a new HTTP router with all routes and middleware configured.
func NewRouter(logger *httplog.Logger, svc Services) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*"},
		AllowedMethods:   []string{"POST", "GET", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		validate := getValidate()

		r.Get("/ping", handlePing)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handleRegister(svc.Auth, validate))
			r.Post("/login", handleLogin(svc.Auth, validate))
		})

		r.Route("/snippets", func(r chi.Router) {
			r.Get("/public", handleListPublicSnippets(svc.Snippets))

			r.With(authenticate(svc.Auth)).
				Get("/my", handleListOwnSnippets(svc.Snippets))

			// Resolving a share code is public; the code itself is the
			// capability.
			r.Get("/import/{code}", handleImportSnippet(svc.ShareCodes))

			r.Get("/user/{userID}", handleListUserSnippets(svc.Snippets))

			r.With(authenticate(svc.Auth)).
				Post("/", handleCreateSnippet(svc.Snippets, validate))

			r.Route("/{id}", func(r chi.Router) {
				r.With(optionalAuthenticate(svc.Auth)).
					Get("/", handleGetSnippet(svc.Snippets))
				r.With(authenticate(svc.Auth)).
					Put("/", handleUpdateSnippet(svc.Snippets, validate))
				r.With(authenticate(svc.Auth)).
					Delete("/", handleDeleteSnippet(svc.Snippets))

				// Anyone may mint a code for an existing snippet; see the
				// share code service for the rationale.
				r.Post("/generate-code", handleGenerateShareCode(svc.ShareCodes))

				r.Get("/comments", handleListComments(svc.Comments))
				r.With(authenticate(svc.Auth)).
					Post("/comments", handleAddComment(svc.Comments, validate))

				r.With(authenticate(svc.Auth)).
					Post("/upvote", handleToggleUpvote(svc.Upvotes))
			})
		})

		r.With(authenticate(svc.Auth)).
			Delete("/comments/{id}", handleDeleteComment(svc.Comments))
	})

	return r
}
