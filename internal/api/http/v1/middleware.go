package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/snipvault/snipvault/pkg/response"
)

type contextKey string

const userIDKey contextKey = "userID"

// userIDFrom returns the authenticated user id from the request context, or
// an empty string for anonymous requests.
func userIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

type tokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// authenticate rejects requests without a valid bearer token and stores the
// caller's user id in the request context.
func authenticate(verifier tokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.UnauthorizedResponse)
				return
			}

			userID, err := verifier.VerifyToken(token)
			if err != nil {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.UnauthorizedResponse)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// optionalAuthenticate attaches the caller's user id when a valid bearer
// token is present and lets the request through anonymously otherwise.
func optionalAuthenticate(verifier tokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				if userID, err := verifier.VerifyToken(token); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
