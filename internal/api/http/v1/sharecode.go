package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/snipvault/snipvault/internal/database"
	"github.com/snipvault/snipvault/internal/service"
	"github.com/snipvault/snipvault/pkg/response"
)

// handlePing handles health check requests to ensure the server is running.
func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "pong")
}

// handleGenerateShareCode handles POST requests to mint a temporary share
// code for a snippet.
//
// The code is valid for a fixed window and can be redeemed any number of
// times before it expires. No authentication is required.
func handleGenerateShareCode(svc ShareCodeService) http.HandlerFunc {
	const op = "api.http.handleGenerateShareCode"
	const successMsg = "The share code has been generated successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		snippetID := chi.URLParam(r, "id")

		sc, err := svc.IssueCode(r.Context(), snippetID)
		if err != nil {
			if errors.Is(err, database.ErrSnippetNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.ResourceNotFoundResponse)
				return
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.SuccessResponse(successMsg, toShareCodeResponse(sc)))
	}
}

// handleImportSnippet handles GET requests to resolve a share code into the
// snippet it points to.
//
// An unknown code yields 404; a code that exists but is past its window
// yields 410 so the caller can prompt for regeneration rather than report an
// invalid code.
func handleImportSnippet(svc ShareCodeService) http.HandlerFunc {
	const op = "api.http.handleImportSnippet"
	const successMsg = "The share code was successfully resolved."

	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		snippet, err := svc.ResolveCode(r.Context(), code)
		if err != nil {
			if errors.Is(err, database.ErrShareCodeNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.ResourceNotFoundResponse)
				return
			}

			if errors.Is(err, service.ErrShareCodeExpired) {
				render.Status(r, http.StatusGone)
				render.JSON(w, r, response.ErrorResponse(
					"Share Code Expired",
					"The share code has expired. Please generate a new one.",
				))
				return
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, toSnippetResponse(snippet)))
	}
}
