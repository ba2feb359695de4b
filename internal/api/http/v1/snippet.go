package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/snipvault/snipvault/internal/database"
	"github.com/snipvault/snipvault/internal/models"
	"github.com/snipvault/snipvault/internal/service"
	"github.com/snipvault/snipvault/pkg/response"
)

// SnippetUpdate mirrors service.SnippetUpdate so handlers don't leak request
// schemas into the business layer.
type SnippetUpdate = service.SnippetUpdate

// handleCreateSnippet handles POST requests to create a snippet owned by the
// authenticated caller.
func handleCreateSnippet(svc SnippetService, validate *validator.Validate) http.HandlerFunc {
	const op = "api.http.handleCreateSnippet"
	const successMsg = "The snippet has been created successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		var req snippetRequest

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			if errors.Is(err, io.EOF) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.EmptyRequestBodyResponse)
				return
			}

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.BadRequestResponse)
			return
		}

		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationErrorResponse(err))
			return
		}

		snippet, err := svc.Create(r.Context(), userIDFrom(r.Context()),
			req.Title, req.Description, req.Language, req.Code, req.Visibility)
		if err != nil {
			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.SuccessResponse(successMsg, toSnippetResponse(snippet)))
	}
}

// handleGetSnippet handles GET requests for a single snippet. Private
// snippets are returned to their author only.
func handleGetSnippet(svc SnippetService) http.HandlerFunc {
	const op = "api.http.handleGetSnippet"
	const successMsg = "The snippet retrieved successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		snippet, err := svc.GetByID(r.Context(), id, userIDFrom(r.Context()))
		if err != nil {
			writeSnippetError(w, r, op, err)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, toSnippetResponse(snippet)))
	}
}

// handleListPublicSnippets handles GET requests for the public snippet feed.
func handleListPublicSnippets(svc SnippetService) http.HandlerFunc {
	const op = "api.http.handleListPublicSnippets"
	const successMsg = "The snippets retrieved successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		filters := models.SnippetFilters{
			Language: r.URL.Query().Get("language"),
			Search:   r.URL.Query().Get("search"),
		}
		filters.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
		filters.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

		snippets, total, err := svc.ListPublic(r.Context(), filters)
		if err != nil {
			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		if filters.Page < 1 {
			filters.Page = 1
		}
		if filters.Limit < 1 || filters.Limit > 100 {
			filters.Limit = 20
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, paginatedResponse{
			Snippets: toSnippetResponses(snippets),
			Total:    total,
			Page:     filters.Page,
			Limit:    filters.Limit,
		}))
	}
}

// handleListOwnSnippets handles GET requests for the caller's snippets,
// private ones included.
func handleListOwnSnippets(svc SnippetService) http.HandlerFunc {
	const op = "api.http.handleListOwnSnippets"
	const successMsg = "The snippets retrieved successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r.Context())

		snippets, err := svc.ListByAuthor(r.Context(), userID, userID)
		if err != nil {
			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, toSnippetResponses(snippets)))
	}
}

// handleListUserSnippets handles GET requests for another user's snippets.
// Only public snippets are shown unless the requester is the author.
func handleListUserSnippets(svc SnippetService) http.HandlerFunc {
	const op = "api.http.handleListUserSnippets"
	const successMsg = "The snippets retrieved successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		authorID := chi.URLParam(r, "userID")

		snippets, err := svc.ListByAuthor(r.Context(), authorID, userIDFrom(r.Context()))
		if err != nil {
			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, toSnippetResponses(snippets)))
	}
}

// handleUpdateSnippet handles PUT requests to modify a snippet. Only the
// author may update it; absent fields keep their current values.
func handleUpdateSnippet(svc SnippetService, validate *validator.Validate) http.HandlerFunc {
	const op = "api.http.handleUpdateSnippet"
	const successMsg = "The snippet was successfully updated."

	return func(w http.ResponseWriter, r *http.Request) {
		var req snippetUpdateRequest

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			if errors.Is(err, io.EOF) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.EmptyRequestBodyResponse)
				return
			}

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.BadRequestResponse)
			return
		}

		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationErrorResponse(err))
			return
		}

		id := chi.URLParam(r, "id")

		snippet, err := svc.Update(r.Context(), id, userIDFrom(r.Context()), SnippetUpdate{
			Title:       req.Title,
			Description: req.Description,
			Language:    req.Language,
			Code:        req.Code,
			Visibility:  req.Visibility,
		})
		if err != nil {
			writeSnippetError(w, r, op, err)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, toSnippetResponse(snippet)))
	}
}

// handleDeleteSnippet handles DELETE requests for a snippet. Only the author
// may delete it; share codes, comments and upvotes go with it.
func handleDeleteSnippet(svc SnippetService) http.HandlerFunc {
	const op = "api.http.handleDeleteSnippet"
	const successMsg = "The snippet was successfully deleted."

	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		err := svc.Delete(r.Context(), id, userIDFrom(r.Context()))
		if err != nil {
			writeSnippetError(w, r, op, err)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg))
	}
}

// writeSnippetError maps the common snippet error outcomes to responses.
func writeSnippetError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, database.ErrSnippetNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.ResourceNotFoundResponse)
		return
	}

	if errors.Is(err, service.ErrAccessDenied) {
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.ForbiddenResponse)
		return
	}

	httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, response.ServerErrorResponse)
}
