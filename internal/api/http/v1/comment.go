package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/snipvault/snipvault/internal/database"
	"github.com/snipvault/snipvault/internal/service"
	"github.com/snipvault/snipvault/pkg/response"
)

// handleAddComment handles POST requests to comment on a snippet.
func handleAddComment(svc CommentService, validate *validator.Validate) http.HandlerFunc {
	const op = "api.http.handleAddComment"
	const successMsg = "The comment has been added successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		var req commentRequest

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

		snippetID := chi.URLParam(r, "id")

		comment, err := svc.Add(r.Context(), snippetID, userIDFrom(r.Context()), req.Content)
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
		render.JSON(w, r, response.SuccessResponse(successMsg, toCommentResponse(comment)))
	}
}

// handleListComments handles GET requests for a snippet's comments.
func handleListComments(svc CommentService) http.HandlerFunc {
	const op = "api.http.handleListComments"
	const successMsg = "The comments retrieved successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		snippetID := chi.URLParam(r, "id")

		comments, err := svc.ListForSnippet(r.Context(), snippetID)
		if err != nil {
			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		resps := make([]commentResponse, 0, len(comments))
		for _, comment := range comments {
			resps = append(resps, toCommentResponse(comment))
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, resps))
	}
}

// handleDeleteComment handles DELETE requests for a comment. Only its author
// may delete it.
func handleDeleteComment(svc CommentService) http.HandlerFunc {
	const op = "api.http.handleDeleteComment"
	const successMsg = "The comment was successfully deleted."

	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		err := svc.Delete(r.Context(), id, userIDFrom(r.Context()))
		if err != nil {
			if errors.Is(err, database.ErrCommentNotFound) {
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
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg))
	}
}

// handleToggleUpvote handles POST requests to flip the caller's upvote on a
// snippet.
func handleToggleUpvote(svc UpvoteService) http.HandlerFunc {
	const op = "api.http.handleToggleUpvote"

	return func(w http.ResponseWriter, r *http.Request) {
		snippetID := chi.URLParam(r, "id")

		upvoted, err := svc.Toggle(r.Context(), snippetID, userIDFrom(r.Context()))
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

		msg := "Upvote removed."
		if upvoted {
			msg = "Upvote added."
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(msg, map[string]bool{"upvoted": upvoted}))
	}
}
