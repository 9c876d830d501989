package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	authMiddleware "github.com/ecoursehub/backend/internal/auth/middleware"
	"github.com/ecoursehub/backend/internal/auth/policy"
	"github.com/ecoursehub/backend/internal/models"
	"go.uber.org/zap"
)

// CommentService is the interface that wraps methods for owner-scoped comment operations
type CommentService interface {
	// UpdateComment replaces the content of a comment owned by the caller
	//
	// "ctx" is the context for the request.
	// "commentID" is the ID of the comment.
	// "userID" is the ID of the caller.
	// "content" is the new content.
	//
	// Returns the updated comment and an error if any.
	UpdateComment(ctx context.Context, commentID, userID int, content string) (*models.Comment, error)
	// DeleteComment deactivates a comment owned by the caller
	//
	// "ctx" is the context for the request.
	// "commentID" is the ID of the comment.
	// "userID" is the ID of the caller.
	//
	// Returns an error if any.
	DeleteComment(ctx context.Context, commentID, userID int) error
}

// CommentHandler handles HTTP requests for editing and removing comments
type CommentHandler struct {
	BaseHandler
	service CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(svc CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all comment handler routes
// Note: This assumes the router is already scoped to /api/v1
func (h *CommentHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.With(policy.Middleware("comment.update", authMiddleware)).Patch("/comments/{id}", h.UpdateComment)
	r.With(policy.Middleware("comment.delete", authMiddleware)).Delete("/comments/{id}", h.DeleteComment)
}

// UpdateComment handles PATCH /comments/{id}
// @Summary Update own comment
// @Description Replace the content of a comment owned by the authenticated user
// @Tags comments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Comment ID"
// @Param request body models.UpdateCommentRequest true "New content"
// @Success 200 {object} models.CommentView "Updated comment"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Comment belongs to another user"
// @Failure 404 {object} map[string]string "Comment not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /comments/{id} [patch]
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	commentID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || commentID <= 0 {
		h.RespondError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	var req models.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.service.UpdateComment(r.Context(), commentID, userID, req.Content)
	if err != nil {
		h.Logger.Error("failed to update comment", zap.Error(err))
		h.RespondError(w, statusFromError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, models.NewCommentView(comment))
}

// DeleteComment handles DELETE /comments/{id}
// @Summary Delete own comment
// @Description Deactivate a comment owned by the authenticated user
// @Tags comments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Comment ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Comment belongs to another user"
// @Failure 404 {object} map[string]string "Comment not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	commentID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || commentID <= 0 {
		h.RespondError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := h.service.DeleteComment(r.Context(), commentID, userID); err != nil {
		h.Logger.Error("failed to delete comment", zap.Error(err))
		h.RespondError(w, statusFromError(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
