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
	"github.com/ecoursehub/backend/internal/pagination"
	"go.uber.org/zap"
)

// LessonService is the interface that wraps methods for lesson detail, comments and likes
type LessonService interface {
	// GetLesson retrieves a lesson with its tags and the caller's like state
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "userID" is the ID of the caller, 0 for anonymous.
	//
	// Returns the lesson, its tags, the like state (nil for anonymous) and an error if any.
	GetLesson(ctx context.Context, lessonID, userID int) (*models.Lesson, []string, *bool, error)
	// GetComments retrieves a lesson's comments with filtering and pagination
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "search" is the search query for the comment content.
	// "params" is the parsed page request.
	//
	// Returns a list of comments, the total count and an error if any.
	GetComments(ctx context.Context, lessonID int, search string, params pagination.Params) ([]models.Comment, int, error)
	// AddComment creates a comment on a lesson for a user
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "userID" is the ID of the author.
	// "content" is the comment text.
	//
	// Returns the created comment and an error if any.
	AddComment(ctx context.Context, lessonID, userID int, content string) (*models.Comment, error)
	// ToggleLike flips the caller's like on a lesson and returns the new state
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "userID" is the ID of the caller.
	//
	// Returns the lesson, its tags, the new like state and an error if any.
	ToggleLike(ctx context.Context, lessonID, userID int) (*models.Lesson, []string, *bool, error)
}

// LessonHandler handles HTTP requests for lesson detail, comments and likes
type LessonHandler struct {
	BaseHandler
	service LessonService
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(svc LessonService, logger *zap.Logger) *LessonHandler {
	return &LessonHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all lesson handler routes
// Note: This assumes the router is already scoped to /api/v1
func (h *LessonHandler) RegisterRoutes(r chi.Router, auth, optionalAuth func(http.Handler) http.Handler) {
	// Lesson detail is public, but its shape depends on who is asking,
	// so the optional middleware resolves the caller when a token is present.
	r.With(policy.Middleware("lesson.retrieve", auth), optionalAuth).Get("/lessons/{id}", h.GetLesson)
	r.With(policy.Middleware("lesson.comments", auth)).Get("/lessons/{id}/comments", h.GetComments)
	r.With(policy.Middleware("lesson.comment.create", auth)).Post("/lessons/{id}/comments", h.AddComment)
	r.With(policy.Middleware("lesson.like.toggle", auth)).Post("/lessons/{id}/like", h.ToggleLike)
}

// GetLesson handles GET /lessons/{id}
// @Summary Get lesson details
// @Description Get an active lesson with its tags. For authenticated callers the response also carries the caller's like state.
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} models.LessonDetailView "Lesson details"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{id} [get]
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || lessonID <= 0 {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson id")
		return
	}

	// Anonymous callers simply have no user in context
	userID, _ := authMiddleware.GetUserID(r.Context())

	lesson, tags, liked, err := h.service.GetLesson(r.Context(), lessonID, userID)
	if err != nil {
		h.Logger.Error("failed to get lesson", zap.Error(err))
		h.RespondError(w, statusFromError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, models.NewLessonDetailView(lesson, tags, liked))
}

// GetComments handles GET /lessons/{id}/comments
// @Summary Get lesson comments
// @Description Get a paginated list of active comments on a lesson, newest first
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Param q query string false "Search by comment content"
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Items per page (default: 5, max: 50)"
// @Success 200 {object} pagination.Page "Page of comments"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{id}/comments [get]
func (h *LessonHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	lessonID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || lessonID <= 0 {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson id")
		return
	}

	params := pagination.ParseParams(r, pagination.CommentPageSize)

	comments, total, err := h.service.GetComments(r.Context(), lessonID, r.URL.Query().Get("q"), params)
	if err != nil {
		h.Logger.Error("failed to get comments", zap.Error(err))
		h.RespondError(w, statusFromError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, pagination.NewPage(r, params, total, models.NewCommentViews(comments)))
}

// AddComment handles POST /lessons/{id}/comments
// @Summary Comment on a lesson
// @Description Create a comment on an active lesson for the authenticated user
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson ID"
// @Param request body models.CreateCommentRequest true "Comment content"
// @Success 201 {object} models.CommentView "Created comment"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{id}/comments [post]
func (h *LessonHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	lessonID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || lessonID <= 0 {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson id")
		return
	}

	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.service.AddComment(r.Context(), lessonID, userID, req.Content)
	if err != nil {
		h.Logger.Error("failed to add comment", zap.Error(err))
		h.RespondError(w, statusFromError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusCreated, models.NewCommentView(comment))
}

// ToggleLike handles POST /lessons/{id}/like
// @Summary Toggle lesson like
// @Description Like or unlike a lesson for the authenticated user and return the lesson with the fresh like state
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson ID"
// @Success 200 {object} models.LessonDetailView "Lesson with fresh like state"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{id}/like [post]
func (h *LessonHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	lessonID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || lessonID <= 0 {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson id")
		return
	}

	lesson, tags, liked, err := h.service.ToggleLike(r.Context(), lessonID, userID)
	if err != nil {
		h.Logger.Error("failed to toggle like", zap.Error(err))
		h.RespondError(w, statusFromError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, models.NewLessonDetailView(lesson, tags, liked))
}
