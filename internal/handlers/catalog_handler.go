package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ecoursehub/backend/internal/auth/policy"
	"github.com/ecoursehub/backend/internal/models"
	"github.com/ecoursehub/backend/internal/pagination"
	"go.uber.org/zap"
)

// CatalogService is the interface that wraps methods for catalog browsing
type CatalogService interface {
	// GetCategories retrieves all active categories
	//
	// "ctx" is the context for the request.
	//
	// Returns a list of categories and an error if any.
	GetCategories(ctx context.Context) ([]models.Category, error)
	// GetCourses retrieves active courses with filtering and pagination
	//
	// "ctx" is the context for the request.
	// "filter" holds the search query and category filter.
	// "params" is the parsed page request.
	//
	// Returns a list of courses, the total count and an error if any.
	GetCourses(ctx context.Context, filter models.CourseFilter, params pagination.Params) ([]models.Course, int, error)
	// GetLessons retrieves active lessons with optional course and subject filtering
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course to narrow to, 0 for all courses.
	// "search" is the search query for the lesson subject.
	//
	// Returns a list of lessons and an error if any.
	GetLessons(ctx context.Context, courseID int, search string) ([]models.Lesson, error)
	// GetCourseLessons retrieves active lessons of a course with subject filtering
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "search" is the search query for the lesson subject.
	//
	// Returns a list of lessons and an error if any.
	GetCourseLessons(ctx context.Context, courseID int, search string) ([]models.Lesson, error)
}

// CatalogHandler handles HTTP requests for browsing categories, courses and lessons
type CatalogHandler struct {
	BaseHandler
	service CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(svc CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all catalog handler routes
// Note: This assumes the router is already scoped to /api/v1
func (h *CatalogHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.With(policy.Middleware("category.list", authMiddleware)).Get("/categories", h.GetCategories)
	r.With(policy.Middleware("course.list", authMiddleware)).Get("/courses", h.GetCourses)
	r.With(policy.Middleware("course.lessons", authMiddleware)).Get("/courses/{id}/lessons", h.GetCourseLessons)
	r.With(policy.Middleware("lesson.list", authMiddleware)).Get("/lessons", h.GetLessons)
}

// GetCategories handles GET /categories
// @Summary Get list of categories
// @Description Get all active course categories
// @Tags catalog
// @Accept json
// @Produce json
// @Success 200 {array} models.CategoryView "List of categories"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /categories [get]
func (h *CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetCategories(r.Context())
	if err != nil {
		h.Logger.Error("failed to get categories", zap.Error(err))
		h.RespondError(w, statusFromError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, models.NewCategoryViews(categories))
}

// GetCourses handles GET /courses
// @Summary Get list of courses
// @Description Get a paginated list of active courses with optional name search and category filter
// @Tags catalog
// @Accept json
// @Produce json
// @Param q query string false "Search by course name"
// @Param category_id query int false "Filter by category ID"
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Items per page (default: 10, max: 50)"
// @Success 200 {object} pagination.Page "Page of courses"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses [get]
func (h *CatalogHandler) GetCourses(w http.ResponseWriter, r *http.Request) {
	filter := models.CourseFilter{Query: r.URL.Query().Get("q")}
	if categoryStr := r.URL.Query().Get("category_id"); categoryStr != "" {
		categoryID, err := strconv.Atoi(categoryStr)
		if err != nil || categoryID <= 0 {
			h.RespondError(w, http.StatusBadRequest, "invalid category_id")
			return
		}
		filter.CategoryID = categoryID
	}

	params := pagination.ParseParams(r, pagination.CoursePageSize)

	courses, total, err := h.service.GetCourses(r.Context(), filter, params)
	if err != nil {
		h.Logger.Error("failed to get courses", zap.Error(err))
		h.RespondError(w, statusFromError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, pagination.NewPage(r, params, total, models.NewCourseViews(courses)))
}

// GetCourseLessons handles GET /courses/{id}/lessons
// @Summary Get lessons of a course
// @Description Get active lessons of an active course with optional subject search
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param q query string false "Search by lesson subject"
// @Success 200 {array} models.LessonView "List of lessons"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id}/lessons [get]
func (h *CatalogHandler) GetCourseLessons(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || courseID <= 0 {
		h.RespondError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	lessons, err := h.service.GetCourseLessons(r.Context(), courseID, r.URL.Query().Get("q"))
	if err != nil {
		h.Logger.Error("failed to get course lessons", zap.Error(err))
		h.RespondError(w, statusFromError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, models.NewLessonViews(lessons))
}

// GetLessons handles GET /lessons
// @Summary Get lessons
// @Description Get active lessons with optional course filter and subject search. An unknown course yields an empty list.
// @Tags catalog
// @Accept json
// @Produce json
// @Param course query int false "Filter by course ID"
// @Param q query string false "Search by lesson subject"
// @Success 200 {array} models.LessonView "List of lessons"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons [get]
func (h *CatalogHandler) GetLessons(w http.ResponseWriter, r *http.Request) {
	// The course parameter is a filter, not a lookup: absent means all lessons
	courseID := 0
	if courseStr := r.URL.Query().Get("course"); courseStr != "" {
		id, err := strconv.Atoi(courseStr)
		if err != nil || id <= 0 {
			h.RespondError(w, http.StatusBadRequest, "invalid course")
			return
		}
		courseID = id
	}

	lessons, err := h.service.GetLessons(r.Context(), courseID, r.URL.Query().Get("q"))
	if err != nil {
		h.Logger.Error("failed to get lessons", zap.Error(err))
		h.RespondError(w, statusFromError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, models.NewLessonViews(lessons))
}
