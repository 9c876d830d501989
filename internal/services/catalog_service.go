package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ecoursehub/backend/internal/models"
	"github.com/ecoursehub/backend/internal/pagination"
)

// CategoryRepository defines methods for category data access
type CategoryRepository interface {
	// GetAllActive retrieves all active categories
	//
	// "ctx" is the context for the request.
	//
	// Returns a list of categories and an error if any.
	GetAllActive(ctx context.Context) ([]models.Category, error)
}

// CourseRepository defines methods for course data access
type CourseRepository interface {
	// GetAll retrieves active courses with filtering and pagination
	//
	// "ctx" is the context for the request.
	// "filter" holds the search query and category filter.
	// "limit" is the number of items per page.
	// "offset" is the number of items to skip.
	//
	// Returns a list of courses, the total count and an error if any.
	GetAll(ctx context.Context, filter models.CourseFilter, limit, offset int) ([]models.Course, int, error)
	// GetByID retrieves an active course by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	//
	// Returns the course and an error if any.
	GetByID(ctx context.Context, id int) (*models.Course, error)
}

// CourseLessonRepository defines methods for lesson data access scoped to a course
type CourseLessonRepository interface {
	// GetAll retrieves active lessons of a course with subject filtering
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "search" is the search query for the lesson subject.
	//
	// Returns a list of lessons and an error if any.
	GetAll(ctx context.Context, courseID int, search string) ([]models.Lesson, error)
}

type catalogService struct {
	categoryRepo CategoryRepository
	courseRepo   CourseRepository
	lessonRepo   CourseLessonRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	categoryRepo CategoryRepository,
	courseRepo CourseRepository,
	lessonRepo CourseLessonRepository,
) *catalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		courseRepo:   courseRepo,
		lessonRepo:   lessonRepo,
	}
}

// GetCategories retrieves all active categories
func (s *catalogService) GetCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepo.GetAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	return categories, nil
}

// GetCourses retrieves active courses with filtering and pagination
func (s *catalogService) GetCourses(ctx context.Context, filter models.CourseFilter, params pagination.Params) ([]models.Course, int, error) {
	filter.Query = strings.TrimSpace(filter.Query)

	courses, total, err := s.courseRepo.GetAll(ctx, filter, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get courses: %w", err)
	}

	return courses, total, nil
}

// GetLessons retrieves active lessons with optional course and subject
// filtering. The course reference is a plain filter here: 0 means all
// courses, and an unknown course simply yields an empty list.
func (s *catalogService) GetLessons(ctx context.Context, courseID int, search string) ([]models.Lesson, error) {
	lessons, err := s.lessonRepo.GetAll(ctx, courseID, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("failed to get lessons: %w", err)
	}

	return lessons, nil
}

// GetCourseLessons retrieves active lessons of a course with subject filtering
func (s *catalogService) GetCourseLessons(ctx context.Context, courseID int, search string) ([]models.Lesson, error) {
	// Confirm the course itself is visible before listing its lessons
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	lessons, err := s.lessonRepo.GetAll(ctx, courseID, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("failed to get lessons: %w", err)
	}

	return lessons, nil
}
