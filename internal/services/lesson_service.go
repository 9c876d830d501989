package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ecoursehub/backend/internal/models"
	"github.com/ecoursehub/backend/internal/pagination"
)

// LessonRepository defines methods for lesson data access
type LessonRepository interface {
	// GetByID retrieves an active lesson by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns the lesson and an error if any.
	GetByID(ctx context.Context, id int) (*models.Lesson, error)
	// GetTags retrieves the tag names attached to a lesson
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	//
	// Returns a list of tag names and an error if any.
	GetTags(ctx context.Context, lessonID int) ([]string, error)
}

// LikeRepository defines methods for like data access
type LikeRepository interface {
	// Toggle flips the like state of a lesson for a user
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "userID" is the ID of the user.
	//
	// Returns an error if any.
	Toggle(ctx context.Context, lessonID, userID int) error
	// IsActive reports whether a user currently likes a lesson
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "userID" is the ID of the user.
	//
	// Returns the like state and an error if any.
	IsActive(ctx context.Context, lessonID, userID int) (bool, error)
}

// CommentRepository defines methods for comment data access
type CommentRepository interface {
	// GetByLessonID retrieves active comments of a lesson, newest first
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "search" is the search query for the comment content.
	// "limit" is the number of items per page.
	// "offset" is the number of items to skip.
	//
	// Returns a list of comments, the total count and an error if any.
	GetByLessonID(ctx context.Context, lessonID int, search string, limit, offset int) ([]models.Comment, int, error)
	// GetByID retrieves an active comment by ID with its author
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the comment.
	//
	// Returns the comment and an error if any.
	GetByID(ctx context.Context, id int) (*models.Comment, error)
	// Create creates a new comment and fills its generated ID
	//
	// "ctx" is the context for the request.
	// "comment" is the comment to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, comment *models.Comment) error
}

type lessonService struct {
	lessonRepo  LessonRepository
	likeRepo    LikeRepository
	commentRepo CommentRepository
}

// NewLessonService creates a new lesson service
func NewLessonService(
	lessonRepo LessonRepository,
	likeRepo LikeRepository,
	commentRepo CommentRepository,
) *lessonService {
	return &lessonService{
		lessonRepo:  lessonRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
	}
}

// GetLesson retrieves a lesson with its tags and, for an authenticated
// caller, the caller's like state. userID 0 means anonymous.
func (s *lessonService) GetLesson(ctx context.Context, lessonID, userID int) (*models.Lesson, []string, *bool, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	tags, err := s.lessonRepo.GetTags(ctx, lessonID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get lesson tags: %w", err)
	}

	var liked *bool
	if userID != 0 {
		active, err := s.likeRepo.IsActive(ctx, lessonID, userID)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to get like state: %w", err)
		}
		liked = &active
	}

	return lesson, tags, liked, nil
}

// GetComments retrieves a lesson's comments with filtering and pagination
func (s *lessonService) GetComments(ctx context.Context, lessonID int, search string, params pagination.Params) ([]models.Comment, int, error) {
	if _, err := s.lessonRepo.GetByID(ctx, lessonID); err != nil {
		return nil, 0, fmt.Errorf("failed to get lesson: %w", err)
	}

	comments, total, err := s.commentRepo.GetByLessonID(ctx, lessonID, strings.TrimSpace(search), params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get comments: %w", err)
	}

	return comments, total, nil
}

// AddComment creates a comment on a lesson for a user
func (s *lessonService) AddComment(ctx context.Context, lessonID, userID int, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	if _, err := s.lessonRepo.GetByID(ctx, lessonID); err != nil {
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	comment := &models.Comment{
		Content:  content,
		LessonID: lessonID,
		UserID:   userID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	// Re-read to pick up the stored timestamp and author fields
	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get created comment: %w", err)
	}

	return created, nil
}

// ToggleLike flips the caller's like on a lesson and returns the new state
func (s *lessonService) ToggleLike(ctx context.Context, lessonID, userID int) (*models.Lesson, []string, *bool, error) {
	if _, err := s.lessonRepo.GetByID(ctx, lessonID); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	if err := s.likeRepo.Toggle(ctx, lessonID, userID); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to toggle like: %w", err)
	}

	return s.GetLesson(ctx, lessonID, userID)
}
