package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ecoursehub/backend/internal/models"
)

// OwnedCommentRepository defines methods for comment data access used by
// owner-scoped operations
type OwnedCommentRepository interface {
	// GetByID retrieves an active comment by ID with its author
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the comment.
	//
	// Returns the comment and an error if any.
	GetByID(ctx context.Context, id int) (*models.Comment, error)
	// UpdateContent replaces the content of an active comment
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the comment.
	// "content" is the new content.
	//
	// Returns an error if any.
	UpdateContent(ctx context.Context, id int, content string) error
	// Delete deactivates a comment
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the comment.
	//
	// Returns an error if any.
	Delete(ctx context.Context, id int) error
}

type commentService struct {
	commentRepo OwnedCommentRepository
}

// NewCommentService creates a new comment service
func NewCommentService(commentRepo OwnedCommentRepository) *commentService {
	return &commentService{commentRepo: commentRepo}
}

// UpdateComment replaces the content of a comment owned by the caller
func (s *commentService) UpdateComment(ctx context.Context, commentID, userID int, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	if comment.UserID != userID {
		return nil, fmt.Errorf("%w: comment belongs to another user", ErrForbidden)
	}

	if err := s.commentRepo.UpdateContent(ctx, commentID, content); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	comment.Content = content
	return comment, nil
}

// DeleteComment deactivates a comment owned by the caller
func (s *commentService) DeleteComment(ctx context.Context, commentID, userID int) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("failed to get comment: %w", err)
	}
	if comment.UserID != userID {
		return fmt.Errorf("%w: comment belongs to another user", ErrForbidden)
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}
