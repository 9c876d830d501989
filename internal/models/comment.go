package models

import "time"

// Comment represents a user comment on a lesson
type Comment struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	LessonID  int       `json:"lessonId"`
	UserID    int       `json:"userId"`
	Active    bool      `json:"-"`
	CreatedAt time.Time `json:"createdAt"`

	// Author display info, joined from users
	AuthorUsername string `json:"-"`
	AuthorAvatar   string `json:"-"`
}

// CommentAuthorView represents the author display info embedded in a comment
type CommentAuthorView struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// CommentView represents a comment in responses
type CommentView struct {
	ID        int               `json:"id"`
	Content   string            `json:"content"`
	LessonID  int               `json:"lessonId"`
	CreatedAt time.Time         `json:"createdAt"`
	User      CommentAuthorView `json:"user"`
}

// NewCommentView maps a comment record to its response shape
func NewCommentView(c *Comment) CommentView {
	return CommentView{
		ID:        c.ID,
		Content:   c.Content,
		LessonID:  c.LessonID,
		CreatedAt: c.CreatedAt,
		User: CommentAuthorView{
			ID:       c.UserID,
			Username: c.AuthorUsername,
			Avatar:   c.AuthorAvatar,
		},
	}
}

// NewCommentViews maps a list of comment records to response shapes
func NewCommentViews(comments []Comment) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, NewCommentView(&comments[i]))
	}
	return views
}

// CreateCommentRequest represents a request to add a comment to a lesson
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// UpdateCommentRequest represents a request to edit an existing comment
type UpdateCommentRequest struct {
	Content string `json:"content"`
}
