package models

import "time"

// Lesson represents a lesson in a course
type Lesson struct {
	ID        int       `json:"id"`
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	CourseID  int       `json:"courseId"`
	Active    bool      `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// LessonView represents a lesson in list responses (no content body)
type LessonView struct {
	ID       int    `json:"id"`
	Subject  string `json:"subject"`
	CourseID int    `json:"courseId"`
}

// LessonDetailView represents a full lesson with its tag set.
// Liked is only present when the caller is authenticated; it is derived
// from the caller's like state at request time, never stored.
type LessonDetailView struct {
	ID        int       `json:"id"`
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	CourseID  int       `json:"courseId"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	Liked     *bool     `json:"liked,omitempty"`
}

// NewLessonView maps a lesson record to its list shape
func NewLessonView(l *Lesson) LessonView {
	return LessonView{
		ID:       l.ID,
		Subject:  l.Subject,
		CourseID: l.CourseID,
	}
}

// NewLessonViews maps a list of lesson records to list shapes
func NewLessonViews(lessons []Lesson) []LessonView {
	views := make([]LessonView, 0, len(lessons))
	for i := range lessons {
		views = append(views, NewLessonView(&lessons[i]))
	}
	return views
}

// NewLessonDetailView maps a lesson record and its tags to the detail shape.
// Pass a non-nil liked pointer for authenticated callers only.
func NewLessonDetailView(l *Lesson, tags []string, liked *bool) LessonDetailView {
	if tags == nil {
		tags = []string{}
	}
	return LessonDetailView{
		ID:        l.ID,
		Subject:   l.Subject,
		Content:   l.Content,
		CourseID:  l.CourseID,
		Tags:      tags,
		CreatedAt: l.CreatedAt,
		Liked:     liked,
	}
}
