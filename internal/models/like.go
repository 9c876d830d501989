package models

// Like represents a user's like on a lesson.
// The (lesson_id, user_id) pair is unique; toggling flips Active on the
// existing row instead of inserting or deleting.
type Like struct {
	ID       int  `json:"id"`
	LessonID int  `json:"lessonId"`
	UserID   int  `json:"userId"`
	Active   bool `json:"active"`
}
