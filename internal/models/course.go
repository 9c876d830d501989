package models

import "time"

// Course represents a course in the catalog
type Course struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	CategoryID   int       `json:"categoryId"`
	CategoryName string    `json:"-"` // joined from categories, not a stored column
	Active       bool      `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CourseView represents a course in list responses
type CourseView struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	CategoryID int       `json:"categoryId"`
	Category   string    `json:"category"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewCourseView maps a course record to its response shape
func NewCourseView(c *Course) CourseView {
	return CourseView{
		ID:         c.ID,
		Name:       c.Name,
		CategoryID: c.CategoryID,
		Category:   c.CategoryName,
		CreatedAt:  c.CreatedAt,
	}
}

// NewCourseViews maps a list of course records to response shapes
func NewCourseViews(courses []Course) []CourseView {
	views := make([]CourseView, 0, len(courses))
	for i := range courses {
		views = append(views, NewCourseView(&courses[i]))
	}
	return views
}

// CourseFilter holds the optional filters for course listing.
// Filters combine with AND semantics.
type CourseFilter struct {
	// Query is a case-insensitive substring match on the course name
	Query string
	// CategoryID is an exact match on the category reference, 0 means any
	CategoryID int
}
