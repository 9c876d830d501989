package models

// Category represents a course category
type Category struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"-"`
}

// CategoryView represents a category in responses
type CategoryView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// NewCategoryView maps a category record to its response shape
func NewCategoryView(c *Category) CategoryView {
	return CategoryView{
		ID:   c.ID,
		Name: c.Name,
	}
}

// NewCategoryViews maps a list of category records to response shapes
func NewCategoryViews(categories []Category) []CategoryView {
	views := make([]CategoryView, 0, len(categories))
	for i := range categories {
		views = append(views, NewCategoryView(&categories[i]))
	}
	return views
}
