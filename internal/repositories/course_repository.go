package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ecoursehub/backend/internal/models"
)

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

// GetAll retrieves active courses with filtering and pagination.
// Returns the page of courses and the total number of matching rows.
func (r *courseRepository) GetAll(ctx context.Context, filter models.CourseFilter, limit, offset int) ([]models.Course, int, error) {
	whereClauses := []string{"c.active = TRUE"}
	args := []any{}

	if filter.Query != "" {
		whereClauses = append(whereClauses, "LOWER(c.name) LIKE LOWER(?)")
		args = append(args, containsPattern(filter.Query))
	}

	if filter.CategoryID != 0 {
		whereClauses = append(whereClauses, "c.category_id = ?")
		args = append(args, filter.CategoryID)
	}

	whereClause := "WHERE " + strings.Join(whereClauses, " AND ")

	// Total count for the pagination envelope
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM courses c %s`, whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT c.id, c.name, c.category_id, cat.name, c.created_at
		FROM courses c
		JOIN categories cat ON cat.id = c.category_id
		%s
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT ? OFFSET ?
	`, whereClause)

	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		course := models.Course{Active: true}
		err := rows.Scan(
			&course.ID,
			&course.Name,
			&course.CategoryID,
			&course.CategoryName,
			&course.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, total, nil
}

// GetByID retrieves an active course by ID. Inactive courses are reported
// as not found.
func (r *courseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	query := `
		SELECT c.id, c.name, c.category_id, cat.name, c.created_at
		FROM courses c
		JOIN categories cat ON cat.id = c.category_id
		WHERE c.id = ? AND c.active = TRUE
		LIMIT 1
	`

	course := models.Course{Active: true}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&course.ID,
		&course.Name,
		&course.CategoryID,
		&course.CategoryName,
		&course.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("course not found: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	return &course, nil
}
