package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ecoursehub/backend/internal/models"
)

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB) *lessonRepository {
	return &lessonRepository{
		db: db,
	}
}

// GetByID retrieves an active lesson by ID
func (r *lessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	query := `
		SELECT id, subject, content, course_id, created_at
		FROM lessons
		WHERE id = ? AND active = TRUE
		LIMIT 1
	`

	lesson := models.Lesson{Active: true}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.Subject,
		&lesson.Content,
		&lesson.CourseID,
		&lesson.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lesson not found: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson by id: %w", err)
	}

	return &lesson, nil
}

// GetAll retrieves active lessons, optionally filtered by course ID and a
// case-insensitive subject substring
func (r *lessonRepository) GetAll(ctx context.Context, courseID int, search string) ([]models.Lesson, error) {
	whereClauses := []string{"active = TRUE"}
	args := []any{}

	if courseID != 0 {
		whereClauses = append(whereClauses, "course_id = ?")
		args = append(args, courseID)
	}

	if search != "" {
		whereClauses = append(whereClauses, "LOWER(subject) LIKE LOWER(?)")
		args = append(args, containsPattern(search))
	}

	query := fmt.Sprintf(`
		SELECT id, subject, content, course_id, created_at
		FROM lessons
		WHERE %s
		ORDER BY id
	`, strings.Join(whereClauses, " AND "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		lesson := models.Lesson{Active: true}
		err := rows.Scan(
			&lesson.ID,
			&lesson.Subject,
			&lesson.Content,
			&lesson.CourseID,
			&lesson.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}

// GetTags retrieves the tag names attached to a lesson
func (r *lessonRepository) GetTags(ctx context.Context, lessonID int) ([]string, error) {
	query := `
		SELECT t.name
		FROM tags t
		JOIN lesson_tags lt ON lt.tag_id = t.id
		WHERE lt.lesson_id = ?
		ORDER BY t.name
	`

	rows, err := r.db.QueryContext(ctx, query, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lesson tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tags, nil
}
