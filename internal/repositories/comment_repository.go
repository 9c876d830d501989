package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ecoursehub/backend/internal/models"
)

type commentRepository struct {
	db *sql.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *sql.DB) *commentRepository {
	return &commentRepository{
		db: db,
	}
}

// GetByLessonID retrieves active comments of a lesson newest-first with
// optional content search and pagination. Returns the page of comments and
// the total number of matching rows.
func (r *commentRepository) GetByLessonID(ctx context.Context, lessonID int, search string, limit, offset int) ([]models.Comment, int, error) {
	whereClauses := []string{"c.active = TRUE", "c.lesson_id = ?"}
	args := []any{lessonID}

	if search != "" {
		whereClauses = append(whereClauses, "LOWER(c.content) LIKE LOWER(?)")
		args = append(args, containsPattern(search))
	}

	whereClause := "WHERE " + strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM comments c %s`, whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	// Newest-first ordering with id tiebreak keeps page boundaries stable
	query := fmt.Sprintf(`
		SELECT c.id, c.content, c.lesson_id, c.user_id, c.created_at, u.username, u.avatar
		FROM comments c
		JOIN users u ON u.id = c.user_id
		%s
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT ? OFFSET ?
	`, whereClause)

	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		comment := models.Comment{Active: true}
		err := rows.Scan(
			&comment.ID,
			&comment.Content,
			&comment.LessonID,
			&comment.UserID,
			&comment.CreatedAt,
			&comment.AuthorUsername,
			&comment.AuthorAvatar,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return comments, total, nil
}

// GetByID retrieves an active comment by ID with author display info
func (r *commentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	query := `
		SELECT c.id, c.content, c.lesson_id, c.user_id, c.created_at, u.username, u.avatar
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = ? AND c.active = TRUE
		LIMIT 1
	`

	comment := models.Comment{Active: true}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID,
		&comment.Content,
		&comment.LessonID,
		&comment.UserID,
		&comment.CreatedAt,
		&comment.AuthorUsername,
		&comment.AuthorAvatar,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("comment not found: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment by id: %w", err)
	}

	return &comment, nil
}

// Create inserts a new comment bound to a lesson and user
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (content, lesson_id, user_id)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, comment.Content, comment.LessonID, comment.UserID)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	comment.ID = int(id)
	return nil
}

// UpdateContent updates the content of a comment
func (r *commentRepository) UpdateContent(ctx context.Context, id int, content string) error {
	query := `
		UPDATE comments
		SET content = ?
		WHERE id = ? AND active = TRUE
	`

	result, err := r.db.ExecContext(ctx, query, content, id)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("comment not found: %w", ErrNotFound)
	}

	return nil
}

// Delete soft-deletes a comment by clearing its active flag
func (r *commentRepository) Delete(ctx context.Context, id int) error {
	query := `
		UPDATE comments
		SET active = FALSE
		WHERE id = ? AND active = TRUE
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("comment not found: %w", ErrNotFound)
	}

	return nil
}
