package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

type likeRepository struct {
	db *sql.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *sql.DB) *likeRepository {
	return &likeRepository{
		db: db,
	}
}

// Toggle atomically inserts an active like for (lessonID, userID) or flips
// the active flag of the existing row. The UNIQUE (lesson_id, user_id) key
// makes the statement safe under concurrent toggles: two first-time toggles
// serialize on the constraint instead of both inserting.
func (r *likeRepository) Toggle(ctx context.Context, lessonID, userID int) error {
	query := `
		INSERT INTO likes (lesson_id, user_id, active)
		VALUES (?, ?, TRUE)
		ON DUPLICATE KEY UPDATE active = NOT active
	`

	if _, err := r.db.ExecContext(ctx, query, lessonID, userID); err != nil {
		return fmt.Errorf("failed to toggle like: %w", err)
	}

	return nil
}

// IsActive reports whether the user currently has an active like on the
// lesson. A missing row counts as not liked.
func (r *likeRepository) IsActive(ctx context.Context, lessonID, userID int) (bool, error) {
	query := `
		SELECT active
		FROM likes
		WHERE lesson_id = ? AND user_id = ?
		LIMIT 1
	`

	var active bool
	err := r.db.QueryRowContext(ctx, query, lessonID, userID).Scan(&active)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get like state: %w", err)
	}

	return active, nil
}
