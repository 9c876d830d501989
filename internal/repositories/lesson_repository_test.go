package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupLessonTestRepository creates a lesson repository with a mock database
func setupLessonTestRepository(t *testing.T) (*lessonRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewLessonRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestLessonRepository_GetByID(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name          string
		lessonID      int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		notFound      bool
	}{
		{
			name:     "success",
			lessonID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "subject", "content", "course_id", "created_at"}).
					AddRow(1, "Joins", "INNER and OUTER joins explained", 2, now)
				mock.ExpectQuery(`SELECT id, subject, content, course_id, created_at\s+FROM lessons`).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectedError: false,
		},
		{
			name:     "inactive lesson reported as not found",
			lessonID: 5,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, subject, content, course_id, created_at\s+FROM lessons`).
					WithArgs(5).
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: true,
			notFound:      true,
		},
		{
			name:     "database error",
			lessonID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, subject, content, course_id, created_at\s+FROM lessons`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupLessonTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			lesson, err := repo.GetByID(context.Background(), tt.lessonID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, lesson)
				if tt.notFound {
					assert.ErrorIs(t, err, ErrNotFound)
				}
			} else {
				assert.NoError(t, err)
				require.NotNil(t, lesson)
				assert.Equal(t, tt.lessonID, lesson.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonRepository_GetAll(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name          string
		courseID      int
		search        string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedLen   int
	}{
		{
			name:     "success - all lessons of a course",
			courseID: 2,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "subject", "content", "course_id", "created_at"}).
					AddRow(1, "Joins", "body", 2, now).
					AddRow(2, "Indexes", "body", 2, now)
				mock.ExpectQuery(`SELECT id, subject, content, course_id, created_at\s+FROM lessons`).
					WithArgs(2).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedLen:   2,
		},
		{
			name:     "success - subject search",
			courseID: 2,
			search:   "join",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "subject", "content", "course_id", "created_at"}).
					AddRow(1, "Joins", "body", 2, now)
				mock.ExpectQuery(`SELECT id, subject, content, course_id, created_at\s+FROM lessons`).
					WithArgs(2, "%join%").
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedLen:   1,
		},
		{
			name:     "database error",
			courseID: 2,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, subject, content, course_id, created_at\s+FROM lessons`).
					WithArgs(2).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupLessonTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			lessons, err := repo.GetAll(context.Background(), tt.courseID, tt.search)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, lessons, tt.expectedLen)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonRepository_GetTags(t *testing.T) {
	tests := []struct {
		name          string
		lessonID      int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedTags  []string
	}{
		{
			name:     "success",
			lessonID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"name"}).
					AddRow("beginner").
					AddRow("sql")
				mock.ExpectQuery(`SELECT t\.name\s+FROM tags t\s+JOIN lesson_tags lt ON lt\.tag_id = t\.id`).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedTags:  []string{"beginner", "sql"},
		},
		{
			name:     "success - lesson without tags",
			lessonID: 2,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT t\.name\s+FROM tags t\s+JOIN lesson_tags lt ON lt\.tag_id = t\.id`).
					WithArgs(2).
					WillReturnRows(sqlmock.NewRows([]string{"name"}))
			},
			expectedError: false,
			expectedTags:  nil,
		},
		{
			name:     "database error",
			lessonID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT t\.name\s+FROM tags t`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupLessonTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			tags, err := repo.GetTags(context.Background(), tt.lessonID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedTags, tags)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
