package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ecoursehub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupCourseTestRepository creates a course repository with a mock database
func setupCourseTestRepository(t *testing.T) (*courseRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewCourseRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestNewCourseRepository(t *testing.T) {
	db := &sql.DB{}

	repo := NewCourseRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestCourseRepository_GetAll(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name          string
		filter        models.CourseFilter
		limit         int
		offset        int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedTotal int
		expectedLen   int
	}{
		{
			name:   "success - no filters",
			filter: models.CourseFilter{},
			limit:  10,
			offset: 0,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM courses c WHERE c\.active = TRUE`).
					WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(2))
				rows := sqlmock.NewRows([]string{"id", "name", "category_id", "name", "created_at"}).
					AddRow(2, "Go for Backend", 1, "Programming", now).
					AddRow(1, "Intro to SQL", 2, "Databases", now)
				mock.ExpectQuery(`SELECT c\.id, c\.name, c\.category_id, cat\.name, c\.created_at`).
					WithArgs(10, 0).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedTotal: 2,
			expectedLen:   2,
		},
		{
			name:   "success - search and category filter",
			filter: models.CourseFilter{Query: "go", CategoryID: 1},
			limit:  10,
			offset: 0,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM courses c WHERE c\.active = TRUE AND LOWER\(c\.name\) LIKE LOWER\(\?\) AND c\.category_id = \?`).
					WithArgs("%go%", 1).
					WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(1))
				rows := sqlmock.NewRows([]string{"id", "name", "category_id", "name", "created_at"}).
					AddRow(2, "Go for Backend", 1, "Programming", now)
				mock.ExpectQuery(`SELECT c\.id, c\.name, c\.category_id, cat\.name, c\.created_at`).
					WithArgs("%go%", 1, 10, 0).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedTotal: 1,
			expectedLen:   1,
		},
		{
			// LIKE wildcards in the search term must match literally
			name:   "search term with LIKE metacharacters is escaped",
			filter: models.CourseFilter{Query: "100%_go"},
			limit:  10,
			offset: 0,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM courses c WHERE c\.active = TRUE AND LOWER\(c\.name\) LIKE LOWER\(\?\)`).
					WithArgs(`%100\%\_go%`).
					WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(0))
				mock.ExpectQuery(`SELECT c\.id, c\.name, c\.category_id, cat\.name, c\.created_at`).
					WithArgs(`%100\%\_go%`, 10, 0).
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category_id", "name", "created_at"}))
			},
			expectedError: false,
			expectedTotal: 0,
			expectedLen:   0,
		},
		{
			name:   "success - page past the end",
			filter: models.CourseFilter{},
			limit:  10,
			offset: 100,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM courses c WHERE c\.active = TRUE`).
					WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(2))
				mock.ExpectQuery(`SELECT c\.id, c\.name, c\.category_id, cat\.name, c\.created_at`).
					WithArgs(10, 100).
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category_id", "name", "created_at"}))
			},
			expectedError: false,
			expectedTotal: 2,
			expectedLen:   0,
		},
		{
			name:   "count error",
			filter: models.CourseFilter{},
			limit:  10,
			offset: 0,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM courses c WHERE c\.active = TRUE`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name:   "query error",
			filter: models.CourseFilter{},
			limit:  10,
			offset: 0,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM courses c WHERE c\.active = TRUE`).
					WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(2))
				mock.ExpectQuery(`SELECT c\.id, c\.name, c\.category_id, cat\.name, c\.created_at`).
					WithArgs(10, 0).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			courses, total, err := repo.GetAll(context.Background(), tt.filter, tt.limit, tt.offset)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedTotal, total)
				assert.Len(t, courses, tt.expectedLen)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_GetByID(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name          string
		courseID      int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		notFound      bool
	}{
		{
			name:     "success",
			courseID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "name", "category_id", "name", "created_at"}).
					AddRow(1, "Intro to SQL", 2, "Databases", now)
				mock.ExpectQuery(`SELECT c\.id, c\.name, c\.category_id, cat\.name, c\.created_at`).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectedError: false,
		},
		{
			name:     "course not found",
			courseID: 999,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT c\.id, c\.name, c\.category_id, cat\.name, c\.created_at`).
					WithArgs(999).
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: true,
			notFound:      true,
		},
		{
			name:     "database error",
			courseID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT c\.id, c\.name, c\.category_id, cat\.name, c\.created_at`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			course, err := repo.GetByID(context.Background(), tt.courseID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, course)
				if tt.notFound {
					assert.ErrorIs(t, err, ErrNotFound)
				}
			} else {
				assert.NoError(t, err)
				require.NotNil(t, course)
				assert.Equal(t, tt.courseID, course.ID)
				assert.Equal(t, "Databases", course.CategoryName)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
