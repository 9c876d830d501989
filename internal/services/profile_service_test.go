package services

import (
	"context"
	"testing"

	"github.com/ecoursehub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// mockProfileUserRepository is a mock implementation of ProfileUserRepository
type mockProfileUserRepository struct {
	user              *models.User
	emailExists       bool
	usernameExists    bool
	getByIDErr        error
	updateErr         error
	updatePasswordErr error
	updatedFields     *models.User
	passwordHash      string
	updateCalled      bool
	passwordCalled    bool
	excludedUserID    int
}

func (m *mockProfileUserRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	if m.getByIDErr != nil {
		return nil, m.getByIDErr
	}
	return m.user, nil
}

func (m *mockProfileUserRepository) Update(ctx context.Context, userID int, user *models.User) error {
	m.updateCalled = true
	m.updatedFields = user
	return m.updateErr
}

func (m *mockProfileUserRepository) UpdatePasswordHash(ctx context.Context, userID int, passwordHash string) error {
	m.passwordCalled = true
	m.passwordHash = passwordHash
	return m.updatePasswordErr
}

func (m *mockProfileUserRepository) ExistsByEmailExcept(ctx context.Context, email string, userID int) (bool, error) {
	m.excludedUserID = userID
	return m.emailExists, nil
}

func (m *mockProfileUserRepository) ExistsByUsernameExcept(ctx context.Context, username string, userID int) (bool, error) {
	m.excludedUserID = userID
	return m.usernameExists, nil
}

func strPtr(s string) *string {
	return &s
}

func TestProfileService_GetUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &mockProfileUserRepository{user: &models.User{ID: 7, Username: "alice"}}
		svc := NewProfileService(repo)

		user, err := svc.GetUser(context.Background(), 7)

		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("invalid user id", func(t *testing.T) {
		svc := NewProfileService(&mockProfileUserRepository{})

		_, err := svc.GetUser(context.Background(), 0)

		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestProfileService_UpdateUser(t *testing.T) {
	tests := []struct {
		name           string
		req            *models.UpdateProfileRequest
		repo           *mockProfileUserRepository
		expectedError  error
		expectUpdate   bool
		expectPassword bool
	}{
		{
			name: "success - name fields only",
			req: &models.UpdateProfileRequest{
				FirstName: strPtr("Alice"),
				LastName:  strPtr("Smith"),
			},
			repo:         &mockProfileUserRepository{user: &models.User{ID: 7}},
			expectUpdate: true,
		},
		{
			name: "success - password only skips profile update",
			req: &models.UpdateProfileRequest{
				Password: strPtr("Str0ng!pass"),
			},
			repo:           &mockProfileUserRepository{user: &models.User{ID: 7}},
			expectPassword: true,
		},
		{
			name:          "no fields provided",
			req:           &models.UpdateProfileRequest{},
			repo:          &mockProfileUserRepository{user: &models.User{ID: 7}},
			expectedError: ErrValidation,
		},
		{
			name: "email already taken",
			req: &models.UpdateProfileRequest{
				Email: strPtr("taken@example.com"),
			},
			repo:          &mockProfileUserRepository{user: &models.User{ID: 7}, emailExists: true},
			expectedError: ErrValidation,
		},
		{
			name: "username already taken",
			req: &models.UpdateProfileRequest{
				Username: strPtr("taken"),
			},
			repo:          &mockProfileUserRepository{user: &models.User{ID: 7}, usernameExists: true},
			expectedError: ErrValidation,
		},
		{
			name: "malformed email",
			req: &models.UpdateProfileRequest{
				Email: strPtr("not-an-email"),
			},
			repo:          &mockProfileUserRepository{user: &models.User{ID: 7}},
			expectedError: ErrValidation,
		},
		{
			name: "weak password",
			req: &models.UpdateProfileRequest{
				Password: strPtr("short"),
			},
			repo:          &mockProfileUserRepository{user: &models.User{ID: 7}},
			expectedError: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewProfileService(tt.repo)

			user, err := svc.UpdateUser(context.Background(), 7, tt.req)

			assert.Equal(t, tt.expectUpdate, tt.repo.updateCalled)
			assert.Equal(t, tt.expectPassword, tt.repo.passwordCalled)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
			require.NotNil(t, user)
		})
	}

	t.Run("resubmitting current username and email succeeds", func(t *testing.T) {
		// Uniqueness checks exclude the caller's own row, so sending back
		// the values already on the profile is not a conflict.
		repo := &mockProfileUserRepository{user: &models.User{ID: 7, Username: "alice", Email: "alice@example.com"}}
		svc := NewProfileService(repo)

		_, err := svc.UpdateUser(context.Background(), 7, &models.UpdateProfileRequest{
			Username: strPtr("alice"),
			Email:    strPtr("alice@example.com"),
		})

		require.NoError(t, err)
		assert.Equal(t, 7, repo.excludedUserID)
		assert.True(t, repo.updateCalled)
	})

	t.Run("password is stored as a bcrypt hash", func(t *testing.T) {
		repo := &mockProfileUserRepository{user: &models.User{ID: 7}}
		svc := NewProfileService(repo)

		_, err := svc.UpdateUser(context.Background(), 7, &models.UpdateProfileRequest{
			Password: strPtr("Str0ng!pass"),
		})

		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.passwordHash), []byte("Str0ng!pass")))
	})

	t.Run("extra fields are simply not updatable", func(t *testing.T) {
		// The request model only carries the allowed fields, so an update can
		// never touch anything else; verify the repo receives only those.
		repo := &mockProfileUserRepository{user: &models.User{ID: 7}}
		svc := NewProfileService(repo)

		_, err := svc.UpdateUser(context.Background(), 7, &models.UpdateProfileRequest{
			Username: strPtr("newname"),
		})

		require.NoError(t, err)
		require.NotNil(t, repo.updatedFields)
		assert.Equal(t, "newname", repo.updatedFields.Username)
		assert.Empty(t, repo.updatedFields.Avatar)
		assert.Empty(t, repo.updatedFields.PasswordHash)
	})
}
