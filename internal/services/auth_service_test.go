package services

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ecoursehub/backend/internal/auth/service"
	"github.com/ecoursehub/backend/internal/models"
	"github.com/ecoursehub/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	user           *models.User
	emailExists    bool
	usernameExists bool
	createErr      error
	getErr         error
	createdUser    *models.User
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = 1
	m.createdUser = user
	return nil
}

func (m *mockUserRepository) GetByEmailOrUsername(ctx context.Context, login string) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.user, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.user, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.emailExists, nil
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return m.usernameExists, nil
}

// mockUserTokenRepository is a mock implementation of UserTokenRepository.
// Refresh touches it from two goroutines, so access is guarded by a mutex.
type mockUserTokenRepository struct {
	mu           sync.Mutex
	userToken    *models.UserToken
	getErr       error
	updateErr    error
	savedToken   string
	updatedToken string
	deleteCalled bool
}

func (m *mockUserTokenRepository) Create(ctx context.Context, userToken *models.UserToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.savedToken = userToken.Token
	return nil
}

func (m *mockUserTokenRepository) GetByToken(ctx context.Context, token string) (*models.UserToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.userToken, nil
}

func (m *mockUserTokenRepository) UpdateToken(ctx context.Context, oldToken, newToken string, userID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updatedToken = newToken
	return nil
}

func (m *mockUserTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCalled = true
	return nil
}

// mockAvatarStorage is a mock implementation of AvatarStorage
type mockAvatarStorage struct {
	name      string
	saveErr   error
	saveCalls int
}

func (m *mockAvatarStorage) Save(file io.Reader, originalFilename string) (string, error) {
	m.saveCalls++
	if m.saveErr != nil {
		return "", m.saveErr
	}
	return m.name, nil
}

func (m *mockAvatarStorage) Delete(name string) error {
	return nil
}

func newTestTokenGenerator() *service.TokenGenerator {
	return service.NewTokenGenerator("test-secret", time.Minute, time.Hour)
}

func newTestAuthService(userRepo *mockUserRepository, tokenRepo *mockUserTokenRepository, storage *mockAvatarStorage) *authService {
	return NewAuthService(userRepo, tokenRepo, newTestTokenGenerator(), storage, zap.NewNop(), "/media/avatars")
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		req           *models.RegisterRequest
		userRepo      *mockUserRepository
		expectedError error
	}{
		{
			name: "success",
			req: &models.RegisterRequest{
				Username:  " alice ",
				Email:     "Alice@Example.COM",
				Password:  "Str0ng!pass",
				FirstName: "Alice",
				LastName:  "Smith",
			},
			userRepo: &mockUserRepository{},
		},
		{
			name: "email already exists",
			req: &models.RegisterRequest{
				Username: "alice",
				Email:    "alice@example.com",
				Password: "Str0ng!pass",
			},
			userRepo:      &mockUserRepository{emailExists: true},
			expectedError: ErrValidation,
		},
		{
			name: "username already exists",
			req: &models.RegisterRequest{
				Username: "alice",
				Email:    "alice@example.com",
				Password: "Str0ng!pass",
			},
			userRepo:      &mockUserRepository{usernameExists: true},
			expectedError: ErrValidation,
		},
		{
			name: "invalid email format",
			req: &models.RegisterRequest{
				Username: "alice",
				Email:    "not-an-email",
				Password: "Str0ng!pass",
			},
			userRepo:      &mockUserRepository{},
			expectedError: ErrValidation,
		},
		{
			name: "weak password",
			req: &models.RegisterRequest{
				Username: "alice",
				Email:    "alice@example.com",
				Password: "password",
			},
			userRepo:      &mockUserRepository{},
			expectedError: ErrValidation,
		},
		{
			name: "empty username",
			req: &models.RegisterRequest{
				Username: "   ",
				Email:    "alice@example.com",
				Password: "Str0ng!pass",
			},
			userRepo:      &mockUserRepository{},
			expectedError: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(tt.userRepo, &mockUserTokenRepository{}, &mockAvatarStorage{})

			user, err := svc.Register(context.Background(), tt.req, nil, "")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, tt.userRepo.createdUser)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, user)
			assert.Equal(t, "alice", user.Username)
			assert.Equal(t, "alice@example.com", user.Email)
			assert.Empty(t, user.Avatar)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Str0ng!pass")))
		})
	}

	t.Run("with avatar", func(t *testing.T) {
		storage := &mockAvatarStorage{name: "abc123.png"}
		svc := newTestAuthService(&mockUserRepository{}, &mockUserTokenRepository{}, storage)

		user, err := svc.Register(context.Background(), &models.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "Str0ng!pass",
		}, strings.NewReader("png bytes"), "avatar.png")

		require.NoError(t, err)
		assert.Equal(t, 1, storage.saveCalls)
		assert.Equal(t, "/media/avatars/abc123.png", user.Avatar)
	})

	t.Run("avatar save error", func(t *testing.T) {
		storage := &mockAvatarStorage{saveErr: assert.AnError}
		userRepo := &mockUserRepository{}
		svc := newTestAuthService(userRepo, &mockUserTokenRepository{}, storage)

		_, err := svc.Register(context.Background(), &models.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "Str0ng!pass",
		}, strings.NewReader("png bytes"), "avatar.png")

		assert.Error(t, err)
		assert.Nil(t, userRepo.createdUser)
	})
}

func TestAuthService_Login(t *testing.T) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte("Str0ng!pass"), bcrypt.DefaultCost)
	require.NoError(t, err)

	tests := []struct {
		name          string
		req           *models.LoginRequest
		userRepo      *mockUserRepository
		expectedError error
	}{
		{
			name:     "success",
			req:      &models.LoginRequest{Login: "alice", Password: "Str0ng!pass"},
			userRepo: &mockUserRepository{user: &models.User{ID: 7, PasswordHash: string(passwordHash)}},
		},
		{
			name:          "wrong password",
			req:           &models.LoginRequest{Login: "alice", Password: "wrong"},
			userRepo:      &mockUserRepository{user: &models.User{ID: 7, PasswordHash: string(passwordHash)}},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:          "unknown user",
			req:           &models.LoginRequest{Login: "nobody", Password: "Str0ng!pass"},
			userRepo:      &mockUserRepository{getErr: repositories.ErrNotFound},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:          "empty login",
			req:           &models.LoginRequest{Login: "  ", Password: "Str0ng!pass"},
			userRepo:      &mockUserRepository{},
			expectedError: ErrValidation,
		},
		{
			name:          "empty password",
			req:           &models.LoginRequest{Login: "alice", Password: ""},
			userRepo:      &mockUserRepository{},
			expectedError: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenRepo := &mockUserTokenRepository{}
			svc := newTestAuthService(tt.userRepo, tokenRepo, &mockAvatarStorage{})

			accessToken, refreshToken, err := svc.Login(context.Background(), tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, accessToken)
			assert.NotEmpty(t, refreshToken)
			assert.Equal(t, refreshToken, tokenRepo.savedToken)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	tg := newTestTokenGenerator()
	_, validRefresh, err := tg.GenerateTokens(7)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		tokenRepo := &mockUserTokenRepository{userToken: &models.UserToken{ID: 1, UserID: 7, Token: validRefresh}}
		svc := newTestAuthService(&mockUserRepository{}, tokenRepo, &mockAvatarStorage{})

		accessToken, newRefresh, err := svc.Refresh(context.Background(), validRefresh)

		require.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, newRefresh, tokenRepo.updatedToken)
	})

	t.Run("token not stored", func(t *testing.T) {
		tokenRepo := &mockUserTokenRepository{getErr: repositories.ErrNotFound}
		svc := newTestAuthService(&mockUserRepository{}, tokenRepo, &mockAvatarStorage{})

		_, _, err := svc.Refresh(context.Background(), validRefresh)

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("garbage token", func(t *testing.T) {
		tokenRepo := &mockUserTokenRepository{getErr: repositories.ErrNotFound}
		svc := newTestAuthService(&mockUserRepository{}, tokenRepo, &mockAvatarStorage{})

		_, _, err := svc.Refresh(context.Background(), "not-a-jwt")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("access token is rejected", func(t *testing.T) {
		accessToken, _, err := tg.GenerateTokens(7)
		require.NoError(t, err)
		tokenRepo := &mockUserTokenRepository{userToken: &models.UserToken{ID: 1, UserID: 7, Token: accessToken}}
		svc := newTestAuthService(&mockUserRepository{}, tokenRepo, &mockAvatarStorage{})

		_, _, err = svc.Refresh(context.Background(), accessToken)

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("update error", func(t *testing.T) {
		tokenRepo := &mockUserTokenRepository{
			userToken: &models.UserToken{ID: 1, UserID: 7, Token: validRefresh},
			updateErr: assert.AnError,
		}
		svc := newTestAuthService(&mockUserRepository{}, tokenRepo, &mockAvatarStorage{})

		_, _, err := svc.Refresh(context.Background(), validRefresh)

		assert.ErrorIs(t, err, assert.AnError)
	})
}
