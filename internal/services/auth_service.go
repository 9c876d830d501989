package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ecoursehub/backend/internal/auth/service"
	"github.com/ecoursehub/backend/internal/models"
	"github.com/ecoursehub/backend/internal/repositories"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserSharedRepository is the interface that wraps uniqueness checks on the User table
type UserSharedRepository interface {
	// Method ExistsByEmail checks if a user with such email exists.
	//
	// "email" parameter is used to check if a user with such email exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Method ExistsByUsername checks if a user with such username exists.
	//
	// "username" parameter is used to check if a user with such username exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	UserSharedRepository
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user.
	//
	// If some error occurs during user creation, the error will be returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByEmailOrUsername retrieves a user by email or username.
	//
	// "login" parameter is used to retrieve a user by email or username.
	//
	// If user with such email or username does not exist, the error will be returned together with "nil" value.
	GetByEmailOrUsername(ctx context.Context, login string) (*models.User, error)
	// Method GetByID retrieves a user by ID.
	//
	// "userID" parameter is used to retrieve a user by ID.
	//
	// If user with such ID does not exist, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
}

// UserTokenRepository is the interface that wraps methods for UserToken table data access
type UserTokenRepository interface {
	// Method Create inserts a new user token into the database.
	//
	// "userToken" parameter is used to create a new user token.
	//
	// If some error occurs during user token creation, the error will be returned.
	Create(ctx context.Context, userToken *models.UserToken) error
	// Method GetByToken retrieves a user token by token string.
	//
	// "token" parameter is used to retrieve a user token by token string.
	//
	// If user token with such token does not exist, the error will be returned together with "nil" value.
	GetByToken(ctx context.Context, token string) (*models.UserToken, error)
	// Method UpdateToken updates a user token by old token string and new token string.
	//
	// "oldToken" parameter is used to update a user token by old token string.
	// "newToken" parameter is used to update a user token by new token string.
	// "userID" parameter is used to update a user token by user ID.
	//
	// If some error occurs during user token update, the error will be returned.
	UpdateToken(ctx context.Context, oldToken, newToken string, userID int) error
	// Method DeleteByToken deletes a user token by token string.
	//
	// "token" parameter is used to delete a user token by token string.
	//
	// If some error occurs during user token deletion, the error will be returned.
	DeleteByToken(ctx context.Context, token string) error
}

// AvatarStorage is the interface that wraps avatar file persistence
type AvatarStorage interface {
	// Save stores an avatar file and returns its generated file name.
	Save(file io.Reader, originalFilename string) (string, error)
	// Delete removes a stored avatar file by name.
	Delete(name string) error
}

// authService implements registration, login and token refresh
type authService struct {
	userRepo       UserRepository
	userTokenRepo  UserTokenRepository
	tokenGenerator *service.TokenGenerator
	avatarStorage  AvatarStorage
	logger         *zap.Logger
	avatarBaseURL  string
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo UserRepository,
	userTokenRepo UserTokenRepository,
	tokenGenerator *service.TokenGenerator,
	avatarStorage AvatarStorage,
	logger *zap.Logger,
	avatarBaseURL string,
) *authService {
	return &authService{
		userRepo:       userRepo,
		userTokenRepo:  userTokenRepo,
		tokenGenerator: tokenGenerator,
		avatarStorage:  avatarStorage,
		logger:         logger,
		avatarBaseURL:  avatarBaseURL,
	}
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// passwordRegex validates password: at least 8 chars, uppercase, lowercase, number, special: !_?^&+-=|
var passwordRegex = []*regexp.Regexp{
	regexp.MustCompile(`.{8,}`),
	regexp.MustCompile(`[a-z]`),
	regexp.MustCompile(`[A-Z]`),
	regexp.MustCompile(`[0-9]`),
	regexp.MustCompile(`[!_?^&+\-=|]`),
}

// Register creates a new user account and returns its profile
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest, avatarFile io.Reader, avatarFilename string) (*models.User, error) {
	// Check user credentials return normalized email and username
	normalizedEmail, normalizedUsername, err := checkRegisterCredentials(ctx, s.userRepo, req.Email, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	// Store avatar if provided (before creating user, so a failed upload does not leave a user without one)
	var avatarURL string
	if avatarFile != nil {
		name, err := s.avatarStorage.Save(avatarFile, avatarFilename)
		if err != nil {
			return nil, fmt.Errorf("failed to store avatar: %w", err)
		}
		avatarURL = s.avatarBaseURL + "/" + name
	}

	// Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     normalizedUsername,
		Email:        normalizedEmail,
		PasswordHash: string(passwordHash),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Avatar:       avatarURL,
	}

	if err = s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and returns access and refresh tokens
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, string, error) {
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" {
		return "", "", fmt.Errorf("%w: login cannot be empty", ErrValidation)
	}

	if req.Password == "" {
		return "", "", fmt.Errorf("%w: password cannot be empty", ErrValidation)
	}

	// Get user by email or username
	user, err := s.userRepo.GetByEmailOrUsername(ctx, req.Login)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}

	// Verify password
	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	// Generate and save access and refresh tokens
	return generateAndSaveTokens(ctx, s.tokenGenerator, s.userTokenRepo, user.ID)
}

// Refresh refreshes a user's access token
//
// The database lookup and the signature check are independent, so they run
// in parallel.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	errorChan := make(chan error, 2)
	userTokenChan := make(chan *models.UserToken, 1) // Buffered to prevent goroutine leak

	// Check if user token exists in database and return it
	go func() {
		userToken, err := s.userTokenRepo.GetByToken(ctx, refreshToken)
		if err != nil {
			errorChan <- fmt.Errorf("%w: unknown refresh token", ErrInvalidCredentials)
			userTokenChan <- nil
			return
		}
		userTokenChan <- userToken
		errorChan <- nil // Signal success
	}()

	// Validate refresh token
	go func() {
		if err := s.tokenGenerator.ValidateRefreshToken(refreshToken); err != nil {
			errorChan <- fmt.Errorf("%w: invalid or expired refresh token", ErrInvalidCredentials)
			// Drop the stale token if it is still stored
			if err := s.userTokenRepo.DeleteByToken(ctx, refreshToken); err != nil {
				s.logger.Warn("failed to delete stale refresh token", zap.Error(err))
			}
			return
		}
		errorChan <- nil // Signal success
	}()

	// Wait for both operations to complete
	for i := 0; i < 2; i++ {
		err := <-errorChan
		if err != nil {
			return "", "", err
		}
	}
	userToken := <-userTokenChan
	if userToken == nil {
		return "", "", fmt.Errorf("failed to refresh token: failed to get user token")
	}

	// Generate new tokens using userToken.UserID to ensure consistency with the token in database
	accessToken, newRefreshToken, err := s.tokenGenerator.GenerateTokens(userToken.UserID)
	if err != nil {
		return "", "", err
	}

	// Update refresh token in database (replaces old token with new one)
	if err := s.userTokenRepo.UpdateToken(ctx, refreshToken, newRefreshToken, userToken.UserID); err != nil {
		return "", "", err
	}

	return accessToken, newRefreshToken, nil
}

// Method that generates and saves access and refresh tokens
func generateAndSaveTokens(ctx context.Context, tokenGenerator *service.TokenGenerator,
	userTokenRepo UserTokenRepository, userID int) (string, string, error) {
	// Generate tokens
	accessToken, refreshToken, err := tokenGenerator.GenerateTokens(userID)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}

	// Save refresh token
	userToken := &models.UserToken{
		UserID: userID,
		Token:  refreshToken,
	}
	if err := userTokenRepo.Create(ctx, userToken); err != nil {
		return "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// Method that combines all checks for register credentials
//
// The checks do not depend on each other, so they run in parallel.
func checkRegisterCredentials(ctx context.Context, userRepo UserSharedRepository, email, username, password string) (string, string, error) {
	validationErrors := make(chan error, 3)
	// Normalize email and username
	normalizedEmail := strings.TrimSpace(strings.ToLower(email))
	normalizedUsername := strings.TrimSpace(username)

	// Validate password
	go func() {
		for _, regex := range passwordRegex {
			if !regex.MatchString(password) {
				validationErrors <- fmt.Errorf("%w: password must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, one number, and one special character (!_?^&+-=|)", ErrValidation)
				return
			}
		}
		validationErrors <- nil
	}()

	// Validate email and check its uniqueness
	go func() {
		if !emailRegex.MatchString(normalizedEmail) {
			validationErrors <- fmt.Errorf("%w: invalid email format", ErrValidation)
			return
		}
		emailExists, err := userRepo.ExistsByEmail(ctx, normalizedEmail)
		if err != nil {
			validationErrors <- fmt.Errorf("failed to check email: %w", err)
			return
		}
		if emailExists {
			validationErrors <- fmt.Errorf("%w: email already exists", ErrValidation)
			return
		}
		validationErrors <- nil
	}()

	// Validate username and check its uniqueness
	go func() {
		if normalizedUsername == "" {
			validationErrors <- fmt.Errorf("%w: username cannot be empty", ErrValidation)
			return
		}
		usernameExists, err := userRepo.ExistsByUsername(ctx, normalizedUsername)
		if err != nil {
			validationErrors <- fmt.Errorf("failed to check username: %w", err)
			return
		}
		if usernameExists {
			validationErrors <- fmt.Errorf("%w: username already exists", ErrValidation)
			return
		}
		validationErrors <- nil
	}()

	for i := 0; i < 3; i++ {
		err := <-validationErrors
		if err != nil {
			return "", "", err
		}
	}

	return normalizedEmail, normalizedUsername, nil
}
