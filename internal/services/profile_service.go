package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ecoursehub/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// ProfileUserRepository is the interface that wraps methods for User table data access needed by profile service
type ProfileUserRepository interface {
	// GetByID retrieves a user by ID
	//
	// "userID" parameter is used to retrieve a user by ID.
	//
	// If user with such ID does not exist, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Update updates the non-empty fields of a user
	//
	// "userID" parameter is used to identify the user.
	// "user" parameter carries the fields to update.
	//
	// If some error occurs during user update, the error will be returned.
	Update(ctx context.Context, userID int, user *models.User) error
	// UpdatePasswordHash updates the password hash for a user
	//
	// "userID" parameter is used to identify the user.
	// "passwordHash" parameter is used to update the password hash.
	//
	// If some error occurs during password hash update, the error will be returned.
	UpdatePasswordHash(ctx context.Context, userID int, passwordHash string) error
	// ExistsByEmailExcept checks if a user other than the given one has the email
	//
	// "email" parameter is used to check if another user has the given email.
	// "userID" parameter identifies the user to leave out of the check.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByEmailExcept(ctx context.Context, email string, userID int) (bool, error)
	// ExistsByUsernameExcept checks if a user other than the given one has the username
	//
	// "username" parameter is used to check if another user has the given username.
	// "userID" parameter identifies the user to leave out of the check.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByUsernameExcept(ctx context.Context, username string, userID int) (bool, error)
}

// profileService implements reading and updating the caller's own profile
type profileService struct {
	userRepo ProfileUserRepository
}

// NewProfileService creates a new profile service
func NewProfileService(userRepo ProfileUserRepository) *profileService {
	return &profileService{userRepo: userRepo}
}

// GetUser retrieves user profile information
func (s *profileService) GetUser(ctx context.Context, userID int) (*models.User, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateUser partially updates the caller's profile. Only the fields present
// in the request are touched; anything outside the allowed set never reaches
// the database because the request model simply has no place for it.
func (s *profileService) UpdateUser(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.User, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}
	if req.Username == nil && req.Email == nil && req.Password == nil && req.FirstName == nil && req.LastName == nil {
		return nil, fmt.Errorf("%w: at least one field must be provided", ErrValidation)
	}

	userData := &models.User{}

	if req.Username != nil {
		normalizedUsername := strings.TrimSpace(*req.Username)
		if normalizedUsername == "" {
			return nil, fmt.Errorf("%w: username cannot be empty", ErrValidation)
		}
		// Exclude the caller's own row so resubmitting the current username passes
		exists, err := s.userRepo.ExistsByUsernameExcept(ctx, normalizedUsername, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if exists {
			return nil, fmt.Errorf("%w: username already exists", ErrValidation)
		}
		userData.Username = normalizedUsername
	}

	if req.Email != nil {
		normalizedEmail := strings.TrimSpace(strings.ToLower(*req.Email))
		if !emailRegex.MatchString(normalizedEmail) {
			return nil, fmt.Errorf("%w: invalid email format", ErrValidation)
		}
		exists, err := s.userRepo.ExistsByEmailExcept(ctx, normalizedEmail, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return nil, fmt.Errorf("%w: email already exists", ErrValidation)
		}
		userData.Email = normalizedEmail
	}

	if req.FirstName != nil {
		userData.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		userData.LastName = strings.TrimSpace(*req.LastName)
	}

	if req.Password != nil {
		for _, regex := range passwordRegex {
			if !regex.MatchString(*req.Password) {
				return nil, fmt.Errorf("%w: password must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, one number, and one special character (!_?^&+-=|)", ErrValidation)
			}
		}
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		if err := s.userRepo.UpdatePasswordHash(ctx, userID, string(passwordHash)); err != nil {
			return nil, err
		}
	}

	if userData.Username != "" || userData.Email != "" || userData.FirstName != "" || userData.LastName != "" {
		if err := s.userRepo.Update(ctx, userID, userData); err != nil {
			return nil, err
		}
	}

	return s.userRepo.GetByID(ctx, userID)
}
