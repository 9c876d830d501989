package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	authMiddleware "github.com/ecoursehub/backend/internal/auth/middleware"
	"github.com/ecoursehub/backend/internal/auth/policy"
	"github.com/ecoursehub/backend/internal/models"
	"go.uber.org/zap"
)

// RegistrationService is the interface that wraps user account creation
type RegistrationService interface {
	// Method Register performs a user credentials validation and creation.
	//
	// "req" parameter contains email, username, password and optional name fields.
	// "avatarFile" parameter is an optional reader for the avatar image.
	// "avatarFilename" parameter is the name of the avatar image file.
	//
	// If user passed invalid credentials, or such user already exists, or some other error occurs, the error will be returned together with "nil" value.
	Register(ctx context.Context, req *models.RegisterRequest, avatarFile io.Reader, avatarFilename string) (*models.User, error)
}

// ProfileService is the interface that wraps methods for the caller's own profile
type ProfileService interface {
	// GetUser retrieves user profile information
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	//
	// Returns the user and an error if any.
	GetUser(ctx context.Context, userID int) (*models.User, error)
	// UpdateUser partially updates the caller's profile from the allowed fields
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "req" carries the fields to update; absent fields are left untouched.
	//
	// Returns the updated user and an error if any.
	UpdateUser(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.User, error)
}

// UserHandler handles HTTP requests for registration and the current user's profile
type UserHandler struct {
	BaseHandler
	registrationService RegistrationService
	profileService      ProfileService
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	registrationService RegistrationService,
	profileService ProfileService,
	logger *zap.Logger,
) *UserHandler {
	return &UserHandler{
		BaseHandler:         BaseHandler{Logger: logger},
		registrationService: registrationService,
		profileService:      profileService,
	}
}

// RegisterRoutes registers all user handler routes
// Note: This assumes the router is already scoped to /api/v1
func (h *UserHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/users", func(r chi.Router) {
		r.With(policy.Middleware("user.create", authMiddleware)).Post("/", h.Register)
		r.With(policy.Middleware("user.current.read", authMiddleware)).Get("/current-user", h.GetCurrentUser)
		r.With(policy.Middleware("user.current.update", authMiddleware)).Patch("/current-user", h.UpdateCurrentUser)
	})
}

// Register handles POST /users
// @Summary Register a new user
// @Description Register a new user with email, username, password, optional name fields and an optional avatar image
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param email formData string true "User email"
// @Param username formData string true "Username"
// @Param password formData string true "User password"
// @Param first_name formData string false "First name"
// @Param last_name formData string false "Last name"
// @Param avatar formData file false "User avatar image (optional)"
// @Success 201 {object} models.ProfileView "Created profile"
// @Failure 400 {object} map[string]string "Invalid request body or user already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /users [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (limit to 20MB to match request size limit)
	err := r.ParseMultipartForm(20 << 20) // 20MB
	if err != nil {
		h.Logger.Error("failed to parse multipart form", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "failed to parse request")
		return
	}

	req := &models.RegisterRequest{
		Email:     r.FormValue("email"),
		Username:  r.FormValue("username"),
		Password:  r.FormValue("password"),
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
	}

	if req.Email == "" || req.Username == "" || req.Password == "" {
		h.RespondError(w, http.StatusBadRequest, "email, username, and password are required")
		return
	}

	// Extract avatar file (optional)
	var avatarFile io.Reader
	var avatarFilename string
	file, fileHeader, err := r.FormFile("avatar")
	if err == nil && file != nil && fileHeader != nil {
		// Validate file is actually provided (not just empty field)
		if fileHeader.Size > 0 {
			avatarFile = file
			avatarFilename = fileHeader.Filename
			defer file.Close()
		}
	} else if err != http.ErrMissingFile {
		h.Logger.Error("failed to get avatar file from form", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "failed to process avatar file")
		return
	}

	user, err := h.registrationService.Register(r.Context(), req, avatarFile, avatarFilename)
	if err != nil {
		h.Logger.Error("failed to register user", zap.Error(err))
		h.RespondError(w, statusFromError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusCreated, models.NewProfileView(user))
}

// GetCurrentUser handles GET /users/current-user
// @Summary Get own profile
// @Description Get the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.ProfileView "Profile"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /users/current-user [get]
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	user, err := h.profileService.GetUser(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to get profile", zap.Error(err))
		h.RespondError(w, statusFromError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, models.NewProfileView(user))
}

// UpdateCurrentUser handles PATCH /users/current-user
// @Summary Update own profile
// @Description Partially update the authenticated user's profile. Only username, email, password, first_name and last_name are accepted; anything else in the payload is ignored.
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} models.ProfileView "Updated profile"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /users/current-user [patch]
func (h *UserHandler) UpdateCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.profileService.UpdateUser(r.Context(), userID, &req)
	if err != nil {
		h.Logger.Error("failed to update profile", zap.Error(err))
		h.RespondError(w, statusFromError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, models.NewProfileView(user))
}
