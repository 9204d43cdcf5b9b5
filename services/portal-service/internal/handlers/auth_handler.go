package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aihubacademy/backend/libs/handlers"
	"github.com/aihubacademy/backend/services/portal-service/internal/models"
	"github.com/aihubacademy/backend/services/portal-service/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication business logic.
type AuthService interface {
	// Method Register performs user credentials validation and creation.
	//
	// "req" parameter contains email, password and name.
	//
	// If the email is already taken, services.ErrDuplicateEmail will be returned; on any error the user value is "nil".
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	// Method Login performs user credentials validation.
	//
	// "req" parameter contains email and password.
	//
	// If the credentials do not match, services.ErrInvalidCredentials will be returned together with "nil" value.
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	handlers.BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: handlers.BaseHandler{Logger: logger},
		authService: authService,
	}
}

// RegisterRoutes registers all auth handler routes
// Note: This assumes the router is already scoped to /api
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
}

// userResponse is the success envelope shared by register and login
type userResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
}

// Register handles POST /api/register
// @Summary Register a new user
// @Description Register a new user with email, password and name. Creates an empty progress record for the new user.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 200 {object} userResponse "User registered successfully"
// @Failure 400 {object} map[string]string "Invalid request body or email already registered"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		h.Logger.Error("failed to register user", zap.Error(err))
		if errors.Is(err, services.ErrDuplicateEmail) {
			h.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		// Validation failures are client errors, storage failures are not
		switch err.Error() {
		case "invalid email format", "name cannot be empty", "password cannot be empty":
			h.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			h.RespondError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	h.RespondJSON(w, http.StatusOK, userResponse{Success: true, User: user})
}

// Login handles POST /api/login
// @Summary Login user
// @Description Authenticate user with email and password. Email matching is case-insensitive.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} userResponse "Login successful"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.RespondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.Logger.Error("failed to login user", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "login failed")
		return
	}

	h.RespondJSON(w, http.StatusOK, userResponse{Success: true, User: user})
}
