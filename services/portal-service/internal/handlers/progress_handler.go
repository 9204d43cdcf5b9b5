package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aihubacademy/backend/libs/handlers"
	"github.com/aihubacademy/backend/services/portal-service/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProgressService is the interface that wraps methods for progress business logic.
type ProgressService interface {
	// Method Get retrieves the progress record for a user.
	//
	// "userID" parameter is used to identify the user.
	//
	// A user without a progress row gets an empty record, not an error.
	Get(ctx context.Context, userID string) (*models.Progress, error)
	// Method Save persists the full progress record for a user.
	//
	// "userID" parameter is used to identify the user.
	// "progress" parameter holds the record to write.
	//
	// If some error occurs during the write, the error will be returned.
	Save(ctx context.Context, userID string, progress *models.Progress) error
}

// ProgressHandler handles progress-related HTTP requests
type ProgressHandler struct {
	handlers.BaseHandler
	progressService ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService ProgressService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		BaseHandler:     handlers.BaseHandler{Logger: logger},
		progressService: progressService,
	}
}

// RegisterRoutes registers all progress handler routes
// Note: This assumes the router is already scoped to /api
func (h *ProgressHandler) RegisterRoutes(r chi.Router) {
	r.Route("/progress", func(r chi.Router) {
		r.Get("/{userID}", h.Get)
		r.Post("/{userID}", h.Save)
	})
}

// Get handles GET /api/progress/{userID}
// @Summary Get user progress
// @Description Returns the completed tutorial IDs and last visited tutorial for a user. Users without a progress record get an empty one.
// @Tags progress
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} models.Progress "User progress"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /progress/{userID} [get]
func (h *ProgressHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	progress, err := h.progressService.Get(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to get progress", zap.String("user_id", userID), zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to get progress")
		return
	}

	h.RespondJSON(w, http.StatusOK, progress)
}

// Save handles POST /api/progress/{userID}
// @Summary Save user progress
// @Description Replaces the full progress record for a user in one write.
// @Tags progress
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param request body models.Progress true "Progress record"
// @Success 200 {object} map[string]bool "Progress saved"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /progress/{userID} [post]
func (h *ProgressHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var progress models.Progress
	if err := json.NewDecoder(r.Body).Decode(&progress); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.progressService.Save(r.Context(), userID, &progress); err != nil {
		h.Logger.Error("failed to save progress", zap.String("user_id", userID), zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to save progress")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
