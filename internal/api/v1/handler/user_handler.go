package handler

import (
	"encoding/json"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/service"

	"github.com/rs/zerolog"
)

// UserHandler serves the profile and generation history.
type UserHandler struct {
	userSvc  service.UserService
	imageSvc service.ImageService
	logger   zerolog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userSvc service.UserService, imageSvc service.ImageService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{userSvc: userSvc, imageSvc: imageSvc, logger: logger}
}

// RegisterRoutes mounts v1 user routes
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/users/me", authMw(http.HandlerFunc(h.getMe)))
	mux.Handle("/users/me/history", authMw(http.HandlerFunc(h.getHistory)))
}

// getMe returns the caller's profile, provisioning it on first login.
func (h *UserHandler) getMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	authUser, ok := middleware.UserFromContext(r.Context())
	if !ok || authUser.ID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	profile, err := h.userSvc.EnsureProfile(r.Context(), authUser.ID, authUser.Email, authUser.Name)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", authUser.ID).Msg("Failed to provision profile")
		http.Error(w, "Failed to load profile: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toUserDTO(profile))
}

func (h *UserHandler) getHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	authUser, ok := middleware.UserFromContext(r.Context())
	if !ok || authUser.ID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	images, err := h.imageSvc.GetUserHistory(r.Context(), authUser.ID)
	if err != nil {
		http.Error(w, "Failed to retrieve history: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var imageDTOs []dto.ImageResponseDTO
	for _, img := range images {
		imageDTOs = append(imageDTOs, toImageDTO(img))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(imageDTOs)
}

func toUserDTO(u *model.UserProfile) dto.UserResponseDTO {
	return dto.UserResponseDTO{
		UserID:      u.UserID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		Credits:     u.Credits,
		Role:        u.Role,
		Tier:        u.Tier,
		CreatedAt:   u.CreatedAt,
	}
}
