package handler

import (
	"encoding/json"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/service"

	"github.com/rs/zerolog"
)

// AdminHandler serves the admin-only image listing.
type AdminHandler struct {
	imageSvc service.ImageService
	userSvc  service.UserService
	logger   zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(imageSvc service.ImageService, userSvc service.UserService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{imageSvc: imageSvc, userSvc: userSvc, logger: logger}
}

// RegisterRoutes mounts v1 admin routes.
func (h *AdminHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/admin/images", authMw(http.HandlerFunc(h.listImages)))
}

func (h *AdminHandler) listImages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	authUser, ok := middleware.UserFromContext(r.Context())
	if !ok || authUser.ID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}
	profile, err := h.userSvc.Get(r.Context(), authUser.ID)
	if err != nil {
		http.Error(w, "Failed to load profile", http.StatusInternalServerError)
		return
	}
	if !profile.IsAdmin() {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	images, err := h.imageSvc.ListAllAdmin(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list images for admin")
		http.Error(w, "Failed to list images", http.StatusInternalServerError)
		return
	}

	var imageDTOs []dto.ImageResponseDTO
	for _, img := range images {
		imageDTOs = append(imageDTOs, toImageDTO(img))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(imageDTOs)
}
