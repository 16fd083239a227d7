package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/catalog"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// ImageHandler handles generation, feed, like, download, and deletion.
type ImageHandler struct {
	genSvc   service.GenerationService
	feedSvc  service.FeedService
	imageSvc service.ImageService
	userSvc  service.UserService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(
	genSvc service.GenerationService,
	feedSvc service.FeedService,
	imageSvc service.ImageService,
	userSvc service.UserService,
	v *validator.Validate,
	logger zerolog.Logger,
) *ImageHandler {
	return &ImageHandler{
		genSvc:   genSvc,
		feedSvc:  feedSvc,
		imageSvc: imageSvc,
		userSvc:  userSvc,
		validate: v,
		logger:   logger,
	}
}

// RegisterRoutes mounts v1 image routes. The feed and likes are public;
// everything else requires authentication.
func (h *ImageHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/images/generate", authMw(http.HandlerFunc(h.generate)))
	mux.Handle("/images/feed", http.HandlerFunc(h.feed))
	mux.Handle("/images/", http.HandlerFunc(h.handleImage(authMw)))
	mux.Handle("/prompts/enhance", authMw(http.HandlerFunc(h.enhancePrompt)))
	mux.Handle("/styles", http.HandlerFunc(h.listStyles))
}

// handleImage routes /images/{id}/like, /images/{id}/download and
// DELETE /images/{id}.
func (h *ImageHandler) handleImage(authMw func(http.Handler) http.Handler) http.HandlerFunc {
	download := authMw(http.HandlerFunc(h.download))
	remove := authMw(http.HandlerFunc(h.remove))
	return func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/images/")
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(path, "/like"):
			h.like(w, r)
		case r.Method == http.MethodGet && strings.HasSuffix(path, "/download"):
			download.ServeHTTP(w, r)
		case r.Method == http.MethodDelete && !strings.Contains(path, "/"):
			remove.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	}
}

func (h *ImageHandler) generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	authUser, ok := middleware.UserFromContext(r.Context())
	if !ok || authUser.ID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	var req dto.GenerateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	// First-login provisioning happens here so a brand-new account has
	// its free credits before the precondition check.
	profile, err := h.userSvc.EnsureProfile(r.Context(), authUser.ID, authUser.Email, authUser.Name)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", authUser.ID).Msg("Failed to load profile")
		http.Error(w, "Failed to load profile", http.StatusInternalServerError)
		return
	}

	mode := model.AppMode(req.Mode)
	if mode == "" {
		mode = model.ModeExplore
	}
	img, err := h.genSvc.Generate(r.Context(), profile, service.GenerateRequest{
		Mode:    mode,
		Prompt:  req.Prompt,
		StyleID: req.Style,
	})
	if err != nil {
		h.writeGenerateError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toImageDTO(*img))
}

func (h *ImageHandler) writeGenerateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrCreateModeRequired):
		http.Error(w, "Switch to Create Mode to generate images.", http.StatusForbidden)
	case errors.Is(err, service.ErrNotSignedIn):
		http.Error(w, "Sign in to generate images.", http.StatusUnauthorized)
	case errors.Is(err, service.ErrInsufficientCredits):
		msg := fmt.Sprintf("Insufficient credits. You need %d credits.", catalog.CreditCostPerImage)
		http.Error(w, msg, http.StatusPaymentRequired)
	case errors.Is(err, service.ErrEmptyPrompt):
		http.Error(w, "Please enter a prompt.", http.StatusBadRequest)
	default:
		http.Error(w, "Failed to generate image. Please try again.", http.StatusBadGateway)
	}
}

func (h *ImageHandler) feed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	feed := h.feedSvc.GetFeed(r.Context())

	resp := dto.FeedResponseDTO{Live: feed.Live}
	for _, img := range feed.Images {
		resp.Images = append(resp.Images, toImageDTO(img))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *ImageHandler) like(w http.ResponseWriter, r *http.Request) {
	imageID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/images/"), "/like")
	if imageID == "" {
		http.Error(w, "Missing image id", http.StatusBadRequest)
		return
	}
	if err := h.feedSvc.Like(r.Context(), imageID); err != nil {
		h.logger.Error().Err(err).Str("image_id", imageID).Msg("Failed to record like")
		http.Error(w, "Failed to record like", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ImageHandler) download(w http.ResponseWriter, r *http.Request) {
	imageID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/images/"), "/download")
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

	data, contentType, err := h.genSvc.Download(r.Context(), profile, imageID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImageNotFound):
			http.Error(w, "Image not found", http.StatusNotFound)
		default:
			h.logger.Error().Err(err).Str("image_id", imageID).Msg("Download failed")
			http.Error(w, "Failed to download image", http.StatusInternalServerError)
		}
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="vindra-%s.png"`, imageID))
	w.Write(data)
}

func (h *ImageHandler) remove(w http.ResponseWriter, r *http.Request) {
	imageID := strings.TrimPrefix(r.URL.Path, "/images/")
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

	if err := h.imageSvc.Hide(r.Context(), profile, imageID); err != nil {
		switch {
		case errors.Is(err, service.ErrImageNotFound):
			http.Error(w, "Image not found", http.StatusNotFound)
		case errors.Is(err, service.ErrForbidden):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			h.logger.Error().Err(err).Str("image_id", imageID).Msg("Failed to hide image")
			http.Error(w, "Failed to delete image", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ImageHandler) enhancePrompt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.EnhancePromptRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	// Enhancement falls back to the original prompt on provider failure.
	enhanced := h.genSvc.EnhancePrompt(r.Context(), req.Prompt)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.EnhancePromptResponseDTO{Prompt: enhanced})
}

func (h *ImageHandler) listStyles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"styles":  catalog.ImageStyles,
		"presets": catalog.PromptPresets,
	})
}

func toImageDTO(img model.GeneratedImage) dto.ImageResponseDTO {
	return dto.ImageResponseDTO{
		ID:        img.ID,
		UserID:    img.UserID,
		Prompt:    img.Prompt,
		Style:     img.Style,
		ImageURL:  img.ImageURL,
		IsPublic:  img.IsPublic,
		Likes:     img.Likes,
		CreatedAt: img.CreatedAt,
	}
}
