package handler

import (
	"encoding/json"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// ContactHandler persists contact-form submissions.
type ContactHandler struct {
	contactSvc service.ContactService
	validate   *validator.Validate
	logger     zerolog.Logger
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactSvc service.ContactService, v *validator.Validate, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{contactSvc: contactSvc, validate: v, logger: logger}
}

// RegisterRoutes mounts the contact endpoint. It is public.
func (h *ContactHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/contact", http.HandlerFunc(h.send))
}

func (h *ContactHandler) send(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.ContactRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.contactSvc.Send(r.Context(), req.Name, req.Email, req.Message); err != nil {
		h.logger.Error().Err(err).Msg("Failed to save contact message")
		http.Error(w, "Failed to send message", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}
