package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/catalog"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// PaymentHandler serves the plan catalog and the simulated purchase flow.
type PaymentHandler struct {
	paymentSvc service.PaymentService
	validate   *validator.Validate
	logger     zerolog.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentSvc service.PaymentService, v *validator.Validate, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc, validate: v, logger: logger}
}

// RegisterRoutes mounts v1 payment routes. The catalog is public.
func (h *PaymentHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/plans", http.HandlerFunc(h.listPlans))
	mux.Handle("/payments", authMw(http.HandlerFunc(h.handlePayments)))
}

func (h *PaymentHandler) listPlans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(catalog.Plans)
}

func (h *PaymentHandler) handlePayments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.purchase(w, r)
	case http.MethodGet:
		h.listPayments(w, r)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (h *PaymentHandler) purchase(w http.ResponseWriter, r *http.Request) {
	authUser, ok := middleware.UserFromContext(r.Context())
	if !ok || authUser.ID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	var req dto.PurchaseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	record, err := h.paymentSvc.Purchase(r.Context(), authUser.ID, req.PlanID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownPlan):
			http.Error(w, "Unknown plan: "+req.PlanID, http.StatusBadRequest)
		default:
			h.logger.Error().Err(err).Str("user_id", authUser.ID).Msg("Purchase failed")
			http.Error(w, "Payment failed", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toPaymentDTO(record))
}

func (h *PaymentHandler) listPayments(w http.ResponseWriter, r *http.Request) {
	authUser, ok := middleware.UserFromContext(r.Context())
	if !ok || authUser.ID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	payments, err := h.paymentSvc.GetUserPayments(r.Context(), authUser.ID)
	if err != nil {
		http.Error(w, "Failed to retrieve payments: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var paymentDTOs []dto.PaymentResponseDTO
	for i := range payments {
		paymentDTOs = append(paymentDTOs, toPaymentDTO(&payments[i]))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(paymentDTOs)
}

func toPaymentDTO(p *model.PaymentRecord) dto.PaymentResponseDTO {
	return dto.PaymentResponseDTO{
		ID:           p.ID,
		UserID:       p.UserID,
		PlanID:       p.PlanID,
		Amount:       p.Amount,
		CreditsAdded: p.CreditsAdded,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
	}
}
