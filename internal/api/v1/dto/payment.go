package dto

import "time"

// PurchaseRequestDTO starts a simulated purchase for a catalog plan.
type PurchaseRequestDTO struct {
	PlanID string `json:"plan_id" validate:"required"`
}

// PaymentResponseDTO is a purchase audit entry in API responses.
type PaymentResponseDTO struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	PlanID       string    `json:"plan_id"`
	Amount       int       `json:"amount"`
	CreditsAdded int       `json:"credits_added"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
