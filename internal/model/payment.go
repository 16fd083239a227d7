package model

import "time"

// Payment statuses
const (
	PaymentSuccess = "success"
	PaymentPending = "pending"
	PaymentFailed  = "failed"
)

// CreditPlan is a static catalog entry, not a runtime entity.
type CreditPlan struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Credits  int      `json:"credits"`
	Price    int      `json:"price"`
	Features []string `json:"features"`
	Popular  bool     `json:"popular,omitempty"`
}

// PaymentRecord is an insert-only audit entry for a purchase attempt.
type PaymentRecord struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	PlanID       string    `db:"plan_id" json:"plan_id"`
	Amount       int       `db:"amount" json:"amount"`
	CreditsAdded int       `db:"credits_added" json:"credits_added"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
