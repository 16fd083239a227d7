package service

import (
	"context"
	"errors"
	"fmt"

	"app/internal/catalog"
	"app/internal/model"
	"app/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrUnknownPlan is returned for a plan id outside the catalog.
var ErrUnknownPlan = errors.New("unknown_plan")

// PaymentService handles the simulated purchase flow: one audit record
// per attempt, then the credit top-up (which flips the tier to paid).
type PaymentService interface {
	Purchase(ctx context.Context, userID, planID string) (*model.PaymentRecord, error)
	GetUserPayments(ctx context.Context, userID string) ([]model.PaymentRecord, error)
}

type paymentService struct {
	payments repository.PaymentRepository
	users    repository.UserRepository
	logger   zerolog.Logger
}

// NewPaymentService creates a new PaymentService with a scoped logger.
func NewPaymentService(payments repository.PaymentRepository, users repository.UserRepository, logger zerolog.Logger) PaymentService {
	return &paymentService{
		payments: payments,
		users:    users,
		logger:   logger.With().Str("service", "PaymentService").Logger(),
	}
}

func (s *paymentService) Purchase(ctx context.Context, userID, planID string) (*model.PaymentRecord, error) {
	plan := catalog.PlanByID(planID)
	if plan == nil {
		return nil, ErrUnknownPlan
	}

	record := &model.PaymentRecord{
		ID:           uuid.NewString(),
		UserID:       userID,
		PlanID:       plan.ID,
		Amount:       plan.Price,
		CreditsAdded: plan.Credits,
		Status:       model.PaymentSuccess,
	}
	if err := s.payments.Insert(ctx, record); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("plan_id", planID).Msg("Failed to record payment")
		return nil, err
	}
	if err := s.users.AddCredits(ctx, userID, plan.Credits); err != nil {
		// The audit record stands; the top-up must be reconciled.
		s.logger.Error().Err(err).Str("user_id", userID).Str("payment_id", record.ID).Msg("Failed to add credits after payment")
		return nil, fmt.Errorf("add credits for payment %s: %w", record.ID, err)
	}
	return record, nil
}

func (s *paymentService) GetUserPayments(ctx context.Context, userID string) ([]model.PaymentRecord, error) {
	return s.payments.GetUserPayments(ctx, userID)
}
