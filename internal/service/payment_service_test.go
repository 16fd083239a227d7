package service

import (
	"context"
	"errors"
	"testing"

	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePaymentRepo struct {
	repository.PaymentRepository

	inserted  []*model.PaymentRecord
	insertErr error
}

func (f *fakePaymentRepo) Insert(ctx context.Context, record *model.PaymentRecord) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, record)
	return nil
}

type fakeCreditRepo struct {
	repository.UserRepository

	added  int
	addErr error
}

func (f *fakeCreditRepo) AddCredits(ctx context.Context, userID string, amount int) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added += amount
	return nil
}

func TestPurchaseRecordsThenTopsUp(t *testing.T) {
	payments := &fakePaymentRepo{}
	users := &fakeCreditRepo{}
	svc := NewPaymentService(payments, users, zerolog.Nop())

	record, err := svc.Purchase(context.Background(), "user-1", "growth")

	require.NoError(t, err)
	require.Len(t, payments.inserted, 1)
	assert.Equal(t, model.PaymentSuccess, record.Status)
	assert.Equal(t, "growth", record.PlanID)
	assert.Equal(t, 150, record.CreditsAdded)
	assert.Equal(t, 150, users.added)
}

func TestPurchaseUnknownPlan(t *testing.T) {
	payments := &fakePaymentRepo{}
	users := &fakeCreditRepo{}
	svc := NewPaymentService(payments, users, zerolog.Nop())

	_, err := svc.Purchase(context.Background(), "user-1", "platinum")

	require.ErrorIs(t, err, ErrUnknownPlan)
	assert.Empty(t, payments.inserted)
	assert.Zero(t, users.added)
}

func TestPurchaseInsertFailureSkipsTopUp(t *testing.T) {
	payments := &fakePaymentRepo{insertErr: errors.New("db down")}
	users := &fakeCreditRepo{}
	svc := NewPaymentService(payments, users, zerolog.Nop())

	_, err := svc.Purchase(context.Background(), "user-1", "starter")

	require.Error(t, err)
	assert.Zero(t, users.added, "no credits without an audit record")
}
