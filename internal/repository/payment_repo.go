package repository

import (
	"context"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PaymentRepository records purchase attempts. Rows are never mutated.
type PaymentRepository interface {
	Insert(ctx context.Context, p *model.PaymentRecord) error
	GetUserPayments(ctx context.Context, userID string) ([]model.PaymentRecord, error)
}

type paymentRepo struct {
	pool *pgxpool.Pool
}

// NewPaymentRepo creates a new PaymentRepository.
func NewPaymentRepo(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepo{pool: pool}
}

func (r *paymentRepo) Insert(ctx context.Context, p *model.PaymentRecord) error {
	const q = `
        INSERT INTO payments (id, user_id, plan_id, amount, credits_added, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at
    `
	err := r.pool.QueryRow(ctx, q, p.ID, p.UserID, p.PlanID, p.Amount, p.CreditsAdded, p.Status).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("recording payment for user %s: %w", p.UserID, err)
	}
	return nil
}

func (r *paymentRepo) GetUserPayments(ctx context.Context, userID string) ([]model.PaymentRecord, error) {
	const q = `
        SELECT id, user_id, plan_id, amount, credits_added, status, created_at
        FROM payments
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("querying payments for user %s: %w", userID, err)
	}
	defer rows.Close()

	var payments []model.PaymentRecord
	for rows.Next() {
		var p model.PaymentRecord
		if err := rows.Scan(&p.ID, &p.UserID, &p.PlanID, &p.Amount, &p.CreditsAdded, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment rows: %w", err)
	}
	return payments, nil
}
