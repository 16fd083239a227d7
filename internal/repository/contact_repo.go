package repository

import (
	"context"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ContactRepository persists contact-form submissions.
type ContactRepository interface {
	Insert(ctx context.Context, m *model.ContactMessage) error
}

type contactRepo struct {
	pool *pgxpool.Pool
}

// NewContactRepo creates a new ContactRepository.
func NewContactRepo(pool *pgxpool.Pool) ContactRepository {
	return &contactRepo{pool: pool}
}

func (r *contactRepo) Insert(ctx context.Context, m *model.ContactMessage) error {
	const q = `
        INSERT INTO contact_messages (id, name, email, message)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at
    `
	err := r.pool.QueryRow(ctx, q, m.ID, m.Name, m.Email, m.Message).Scan(&m.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting contact message from %s: %w", m.Email, err)
	}
	return nil
}
