package repository

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrInsufficientCredits is returned when a conditional debit finds no
// row with enough balance. This is the floor-at-zero guard: two
// concurrent spends cannot take a balance negative.
var ErrInsufficientCredits = errors.New("insufficient_credits")

// UserRepository manages profiles and the credit ledger.
type UserRepository interface {
	GetUserByID(ctx context.Context, id string) (*model.UserProfile, error)
	// CreateUserIfAbsent provisions a profile row on first login and
	// returns the stored profile either way.
	CreateUserIfAbsent(ctx context.Context, u *model.UserProfile) (*model.UserProfile, error)
	// DebitCredits decrements the balance only if it covers the amount.
	DebitCredits(ctx context.Context, userID string, amount int) error
	// AddCredits increments the balance and flips the tier to paid.
	AddCredits(ctx context.Context, userID string, amount int) error
	// RefundCredits is the compensating increment for a failed
	// generation; it does not touch the tier.
	RefundCredits(ctx context.Context, userID string, amount int) error
}

type userRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepo creates a new UserRepository.
func NewUserRepo(pool *pgxpool.Pool) UserRepository {
	return &userRepo{pool: pool}
}

const profileColumns = `user_id, email, display_name, avatar_url, credits, role, tier, created_at, updated_at`

func scanProfile(row pgx.Row) (*model.UserProfile, error) {
	var u model.UserProfile
	err := row.Scan(&u.UserID, &u.Email, &u.DisplayName, &u.AvatarURL, &u.Credits, &u.Role, &u.Tier, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByID returns the profile, or nil when no row exists.
func (r *userRepo) GetUserByID(ctx context.Context, id string) (*model.UserProfile, error) {
	q := `SELECT ` + profileColumns + ` FROM user_profiles WHERE user_id = $1`
	u, err := scanProfile(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch profile %s: %w", id, err)
	}
	return u, nil
}

func (r *userRepo) CreateUserIfAbsent(ctx context.Context, u *model.UserProfile) (*model.UserProfile, error) {
	const insertQ = `
        INSERT INTO user_profiles (user_id, email, display_name, avatar_url, credits, role, tier)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (user_id) DO NOTHING
    `
	if _, err := r.pool.Exec(ctx, insertQ, u.UserID, u.Email, u.DisplayName, u.AvatarURL, u.Credits, u.Role, u.Tier); err != nil {
		return nil, fmt.Errorf("provisioning profile for user %s: %w", u.UserID, err)
	}
	stored, err := r.GetUserByID(ctx, u.UserID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("profile for user %s missing after provisioning", u.UserID)
	}
	return stored, nil
}

func (r *userRepo) DebitCredits(ctx context.Context, userID string, amount int) error {
	const q = `
        UPDATE user_profiles
        SET credits = credits - $2, updated_at = NOW()
        WHERE user_id = $1 AND credits >= $2
    `
	ct, err := r.pool.Exec(ctx, q, userID, amount)
	if err != nil {
		return fmt.Errorf("debiting %d credits from user %s: %w", amount, userID, err)
	}
	if ct.RowsAffected() == 0 {
		return ErrInsufficientCredits
	}
	return nil
}

func (r *userRepo) AddCredits(ctx context.Context, userID string, amount int) error {
	// Any top-up flips the account to the paid tier regardless of amount.
	const q = `
        UPDATE user_profiles
        SET credits = credits + $2, tier = 'paid', updated_at = NOW()
        WHERE user_id = $1
    `
	if _, err := r.pool.Exec(ctx, q, userID, amount); err != nil {
		return fmt.Errorf("crediting %d credits to user %s: %w", amount, userID, err)
	}
	return nil
}

func (r *userRepo) RefundCredits(ctx context.Context, userID string, amount int) error {
	const q = `
        UPDATE user_profiles
        SET credits = credits + $2, updated_at = NOW()
        WHERE user_id = $1
    `
	if _, err := r.pool.Exec(ctx, q, userID, amount); err != nil {
		return fmt.Errorf("refunding %d credits to user %s: %w", amount, userID, err)
	}
	return nil
}
