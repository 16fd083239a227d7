package service

import (
	"context"
	"errors"

	"app/internal/catalog"
	"app/internal/model"
	"app/internal/repository"
)

// ErrUserNotFound is returned when a profile lookup comes back empty.
var ErrUserNotFound = errors.New("user not found")

// UserService provisions and fetches profiles.
type UserService interface {
	// EnsureProfile returns the stored profile, creating it on first
	// login. The configured admin email receives the admin role, paid
	// tier, and the admin credit seed; everyone else starts free.
	EnsureProfile(ctx context.Context, userID, email, displayName string) (*model.UserProfile, error)
	Get(ctx context.Context, id string) (*model.UserProfile, error)
}

type userService struct {
	userRepo   repository.UserRepository
	adminEmail string
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, adminEmail string) UserService {
	return &userService{userRepo: userRepo, adminEmail: adminEmail}
}

func (s *userService) EnsureProfile(ctx context.Context, userID, email, displayName string) (*model.UserProfile, error) {
	profile := &model.UserProfile{
		UserID:      userID,
		Email:       email,
		DisplayName: displayName,
		Credits:     catalog.InitialFreeCredits,
		Role:        model.RoleUser,
		Tier:        model.TierFree,
	}
	if s.adminEmail != "" && email == s.adminEmail {
		profile.Credits = catalog.AdminInitialCredits
		profile.Role = model.RoleAdmin
		profile.Tier = model.TierPaid
	}
	return s.userRepo.CreateUserIfAbsent(ctx, profile)
}

func (s *userService) Get(ctx context.Context, id string) (*model.UserProfile, error) {
	u, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
