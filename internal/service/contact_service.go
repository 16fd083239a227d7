package service

import (
	"context"

	"app/internal/model"
	"app/internal/repository"

	"github.com/google/uuid"
)

// ContactService persists contact-form submissions.
type ContactService interface {
	Send(ctx context.Context, name, email, message string) (*model.ContactMessage, error)
}

type contactService struct {
	contacts repository.ContactRepository
}

// NewContactService creates a new ContactService.
func NewContactService(contacts repository.ContactRepository) ContactService {
	return &contactService{contacts: contacts}
}

func (s *contactService) Send(ctx context.Context, name, email, message string) (*model.ContactMessage, error) {
	m := &model.ContactMessage{
		ID:      uuid.NewString(),
		Name:    name,
		Email:   email,
		Message: message,
	}
	if err := s.contacts.Insert(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
