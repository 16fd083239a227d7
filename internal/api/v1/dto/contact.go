package dto

// ContactRequestDTO is an incoming contact-form submission.
type ContactRequestDTO struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}
