package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/spec-kit/storefront/internal/domain"
)

// AdminCreateRequest payload for the admin bootstrap.
type AdminCreateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the bootstrap payload.
func (r AdminCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, maxPasswordLength)),
	)
}

// AdminResponse is the public view of the administrator.
type AdminResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// NewAdminResponse hides the password hash.
func NewAdminResponse(admin *domain.Admin) AdminResponse {
	return AdminResponse{ID: admin.ID, Name: admin.Name, Email: admin.Email, Role: domain.RoleAdmin}
}
