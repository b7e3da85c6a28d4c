package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/spec-kit/storefront/internal/domain"
)

// bcrypt ignores input past 72 bytes.
const maxPasswordLength = 72

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the registration payload.
func (r UserRegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(1, maxPasswordLength)),
	)
}

// LoginRequest payload for user and admin login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login payload.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// UserResponse is the public view of a customer.
type UserResponse struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Cart  []string `json:"cart"`
}

// NewUserResponse hides the password hash.
func NewUserResponse(user *domain.User) UserResponse {
	cart := user.Cart
	if cart == nil {
		cart = []string{}
	}
	return UserResponse{ID: user.ID, Name: user.Name, Email: user.Email, Cart: cart}
}

// UserProfileResponse is a customer with cart products resolved.
type UserProfileResponse struct {
	ID    string            `json:"id"`
	Name  string            `json:"name"`
	Email string            `json:"email"`
	Cart  []ProductResponse `json:"cart"`
}

// NewUserProfileResponse builds the whoami view.
func NewUserProfileResponse(user *domain.User, products []domain.Product) UserProfileResponse {
	return UserProfileResponse{ID: user.ID, Name: user.Name, Email: user.Email, Cart: NewProductResponses(products)}
}
