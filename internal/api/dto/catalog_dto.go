package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/spec-kit/storefront/internal/domain"
)

// ProductResponse is the catalog view of a product.
type ProductResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Discount float64 `json:"discount"`
}

// NewProductResponse maps one product.
func NewProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{ID: p.ID, Name: p.Name, Price: p.Price, Discount: p.Discount}
}

// NewProductResponses maps products, never returning nil.
func NewProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p))
	}
	return out
}

// IdentityResponse describes who a request resolved to.
type IdentityResponse struct {
	Role  domain.IdentityKind `json:"role"`
	ID    string              `json:"id"`
	Email string              `json:"email"`
}

// NewIdentityResponse snapshots an identity.
func NewIdentityResponse(identity domain.Identity) IdentityResponse {
	return IdentityResponse{Role: identity.Kind(), ID: identity.ID(), Email: identity.Email()}
}

// ProductRequest payload for creating or updating a product. Form tags let
// multipart and urlencoded admin forms bind as well as JSON.
type ProductRequest struct {
	Name     string  `json:"name" form:"name"`
	Price    float64 `json:"price" form:"price"`
	Discount float64 `json:"discount" form:"discount"`
}

// Validate checks the product payload.
func (r ProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Price, validation.Required, validation.Min(0.0)),
		validation.Field(&r.Discount, validation.Min(0.0), validation.Max(r.Price)),
	)
}
