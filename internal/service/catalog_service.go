package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/repository"
	apperrors "github.com/spec-kit/storefront/pkg/util"
)

// CatalogService serves product listings and the admin's product management.
type CatalogService struct {
	products repository.ProductRepository
	logger   *zap.Logger
}

// ProductInput carries the editable product fields.
type ProductInput struct {
	Name     string
	Price    float64
	Discount float64
}

// NewCatalogService constructs the service.
func NewCatalogService(products repository.ProductRepository, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{products: products, logger: logger}
}

// List returns every product.
func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// Create adds a product under a fresh id.
func (s *CatalogService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	product := &domain.Product{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(in.Name),
		Price:    in.Price,
		Discount: in.Discount,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.logger.Info("product created", zap.String("product_id", product.ID))
	return product, nil
}

// Update replaces the editable fields of an existing product.
func (s *CatalogService) Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	product := &domain.Product{
		ID:       id,
		Name:     strings.TrimSpace(in.Name),
		Price:    in.Price,
		Discount: in.Discount,
	}
	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"id": id})
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	s.logger.Info("product updated", zap.String("product_id", id))
	return product, nil
}

// Delete removes a product. Carts holding its id keep it; cart views skip
// ids no longer in the catalog.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if !deleted {
		return apperrors.NewNotFound("product", map[string]any{"id": id})
	}
	s.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}
