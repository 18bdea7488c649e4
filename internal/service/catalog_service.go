package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/glowmart/storefront-service/internal/authz"
	"github.com/glowmart/storefront-service/internal/domain"
	"github.com/glowmart/storefront-service/internal/repository"
	"github.com/glowmart/storefront-service/pkg/util"
)

// ProductInput carries the editable fields of a catalog item.
type ProductInput struct {
	Name        string
	Brand       string
	Category    string
	Description string
	PriceCents  int64
	Stock       int
	IsPublished bool
}

// CatalogService manages products. Reads are public; writes go through the
// role table.
type CatalogService struct {
	products repository.ProductRepository
	audit    *AuditService
	logger   *zap.Logger
}

// NewCatalogService builds the service.
func NewCatalogService(products repository.ProductRepository, audit *AuditService, logger *zap.Logger) *CatalogService {
	return &CatalogService{products: products, audit: audit, logger: logger}
}

// ListPublished returns the storefront catalog.
func (s *CatalogService) ListPublished(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	products, err := s.products.List(ctx, repository.ProductFilter{Limit: limit, Offset: offset})
	if err != nil {
		return nil, util.MapError(err)
	}
	return products, nil
}

// ListAll returns every product, including unpublished ones, for the admin
// console.
func (s *CatalogService) ListAll(ctx context.Context, actor *domain.Account, limit, offset int) ([]domain.Product, error) {
	if !authz.Can(actor, authz.ActionViewDashboard) {
		return nil, staffAccessDenied(actor)
	}
	products, err := s.products.List(ctx, repository.ProductFilter{IncludeUnpublished: true, Limit: limit, Offset: offset})
	if err != nil {
		return nil, util.MapError(err)
	}
	return products, nil
}

// Get returns one product. Unpublished products are visible to staff only.
func (s *CatalogService) Get(ctx context.Context, actor *domain.Account, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("product", map[string]any{"id": id})
		}
		return nil, util.MapError(err)
	}
	if !product.IsPublished && !authz.Can(actor, authz.ActionViewDashboard) {
		return nil, util.NewNotFound("product", map[string]any{"id": id})
	}
	return product, nil
}

// Create adds a product to the catalog.
func (s *CatalogService) Create(ctx context.Context, actor *domain.Account, input ProductInput) (*domain.Product, error) {
	if !authz.Can(actor, authz.ActionCreateProduct) {
		return nil, staffAccessDenied(actor)
	}
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        input.Name,
		Brand:       input.Brand,
		Category:    input.Category,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Stock:       input.Stock,
		IsPublished: input.IsPublished,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, util.MapError(err)
	}

	s.audit.Record(ctx, actor.ID, domain.AuditActionCreateProduct, "product", product.ID, map[string]any{
		"name": product.Name,
	})
	return product, nil
}

// Update replaces a product's editable fields.
func (s *CatalogService) Update(ctx context.Context, actor *domain.Account, id string, input ProductInput) (*domain.Product, error) {
	if !authz.Can(actor, authz.ActionUpdateProduct) {
		return nil, staffAccessDenied(actor)
	}
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("product", map[string]any{"id": id})
		}
		return nil, util.MapError(err)
	}

	product.Name = input.Name
	product.Brand = input.Brand
	product.Category = input.Category
	product.Description = input.Description
	product.PriceCents = input.PriceCents
	product.Stock = input.Stock
	product.IsPublished = input.IsPublished

	if err := s.products.Update(ctx, product); err != nil {
		return nil, util.MapError(err)
	}

	s.audit.Record(ctx, actor.ID, domain.AuditActionUpdateProduct, "product", product.ID, map[string]any{
		"name": product.Name,
	})
	return product, nil
}

// TogglePublished flips a product's storefront visibility.
func (s *CatalogService) TogglePublished(ctx context.Context, actor *domain.Account, id string) (*domain.Product, error) {
	if !authz.Can(actor, authz.ActionToggleProduct) {
		return nil, staffAccessDenied(actor)
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("product", map[string]any{"id": id})
		}
		return nil, util.MapError(err)
	}

	product.IsPublished = !product.IsPublished
	if err := s.products.Update(ctx, product); err != nil {
		return nil, util.MapError(err)
	}

	s.audit.Record(ctx, actor.ID, domain.AuditActionToggleProduct, "product", product.ID, map[string]any{
		"is_published": product.IsPublished,
	})
	return product, nil
}

// Delete removes a product.
func (s *CatalogService) Delete(ctx context.Context, actor *domain.Account, id string) error {
	if !authz.Can(actor, authz.ActionDeleteProduct) {
		return staffAccessDenied(actor)
	}

	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("product", map[string]any{"id": id})
		}
		return util.MapError(err)
	}

	s.audit.Record(ctx, actor.ID, domain.AuditActionDeleteProduct, "product", id, nil)
	return nil
}

func validateProductInput(input ProductInput) error {
	if input.Name == "" {
		return util.NewValidationError("product name is required", nil)
	}
	if input.PriceCents < 0 {
		return util.NewValidationError("price cannot be negative", map[string]any{"price_cents": input.PriceCents})
	}
	if input.Stock < 0 {
		return util.NewValidationError("stock cannot be negative", map[string]any{"stock": input.Stock})
	}
	return nil
}

func staffAccessDenied(actor *domain.Account) error {
	redirect := authz.RedirectAdminLogin
	if actor != nil && !actor.Role.IsAdminTier() {
		redirect = authz.RedirectHome
	}
	return util.NewAccessDenied(redirect, map[string]any{
		"required_roles": []domain.Role{domain.RoleAgent, domain.RoleAdmin, domain.RoleChiefAdmin},
	})
}
