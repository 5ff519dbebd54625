package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/spec-kit/erp-service/internal/domain"
	"github.com/spec-kit/erp-service/internal/persistence"
	"github.com/spec-kit/erp-service/internal/repository"
	apperrors "github.com/spec-kit/erp-service/pkg/util"
)

const (
	catalogCacheKey = "catalog:products"
	catalogCacheTTL = 30 * time.Second
)

// ProductInput carries client-supplied product fields.
type ProductInput struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// CatalogService manages the product catalog. Listing goes through a Redis
// cache; writes invalidate it. Order pricing bypasses the cache and always
// reads the repository directly.
type CatalogService struct {
	products repository.ProductRepository
	cache    *persistence.Redis
	logger   *zap.Logger
}

// NewCatalogService builds the service. Cache may be nil.
func NewCatalogService(products repository.ProductRepository, cache *persistence.Redis, logger *zap.Logger) *CatalogService {
	return &CatalogService{products: products, cache: cache, logger: logger}
}

// Create validates and stores a new product.
func (s *CatalogService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Price:    in.Price,
		Quantity: in.Quantity,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return product, nil
}

// Update replaces name, price and quantity of an existing product.
func (s *CatalogService) Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"product_id": id})
		}
		return nil, err
	}

	product.Name = in.Name
	product.Price = in.Price
	product.Quantity = in.Quantity
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return product, nil
}

// Delete removes a product. Orders referencing it keep a dangling reference.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("product", map[string]any{"product_id": id})
		}
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// GetByID returns a single product.
func (s *CatalogService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"product_id": id})
		}
		return nil, err
	}
	return product, nil
}

// List returns all products, served from cache when possible. Cache failures
// degrade to the database and never fail the request.
func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	if cached, ok := s.readCache(ctx); ok {
		return cached, nil
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	s.writeCache(ctx, products)
	return products, nil
}

func validateProductInput(in ProductInput) error {
	if in.Name == "" || !in.Price.IsPositive() || in.Quantity < 0 {
		return apperrors.NewValidationError(
			"Invalid input: name, price (>0), and quantity (>=0) are required", nil)
	}
	return nil
}

func (s *CatalogService) readCache(ctx context.Context) ([]domain.Product, bool) {
	if s.cache == nil || s.cache.Client == nil {
		return nil, false
	}
	raw, err := s.cache.Client.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false
	}
	return products, true
}

func (s *CatalogService) writeCache(ctx context.Context, products []domain.Product) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, catalogCacheKey, raw, catalogCacheTTL).Err(); err != nil {
		s.logger.Debug("catalog cache write failed", zap.Error(err))
	}
}

func (s *CatalogService) invalidateCache(ctx context.Context) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	if err := s.cache.Client.Del(ctx, catalogCacheKey).Err(); err != nil {
		s.logger.Debug("catalog cache invalidation failed", zap.Error(err))
	}
}
