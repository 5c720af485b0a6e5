package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"github.com/Tharunikaraja/ecommerce-backend/internal/models"
	"github.com/Tharunikaraja/ecommerce-backend/internal/util"
)

// CatalogStore is the persistence surface for product reads.
type CatalogStore interface {
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	ListProducts(ctx context.Context, category string) ([]models.Product, error)
}

// ProductCache is a best-effort cache in front of the catalog. A cache
// failure never fails a request; it falls through to the store.
type ProductCache interface {
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	CacheProduct(ctx context.Context, product *models.Product) error
}

// CatalogService serves product reads with a read-through cache.
type CatalogService struct {
	store  CatalogStore
	cache  ProductCache
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store CatalogStore, cache ProductCache) *CatalogService {
	return &CatalogService{
		store:  store,
		cache:  cache,
		logger: util.GetLogger(),
	}
}

// ListProducts returns products, optionally filtered by category.
func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListProducts")
	defer span.End()

	products, err := s.store.ListProducts(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, notFound("No products found")
	}
	return products, nil
}

// GetProduct returns a product by ID, preferring the cache.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.GetProduct")
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.GetProduct(ctx, id)
		if err != nil {
			s.logger.Warn("Product cache lookup failed, falling back to store",
				zap.String("product_id", id),
				zap.Error(err))
			util.ProductCacheHits.WithLabelValues("error").Inc()
		} else if cached != nil {
			util.ProductCacheHits.WithLabelValues("hit").Inc()
			return cached, nil
		} else {
			util.ProductCacheHits.WithLabelValues("miss").Inc()
		}
	}

	product, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound("Product not found")
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.CacheProduct(ctx, product); err != nil {
			s.logger.Warn("Failed to cache product",
				zap.String("product_id", id),
				zap.Error(err))
		}
	}

	return product, nil
}
