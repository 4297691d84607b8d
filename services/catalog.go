package services

import (
	"context"
	"fmt"
	"time"

	"auroxa/models"
	"auroxa/store"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductStore is the persistence contract the catalog depends on.
type ProductStore interface {
	Insert(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Find(ctx context.Context, filter store.ProductFilter) ([]models.Product, error)
	Names(ctx context.Context, limit int64) ([]models.Product, error)
	CountFeatured(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, product *models.Product) (*models.Product, error)
	SetRating(ctx context.Context, id primitive.ObjectID, rating float64, reviewCount int) error
	Delete(ctx context.Context, id string) error
}

// Catalog manages the product collection: CRUD, filtered listing, slug
// generation and the featured cap.
type Catalog struct {
	products ProductStore
	logger   zerolog.Logger
	now      func() time.Time
}

// NewCatalog creates the catalog service.
func NewCatalog(products ProductStore, logger zerolog.Logger) *Catalog {
	return &Catalog{
		products: products,
		logger:   logger.With().Str("service", "catalog").Logger(),
		now:      time.Now,
	}
}

// Create validates and persists a new product. Featured products are capped
// system-wide; the cap is enforced by counting existing featured products at
// create time.
func (s *Catalog) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.Slug == "" {
		product.Slug = models.Slugify(product.Title)
	}
	if product.TargetAudience == "" {
		product.TargetAudience = "unisex"
	}
	if len(product.Images) > 0 {
		product.Image = product.Images[0]
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	if product.IsFeatured {
		featured, err := s.products.CountFeatured(ctx)
		if err != nil {
			return nil, err
		}
		if featured >= models.MaxFeaturedProducts {
			return nil, models.NewValidationError(
				fmt.Sprintf("maximum %d featured products allowed", models.MaxFeaturedProducts))
		}
	}

	now := s.now()
	product.IsActive = true
	product.CreatedAt = now
	product.UpdatedAt = now

	saved, err := s.products.Insert(ctx, product)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("slug", saved.Slug).Msg("product created")
	return saved, nil
}

// Get fetches one product by id.
func (s *Catalog) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.products.FindByID(ctx, id)
}

// List returns active products matching the filter.
func (s *Catalog) List(ctx context.Context, filter store.ProductFilter) ([]models.Product, error) {
	return s.products.Find(ctx, filter)
}

// Names returns a short id+title listing for admin pickers.
func (s *Catalog) Names(ctx context.Context) ([]models.Product, error) {
	return s.products.Names(ctx, 10)
}

// Update validates and replaces the mutable fields of a product.
func (s *Catalog) Update(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	if product.Slug == "" {
		product.Slug = models.Slugify(product.Title)
	}
	if len(product.Images) > 0 {
		product.Image = product.Images[0]
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	product.UpdatedAt = s.now()
	return s.products.Update(ctx, id, product)
}

// Delete removes a product. Orders keep their own title/price snapshots, so
// deleting a product never alters placed orders.
func (s *Catalog) Delete(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}
