package services

import (
	"context"
	"testing"

	"auroxa/models"
	"auroxa/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeProductStore struct {
	products map[string]*models.Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: make(map[string]*models.Product)}
}

func (f *fakeProductStore) Insert(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.ID = primitive.NewObjectID()
	copied := *product
	f.products[product.ID.Hex()] = &copied
	return product, nil
}

func (f *fakeProductStore) FindByID(ctx context.Context, id string) (*models.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, store.ErrInvalidID
	}
	product, ok := f.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *product
	return &copied, nil
}

func (f *fakeProductStore) Find(ctx context.Context, filter store.ProductFilter) ([]models.Product, error) {
	var out []models.Product
	for _, product := range f.products {
		if filter.Featured && !product.IsFeatured {
			continue
		}
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		out = append(out, *product)
	}
	return out, nil
}

func (f *fakeProductStore) Names(ctx context.Context, limit int64) ([]models.Product, error) {
	var out []models.Product
	for _, product := range f.products {
		if int64(len(out)) >= limit {
			break
		}
		out = append(out, models.Product{ID: product.ID, Title: product.Title})
	}
	return out, nil
}

func (f *fakeProductStore) CountFeatured(ctx context.Context) (int64, error) {
	var n int64
	for _, product := range f.products {
		if product.IsFeatured {
			n++
		}
	}
	return n, nil
}

func (f *fakeProductStore) Update(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	existing, ok := f.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *product
	copied.ID = existing.ID
	f.products[id] = &copied
	result := copied
	return &result, nil
}

func (f *fakeProductStore) SetRating(ctx context.Context, id primitive.ObjectID, rating float64, reviewCount int) error {
	product, ok := f.products[id.Hex()]
	if !ok {
		return store.ErrNotFound
	}
	product.Rating = rating
	product.ReviewCount = reviewCount
	return nil
}

func (f *fakeProductStore) Delete(ctx context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func testProduct(title string) *models.Product {
	return &models.Product{
		Title:          title,
		Description:    "A timeless piece.",
		Category:       "topwear",
		TargetAudience: "unisex",
		Images:         []string{"https://cdn.example.com/p.jpg"},
		Price:          4500,
		Stock:          10,
	}
}

func newCatalog(products ProductStore) *Catalog {
	return NewCatalog(products, zerolog.Nop())
}

func TestCatalogCreateGeneratesSlug(t *testing.T) {
	products := newFakeProductStore()
	svc := newCatalog(products)

	saved, err := svc.Create(context.Background(), testProduct("Classic Denim Jacket"))
	require.NoError(t, err)

	assert.Equal(t, "classic-denim-jacket", saved.Slug)
	assert.True(t, saved.IsActive)
	assert.Equal(t, "https://cdn.example.com/p.jpg", saved.Image)
	assert.False(t, saved.CreatedAt.IsZero())
}

func TestCatalogCreateKeepsExplicitSlug(t *testing.T) {
	products := newFakeProductStore()
	svc := newCatalog(products)

	product := testProduct("Classic Denim Jacket")
	product.Slug = "denim-jacket-2024"
	saved, err := svc.Create(context.Background(), product)
	require.NoError(t, err)
	assert.Equal(t, "denim-jacket-2024", saved.Slug)
}

func TestCatalogCreateRejectsInvalidDiscount(t *testing.T) {
	products := newFakeProductStore()
	svc := newCatalog(products)

	product := testProduct("Classic Denim Jacket")
	discount := product.Price + 100
	product.DiscountPrice = &discount

	_, err := svc.Create(context.Background(), product)
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Empty(t, products.products)
}

func TestCatalogFeaturedCap(t *testing.T) {
	products := newFakeProductStore()
	svc := newCatalog(products)

	for i := 0; i < models.MaxFeaturedProducts; i++ {
		product := testProduct("Featured Piece")
		product.Slug = models.Slugify(product.Title) + string(rune('a'+i))
		product.IsFeatured = true
		_, err := svc.Create(context.Background(), product)
		require.NoError(t, err)
	}

	extra := testProduct("One Too Many")
	extra.IsFeatured = true
	_, err := svc.Create(context.Background(), extra)

	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "4 featured products")

	// non-featured products are unaffected by the cap
	_, err = svc.Create(context.Background(), testProduct("Plain Piece"))
	assert.NoError(t, err)
}

func TestCatalogUpdate(t *testing.T) {
	products := newFakeProductStore()
	svc := newCatalog(products)

	saved, err := svc.Create(context.Background(), testProduct("Classic Denim Jacket"))
	require.NoError(t, err)

	saved.Price = 5200
	updated, err := svc.Update(context.Background(), saved.ID.Hex(), saved)
	require.NoError(t, err)
	assert.Equal(t, 5200.0, updated.Price)
}

func TestCatalogDelete(t *testing.T) {
	products := newFakeProductStore()
	svc := newCatalog(products)

	saved, err := svc.Create(context.Background(), testProduct("Classic Denim Jacket"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), saved.ID.Hex()))
	_, err = svc.Get(context.Background(), saved.ID.Hex())
	assert.ErrorIs(t, err, store.ErrNotFound)
}
