package service

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/erp-service/internal/persistence"
)

type catalogFixture struct {
	service  *CatalogService
	products *fakeProductRepo
}

func newCatalogFixture(cache *persistence.Redis) *catalogFixture {
	products := newFakeProductRepo()
	return &catalogFixture{
		service:  NewCatalogService(products, cache, zap.NewNop()),
		products: products,
	}
}

func catalogInput(name, price string, quantity int) ProductInput {
	return ProductInput{Name: name, Price: decimal.RequireFromString(price), Quantity: quantity}
}

// unreachableCache returns a cache client pointed at a closed port so every
// redis operation fails fast.
func unreachableCache() *persistence.Redis {
	return &persistence.Redis{Client: redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})}
}

func TestProductCreate_Validation(t *testing.T) {
	f := newCatalogFixture(nil)

	for name, in := range map[string]ProductInput{
		"empty name":        catalogInput("", "9.99", 1),
		"zero price":        catalogInput("Widget", "0", 1),
		"negative price":    catalogInput("Widget", "-1.00", 1),
		"negative quantity": catalogInput("Widget", "9.99", -1),
	} {
		_, err := f.service.Create(context.Background(), in)
		de := domainErr(t, err)
		assert.Equal(t, "VALIDATION_FAILED", de.Code, name)
	}
	assert.Empty(t, f.products.products, "nothing may be stored on rejection")
}

func TestProductCreate_ZeroQuantityAllowed(t *testing.T) {
	f := newCatalogFixture(nil)

	product, err := f.service.Create(context.Background(), catalogInput("Widget", "9.99", 0))
	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, 0, product.Quantity)

	stored, err := f.products.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.True(t, stored.Price.Equal(decimal.RequireFromString("9.99")))
}

func TestProductUpdate(t *testing.T) {
	f := newCatalogFixture(nil)
	created, err := f.service.Create(context.Background(), catalogInput("Widget", "9.99", 5))
	require.NoError(t, err)

	updated, err := f.service.Update(context.Background(), created.ID, catalogInput("Widget v2", "12.00", 8))
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("12.00")))
	assert.Equal(t, 8, updated.Quantity)

	_, err = f.service.Update(context.Background(), created.ID, catalogInput("", "12.00", 8))
	assert.Equal(t, "VALIDATION_FAILED", domainErr(t, err).Code)
}

func TestProductUpdate_MissingNotFound(t *testing.T) {
	f := newCatalogFixture(nil)

	_, err := f.service.Update(context.Background(), "missing-product", catalogInput("Widget", "9.99", 1))
	de := domainErr(t, err)
	assert.Equal(t, "NOT_FOUND", de.Code)
	assert.Equal(t, "missing-product", de.Details["product_id"])
}

func TestProductDelete(t *testing.T) {
	f := newCatalogFixture(nil)
	created, err := f.service.Create(context.Background(), catalogInput("Widget", "9.99", 5))
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(context.Background(), created.ID))

	_, err = f.service.GetByID(context.Background(), created.ID)
	assert.Equal(t, "NOT_FOUND", domainErr(t, err).Code)

	assert.Equal(t, "NOT_FOUND", domainErr(t, f.service.Delete(context.Background(), created.ID)).Code)
}

func TestProductGetByID_MissingNotFound(t *testing.T) {
	f := newCatalogFixture(nil)

	_, err := f.service.GetByID(context.Background(), "missing-product")
	assert.Equal(t, "NOT_FOUND", domainErr(t, err).Code)
}

func TestProductList_NilCache(t *testing.T) {
	f := newCatalogFixture(nil)
	_, err := f.service.Create(context.Background(), catalogInput("Widget", "9.99", 5))
	require.NoError(t, err)
	_, err = f.service.Create(context.Background(), catalogInput("Gadget", "0.50", 3))
	require.NoError(t, err)

	products, err := f.service.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestProductList_UnreachableCacheFallsBackToDatabase(t *testing.T) {
	cache := unreachableCache()
	defer cache.Close()
	f := newCatalogFixture(cache)

	created, err := f.service.Create(context.Background(), catalogInput("Widget", "9.99", 5))
	require.NoError(t, err, "a failed cache invalidation must not fail the write")

	products, err := f.service.List(context.Background())
	require.NoError(t, err, "cache failures must degrade to the database")
	require.Len(t, products, 1)
	assert.Equal(t, created.ID, products[0].ID)
}
