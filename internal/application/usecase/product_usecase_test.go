// internal/application/usecase/product_usecase_test.go
package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/internal/adapters/out/memory"
	usecase "catalog/internal/application/usecase"
	productdom "catalog/internal/domain/product"
)

func newProductUsecase() *usecase.ProductUsecase {
	store := memory.NewStoreMem()
	return usecase.NewProductUsecase(store, usecase.NewIDAllocator(store))
}

func TestProductCreate_RoundTrip(t *testing.T) {
	uc := newProductUsecase()
	ctx := context.Background()

	created, err := uc.Create(ctx, productdom.Product{
		Name:          "Sneaker",
		Description:   "running shoe",
		Price:         99.5,
		CategoryIDs:   []string{"Shoes"},
		Images:        []string{"https://example.com/a.png"},
		StockQuantity: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "1", created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.Description, got.Description)
	assert.Equal(t, created.Price, got.Price)
	assert.Equal(t, created.CategoryIDs, got.CategoryIDs)
	assert.Equal(t, created.Images, got.Images)
	assert.Equal(t, created.StockQuantity, got.StockQuantity)
	assert.Equal(t, created.CreatedAt.Unix(), got.CreatedAt.Unix())
}

func TestProductCreate_Defaults(t *testing.T) {
	uc := newProductUsecase()

	created, err := uc.Create(context.Background(), productdom.Product{Name: "Minimal", Price: 1})
	require.NoError(t, err)

	assert.Equal(t, productdom.StatusActive, created.Status)
	assert.Equal(t, int64(0), created.StockQuantity)
	assert.Equal(t, []string{}, created.CategoryIDs)
	assert.Equal(t, []string{}, created.Images)
	assert.Nil(t, created.UpdatedAt)
}

func TestProductCreate_Validation(t *testing.T) {
	uc := newProductUsecase()
	ctx := context.Background()

	_, err := uc.Create(ctx, productdom.Product{Name: "  ", Price: 1})
	assert.ErrorIs(t, err, productdom.ErrInvalidName)

	_, err = uc.Create(ctx, productdom.Product{Name: "x", Price: -1})
	assert.ErrorIs(t, err, productdom.ErrInvalidPrice)

	_, err = uc.Create(ctx, productdom.Product{Name: "x", Price: 1, Status: "archived"})
	assert.ErrorIs(t, err, productdom.ErrInvalidStatus)
}

func TestProductUpdate_PartialPatch(t *testing.T) {
	uc := newProductUsecase()
	ctx := context.Background()

	created, err := uc.Create(ctx, productdom.Product{
		Name:          "Sneaker",
		Price:         100,
		CategoryIDs:   []string{"Shoes"},
		StockQuantity: 5,
	})
	require.NoError(t, err)

	price := 50.0
	updated, err := uc.UpdateByID(ctx, created.ID, productdom.Patch{Price: &price})
	require.NoError(t, err)

	assert.Equal(t, 50.0, updated.Price)
	assert.Equal(t, "Sneaker", updated.Name, "unpatched fields stay put")
	assert.Equal(t, []string{"Shoes"}, updated.CategoryIDs)
	assert.Equal(t, int64(5), updated.StockQuantity)
	require.NotNil(t, updated.UpdatedAt)
	assert.False(t, updated.UpdatedAt.Before(created.CreatedAt))
}

func TestProductUpdate_InvalidPatch(t *testing.T) {
	uc := newProductUsecase()
	ctx := context.Background()

	created, err := uc.Create(ctx, productdom.Product{Name: "x", Price: 1})
	require.NoError(t, err)

	bad := -5.0
	_, err = uc.UpdateByID(ctx, created.ID, productdom.Patch{Price: &bad})
	assert.ErrorIs(t, err, productdom.ErrInvalidPrice)

	status := productdom.Status("archived")
	_, err = uc.UpdateByID(ctx, created.ID, productdom.Patch{Status: &status})
	assert.ErrorIs(t, err, productdom.ErrInvalidStatus)
}

func TestProductUpdate_NotFound(t *testing.T) {
	uc := newProductUsecase()

	name := "x"
	_, err := uc.UpdateByID(context.Background(), "999", productdom.Patch{Name: &name})
	assert.ErrorIs(t, err, productdom.ErrNotFound)
}

func TestProductDelete(t *testing.T) {
	uc := newProductUsecase()
	ctx := context.Background()

	created, err := uc.Create(ctx, productdom.Product{Name: "x", Price: 1})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteByID(ctx, created.ID))

	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, productdom.ErrNotFound)

	err = uc.DeleteByID(ctx, created.ID)
	assert.ErrorIs(t, err, productdom.ErrNotFound)
}

func TestProductList(t *testing.T) {
	uc := newProductUsecase()
	ctx := context.Background()

	_, err := uc.Create(ctx, productdom.Product{Name: "a", Price: 1})
	require.NoError(t, err)
	_, err = uc.Create(ctx, productdom.Product{Name: "b", Price: 2})
	require.NoError(t, err)

	got, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
