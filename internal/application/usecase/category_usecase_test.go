// internal/application/usecase/category_usecase_test.go
package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/internal/adapters/out/memory"
	usecase "catalog/internal/application/usecase"
	categorydom "catalog/internal/domain/category"
	productdom "catalog/internal/domain/product"
)

func newCategoryFixture() (*usecase.CategoryUsecase, *usecase.ProductUsecase) {
	store := memory.NewStoreMem()
	ids := usecase.NewIDAllocator(store)
	return usecase.NewCategoryUsecase(store, ids), usecase.NewProductUsecase(store, ids)
}

func TestCategoryCreate_CapitalizesName(t *testing.T) {
	catUC, _ := newCategoryFixture()
	ctx := context.Background()

	for _, raw := range []string{"shoes", "SHOES", "ShOeS"} {
		c, err := catUC.Create(ctx, raw)
		require.NoError(t, err)
		assert.Equal(t, "Shoes", c.Name, "input %q", raw)
	}
}

func TestCategoryCreate_SequentialIDs(t *testing.T) {
	catUC, _ := newCategoryFixture()
	ctx := context.Background()

	c1, err := catUC.Create(ctx, "books")
	require.NoError(t, err)
	c2, err := catUC.Create(ctx, "games")
	require.NoError(t, err)

	assert.Equal(t, "1", c1.ID)
	assert.Equal(t, "2", c2.ID)
	assert.False(t, c1.CreatedAt.IsZero())
}

func TestCategoryCreate_EmptyName(t *testing.T) {
	catUC, _ := newCategoryFixture()

	_, err := catUC.Create(context.Background(), "   ")
	assert.ErrorIs(t, err, categorydom.ErrInvalidName)
}

func TestCategoryList(t *testing.T) {
	catUC, _ := newCategoryFixture()
	ctx := context.Background()

	_, err := catUC.Create(ctx, "books")
	require.NoError(t, err)
	_, err = catUC.Create(ctx, "games")
	require.NoError(t, err)

	got, err := catUC.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	names := []string{got[0].Name, got[1].Name}
	assert.ElementsMatch(t, []string{"Books", "Games"}, names)
}

func TestCategoryUpdate_MergesAndStamps(t *testing.T) {
	catUC, _ := newCategoryFixture()
	ctx := context.Background()

	c, err := catUC.Create(ctx, "books")
	require.NoError(t, err)

	newName := "literature"
	updated, err := catUC.UpdateByID(ctx, c.ID, categorydom.Patch{Name: &newName})
	require.NoError(t, err)

	// Update stores the name as given; no re-capitalization.
	assert.Equal(t, "literature", updated.Name)
	assert.Equal(t, c.ID, updated.ID)
	require.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, c.CreatedAt.Unix(), updated.CreatedAt.Unix(), "createdAt must survive the merge")
}

func TestCategoryUpdate_NotFound(t *testing.T) {
	catUC, _ := newCategoryFixture()

	name := "x"
	_, err := catUC.UpdateByID(context.Background(), "999", categorydom.Patch{Name: &name})
	assert.ErrorIs(t, err, categorydom.ErrNotFound)
}

func TestCategoryDelete_NotFound(t *testing.T) {
	catUC, _ := newCategoryFixture()

	err := catUC.DeleteByID(context.Background(), "999")
	assert.ErrorIs(t, err, categorydom.ErrNotFound)
}

func TestCategoryDelete_CascadesLastCategory(t *testing.T) {
	catUC, prodUC := newCategoryFixture()
	ctx := context.Background()

	c, err := catUC.Create(ctx, "shoes")
	require.NoError(t, err)

	p, err := prodUC.Create(ctx, productdom.Product{
		Name:        "Sneaker",
		Price:       100,
		CategoryIDs: []string{"Shoes"},
	})
	require.NoError(t, err)
	require.Equal(t, productdom.StatusActive, p.Status)

	require.NoError(t, catUC.DeleteByID(ctx, c.ID))

	got, err := prodUC.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.CategoryIDs)
	assert.Equal(t, productdom.StatusInactive, got.Status, "last category removed: product goes inactive")
	assert.NotNil(t, got.UpdatedAt)

	categories, err := catUC.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestCategoryDelete_PartialRemovalKeepsStatus(t *testing.T) {
	catUC, prodUC := newCategoryFixture()
	ctx := context.Background()

	c1, err := catUC.Create(ctx, "shoes")
	require.NoError(t, err)
	_, err = catUC.Create(ctx, "sports")
	require.NoError(t, err)

	p, err := prodUC.Create(ctx, productdom.Product{
		Name:        "Sneaker",
		Price:       100,
		CategoryIDs: []string{"Shoes", "Sports"},
	})
	require.NoError(t, err)

	require.NoError(t, catUC.DeleteByID(ctx, c1.ID))

	got, err := prodUC.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sports"}, got.CategoryIDs)
	assert.Equal(t, productdom.StatusActive, got.Status, "product still has a category: status unchanged")
}

func TestCategoryDelete_UntouchedProductsStayUntouched(t *testing.T) {
	catUC, prodUC := newCategoryFixture()
	ctx := context.Background()

	c, err := catUC.Create(ctx, "shoes")
	require.NoError(t, err)

	p, err := prodUC.Create(ctx, productdom.Product{
		Name:        "Novel",
		Price:       15,
		CategoryIDs: []string{"Books"},
	})
	require.NoError(t, err)

	require.NoError(t, catUC.DeleteByID(ctx, c.ID))

	got, err := prodUC.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Books"}, got.CategoryIDs)
	assert.Nil(t, got.UpdatedAt, "unrelated products must not be rewritten")
}
