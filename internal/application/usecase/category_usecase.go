// internal/application/usecase/category_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"catalog/internal/application/docstore"
	categorydom "catalog/internal/domain/category"
	productdom "catalog/internal/domain/product"
)

const categoriesCollection = "categories"

// CategoryUsecase orchestrates category CRUD and owns the cascading delete.
type CategoryUsecase struct {
	store docstore.Store
	ids   *IDAllocator
}

func NewCategoryUsecase(store docstore.Store, ids *IDAllocator) *CategoryUsecase {
	return &CategoryUsecase{store: store, ids: ids}
}

// Create allocates an ID, stores the name in capitalized form and returns the
// full entity. Name normalization happens here only; Update stores as given.
func (u *CategoryUsecase) Create(ctx context.Context, name string) (categorydom.Category, error) {
	if strings.TrimSpace(name) == "" {
		return categorydom.Category{}, categorydom.ErrInvalidName
	}

	numberID, err := u.ids.NextID(ctx, EntityCategory)
	if err != nil {
		return categorydom.Category{}, err
	}

	c := categorydom.Category{
		ID:        strconv.FormatInt(numberID, 10),
		Name:      categorydom.CapitalizeName(name),
		CreatedAt: time.Now().UTC(),
	}
	if err := u.store.Set(ctx, categoriesCollection, c.ID, c.ToDoc()); err != nil {
		return categorydom.Category{}, fmt.Errorf("category: create %s: %w", c.ID, err)
	}
	return c, nil
}

// List returns every category; order is store-defined.
func (u *CategoryUsecase) List(ctx context.Context) ([]categorydom.Category, error) {
	docs, err := u.store.ListAll(ctx, categoriesCollection)
	if err != nil {
		return nil, err
	}
	out := make([]categorydom.Category, 0, len(docs))
	for _, d := range docs {
		out = append(out, categorydom.FromDoc(d.Key, d.Doc))
	}
	return out, nil
}

// UpdateByID merges the patch over the stored document, stamps updatedAt and
// returns the re-read entity. ErrNotFound when no document exists at id.
func (u *CategoryUsecase) UpdateByID(ctx context.Context, id string, patch categorydom.Patch) (categorydom.Category, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return categorydom.Category{}, categorydom.ErrNotFound
	}

	if _, err := u.store.Get(ctx, categoriesCollection, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return categorydom.Category{}, categorydom.ErrNotFound
		}
		return categorydom.Category{}, err
	}

	updates := docstore.Doc{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if err := u.store.Update(ctx, categoriesCollection, id, updates); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return categorydom.Category{}, categorydom.ErrNotFound
		}
		return categorydom.Category{}, err
	}

	doc, err := u.store.Get(ctx, categoriesCollection, id)
	if err != nil {
		return categorydom.Category{}, err
	}
	return categorydom.FromDoc(id, doc), nil
}

// DeleteByID removes the category after detaching it from every product.
//
// Products reference categories by name, so the stored name is read first,
// then every product document is scanned and the staged updates commit as one
// batch BEFORE the category document is deleted. A crash in between leaves
// the category present and the operation safe to retry (removing an already
// removed reference is a no-op).
func (u *CategoryUsecase) DeleteByID(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return categorydom.ErrNotFound
	}

	doc, err := u.store.Get(ctx, categoriesCollection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return categorydom.ErrNotFound
		}
		return err
	}
	name := categorydom.FromDoc(id, doc).Name

	products, err := u.store.ListAll(ctx, productsCollection)
	if err != nil {
		return fmt.Errorf("category: delete %s: scan products: %w", id, err)
	}

	now := time.Now().UTC()
	batch := u.store.Batch()
	staged := 0
	for _, pd := range products {
		p := productdom.FromDoc(pd.Key, pd.Doc)
		remaining := make([]string, 0, len(p.CategoryIDs))
		hit := false
		for _, c := range p.CategoryIDs {
			if c == name {
				hit = true
				continue
			}
			remaining = append(remaining, c)
		}
		if !hit {
			continue
		}

		if len(remaining) == 0 {
			// Last category removed: the product goes dark.
			batch.Update(productsCollection, pd.Key, docstore.Doc{
				"category_id": []string{},
				"status":      string(productdom.StatusInactive),
				"updatedAt":   now,
			})
		} else {
			batch.Update(productsCollection, pd.Key, docstore.Doc{
				"category_id": remaining,
				"updatedAt":   now,
			})
		}
		staged++
	}

	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("category: delete %s: detach products: %w", id, err)
	}
	if staged > 0 {
		log.Printf("[CategoryUsecase] delete id=%s name=%q detached from %d product(s)", id, name, staged)
	}

	if err := u.store.Delete(ctx, categoriesCollection, id); err != nil {
		return fmt.Errorf("category: delete %s: %w", id, err)
	}
	return nil
}
