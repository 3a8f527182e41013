// internal/application/usecase/product_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"catalog/internal/application/docstore"
	productdom "catalog/internal/domain/product"
)

const productsCollection = "products"

// ProductUsecase orchestrates product CRUD. Products are the leaf side of the
// category relation: deletes here never cascade anywhere.
type ProductUsecase struct {
	store docstore.Store
	ids   *IDAllocator
}

func NewProductUsecase(store docstore.Store, ids *IDAllocator) *ProductUsecase {
	return &ProductUsecase{store: store, ids: ids}
}

// Create allocates an ID and persists the product. Category references are
// soft (by value); no existence check is performed at write time.
func (u *ProductUsecase) Create(ctx context.Context, p productdom.Product) (productdom.Product, error) {
	if err := p.Validate(); err != nil {
		return productdom.Product{}, err
	}
	if p.Status == "" {
		p.Status = productdom.StatusActive
	}
	if p.CategoryIDs == nil {
		p.CategoryIDs = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}

	numberID, err := u.ids.NextID(ctx, EntityProduct)
	if err != nil {
		return productdom.Product{}, err
	}
	p.ID = strconv.FormatInt(numberID, 10)
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = nil

	if err := u.store.Set(ctx, productsCollection, p.ID, p.ToDoc()); err != nil {
		return productdom.Product{}, fmt.Errorf("product: create %s: %w", p.ID, err)
	}
	return p, nil
}

// List returns every product; order is store-defined.
func (u *ProductUsecase) List(ctx context.Context) ([]productdom.Product, error) {
	docs, err := u.store.ListAll(ctx, productsCollection)
	if err != nil {
		return nil, err
	}
	out := make([]productdom.Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, productdom.FromDoc(d.Key, d.Doc))
	}
	return out, nil
}

func (u *ProductUsecase) GetByID(ctx context.Context, id string) (productdom.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return productdom.Product{}, productdom.ErrNotFound
	}
	doc, err := u.store.Get(ctx, productsCollection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return productdom.Product{}, productdom.ErrNotFound
		}
		return productdom.Product{}, err
	}
	return productdom.FromDoc(id, doc), nil
}

// UpdateByID merges the patch over the stored document, stamps updatedAt and
// returns the re-read entity. Unpatched fields are left untouched.
func (u *ProductUsecase) UpdateByID(ctx context.Context, id string, patch productdom.Patch) (productdom.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return productdom.Product{}, productdom.ErrNotFound
	}

	if _, err := u.store.Get(ctx, productsCollection, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return productdom.Product{}, productdom.ErrNotFound
		}
		return productdom.Product{}, err
	}

	updates := docstore.Doc{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return productdom.Product{}, productdom.ErrInvalidPrice
		}
		updates["price"] = *patch.Price
	}
	if patch.CategoryIDs != nil {
		updates["category_id"] = *patch.CategoryIDs
	}
	if patch.Images != nil {
		updates["images"] = *patch.Images
	}
	if patch.StockQuantity != nil {
		updates["stock_quantity"] = *patch.StockQuantity
	}
	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return productdom.Product{}, productdom.ErrInvalidStatus
		}
		updates["status"] = string(*patch.Status)
	}

	if err := u.store.Update(ctx, productsCollection, id, updates); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return productdom.Product{}, productdom.ErrNotFound
		}
		return productdom.Product{}, err
	}

	doc, err := u.store.Get(ctx, productsCollection, id)
	if err != nil {
		return productdom.Product{}, err
	}
	return productdom.FromDoc(id, doc), nil
}

// DeleteByID removes the product. ErrNotFound when absent; no cascade.
func (u *ProductUsecase) DeleteByID(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return productdom.ErrNotFound
	}
	if _, err := u.store.Get(ctx, productsCollection, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return productdom.ErrNotFound
		}
		return err
	}
	if err := u.store.Delete(ctx, productsCollection, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return productdom.ErrNotFound
		}
		return err
	}
	return nil
}
