// internal/application/usecase/id_allocator.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog/internal/application/docstore"
	"catalog/internal/domain/common"
)

const (
	countersCollection = "counters"

	// Entity types with independent counters.
	EntityCategory = "category"
	EntityProduct  = "product"
)

// IDAllocator mints strictly increasing numeric IDs per entity type.
//
// The counter document counters/<entityType>_id_counter holds {currentId}.
// All reads and writes of it happen inside one store transaction; uniqueness
// under concurrent callers comes from the store's isolation, not from any
// in-process locking here.
type IDAllocator struct {
	store docstore.Store
}

func NewIDAllocator(store docstore.Store) *IDAllocator {
	return &IDAllocator{store: store}
}

// NextID allocates the next ID for entityType. The first allocation is 1.
// A commit failure surfaces as-is; the caller must fail rather than guess.
func (a *IDAllocator) NextID(ctx context.Context, entityType string) (int64, error) {
	entityType = strings.TrimSpace(entityType)
	if entityType == "" {
		return 0, errors.New("id_allocator: entity type is empty")
	}
	counterDoc := entityType + "_id_counter"

	var newID int64
	err := a.store.RunTransaction(ctx, func(ctx context.Context, tx docstore.Txn) error {
		cur, err := tx.Get(countersCollection, counterDoc)
		if err != nil {
			if errors.Is(err, docstore.ErrNotFound) {
				newID = 1
				return tx.Set(countersCollection, counterDoc, docstore.Doc{"currentId": newID})
			}
			return err
		}
		newID = common.AsInt64(cur["currentId"]) + 1
		return tx.Update(countersCollection, counterDoc, docstore.Doc{"currentId": newID})
	})
	if err != nil {
		return 0, fmt.Errorf("id_allocator: allocate %s: %w", entityType, err)
	}
	return newID, nil
}
