// internal/application/docstore/docstore.go
package docstore

import (
	"context"
	"errors"
)

// Doc is one keyed, semi-structured record as the backing store returns it.
// Values are store-native (string, int64, float64, time.Time, []any, ...).
type Doc = map[string]any

// KeyedDoc pairs a document with its key for ListAll results.
type KeyedDoc struct {
	Key string
	Doc Doc
}

// ErrNotFound is returned by Get/Update/Delete when no document exists at the key.
var ErrNotFound = errors.New("docstore: document not found")

// Store is the persistence capability the usecases depend on.
// Implementations: adapters/out/firestore (production), adapters/out/memory (local/tests).
type Store interface {
	Get(ctx context.Context, collection, key string) (Doc, error)
	// Set creates or fully overwrites the document at key.
	Set(ctx context.Context, collection, key string, data Doc) error
	// Update merges data over the existing document; ErrNotFound if absent.
	Update(ctx context.Context, collection, key string, data Doc) error
	Delete(ctx context.Context, collection, key string) error
	ListAll(ctx context.Context, collection string) ([]KeyedDoc, error)

	// RunTransaction runs fn as one atomic read-modify-write unit.
	// Conflicting transactions on the same documents are serialized (and
	// retried) by the store; fn must be safe to re-run.
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Txn) error) error

	// Batch stages writes that commit together, without transaction isolation.
	Batch() Batch
}

// Txn is the handle fn receives inside RunTransaction.
type Txn interface {
	Get(collection, key string) (Doc, error)
	Set(collection, key string, data Doc) error
	Update(collection, key string, data Doc) error
}

// Batch stages merge-updates and commits them atomically.
type Batch interface {
	Update(collection, key string, data Doc)
	Commit(ctx context.Context) error
}
