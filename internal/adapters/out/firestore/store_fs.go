// internal/adapters/out/firestore/store_fs.go
package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"catalog/internal/application/docstore"
)

// StoreFS is the Firestore-backed implementation of the document store port.
//
// Transaction conflicts on the counter documents are retried by the client
// library itself; callers only see the final commit error.
type StoreFS struct {
	Client *firestore.Client
}

func NewStoreFS(client *firestore.Client) *StoreFS {
	return &StoreFS{Client: client}
}

func (s *StoreFS) doc(collection, key string) (*firestore.DocumentRef, error) {
	if s == nil || s.Client == nil {
		return nil, errors.New("store_fs: firestore client is nil")
	}
	collection = strings.TrimSpace(collection)
	key = strings.TrimSpace(key)
	if collection == "" || key == "" {
		return nil, docstore.ErrNotFound
	}
	return s.Client.Collection(collection).Doc(key), nil
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return docstore.ErrNotFound
	}
	return err
}

// mergeUpdates converts a merge document into Firestore field updates.
// Top-level keys only; that is the whole update surface of this system.
func mergeUpdates(data docstore.Doc) []firestore.Update {
	updates := make([]firestore.Update, 0, len(data))
	for k, v := range data {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	return updates
}

func (s *StoreFS) Get(ctx context.Context, collection, key string) (docstore.Doc, error) {
	ref, err := s.doc(collection, key)
	if err != nil {
		return nil, err
	}
	snap, err := ref.Get(ctx)
	if err != nil {
		return nil, mapErr(err)
	}
	return snap.Data(), nil
}

func (s *StoreFS) Set(ctx context.Context, collection, key string, data docstore.Doc) error {
	ref, err := s.doc(collection, key)
	if err != nil {
		return err
	}
	_, err = ref.Set(ctx, data)
	return mapErr(err)
}

func (s *StoreFS) Update(ctx context.Context, collection, key string, data docstore.Doc) error {
	ref, err := s.doc(collection, key)
	if err != nil {
		return err
	}
	_, err = ref.Update(ctx, mergeUpdates(data))
	return mapErr(err)
}

func (s *StoreFS) Delete(ctx context.Context, collection, key string) error {
	ref, err := s.doc(collection, key)
	if err != nil {
		return err
	}
	_, err = ref.Delete(ctx)
	return mapErr(err)
}

func (s *StoreFS) ListAll(ctx context.Context, collection string) ([]docstore.KeyedDoc, error) {
	if s == nil || s.Client == nil {
		return nil, errors.New("store_fs: firestore client is nil")
	}
	it := s.Client.Collection(collection).Documents(ctx)
	defer it.Stop()

	var out []docstore.KeyedDoc
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("store_fs: list %s: %w", collection, err)
		}
		out = append(out, docstore.KeyedDoc{Key: snap.Ref.ID, Doc: snap.Data()})
	}
	return out, nil
}

func (s *StoreFS) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx docstore.Txn) error) error {
	if s == nil || s.Client == nil {
		return errors.New("store_fs: firestore client is nil")
	}
	return s.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		return fn(ctx, &txnFS{store: s, tx: tx})
	})
}

type txnFS struct {
	store *StoreFS
	tx    *firestore.Transaction
}

func (t *txnFS) Get(collection, key string) (docstore.Doc, error) {
	ref, err := t.store.doc(collection, key)
	if err != nil {
		return nil, err
	}
	snap, err := t.tx.Get(ref)
	if err != nil {
		return nil, mapErr(err)
	}
	return snap.Data(), nil
}

func (t *txnFS) Set(collection, key string, data docstore.Doc) error {
	ref, err := t.store.doc(collection, key)
	if err != nil {
		return err
	}
	return mapErr(t.tx.Set(ref, data))
}

func (t *txnFS) Update(collection, key string, data docstore.Doc) error {
	ref, err := t.store.doc(collection, key)
	if err != nil {
		return err
	}
	return mapErr(t.tx.Update(ref, mergeUpdates(data)))
}

func (s *StoreFS) Batch() docstore.Batch {
	return &batchFS{store: s, batch: s.Client.Batch()}
}

type batchFS struct {
	store *StoreFS
	batch *firestore.WriteBatch
	count int
	err   error
}

func (b *batchFS) Update(collection, key string, data docstore.Doc) {
	ref, err := b.store.doc(collection, key)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return
	}
	b.batch.Update(ref, mergeUpdates(data))
	b.count++
}

func (b *batchFS) Commit(ctx context.Context) error {
	if b.err != nil {
		return b.err
	}
	if b.count == 0 {
		return nil
	}
	_, err := b.batch.Commit(ctx)
	return mapErr(err)
}
