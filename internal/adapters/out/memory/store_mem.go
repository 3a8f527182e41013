// internal/adapters/out/memory/store_mem.go
package memory

import (
	"context"
	"fmt"
	"sync"

	"catalog/internal/application/docstore"
)

// StoreMem is an in-process implementation of the document store port.
// Used by tests and by STORE_BACKEND=memory local runs, so the API can be
// exercised without a Firestore project.
//
// Transactions are serialized by a single mutex; that is enough to give the
// counter allocator the isolation the port promises.
type StoreMem struct {
	mu          sync.Mutex
	collections map[string]map[string]docstore.Doc
}

func NewStoreMem() *StoreMem {
	return &StoreMem{collections: make(map[string]map[string]docstore.Doc)}
}

func (s *StoreMem) col(name string) map[string]docstore.Doc {
	c, ok := s.collections[name]
	if !ok {
		c = make(map[string]docstore.Doc)
		s.collections[name] = c
	}
	return c
}

// cloneDoc copies one level of nesting deep enough for the document shapes
// this system stores (scalars, time.Time, string slices).
func cloneDoc(d docstore.Doc) docstore.Doc {
	if d == nil {
		return nil
	}
	out := make(docstore.Doc, len(d))
	for k, v := range d {
		switch vv := v.(type) {
		case []string:
			cp := make([]string, len(vv))
			copy(cp, vv)
			out[k] = cp
		case []any:
			cp := make([]any, len(vv))
			copy(cp, vv)
			out[k] = cp
		default:
			out[k] = v
		}
	}
	return out
}

func (s *StoreMem) getLocked(collection, key string) (docstore.Doc, error) {
	d, ok := s.col(collection)[key]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	return cloneDoc(d), nil
}

func (s *StoreMem) setLocked(collection, key string, data docstore.Doc) {
	s.col(collection)[key] = cloneDoc(data)
}

func (s *StoreMem) updateLocked(collection, key string, data docstore.Doc) error {
	cur, ok := s.col(collection)[key]
	if !ok {
		return docstore.ErrNotFound
	}
	merged := cloneDoc(cur)
	for k, v := range cloneDoc(data) {
		merged[k] = v
	}
	s.col(collection)[key] = merged
	return nil
}

func (s *StoreMem) Get(ctx context.Context, collection, key string) (docstore.Doc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(collection, key)
}

func (s *StoreMem) Set(ctx context.Context, collection, key string, data docstore.Doc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(collection, key, data)
	return nil
}

func (s *StoreMem) Update(ctx context.Context, collection, key string, data docstore.Doc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(collection, key, data)
}

func (s *StoreMem) Delete(ctx context.Context, collection, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.col(collection)[key]; !ok {
		return docstore.ErrNotFound
	}
	delete(s.col(collection), key)
	return nil
}

func (s *StoreMem) ListAll(ctx context.Context, collection string) ([]docstore.KeyedDoc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.col(collection)
	out := make([]docstore.KeyedDoc, 0, len(c))
	for k, d := range c {
		out = append(out, docstore.KeyedDoc{Key: k, Doc: cloneDoc(d)})
	}
	return out, nil
}

func (s *StoreMem) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx docstore.Txn) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, &txnMem{store: s})
}

// txnMem operates on the already-locked store; no nested locking.
type txnMem struct {
	store *StoreMem
}

func (t *txnMem) Get(collection, key string) (docstore.Doc, error) {
	return t.store.getLocked(collection, key)
}

func (t *txnMem) Set(collection, key string, data docstore.Doc) error {
	t.store.setLocked(collection, key, data)
	return nil
}

func (t *txnMem) Update(collection, key string, data docstore.Doc) error {
	return t.store.updateLocked(collection, key, data)
}

func (s *StoreMem) Batch() docstore.Batch {
	return &batchMem{store: s}
}

type batchOp struct {
	collection string
	key        string
	data       docstore.Doc
}

type batchMem struct {
	store *StoreMem
	ops   []batchOp
}

func (b *batchMem) Update(collection, key string, data docstore.Doc) {
	b.ops = append(b.ops, batchOp{collection: collection, key: key, data: cloneDoc(data)})
}

// Commit applies all staged updates under one lock; the first missing target
// aborts the whole batch, matching the backing store's all-or-nothing commit.
func (b *batchMem) Commit(ctx context.Context) error {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	for _, op := range b.ops {
		if _, ok := b.store.col(op.collection)[op.key]; !ok {
			return fmt.Errorf("%w: %s/%s", docstore.ErrNotFound, op.collection, op.key)
		}
	}
	for _, op := range b.ops {
		_ = b.store.updateLocked(op.collection, op.key, op.data)
	}
	b.ops = nil
	return nil
}
