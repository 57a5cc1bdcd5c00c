package storage

import (
	"context"
	"sort"
	"sync"

	"waitlist/internal/constant"
)

// MemoryStore keeps documents in process memory. Used by tests and local runs.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string]map[string]Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string]Document)}
}

func (s *MemoryStore) Get(ctx context.Context, collection, key string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, constant.NewStoreError("get", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[collection][key]
	if !ok {
		return Document{}, constant.ErrNotFound
	}
	return copyDocument(doc), nil
}

func (s *MemoryStore) Set(ctx context.Context, collection, key string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return constant.NewStoreError("set", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.docs[collection][key]
	s.put(collection, key, body, current.Version+1)
	return nil
}

func (s *MemoryStore) CompareAndSet(ctx context.Context, collection, key string, expectedVersion int64, body []byte) error {
	if err := ctx.Err(); err != nil {
		return constant.NewStoreError("compare and set", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.docs[collection][key]
	if current.Version != expectedVersion {
		return constant.ErrVersionConflict
	}
	s.put(collection, key, body, expectedVersion+1)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, collection string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, constant.NewStoreError("list", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Document, 0, len(s.docs[collection]))
	for _, doc := range s.docs[collection] {
		out = append(out, copyDocument(doc))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *MemoryStore) put(collection, key string, body []byte, version int64) {
	if s.docs[collection] == nil {
		s.docs[collection] = make(map[string]Document)
	}
	s.docs[collection][key] = Document{
		Key:     key,
		Body:    append([]byte(nil), body...),
		Version: version,
	}
}

func copyDocument(doc Document) Document {
	doc.Body = append([]byte(nil), doc.Body...)
	return doc
}
