package storage

import "context"

// Document is a stored body together with its revision. Version 0 means the
// document does not exist; the first write produces version 1.
type Document struct {
	Key     string
	Body    []byte
	Version int64
}

// DocumentStore is the persistence contract the queue engine relies on.
//
// Get returns constant.ErrNotFound for a missing document. CompareAndSet
// writes only if the current version equals expectedVersion (0 for "must not
// exist") and returns constant.ErrVersionConflict otherwise. Backend failures
// are reported as *constant.StoreError.
type DocumentStore interface {
	Get(ctx context.Context, collection, key string) (Document, error)
	Set(ctx context.Context, collection, key string, body []byte) error
	CompareAndSet(ctx context.Context, collection, key string, expectedVersion int64, body []byte) error
	List(ctx context.Context, collection string) ([]Document, error)
}
