// Package store is the data-access layer over the remote document store.
//
// Records live in collections addressed by slash separated paths. A top-level
// collection is a single segment ("posts"); a sub-collection hangs off a
// record ("posts/{id}/comments"). Two drivers implement Store: MongoStore for
// production and MemoryStore for tests and local development.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrInvalidPath  = errors.New("invalid collection path")
	ErrInvalidQuery = errors.New("invalid query")
	ErrWatchClosed  = errors.New("live updates stopped")
	// ErrDuplicate reports a write that collides with an existing record id
	// or a unique index.
	ErrDuplicate = errors.New("duplicate record")
)

// Store is the contract both drivers satisfy. Every operation takes the
// collection path of the record(s) it touches.
type Store interface {
	Find(ctx context.Context, path string, q Query) ([]Document, error)
	Get(ctx context.Context, path, id string) (Document, error)
	// Insert writes a new record and returns its id. A non-empty "id" key in
	// doc is used as the record id; otherwise one is generated.
	Insert(ctx context.Context, path string, doc Document) (string, error)
	// Set creates or replaces the record with the given id.
	Set(ctx context.Context, path, id string, doc Document) error
	// Update merges fields into an existing record. Keys may be dotted
	// ("stats.posts") to address nested values.
	Update(ctx context.Context, path, id string, fields Document) error
	Delete(ctx context.Context, path, id string) error
	// Increment atomically adds delta to a numeric field, treating a missing
	// field as zero.
	Increment(ctx context.Context, path, id, field string, delta int64) error
	// Watch signals once per change to the collection until ctx is done, at
	// which point the channel is closed. A channel closed while ctx is still
	// live means the change feed failed.
	Watch(ctx context.Context, path string) (<-chan struct{}, error)
	// RunInTransaction runs fn atomically. Operations inside fn must use the
	// Store and context handed to fn.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
	Close(ctx context.Context) error
}

// Join builds a collection or record path from its segments.
func Join(segments ...string) string {
	return strings.Join(segments, "/")
}

// splitPath validates a collection path and returns the collection name
// segments (even positions) and the parent record path ("" for top level).
func splitPath(path string) (name string, parent string, err error) {
	segs := strings.Split(path, "/")
	if len(segs)%2 == 0 {
		return "", "", fmt.Errorf("%w: %q addresses a record, not a collection", ErrInvalidPath, path)
	}
	names := make([]string, 0, len(segs)/2+1)
	for i, s := range segs {
		if strings.TrimSpace(s) == "" {
			return "", "", fmt.Errorf("%w: %q has an empty segment", ErrInvalidPath, path)
		}
		if i%2 == 0 {
			names = append(names, s)
		}
	}
	if len(segs) > 1 {
		parent = strings.Join(segs[:len(segs)-1], "/")
	}
	return strings.Join(names, "_"), parent, nil
}

func checkID(id string) error {
	if strings.TrimSpace(id) == "" || strings.Contains(id, "/") {
		return fmt.Errorf("%w: bad record id %q", ErrInvalidPath, id)
	}
	return nil
}
