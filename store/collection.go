package store

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// Result is what a fetch or a live subscription hands to its caller.
type Result struct {
	Data    []Document `json:"data"`
	Loading bool       `json:"loading"`
	Error   string     `json:"error,omitempty"`
}

// Collection binds a Store to one collection path and adds the record
// conventions every caller relies on: ids on every record, createdAt and
// updatedAt stamped from the server clock, and the last error kept for
// display.
type Collection struct {
	store Store
	path  string
	now   func() time.Time

	mu      sync.Mutex
	lastErr string
}

type Option func(*Collection)

// WithClock replaces the server clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Collection) { c.now = now }
}

func NewCollection(st Store, path string, opts ...Option) *Collection {
	c := &Collection{store: st, path: path, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Collection) Path() string {
	return c.path
}

// In returns the same collection bound to tx, for use inside
// Store.RunInTransaction.
func (c *Collection) In(tx Store) *Collection {
	return &Collection{store: tx, path: c.path, now: c.now}
}

// Sub returns the sub-collection name under record id.
func (c *Collection) Sub(id, name string) *Collection {
	return &Collection{store: c.store, path: Join(c.path, id, name), now: c.now}
}

// Find runs q once and returns the matching records.
func (c *Collection) Find(ctx context.Context, q Query) ([]Document, error) {
	docs, err := c.store.Find(ctx, c.path, q)
	if err != nil {
		return nil, c.fail("find", err)
	}
	return docs, nil
}

// Fetch runs q once and reports the outcome as a Result.
func (c *Collection) Fetch(ctx context.Context, q Query) Result {
	docs, err := c.Find(ctx, q)
	if err != nil {
		return Result{Data: []Document{}, Error: err.Error()}
	}
	return Result{Data: docs}
}

// Subscribe delivers the current result of q to fn, then the complete,
// re-sorted, re-limited result once per change to the collection. It blocks
// until ctx is done (returning nil) or a fetch or the change feed fails, in
// which case fn receives the error and Subscribe returns it.
func (c *Collection) Subscribe(ctx context.Context, q Query, fn func(Result)) error {
	if err := q.Validate(); err != nil {
		fn(Result{Data: []Document{}, Error: err.Error()})
		return err
	}
	changes, err := c.store.Watch(ctx, c.path)
	if err != nil {
		err = c.fail("watch", err)
		fn(Result{Data: []Document{}, Error: err.Error()})
		return err
	}

	emit := func() error {
		docs, err := c.Find(ctx, q)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fn(Result{Data: []Document{}, Error: err.Error()})
			return err
		}
		fn(Result{Data: docs})
		return nil
	}

	if err := emit(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				err := c.fail("watch", ErrWatchClosed)
				fn(Result{Data: []Document{}, Error: err.Error()})
				return err
			}
			if ctx.Err() != nil {
				return nil
			}
			if err := emit(); err != nil {
				return err
			}
		}
	}
}

// SubscribeDocument is Subscribe narrowed to the record id. Data holds the
// record, or nothing while it does not exist.
func (c *Collection) SubscribeDocument(ctx context.Context, id string, fn func(Result)) error {
	if err := checkID(id); err != nil {
		err = c.fail("watch", err)
		fn(Result{Data: []Document{}, Error: err.Error()})
		return err
	}
	return c.Subscribe(ctx, Query{Where: []Filter{Where("id", OpEqual, id)}, Limit: 1}, fn)
}

// Document fetches a single record.
func (c *Collection) Document(ctx context.Context, id string) (Document, error) {
	doc, err := c.store.Get(ctx, c.path, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.setError("Document not found")
			return nil, err
		}
		return nil, c.fail("get", err)
	}
	return doc, nil
}

// Get fetches a single record and decodes it into out.
func (c *Collection) Get(ctx context.Context, id string, out interface{}) error {
	doc, err := c.Document(ctx, id)
	if err != nil {
		return err
	}
	return Decode(doc, out)
}

// Create stores data as a new record stamped with createdAt and updatedAt
// and returns it with its id.
func (c *Collection) Create(ctx context.Context, data interface{}) (Document, error) {
	doc, err := Encode(data)
	if err != nil {
		return nil, c.fail("create", err)
	}
	now := c.now().UTC().Truncate(time.Millisecond)
	doc["createdAt"] = now
	doc["updatedAt"] = now
	id, err := c.store.Insert(ctx, c.path, doc)
	if err != nil {
		return nil, c.fail("create", err)
	}
	doc["id"] = id
	return doc, nil
}

// Set writes data under id, replacing any existing record. Missing
// timestamps are filled in.
func (c *Collection) Set(ctx context.Context, id string, data interface{}) (Document, error) {
	doc, err := Encode(data)
	if err != nil {
		return nil, c.fail("set", err)
	}
	now := c.now().UTC().Truncate(time.Millisecond)
	if _, ok := doc["createdAt"]; !ok {
		doc["createdAt"] = now
	}
	if _, ok := doc["updatedAt"]; !ok {
		doc["updatedAt"] = now
	}
	if err := c.store.Set(ctx, c.path, id, doc); err != nil {
		return nil, c.fail("set", err)
	}
	doc["id"] = id
	return doc, nil
}

// Update merges fields into record id and stamps updatedAt.
func (c *Collection) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	doc := make(Document, len(fields)+1)
	for k, v := range fields {
		doc[k] = normalize(v)
	}
	doc["updatedAt"] = c.now().UTC().Truncate(time.Millisecond)
	if err := c.store.Update(ctx, c.path, id, doc); err != nil {
		return c.fail("update", err)
	}
	return nil
}

func (c *Collection) Remove(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, c.path, id); err != nil {
		return c.fail("remove", err)
	}
	return nil
}

// IncrementField atomically adds delta to field of record id.
func (c *Collection) IncrementField(ctx context.Context, id, field string, delta int64) error {
	if err := c.store.Increment(ctx, c.path, id, field, delta); err != nil {
		return c.fail("increment", err)
	}
	return nil
}

// LastError is the message of the most recent failed operation, or "".
func (c *Collection) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Collection) fail(op string, err error) error {
	if !errors.Is(err, context.Canceled) {
		log.Printf("[store] %s %s failed: %v", op, c.path, err)
	}
	c.setError(err.Error())
	return err
}

func (c *Collection) setError(msg string) {
	c.mu.Lock()
	c.lastErr = msg
	c.mu.Unlock()
}
