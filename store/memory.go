package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memRecord struct {
	seq  int64
	data Document
}

// MemoryStore keeps every collection in process memory. It backs the unit
// tests and STORE_DRIVER=memory.
type MemoryStore struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	data     map[string]map[string]memRecord
	watchers map[string]map[chan struct{}]struct{}
	seq      int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:     make(map[string]map[string]memRecord),
		watchers: make(map[string]map[chan struct{}]struct{}),
	}
}

func (m *MemoryStore) Find(ctx context.Context, path string, q Query) ([]Document, error) {
	if _, _, err := splitPath(path); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	records := make([]memRecord, 0, len(m.data[path]))
	for _, r := range m.data[path] {
		records = append(records, r)
	}
	m.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool { return records[i].seq < records[j].seq })
	docs := make([]Document, len(records))
	for i, r := range records {
		docs[i] = r.data
	}
	matched := q.Apply(docs)
	out := make([]Document, len(matched))
	for i, d := range matched {
		out[i] = clone(d)
	}
	return out, nil
}

func (m *MemoryStore) Get(ctx context.Context, path, id string) (Document, error) {
	if _, _, err := splitPath(path); err != nil {
		return nil, err
	}
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.data[path][id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(r.data), nil
}

func (m *MemoryStore) Insert(ctx context.Context, path string, doc Document) (string, error) {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return m.insert(ctx, nil, path, doc)
}

func (m *MemoryStore) insert(ctx context.Context, tx *memTx, path string, doc Document) (string, error) {
	id := doc.ID()
	if id == "" {
		id = primitive.NewObjectID().Hex()
	}
	if _, _, err := splitPath(path); err != nil {
		return "", err
	}
	if err := checkID(id); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.data[path][id]; exists {
		return "", fmt.Errorf("%w: insert %s/%s", ErrDuplicate, path, id)
	}
	tx.remember(m, path, id)
	m.put(path, id, doc)
	return id, nil
}

func (m *MemoryStore) Set(ctx context.Context, path, id string, doc Document) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return m.set(ctx, nil, path, id, doc)
}

func (m *MemoryStore) set(ctx context.Context, tx *memTx, path, id string, doc Document) error {
	if _, _, err := splitPath(path); err != nil {
		return err
	}
	if err := checkID(id); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx.remember(m, path, id)
	m.put(path, id, doc)
	return nil
}

func (m *MemoryStore) Update(ctx context.Context, path, id string, fields Document) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return m.update(ctx, nil, path, id, fields)
}

func (m *MemoryStore) update(ctx context.Context, tx *memTx, path, id string, fields Document) error {
	return m.mutate(ctx, tx, path, id, func(d Document) error {
		for k, v := range fields {
			if k == "id" {
				continue
			}
			setPath(d, k, normalize(v))
		}
		return nil
	})
}

func (m *MemoryStore) Increment(ctx context.Context, path, id, field string, delta int64) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return m.increment(ctx, nil, path, id, field, delta)
}

func (m *MemoryStore) increment(ctx context.Context, tx *memTx, path, id, field string, delta int64) error {
	return m.mutate(ctx, tx, path, id, func(d Document) error {
		cur, ok := d.Lookup(field)
		if !ok || cur == nil {
			setPath(d, field, delta)
			return nil
		}
		switch n := cur.(type) {
		case int64:
			setPath(d, field, n+delta)
		case float64:
			setPath(d, field, n+float64(delta))
		default:
			return fmt.Errorf("increment %s: field %q is not numeric", path, field)
		}
		return nil
	})
}

func (m *MemoryStore) Delete(ctx context.Context, path, id string) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return m.delete(ctx, nil, path, id)
}

func (m *MemoryStore) delete(ctx context.Context, tx *memTx, path, id string) error {
	if _, _, err := splitPath(path); err != nil {
		return err
	}
	if err := checkID(id); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[path][id]; !ok {
		return nil
	}
	tx.remember(m, path, id)
	delete(m.data[path], id)
	m.notify(path)
	return nil
}

func (m *MemoryStore) Watch(ctx context.Context, path string) (<-chan struct{}, error) {
	if _, _, err := splitPath(path); err != nil {
		return nil, err
	}
	ch := make(chan struct{}, 256)
	m.mu.Lock()
	if m.watchers[path] == nil {
		m.watchers[path] = make(map[chan struct{}]struct{})
	}
	m.watchers[path][ch] = struct{}{}
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.watchers[path], ch)
		close(ch)
		m.mu.Unlock()
	}()
	return ch, nil
}

// RunInTransaction serialises transactions against each other and against
// plain writes. When fn fails, only the records fn wrote are restored.
func (m *MemoryStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	tx := &memTx{m: m, undo: make(map[string]map[string]*memRecord)}
	if err := fn(ctx, tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

func (m *MemoryStore) Close(context.Context) error {
	return nil
}

func (m *MemoryStore) mutate(ctx context.Context, tx *memTx, path, id string, fn func(Document) error) error {
	if _, _, err := splitPath(path); err != nil {
		return err
	}
	if err := checkID(id); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.data[path][id]
	if !ok {
		return ErrNotFound
	}
	d := clone(r.data)
	if err := fn(d); err != nil {
		return err
	}
	tx.remember(m, path, id)
	r.data = d
	m.data[path][id] = r
	m.notify(path)
	return nil
}

// memTx is the Store handed to a transaction. Its writes skip txMu, which
// the transaction already holds, and log the prior state of every record
// they touch.
type memTx struct {
	m *MemoryStore
	// undo holds the record as it was before the first write, nil when it
	// did not exist.
	undo map[string]map[string]*memRecord
}

// remember logs the current state of path/id once. The caller holds m.mu.
// A nil tx logs nothing.
func (t *memTx) remember(m *MemoryStore, path, id string) {
	if t == nil {
		return
	}
	if t.undo[path] == nil {
		t.undo[path] = make(map[string]*memRecord)
	}
	if _, seen := t.undo[path][id]; seen {
		return
	}
	if r, ok := m.data[path][id]; ok {
		t.undo[path][id] = &memRecord{seq: r.seq, data: clone(r.data)}
		return
	}
	t.undo[path][id] = nil
}

func (t *memTx) rollback() {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	for path, records := range t.undo {
		for id, prev := range records {
			if prev == nil {
				delete(t.m.data[path], id)
				continue
			}
			if t.m.data[path] == nil {
				t.m.data[path] = make(map[string]memRecord)
			}
			t.m.data[path][id] = *prev
		}
		t.m.notify(path)
	}
}

func (t *memTx) Find(ctx context.Context, path string, q Query) ([]Document, error) {
	return t.m.Find(ctx, path, q)
}

func (t *memTx) Get(ctx context.Context, path, id string) (Document, error) {
	return t.m.Get(ctx, path, id)
}

func (t *memTx) Insert(ctx context.Context, path string, doc Document) (string, error) {
	return t.m.insert(ctx, t, path, doc)
}

func (t *memTx) Set(ctx context.Context, path, id string, doc Document) error {
	return t.m.set(ctx, t, path, id, doc)
}

func (t *memTx) Update(ctx context.Context, path, id string, fields Document) error {
	return t.m.update(ctx, t, path, id, fields)
}

func (t *memTx) Delete(ctx context.Context, path, id string) error {
	return t.m.delete(ctx, t, path, id)
}

func (t *memTx) Increment(ctx context.Context, path, id, field string, delta int64) error {
	return t.m.increment(ctx, t, path, id, field, delta)
}

func (t *memTx) Watch(ctx context.Context, path string) (<-chan struct{}, error) {
	return t.m.Watch(ctx, path)
}

// RunInTransaction inside a transaction joins it.
func (t *memTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	return fn(ctx, t)
}

func (t *memTx) Close(context.Context) error {
	return nil
}

// put stores a copy of doc under id. The caller holds m.mu.
func (m *MemoryStore) put(path, id string, doc Document) {
	d := clone(doc)
	d["id"] = id
	if m.data[path] == nil {
		m.data[path] = make(map[string]memRecord)
	}
	r, ok := m.data[path][id]
	if !ok {
		m.seq++
		r.seq = m.seq
	}
	r.data = d
	m.data[path][id] = r
	m.notify(path)
}

// notify signals the watchers of path. The caller holds m.mu.
func (m *MemoryStore) notify(path string) {
	for ch := range m.watchers[path] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func setPath(d Document, path string, v interface{}) {
	parts := strings.Split(path, ".")
	cur := map[string]interface{}(d)
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			cur[p] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = v
}
