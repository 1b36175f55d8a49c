package memory

import (
	"slices"
	"sync"

	"github.com/ghiffarsabda/kormimvp/internal/apperror"
)

// table holds the records of one kind, keyed by id.
//
// net/http serves requests concurrently, so every access goes through mu.
// Records are stored and returned by value; callers never hold a reference
// into the map.
type table[T any] struct {
	mu       sync.RWMutex
	rows     map[int]T
	lastID   int
	resource string

	idOf  func(*T) *int
	clone func(T) T // deep-copies pointer fields; nil when T has none
}

func newTable[T any](resource string, idOf func(*T) *int) *table[T] {
	return &table[T]{
		rows:     make(map[int]T),
		resource: resource,
		idOf:     idOf,
	}
}

func (t *table[T]) copyOf(rec T) T {
	if t.clone != nil {
		return t.clone(rec)
	}
	return rec
}

// insert assigns the next id to rec and stores a copy. check, when non-nil,
// runs under the write lock and can veto the insert.
func (t *table[T]) insert(rec *T, check func(rows map[int]T) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if check != nil {
		if err := check(t.rows); err != nil {
			return err
		}
	}

	t.lastID++
	*t.idOf(rec) = t.lastID
	t.rows[t.lastID] = t.copyOf(*rec)
	return nil
}

func (t *table[T]) get(id int) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rec, ok := t.rows[id]
	if !ok {
		return nil, apperror.NotFound(t.resource, id)
	}
	out := t.copyOf(rec)
	return &out, nil
}

// list returns the records matching keep (all when keep is nil) in insertion
// order. Ids only ever grow, so id order is insertion order.
func (t *table[T]) list(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]int, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		rec := t.rows[id]
		if keep != nil && !keep(rec) {
			continue
		}
		out = append(out, t.copyOf(rec))
	}
	return out
}

// replace overwrites the record with rec's id. carry, when non-nil, copies
// server-owned fields from the stored record into rec first.
func (t *table[T]) replace(rec *T, carry func(old T, rec *T)) error {
	id := *t.idOf(rec)

	t.mu.Lock()
	defer t.mu.Unlock()

	old, ok := t.rows[id]
	if !ok {
		return apperror.NotFound(t.resource, id)
	}
	if carry != nil {
		carry(old, rec)
	}
	t.rows[id] = t.copyOf(*rec)
	return nil
}

func (t *table[T]) remove(id int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return apperror.NotFound(t.resource, id)
	}
	delete(t.rows, id)
	return nil
}
