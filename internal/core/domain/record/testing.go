package record

import (
	"context"
	c "credstore/internal/core/domain/common"
	"fmt"
	"sync"
)

// FakeStore is an in-memory Store. Stored values are kept in insertion order;
// fields maps each filterable Field to an accessor of T.
type FakeStore[T any] struct {
	Collection string

	FindOneError error
	SaveError    error
	DeleteError  error
	// SaveReturnsID overrides the id returned by a successful Save.
	SaveReturnsID c.Optional[string]
	// DeleteMatchesNothing makes Delete report zero affected records.
	DeleteMatchesNothing bool

	fields  map[Field]func(T) string
	ids     []string
	records map[string]T
	lock    sync.Mutex
}

func NewFakeStore[T any](collection string, fields map[Field]func(T) string) *FakeStore[T] {
	return &FakeStore[T]{
		Collection: collection,
		fields:     fields,
		records:    make(map[string]T),
	}
}

func (s *FakeStore[T]) FindOne(ctx context.Context, field Field, value string) (c.Optional[T], error) {
	if s.FindOneError != nil {
		return c.None[T](), NewStorageError(s.Collection, OpFindOne, s.FindOneError)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	get := s.accessor(field)
	for _, id := range s.ids {
		if v := s.records[id]; get(v) == value {
			return c.Some(v), nil
		}
	}
	return c.None[T](), nil
}

func (s *FakeStore[T]) Save(ctx context.Context, id string, value T) (string, error) {
	if s.SaveError != nil {
		return "", NewStorageError(s.Collection, OpSave, s.SaveError)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.records[id]; ok {
		return "", NewStorageError(s.Collection, OpSave, ErrDuplicateID)
	}
	s.ids = append(s.ids, id)
	s.records[id] = value
	if s.SaveReturnsID.IsPresent {
		return s.SaveReturnsID.Value, nil
	}
	return id, nil
}

func (s *FakeStore[T]) Delete(ctx context.Context, field Field, value string) (int64, error) {
	if s.DeleteError != nil {
		return 0, NewStorageError(s.Collection, OpDelete, s.DeleteError)
	}
	if s.DeleteMatchesNothing {
		return 0, nil
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	get := s.accessor(field)
	kept := make([]string, 0, len(s.ids))
	n := int64(0)
	for _, id := range s.ids {
		if get(s.records[id]) == value {
			delete(s.records, id)
			n++
			continue
		}
		kept = append(kept, id)
	}
	s.ids = kept
	return n, nil
}

// Put stores value bypassing failure injection.
func (s *FakeStore[T]) Put(id string, value T) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.records[id]; !ok {
		s.ids = append(s.ids, id)
	}
	s.records[id] = value
}

// All returns stored values in insertion order.
func (s *FakeStore[T]) All() []T {
	s.lock.Lock()
	defer s.lock.Unlock()
	values := make([]T, 0, len(s.ids))
	for _, id := range s.ids {
		values = append(values, s.records[id])
	}
	return values
}

type FakeStoreSnapshot[T any] struct {
	ids     []string
	records map[string]T
}

func (s *FakeStore[T]) Snapshot() FakeStoreSnapshot[T] {
	s.lock.Lock()
	defer s.lock.Unlock()
	snapshot := FakeStoreSnapshot[T]{
		ids:     append([]string(nil), s.ids...),
		records: make(map[string]T, len(s.records)),
	}
	for id, v := range s.records {
		snapshot.records[id] = v
	}
	return snapshot
}

func (s *FakeStore[T]) Restore(snapshot FakeStoreSnapshot[T]) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.ids = append([]string(nil), snapshot.ids...)
	s.records = make(map[string]T, len(snapshot.records))
	for id, v := range snapshot.records {
		s.records[id] = v
	}
}

func (s *FakeStore[T]) accessor(field Field) func(T) string {
	get, ok := s.fields[field]
	if !ok {
		panic(fmt.Sprintf("field %q is not filterable in %s", field, s.Collection))
	}
	return get
}
