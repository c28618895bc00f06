// Package store provides a generic, write-through, file-backed collection
// of records of one type. Each store owns a single JSON document holding a
// JSON array in insertion order.
//
// Persistence faults are logged and swallowed: the in-memory collection
// remains the authoritative copy for the rest of the session and the
// application degrades to in-memory-only operation rather than failing.
//
// The store performs no locking. Access is assumed to be single-threaded,
// and a second process sharing the same file can silently overwrite writes.
package store

import (
	"context"
	"encoding/json"
	"os"
	"reflect"

	"github.com/autocompare/autocompare/internal/logging"
)

// Store is an in-memory collection of T backed by one JSON file.
type Store[T any] struct {
	path  string
	items []T
	log   logging.Logger
}

// New returns a Store bound to the JSON document at path. The collection
// starts empty; call Load to read any existing document.
func New[T any](path string, log logging.Logger) *Store[T] {
	return &Store[T]{path: path, log: log.With("store", path)}
}

// Load reads the backing document and replaces the in-memory collection
// wholesale. A missing file, a malformed document, or any I/O fault resets
// the collection to empty; the fault is logged and never surfaced.
func (s *Store[T]) Load(ctx context.Context) {
	s.items = nil

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Info(ctx, "no existing document, starting empty")
		} else {
			s.log.Error(ctx, "reading document failed", "error", err)
		}
		return
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.Error(ctx, "malformed document, starting empty", "error", err)
		return
	}
	s.items = items
}

// Save serializes the full collection and overwrites the backing document.
// The write is not atomic. Failures are logged and swallowed, leaving the
// in-memory state as the only copy until the next restart.
func (s *Store[T]) Save(ctx context.Context) {
	data, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		s.log.Error(ctx, "serializing collection failed", "error", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.log.Error(ctx, "writing document failed", "error", err)
	}
}

// Add appends item to the collection and immediately writes through to disk.
func (s *Store[T]) Add(ctx context.Context, item T) {
	s.items = append(s.items, item)
	s.Save(ctx)
}

// Remove deletes the first structurally-equal match of item and, if one was
// removed, writes through to disk. It reports whether a removal occurred.
func (s *Store[T]) Remove(ctx context.Context, item T) bool {
	for i := range s.items {
		if reflect.DeepEqual(s.items[i], item) {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.Save(ctx)
			return true
		}
	}
	return false
}

// Find returns a pointer to the first item matching the predicate, or nil.
// The pointer refers into the collection, so callers may mutate the record
// in place and then call Save; it is invalidated by a subsequent Add or
// Remove.
func (s *Store[T]) Find(pred func(*T) bool) *T {
	for i := range s.items {
		if pred(&s.items[i]) {
			return &s.items[i]
		}
	}
	return nil
}

// All returns a copy of the collection in insertion order.
func (s *Store[T]) All() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of records in the collection.
func (s *Store[T]) Len() int {
	return len(s.items)
}
