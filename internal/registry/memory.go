package registry

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// seq hands out strictly increasing unix-milli timestamps so two ids
// assigned in the same millisecond never collide.
type seq struct {
	mu   sync.Mutex
	last int64
}

func newSeq() *seq {
	return &seq{}
}

func (s *seq) next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UnixMilli()
	if now <= s.last {
		now = s.last + 1
	}
	s.last = now
	return now
}

// memoryStore is the in-memory Store implementation backing the fallback
// registry. Items keep insertion order, matching what a library listing
// shows.
type memoryStore[T any] struct {
	mu     sync.RWMutex
	clock  *seq
	prefix string
	id     func(*T) *string
	order  []string
	items  map[string]T
}

func newMemoryStore[T any](clock *seq, prefix string, id func(*T) *string) *memoryStore[T] {
	return &memoryStore[T]{
		clock:  clock,
		prefix: prefix,
		id:     id,
		items:  make(map[string]T),
	}
}

func (s *memoryStore[T]) List(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out, nil
}

func (s *memoryStore[T]) Get(_ context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %s: %w", s.prefix, id, ErrNotFound)
	}
	return item, nil
}

// Save creates when the item carries no id (assigning "<prefix>-<timestamp>")
// and upserts otherwise. An unknown non-empty id inserts under that id, so
// records created against the fallback survive a round-trip through a client.
func (s *memoryStore[T]) Save(_ context.Context, item T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.id(&item)
	if *id == "" {
		*id = fmt.Sprintf("%s-%d", s.prefix, s.clock.next())
	}
	if _, ok := s.items[*id]; !ok {
		s.order = append(s.order, *id)
	}
	s.items[*id] = item
	return item, nil
}

func (s *memoryStore[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("%s %s: %w", s.prefix, id, ErrNotFound)
	}
	delete(s.items, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
