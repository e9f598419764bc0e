package mem

import (
	"context"
	"sync"
	"time"
)

// SessionStore keeps one value per planner session for a limited time.
type SessionStore[T any] interface {
	// Get returns the value for id if it exists and has not expired.
	Get(ctx context.Context, id string) (T, bool, error)

	// Update applies fn to the current value (the zero value if there is
	// none) and stores the result, refreshing the TTL. If fn returns an error
	// nothing is written and the error is returned as is.
	Update(ctx context.Context, id string, fn func(value *T) error) error

	Delete(ctx context.Context, id string) error
}

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

type MemorySessionStore[T any] struct {
	mu        sync.Mutex
	data      map[string]entry[T]
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func NewMemorySessionStore[T any](ttl time.Duration) *MemorySessionStore[T] {
	return &MemorySessionStore[T]{
		data: make(map[string]entry[T]),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *MemorySessionStore[T]) Get(ctx context.Context, id string) (T, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	e, ok := s.data[id]
	if !ok {
		return zero, false, nil
	}
	if s.now().After(e.expiresAt) {
		delete(s.data, id) // cleanup expired
		return zero, false, nil
	}
	return e.value, true, nil
}

func (s *MemorySessionStore[T]) Update(ctx context.Context, id string, fn func(value *T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	var value T
	if e, ok := s.data[id]; ok && !now.After(e.expiresAt) {
		value = e.value
	}
	if err := fn(&value); err != nil {
		return err
	}

	s.data[id] = entry[T]{value: value, expiresAt: now.Add(s.ttl)}
	return nil
}

func (s *MemorySessionStore[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// Len counts stored sessions, expired ones included until the next sweep.
func (s *MemorySessionStore[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// sweepLocked drops expired sessions at most once per TTL.
func (s *MemorySessionStore[T]) sweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < s.ttl {
		return
	}
	s.lastSweep = now
	for id, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, id)
		}
	}
}
