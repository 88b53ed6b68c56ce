package services

import "sync"

// Subject broadcasts state snapshots to subscribers. The owning service calls
// Publish after each in-memory mutation; subscribers run synchronously and
// must not call back into the owner or the subject.
type Subject[T any] struct {
	// deliver orders replays against publishes so a subscriber never sees
	// an older value after a newer one.
	deliver sync.Mutex

	mu     sync.RWMutex
	nextID int
	subs   map[int]func(T)
	last   T
}

func NewSubject[T any](initial T) *Subject[T] {
	return &Subject[T]{
		subs: make(map[int]func(T)),
		last: initial,
	}
}

// Subscribe registers fn, immediately replays the latest value to it and
// returns a function that removes the subscription.
func (s *Subject[T]) Subscribe(fn func(T)) func() {
	s.deliver.Lock()
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	last := s.last
	s.mu.Unlock()

	fn(last)
	s.deliver.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Subject[T]) Publish(v T) {
	s.deliver.Lock()
	defer s.deliver.Unlock()

	s.mu.Lock()
	s.last = v
	subs := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

func (s *Subject[T]) Value() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}
