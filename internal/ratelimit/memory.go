package ratelimit

import (
	"context"
	"sync"
	"time"
)

// window holds one client's hit count and the time its window resets.
type window struct {
	count    int64
	resetsAt time.Time
}

// MemoryStore is an in-process CounterStore. Counters live in a map guarded
// by a mutex; a background goroutine evicts expired windows so the map does
// not grow with every client ever seen.
type MemoryStore struct {
	mu       sync.Mutex
	windows  map[string]*window
	timeFunc func() time.Time // Injectable for testing
	stop     chan struct{}
}

var _ CounterStore = (*MemoryStore)(nil)

// NewMemoryStore creates a MemoryStore and starts its eviction loop.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		windows:  make(map[string]*window),
		timeFunc: time.Now,
		stop:     make(chan struct{}),
	}
	go s.evictLoop()
	return s
}

// Increment implements CounterStore.Increment.
func (s *MemoryStore) Increment(ctx context.Context, key string, windowSize time.Duration) (int64, error) {
	now := s.timeFunc()

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || !now.Before(w.resetsAt) {
		w = &window{resetsAt: now.Add(windowSize)}
		s.windows[key] = w
	}
	w.count++

	return w.count, nil
}

// Close stops the eviction loop.
func (s *MemoryStore) Close() {
	close(s.stop)
}

// evictLoop removes expired windows every minute.
func (s *MemoryStore) evictLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			now := s.timeFunc()
			s.mu.Lock()
			for key, w := range s.windows {
				if !now.Before(w.resetsAt) {
					delete(s.windows, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
