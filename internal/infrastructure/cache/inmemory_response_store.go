package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	response  *StoredResponse // nil while in flight
	expiresAt time.Time
}

// InMemoryResponseStore implements ResponseStore using an in-memory map.
// State is per process, so it only suits single-instance deployments and tests.
type InMemoryResponseStore struct {
	mu        sync.Mutex
	entries   map[string]entry
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryResponseStore creates a store and starts its cleanup goroutine.
func NewInMemoryResponseStore() *InMemoryResponseStore {
	s := &InMemoryResponseStore{
		entries:  make(map[string]entry),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

// Begin implements ResponseStore.
func (s *InMemoryResponseStore) Begin(_ context.Context, key string, ttl time.Duration) (*StoredResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.entries[key]; ok && now.Before(e.expiresAt) {
		if e.response == nil {
			return nil, ErrInFlight
		}
		resp := *e.response
		return &resp, nil
	}

	s.entries[key] = entry{expiresAt: now.Add(ttl)}
	return nil, nil
}

// Complete implements ResponseStore.
func (s *InMemoryResponseStore) Complete(_ context.Context, key string, resp StoredResponse, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{response: &resp, expiresAt: s.now().Add(ttl)}
	return nil
}

// Release implements ResponseStore.
func (s *InMemoryResponseStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok && e.response == nil {
		delete(s.entries, key)
	}
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *InMemoryResponseStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryResponseStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemoryResponseStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, key)
		}
	}
}

// Size returns the number of live and expired entries not yet cleaned up.
func (s *InMemoryResponseStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

var _ ResponseStore = (*InMemoryResponseStore)(nil)
