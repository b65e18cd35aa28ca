package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const memorySweepInterval = time.Minute

type refreshEntry struct {
	userID    uuid.UUID
	expiresAt time.Time
}

type memoryRefreshTokenStore struct {
	mu        sync.Mutex
	entries   map[string]refreshEntry
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryRefreshTokenStore() RefreshTokenStore {
	return &memoryRefreshTokenStore{
		entries:   make(map[string]refreshEntry),
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (s *memoryRefreshTokenStore) Save(_ context.Context, jti string, userID uuid.UUID, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) > memorySweepInterval {
		for k, e := range s.entries {
			if !now.Before(e.expiresAt) {
				delete(s.entries, k)
			}
		}
		s.lastSweep = now
	}

	s.entries[jti] = refreshEntry{userID: userID, expiresAt: now.Add(ttl)}
	return nil
}

func (s *memoryRefreshTokenStore) Take(_ context.Context, jti string) (uuid.UUID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[jti]
	if !ok {
		return uuid.Nil, false, nil
	}
	delete(s.entries, jti)
	if !s.now().Before(entry.expiresAt) {
		return uuid.Nil, false, nil
	}
	return entry.userID, true, nil
}
