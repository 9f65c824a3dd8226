package dedup

import (
	"context"
	"sync"
	"time"
)

// Memory is the single-replica store: a TTL map guarded by a mutex. Expired
// entries are dropped lazily on access and swept when the map grows.
type Memory struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]time.Time
}

const sweepThreshold = 4096

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Memory{
		ttl: ttl,
		m:   make(map[string]time.Time),
	}
}

func (s *Memory) MarkSeen(_ context.Context, ref string) (bool, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.m[ref]

	if ok && now.Before(exp) {
		return false, nil
	}

	if len(s.m) >= sweepThreshold {
		for k, e := range s.m {
			if now.After(e) {
				delete(s.m, k)
			}
		}
	}

	s.m[ref] = now.Add(s.ttl)

	return true, nil
}

func (s *Memory) Forget(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.m, ref)

	return nil
}

func (s *Memory) Ping(context.Context) error { return nil }
