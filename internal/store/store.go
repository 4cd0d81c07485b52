package store

import (
	"context"
	"sync"
	"time"

	"interview-insights-go/internal/apperror"
	"interview-insights-go/internal/types"
)

const DefaultTTL = 24 * time.Hour

// ReportStore keeps assembled reports so they can be rendered later.
type ReportStore interface {
	Save(ctx context.Context, r types.Report) error
	Get(ctx context.Context, id string) (types.Report, error)
}

// MemoryStore is an in-process ReportStore with expiration.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	ttl   time.Duration
	now   func() time.Time
}

type memoryItem struct {
	report     types.Report
	expireTime time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		items: make(map[string]memoryItem),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Save stores r and drops any expired entries.
func (ms *MemoryStore) Save(ctx context.Context, r types.Report) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	for id, item := range ms.items {
		if now.After(item.expireTime) {
			delete(ms.items, id)
		}
	}
	ms.items[r.ID] = memoryItem{report: r, expireTime: now.Add(ms.ttl)}
	return nil
}

func (ms *MemoryStore) Get(ctx context.Context, id string) (types.Report, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	item, ok := ms.items[id]
	if !ok || ms.now().After(item.expireTime) {
		return types.Report{}, apperror.ReportNotFound(id)
	}
	return item.report, nil
}

// Len counts entries, expired ones included.
func (ms *MemoryStore) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.items)
}
