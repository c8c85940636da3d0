package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryRepository constructs an in-memory, append-only entry store.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Append(_ context.Context, e Entry) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	r.entries = append(r.entries, e)
	return e, nil
}

func (r *memoryRepository) ListByAccount(_ context.Context, accountID string, limit int) ([]Entry, error) {
	return r.collect(func(e Entry) bool { return e.AccountID == accountID }, limit), nil
}

func (r *memoryRepository) ListByWallet(_ context.Context, walletID string, limit int) ([]Entry, error) {
	return r.collect(func(e Entry) bool {
		return e.FromWalletID == walletID || e.ToWalletID == walletID
	}, limit), nil
}

// collect walks the append-ordered slice backwards so results come out
// newest first.
func (r *memoryRepository) collect(match func(Entry) bool, limit int) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Entry
	for i := len(r.entries) - 1; i >= 0; i-- {
		if !match(r.entries[i]) {
			continue
		}
		out = append(out, r.entries[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
