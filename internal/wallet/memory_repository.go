package wallet

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Wallet
	order   []string
}

// NewMemoryRepository constructs an in-memory wallet store. Insertion order
// is preserved for ListByAccount.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]Wallet)}
}

func (r *memoryRepository) Create(_ context.Context, w Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storage[w.ID]; exists {
		return errors.New("wallet exists")
	}
	// Enforce one wallet per currency per account under the store lock, the
	// way the Postgres unique constraint does; the service's pre-check alone
	// would race with a concurrent create.
	for _, existing := range r.storage {
		if existing.AccountID == w.AccountID && existing.Currency == w.Currency {
			return ErrDuplicateCurrency
		}
	}
	r.storage[w.ID] = w
	r.order = append(r.order, w.ID)
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.storage[id]
	if !ok {
		return Wallet{}, ErrNotFound
	}
	return w, nil
}

func (r *memoryRepository) ListByAccount(_ context.Context, accountID string) ([]Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var wallets []Wallet
	for _, id := range r.order {
		if w := r.storage[id]; w.AccountID == accountID {
			wallets = append(wallets, w)
		}
	}
	return wallets, nil
}

func (r *memoryRepository) UpdateBalance(_ context.Context, id string, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.storage[id]
	if !ok {
		return ErrNotFound
	}
	w.Balance = balance
	r.storage[id] = w
	return nil
}
