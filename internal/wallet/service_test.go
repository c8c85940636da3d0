package wallet

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/kingleoa1/Multi-Currency-Wallet/internal/currency"
)

func TestServiceCreateDefaults(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	w, err := svc.Create(ctx, CreateInput{AccountID: uuid.NewString(), Currency: currency.EUR})
	if err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	if !w.Balance.IsZero() {
		t.Fatalf("expected zero starting balance, got %s", w.Balance)
	}
	if w.Name != "EUR" {
		t.Fatalf("expected name to default to currency code, got %q", w.Name)
	}

	fetched, err := svc.Get(ctx, w.ID)
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	if fetched.Currency != currency.EUR {
		t.Fatalf("expected currency EUR, got %s", fetched.Currency)
	}
}

func TestServiceCreateDuplicateCurrency(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	owner := uuid.NewString()

	if _, err := svc.Create(ctx, CreateInput{AccountID: owner, Currency: currency.USD}); err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{AccountID: owner, Currency: currency.USD}); !errors.Is(err, ErrDuplicateCurrency) {
		t.Fatalf("expected ErrDuplicateCurrency, got %v", err)
	}

	// A different account may hold the same currency.
	if _, err := svc.Create(ctx, CreateInput{AccountID: uuid.NewString(), Currency: currency.USD}); err != nil {
		t.Fatalf("create for other account: %v", err)
	}
}

func TestServiceCreateConcurrentDuplicateCurrency(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	owner := uuid.NewString()

	// Both goroutines pass the service pre-check; the store must still admit
	// only one USD wallet for the account.
	const attempts = 2
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, CreateInput{AccountID: owner, Currency: currency.USD})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var created, duplicates int
	for err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrDuplicateCurrency):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if created != 1 || duplicates != attempts-1 {
		t.Fatalf("expected exactly one create to win, got %d created / %d duplicates", created, duplicates)
	}

	wallets, err := svc.ListByAccount(ctx, owner)
	if err != nil {
		t.Fatalf("list wallets: %v", err)
	}
	if len(wallets) != 1 {
		t.Fatalf("expected 1 wallet, got %d", len(wallets))
	}
}

func TestServiceCreateUnsupportedCurrency(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	if _, err := svc.Create(context.Background(), CreateInput{AccountID: uuid.NewString(), Currency: "XXX"}); !errors.Is(err, ErrUnsupportedCurrency) {
		t.Fatalf("expected ErrUnsupportedCurrency, got %v", err)
	}
}

func TestListByAccountInsertionOrder(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	owner := uuid.NewString()

	first, _ := svc.Create(ctx, CreateInput{AccountID: owner, Currency: currency.USD, Primary: true})
	second, _ := svc.Create(ctx, CreateInput{AccountID: owner, Currency: currency.EUR})

	wallets, err := svc.ListByAccount(ctx, owner)
	if err != nil {
		t.Fatalf("list wallets: %v", err)
	}
	if len(wallets) != 2 {
		t.Fatalf("expected 2 wallets, got %d", len(wallets))
	}
	if wallets[0].ID != first.ID || wallets[1].ID != second.ID {
		t.Fatalf("expected insertion order, got %s then %s", wallets[0].ID, wallets[1].ID)
	}
	if !wallets[0].Primary {
		t.Fatalf("expected first wallet to be primary")
	}
}
