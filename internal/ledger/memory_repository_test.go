package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kingleoa1/Multi-Currency-Wallet/internal/currency"
)

func TestAppendAssignsIdentifierAndTimestamp(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	stored, err := repo.Append(ctx, Entry{
		AccountID:  uuid.NewString(),
		ToWalletID: uuid.NewString(),
		Kind:       KindDeposit,
		Amount:     decimal.RequireFromString("50.00"),
		ToCurrency: currency.USD,
		Status:     StatusCompleted,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if stored.ID == "" {
		t.Fatalf("expected identifier to be assigned")
	}
	if stored.CreatedAt.IsZero() {
		t.Fatalf("expected timestamp to be assigned")
	}
}

func TestListByAccountNewestFirstWithLimit(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	accountID := uuid.NewString()

	var ids []string
	for i := 0; i < 3; i++ {
		e, err := repo.Append(ctx, Entry{
			AccountID: accountID,
			Kind:      KindDeposit,
			Amount:    decimal.NewFromInt(int64(i + 1)),
			Status:    StatusCompleted,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		ids = append(ids, e.ID)
	}
	// Entry for an unrelated account must not surface.
	if _, err := repo.Append(ctx, Entry{AccountID: uuid.NewString(), Kind: KindDeposit, Amount: decimal.NewFromInt(9), Status: StatusCompleted}); err != nil {
		t.Fatalf("append other: %v", err)
	}

	entries, err := repo.ListByAccount(ctx, accountID, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].ID != ids[2] || entries[2].ID != ids[0] {
		t.Fatalf("expected newest-first ordering")
	}

	limited, err := repo.ListByAccount(ctx, accountID, 2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 entries with limit, got %d", len(limited))
	}
	if limited[0].ID != ids[2] {
		t.Fatalf("expected newest entry first under limit")
	}
}

func TestListByWalletMatchesEitherSide(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	accountID := uuid.NewString()
	walletA := uuid.NewString()
	walletB := uuid.NewString()

	outgoing, _ := repo.Append(ctx, Entry{
		AccountID: accountID, FromWalletID: walletA, ToWalletID: walletB,
		Kind: KindTransfer, Amount: decimal.NewFromInt(5), Status: StatusCompleted,
	})
	incoming, _ := repo.Append(ctx, Entry{
		AccountID: accountID, FromWalletID: walletB, ToWalletID: walletA,
		Kind: KindTransfer, Amount: decimal.NewFromInt(3), Status: StatusCompleted,
	})
	if _, err := repo.Append(ctx, Entry{
		AccountID: accountID, ToWalletID: walletB,
		Kind: KindDeposit, Amount: decimal.NewFromInt(1), Status: StatusCompleted,
	}); err != nil {
		t.Fatalf("append deposit: %v", err)
	}

	entries, err := repo.ListByWallet(ctx, walletA, 0)
	if err != nil {
		t.Fatalf("list by wallet: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries for wallet A, got %d", len(entries))
	}
	if entries[0].ID != incoming.ID || entries[1].ID != outgoing.ID {
		t.Fatalf("expected newest-first ordering for wallet listing")
	}
}
