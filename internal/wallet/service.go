package wallet

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kingleoa1/Multi-Currency-Wallet/internal/currency"
)

var (
	// ErrUnsupportedCurrency indicates the currency code is outside the fixed set.
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrDuplicateCurrency indicates the account already holds a wallet in
	// the requested currency.
	ErrDuplicateCurrency = errors.New("wallet for currency already exists")
)

// Service exposes wallet provisioning and lookups.
type Service struct {
	repo Repository
}

// NewService builds a wallet service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures data required to create a wallet.
type CreateInput struct {
	AccountID string
	Currency  currency.Code
	Name      string
	Primary   bool
}

// Create provisions a wallet with a zero balance. An account holds at most
// one wallet per currency.
func (s *Service) Create(ctx context.Context, input CreateInput) (Wallet, error) {
	if !currency.Supported(input.Currency) {
		return Wallet{}, ErrUnsupportedCurrency
	}
	if _, err := uuid.Parse(input.AccountID); err != nil {
		return Wallet{}, err
	}

	existing, err := s.repo.ListByAccount(ctx, input.AccountID)
	if err != nil {
		return Wallet{}, err
	}
	for _, w := range existing {
		if w.Currency == input.Currency {
			return Wallet{}, ErrDuplicateCurrency
		}
	}

	name := input.Name
	if name == "" {
		name = string(input.Currency)
	}

	w := Wallet{
		ID:        uuid.New().String(),
		AccountID: input.AccountID,
		Currency:  input.Currency,
		Name:      name,
		Balance:   decimal.Zero,
		Primary:   input.Primary,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, w); err != nil {
		return Wallet{}, err
	}

	return w, nil
}

// Get retrieves a wallet by identifier.
func (s *Service) Get(ctx context.Context, id string) (Wallet, error) {
	return s.repo.Get(ctx, id)
}

// ListByAccount returns the account's wallets in creation order.
func (s *Service) ListByAccount(ctx context.Context, accountID string) ([]Wallet, error) {
	return s.repo.ListByAccount(ctx, accountID)
}
