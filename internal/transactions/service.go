package transactions

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kingleoa1/Multi-Currency-Wallet/internal/currency"
	"github.com/kingleoa1/Multi-Currency-Wallet/internal/ledger"
	"github.com/kingleoa1/Multi-Currency-Wallet/internal/notification"
	"github.com/kingleoa1/Multi-Currency-Wallet/internal/wallet"
)

// balanceScale is the number of decimal places balances are kept at.
const balanceScale = 2

// Service implements the three ledger operations. Every operation follows
// the same shape: validate, mutate the wallet balances, append exactly one
// ledger entry. The per-wallet locks serialize the read-modify-write cycle
// so concurrent requests against the same wallet cannot observe stale
// balances.
type Service struct {
	wallets  wallet.Repository
	entries  ledger.Repository
	rates    *currency.Table
	notifier notification.Notifier
	locks    *walletLocks
}

// NewService constructs the transactions service.
func NewService(wallets wallet.Repository, entries ledger.Repository, rates *currency.Table, notifier notification.Notifier) *Service {
	return &Service{
		wallets:  wallets,
		entries:  entries,
		rates:    rates,
		notifier: notifier,
		locks:    newWalletLocks(),
	}
}

// TransferInput captures a same-currency transfer between two wallets of the
// acting account.
type TransferInput struct {
	ActorID      string
	FromWalletID string
	ToWalletID   string
	Amount       decimal.Decimal
	Description  string
}

// TransferResult describes the outcome of a transfer.
type TransferResult struct {
	Entry       ledger.Entry
	FromBalance decimal.Decimal
	ToBalance   decimal.Decimal
}

// Transfer moves funds between two same-currency wallets of the acting
// account.
func (s *Service) Transfer(ctx context.Context, input TransferInput) (TransferResult, error) {
	if !input.Amount.IsPositive() {
		return TransferResult{}, ErrInvalidAmount
	}
	if input.FromWalletID == input.ToWalletID {
		return TransferResult{}, ErrSameWallet
	}

	unlock := s.locks.lock(input.FromWalletID, input.ToWalletID)
	defer unlock()

	from, to, err := s.loadOwnedPair(ctx, input.ActorID, input.FromWalletID, input.ToWalletID)
	if err != nil {
		return TransferResult{}, err
	}
	if from.Currency != to.Currency {
		return TransferResult{}, ErrCurrencyMismatch
	}
	if from.Balance.LessThan(input.Amount) {
		return TransferResult{}, ErrInsufficientFunds
	}

	newFrom := from.Balance.Sub(input.Amount).Round(balanceScale)
	newTo := to.Balance.Add(input.Amount).Round(balanceScale)
	if err := s.wallets.UpdateBalance(ctx, from.ID, newFrom); err != nil {
		return TransferResult{}, err
	}
	if err := s.wallets.UpdateBalance(ctx, to.ID, newTo); err != nil {
		return TransferResult{}, err
	}

	description := input.Description
	if description == "" {
		description = fmt.Sprintf("Transfer to %s", to.Name)
	}

	entry, err := s.entries.Append(ctx, ledger.Entry{
		AccountID:    input.ActorID,
		FromWalletID: from.ID,
		ToWalletID:   to.ID,
		Kind:         ledger.KindTransfer,
		Amount:       input.Amount,
		FromCurrency: from.Currency,
		ToCurrency:   to.Currency,
		Description:  description,
		Status:       ledger.StatusCompleted,
	})
	if err != nil {
		return TransferResult{}, err
	}

	s.notify(ctx, notification.KindTransfer, input.ActorID,
		fmt.Sprintf("Transferred %s %s from %s to %s", input.Amount, from.Currency, from.Name, to.Name))

	return TransferResult{Entry: entry, FromBalance: newFrom, ToBalance: newTo}, nil
}

// ConvertInput captures a cross-currency conversion between two wallets of
// the acting account.
type ConvertInput struct {
	ActorID      string
	FromWalletID string
	ToWalletID   string
	Amount       decimal.Decimal
}

// ConvertResult describes the outcome of a conversion.
type ConvertResult struct {
	Entry           ledger.Entry
	Rate            decimal.Decimal
	ConvertedAmount decimal.Decimal
	FromBalance     decimal.Decimal
	ToBalance       decimal.Decimal
}

// Convert exchanges funds between two wallets of the acting account using
// the fixed rate table. The currencies need not differ; a same-currency
// conversion goes through the identity rate.
func (s *Service) Convert(ctx context.Context, input ConvertInput) (ConvertResult, error) {
	if !input.Amount.IsPositive() {
		return ConvertResult{}, ErrInvalidAmount
	}
	if input.FromWalletID == input.ToWalletID {
		return ConvertResult{}, ErrSameWallet
	}

	unlock := s.locks.lock(input.FromWalletID, input.ToWalletID)
	defer unlock()

	from, to, err := s.loadOwnedPair(ctx, input.ActorID, input.FromWalletID, input.ToWalletID)
	if err != nil {
		return ConvertResult{}, err
	}

	rate, ok := s.rates.Rate(from.Currency, to.Currency)
	if !ok {
		return ConvertResult{}, ErrRateUnavailable
	}
	if from.Balance.LessThan(input.Amount) {
		return ConvertResult{}, ErrInsufficientFunds
	}

	converted := input.Amount.Mul(rate).Round(balanceScale)

	newFrom := from.Balance.Sub(input.Amount).Round(balanceScale)
	newTo := to.Balance.Add(converted).Round(balanceScale)
	if err := s.wallets.UpdateBalance(ctx, from.ID, newFrom); err != nil {
		return ConvertResult{}, err
	}
	if err := s.wallets.UpdateBalance(ctx, to.ID, newTo); err != nil {
		return ConvertResult{}, err
	}

	entry, err := s.entries.Append(ctx, ledger.Entry{
		AccountID:    input.ActorID,
		FromWalletID: from.ID,
		ToWalletID:   to.ID,
		Kind:         ledger.KindConversion,
		Amount:       input.Amount,
		FromCurrency: from.Currency,
		ToCurrency:   to.Currency,
		Rate:         decimal.NullDecimal{Decimal: rate, Valid: true},
		Description:  fmt.Sprintf("Convert %s to %s", from.Currency, to.Currency),
		Status:       ledger.StatusCompleted,
	})
	if err != nil {
		return ConvertResult{}, err
	}

	s.notify(ctx, notification.KindConversion, input.ActorID,
		fmt.Sprintf("Converted %s %s to %s %s at rate %s", input.Amount, from.Currency, converted, to.Currency, rate))

	return ConvertResult{
		Entry:           entry,
		Rate:            rate,
		ConvertedAmount: converted,
		FromBalance:     newFrom,
		ToBalance:       newTo,
	}, nil
}

// DepositInput captures a deposit into one wallet of the acting account.
type DepositInput struct {
	ActorID  string
	WalletID string
	Amount   decimal.Decimal
}

// DepositResult describes the outcome of a deposit.
type DepositResult struct {
	Entry   ledger.Entry
	Balance decimal.Decimal
}

// Deposit credits the wallet. No source of funds is modeled and no upper
// bound applies.
func (s *Service) Deposit(ctx context.Context, input DepositInput) (DepositResult, error) {
	if !input.Amount.IsPositive() {
		return DepositResult{}, ErrInvalidAmount
	}

	unlock := s.locks.lock(input.WalletID)
	defer unlock()

	w, err := s.loadOwned(ctx, input.ActorID, input.WalletID)
	if err != nil {
		return DepositResult{}, err
	}

	newBalance := w.Balance.Add(input.Amount).Round(balanceScale)
	if err := s.wallets.UpdateBalance(ctx, w.ID, newBalance); err != nil {
		return DepositResult{}, err
	}

	entry, err := s.entries.Append(ctx, ledger.Entry{
		AccountID:   input.ActorID,
		ToWalletID:  w.ID,
		Kind:        ledger.KindDeposit,
		Amount:      input.Amount,
		ToCurrency:  w.Currency,
		Description: fmt.Sprintf("Deposit to %s", w.Name),
		Status:      ledger.StatusCompleted,
	})
	if err != nil {
		return DepositResult{}, err
	}

	s.notify(ctx, notification.KindDeposit, input.ActorID,
		fmt.Sprintf("Deposited %s %s to %s", input.Amount, w.Currency, w.Name))

	return DepositResult{Entry: entry, Balance: newBalance}, nil
}

// History returns the acting account's ledger entries, newest first.
func (s *Service) History(ctx context.Context, actorID string, limit int) ([]ledger.Entry, error) {
	return s.entries.ListByAccount(ctx, actorID, limit)
}

// WalletHistory returns the entries touching one wallet of the acting
// account, newest first.
func (s *Service) WalletHistory(ctx context.Context, actorID, walletID string, limit int) ([]ledger.Entry, error) {
	if _, err := s.loadOwned(ctx, actorID, walletID); err != nil {
		return nil, err
	}
	return s.entries.ListByWallet(ctx, walletID, limit)
}

func (s *Service) loadOwned(ctx context.Context, actorID, walletID string) (wallet.Wallet, error) {
	w, err := s.wallets.Get(ctx, walletID)
	if err != nil {
		if errors.Is(err, wallet.ErrNotFound) {
			return wallet.Wallet{}, ErrWalletNotFound
		}
		return wallet.Wallet{}, err
	}
	if w.AccountID != actorID {
		return wallet.Wallet{}, ErrNotOwner
	}
	return w, nil
}

func (s *Service) loadOwnedPair(ctx context.Context, actorID, fromID, toID string) (wallet.Wallet, wallet.Wallet, error) {
	from, err := s.wallets.Get(ctx, fromID)
	if err != nil {
		if errors.Is(err, wallet.ErrNotFound) {
			return wallet.Wallet{}, wallet.Wallet{}, ErrWalletNotFound
		}
		return wallet.Wallet{}, wallet.Wallet{}, err
	}
	to, err := s.wallets.Get(ctx, toID)
	if err != nil {
		if errors.Is(err, wallet.ErrNotFound) {
			return wallet.Wallet{}, wallet.Wallet{}, ErrWalletNotFound
		}
		return wallet.Wallet{}, wallet.Wallet{}, err
	}
	if from.AccountID != actorID || to.AccountID != actorID {
		return wallet.Wallet{}, wallet.Wallet{}, ErrNotOwner
	}
	return from, to, nil
}

func (s *Service) notify(ctx context.Context, kind, destination, body string) {
	if s.notifier == nil {
		return
	}
	_ = s.notifier.Send(ctx, notification.Message{Kind: kind, Destination: destination, Body: body})
}
