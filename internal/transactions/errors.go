package transactions

import "errors"

var (
	// ErrWalletNotFound occurs when a referenced wallet identifier does not exist.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrNotOwner occurs when a referenced wallet exists but is not owned by
	// the acting account.
	ErrNotOwner = errors.New("wallet not owned by account")

	// ErrSameWallet occurs when the source and destination of a transfer or
	// conversion are the same wallet; the naive debit-then-credit would
	// otherwise mint funds.
	ErrSameWallet = errors.New("source and destination wallets are the same")

	// ErrCurrencyMismatch occurs when a transfer references wallets of
	// different currencies; conversion is the operation for that.
	ErrCurrencyMismatch = errors.New("wallet currencies differ, use conversion instead")

	// ErrRateUnavailable occurs when no exchange rate is quoted for the
	// requested currency pair.
	ErrRateUnavailable = errors.New("exchange rate not available")

	// ErrInvalidAmount occurs when the requested amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds occurs when the source balance is below the
	// requested amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
