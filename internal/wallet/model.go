package wallet

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kingleoa1/Multi-Currency-Wallet/internal/currency"
)

// Wallet is a currency-scoped balance owned by exactly one account. The
// currency never changes after creation and the balance is mutated only by
// the transactions service.
type Wallet struct {
	ID        string
	AccountID string
	Currency  currency.Code
	Name      string
	Balance   decimal.Decimal
	Primary   bool
	CreatedAt time.Time
}
