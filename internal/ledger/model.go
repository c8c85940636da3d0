package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kingleoa1/Multi-Currency-Wallet/internal/currency"
)

// Kind classifies a ledger entry.
type Kind string

const (
	KindTransfer   Kind = "transfer"
	KindConversion Kind = "conversion"
	KindDeposit    Kind = "deposit"
	// KindWithdrawal exists in the schema but no operation produces it.
	KindWithdrawal Kind = "withdrawal"
)

// StatusCompleted is the only status the system ever records; there are no
// pending or failed entries.
const StatusCompleted = "completed"

// Entry is an immutable record of one completed balance mutation. Amount is
// always stated in the source-wallet currency; for conversions the
// destination amount is Amount × Rate, recomputed at read time rather than
// stored. Optional fields are the zero value when absent.
type Entry struct {
	ID           string
	AccountID    string
	FromWalletID string
	ToWalletID   string
	Kind         Kind
	Amount       decimal.Decimal
	FromCurrency currency.Code
	ToCurrency   currency.Code
	Rate         decimal.NullDecimal
	Description  string
	Status       string
	CreatedAt    time.Time
}
