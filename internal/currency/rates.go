package currency

import "github.com/shopspring/decimal"

type pair struct {
	from Code
	to   Code
}

// Table maps ordered currency pairs to a multiplicative conversion factor.
// It is populated once at startup and read-only afterwards; the rates are
// simulated and never refreshed from an external source.
type Table struct {
	rates map[pair]decimal.Decimal
}

// Pair describes one published conversion rate.
type Pair struct {
	From Code
	To   Code
	Rate decimal.Decimal
}

// NewTable builds the static rate table. Coverage is deliberately partial:
// USD, EUR and GBP convert between each other, every supported currency has
// an identity rate, and nothing else is quoted.
func NewTable() *Table {
	t := &Table{rates: make(map[pair]decimal.Decimal)}

	t.set(USD, EUR, "0.915")
	t.set(EUR, USD, "1.093")
	t.set(USD, GBP, "0.79")
	t.set(GBP, USD, "1.266")
	t.set(EUR, GBP, "0.863")
	t.set(GBP, EUR, "1.158")

	for _, c := range supported {
		t.set(c, c, "1")
	}

	return t
}

func (t *Table) set(from, to Code, rate string) {
	t.rates[pair{from: from, to: to}] = decimal.RequireFromString(rate)
}

// Rate returns the multiplier for the ordered pair, or false when the pair
// is not quoted.
func (t *Table) Rate(from, to Code) (decimal.Decimal, bool) {
	rate, ok := t.rates[pair{from: from, to: to}]
	return rate, ok
}

// Pairs lists every quoted rate, identity pairs included.
func (t *Table) Pairs() []Pair {
	out := make([]Pair, 0, len(t.rates))
	for p, rate := range t.rates {
		out = append(out, Pair{From: p.from, To: p.to, Rate: rate})
	}
	return out
}
