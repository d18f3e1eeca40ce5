package cgtcalc

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// GBPCurrency is the working currency of the calculator. Monetary amounts
// with an empty currency are treated as sterling.
const GBPCurrency = "GBP"

// Money represents an exact monetary amount in a single currency.
type Money struct {
	value decimal.Decimal // major unit value
	cur   string
}

// M creates a Money from a decimal amount and a currency code.
func M(value decimal.Decimal, currency string) Money {
	return Money{value: value, cur: currency}
}

// MFloat creates a sterling Money from a float. Intended for literals in
// tests and commands, not for arithmetic results.
func MFloat(value float64) Money {
	return Money{value: decimal.NewFromFloat(value), cur: GBPCurrency}
}

// currency resolves the full go-money currency, defaulting to sterling.
func (m Money) currency() money.Currency {
	cur := m.cur
	if cur == "" {
		cur = GBPCurrency
	}
	// the Money constructor guarantees a non-nil currency
	return *money.New(0, cur).Currency()
}

// Currency returns the currency code.
func (m Money) Currency() string { return m.cur }

// String formats the amount with its currency symbol and grouping, e.g. "£1,234.56".
func (m Money) String() string {
	cur := m.currency()
	shifted := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(shifted.Round(0).IntPart())
}

// SignedString formats the amount with an explicit sign; zero renders as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// Amount returns the exact decimal amount in major units.
func (m Money) Amount() decimal.Decimal { return m.value }

func (m Money) Equal(n Money) bool {
	return m.value.Equal(n.value) && (m.cur == n.cur || m.cur == "" || n.cur == "")
}
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool    { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money               { return Money{value: m.value.Neg(), cur: m.cur} }

// Mul scales the amount by a quantity.
func (m Money) Mul(q Quantity) Money { return Money{value: m.value.Mul(q.value), cur: m.cur} }

// Div divides the amount by a quantity.
func (m Money) Div(q Quantity) Money { return Money{value: m.value.Div(q.value), cur: m.cur} }

func (m Money) Add(n Money) Money {
	return Money{value: m.value.Add(n.value), cur: mergeCur(m, n)}
}
func (m Money) Sub(n Money) Money {
	return Money{value: m.value.Sub(n.value), cur: mergeCur(m, n)}
}

// mergeCur resolves the currency of a binary operation. The empty currency
// is weak and adopts the other side's.
func mergeCur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + " != " + b.cur)
	}
	return a.cur
}

// MarshalJSON implements the json.Marshaler interface.
func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	w.Append("amount", m.value)
	return w.MarshalJSON()
}
