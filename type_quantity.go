package cgtcalc

import "github.com/shopspring/decimal"

// Quantity is an exact number of units of an asset.
//
// It wraps a decimal so that matching and pooling never accumulate binary
// floating point error: tax computation must be exactly reproducible.
type Quantity struct {
	value decimal.Decimal
}

// Q creates a Quantity from a decimal.
func Q(value decimal.Decimal) Quantity { return Quantity{value: value} }

// QFloat creates a Quantity from a float. Intended for literals in tests
// and commands, not for arithmetic results.
func QFloat(value float64) Quantity { return Quantity{value: decimal.NewFromFloat(value)} }

func (q Quantity) Equal(p Quantity) bool              { return q.value.Equal(p.value) }
func (q Quantity) LessThan(p Quantity) bool           { return q.value.LessThan(p.value) }
func (q Quantity) GreaterThan(p Quantity) bool        { return q.value.GreaterThan(p.value) }
func (q Quantity) GreaterThanOrEqual(p Quantity) bool { return q.value.GreaterThanOrEqual(p.value) }
func (q Quantity) Add(p Quantity) Quantity            { return Quantity{value: q.value.Add(p.value)} }
func (q Quantity) Sub(p Quantity) Quantity            { return Quantity{value: q.value.Sub(p.value)} }
func (q Quantity) Mul(p Quantity) Quantity            { return Quantity{value: q.value.Mul(p.value)} }
func (q Quantity) Div(p Quantity) Quantity            { return Quantity{value: q.value.Div(p.value)} }
func (q Quantity) IsZero() bool                       { return q.value.IsZero() }
func (q Quantity) IsPositive() bool                   { return q.value.IsPositive() }
func (q Quantity) IsNegative() bool                   { return q.value.IsNegative() }
func (q Quantity) String() string                     { return q.value.String() }

// Min returns the smaller of q and p.
func (q Quantity) Min(p Quantity) Quantity {
	if q.value.LessThan(p.value) {
		return q
	}
	return p
}

// MarshalJSON implements the json.Marshaler interface.
func (q Quantity) MarshalJSON() ([]byte, error) { return q.value.MarshalJSON() }

// UnmarshalJSON implements the json.Unmarshaler interface.
func (q *Quantity) UnmarshalJSON(data []byte) error { return q.value.UnmarshalJSON(data) }
