package cgtcalc

import "fmt"

// subTransaction wraps one Transaction with a mutable consumption counter
// tracking how much of its quantity is still unmatched.
//
// Sub-transactions are identity-based: the matchers and the pool operate on
// the same *subTransaction instances owned by the asset state, so a
// decrement recorded by one processor is visible to the next.
type subTransaction struct {
	tx        Transaction
	unmatched Quantity
}

func newSubTransaction(tx Transaction) *subTransaction {
	return &subTransaction{tx: tx, unmatched: tx.Quantity}
}

// remaining returns the quantity not yet matched.
func (s *subTransaction) remaining() Quantity { return s.unmatched }

// exhausted reports whether the whole quantity has been matched.
func (s *subTransaction) exhausted() bool { return s.unmatched.IsZero() }

// consume decrements the unmatched quantity. The counter decreases
// monotonically and never leaves the [0, original] interval; a violation is
// a programming error in the matching pipeline, not a user input error.
func (s *subTransaction) consume(q Quantity) {
	if q.IsNegative() || q.GreaterThan(s.unmatched) {
		panic(fmt.Sprintf("cannot consume %s from %s %s of %s with %s unmatched",
			q, s.tx.Kind, s.tx.Asset, s.tx.Date, s.unmatched))
	}
	s.unmatched = s.unmatched.Sub(q)
}

// expenseShare apportions the transaction's expenses pro rata to a matched
// quantity.
func (s *subTransaction) expenseShare(q Quantity) Money {
	if s.tx.Expenses.IsZero() {
		return s.tx.Expenses
	}
	return s.tx.Expenses.Mul(q).Div(s.tx.Quantity)
}

// costOf returns the acquisition cost of a matched quantity: units at the
// transaction price plus the apportioned expenses.
func (s *subTransaction) costOf(q Quantity) Money {
	return s.tx.Price.Mul(q).Add(s.expenseShare(q))
}

// proceedsOf returns the gross proceeds of a matched quantity at the
// transaction price.
func (s *subTransaction) proceedsOf(q Quantity) Money {
	return s.tx.Price.Mul(q)
}
