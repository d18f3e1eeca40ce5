package cgtcalc

// test helpers to keep scenario declarations compact.

// day parses an ISO date or panics; for test literals only.
func day(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// qty is a helper for tests to create a quantity from a const.
func qty(v float64) Quantity { return QFloat(v) }

// gbpf is a helper for tests to create sterling money from a const.
func gbpf(v float64) Money { return MFloat(v) }

// buy is a helper for tests to create an acquisition with unit price and no expenses.
func buy(date, asset string, quantity, price float64) Transaction {
	return NewAcquisition(day(date), asset, qty(quantity), gbpf(price), gbpf(0))
}

// sell is a helper for tests to create a disposal with unit price and no expenses.
func sell(date, asset string, quantity, price float64) Transaction {
	return NewDisposal(day(date), asset, qty(quantity), gbpf(price), gbpf(0))
}

// ledgerOf builds a sorted ledger from transactions.
func ledgerOf(txs ...Transaction) *Ledger {
	l := NewLedger()
	l.Append(txs...)
	return l
}
