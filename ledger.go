package cgtcalc

import (
	"fmt"
	"maps"
	"slices"
	"sort"
)

// Ledger holds the full input to a calculation: every trade and corporate
// action for every asset.
//
// In a Ledger records are always in chronological order.
type Ledger struct {
	transactions []Transaction
	events       []AssetEvent
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append adds transactions to the ledger and keeps it sorted.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	l.stableSort()
}

// AppendEvent adds asset events to the ledger and keeps it sorted.
func (l *Ledger) AppendEvent(events ...AssetEvent) {
	l.events = append(l.events, events...)
	l.stableSort()
}

// Transactions returns the chronologically sorted transactions.
func (l *Ledger) Transactions() []Transaction { return l.transactions }

// Events returns the chronologically sorted asset events.
func (l *Ledger) Events() []AssetEvent { return l.events }

// Assets returns the sorted set of asset tickers appearing in the ledger.
func (l *Ledger) Assets() []string {
	set := make(map[string]struct{})
	for _, tx := range l.transactions {
		set[tx.Asset] = struct{}{}
	}
	for _, e := range l.events {
		set[e.Asset] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}

// Validate checks every record in the ledger.
func (l *Ledger) Validate() error {
	for _, tx := range l.transactions {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("invalid ledger: %w", err)
		}
	}
	for _, e := range l.events {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("invalid ledger: %w", err)
		}
	}
	return nil
}

// stableSort orders records by date, keeping the relative order of records
// on the same day.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.Before(l.transactions[j].Date)
	})
	sort.SliceStable(l.events, func(i, j int) bool {
		return l.events[i].Date.Before(l.events[j].Date)
	})
}

// transactionsOf returns the transactions of one asset, preserving order.
func (l *Ledger) transactionsOf(asset string) []Transaction {
	var txs []Transaction
	for _, tx := range l.transactions {
		if tx.Asset == asset {
			txs = append(txs, tx)
		}
	}
	return txs
}

// eventsOf returns the asset events of one asset, preserving order.
func (l *Ledger) eventsOf(asset string) []AssetEvent {
	var events []AssetEvent
	for _, e := range l.events {
		if e.Asset == asset {
			events = append(events, e)
		}
	}
	return events
}
