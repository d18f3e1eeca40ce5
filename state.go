package cgtcalc

import (
	"fmt"
	"sort"
)

// assetState is the per-asset mutable ledger shared by the three matching
// passes. It owns the sub-transactions and the accumulating match list; each
// asset gets a fresh state and no state is shared between assets.
type assetState struct {
	asset        string
	acquisitions []*subTransaction // sorted by date
	disposals    []*subTransaction // sorted by date
	events       []AssetEvent      // sorted by date
	matches      []DisposalMatch
}

// newAssetState builds the state for one asset from its transactions and
// events, sorting each list chronologically (stable, so same-day records
// keep their ledger order).
func newAssetState(asset string, txs []Transaction, events []AssetEvent) *assetState {
	st := &assetState{asset: asset}
	for _, tx := range txs {
		sub := newSubTransaction(tx)
		if tx.Kind == Disposal {
			st.disposals = append(st.disposals, sub)
		} else {
			st.acquisitions = append(st.acquisitions, sub)
		}
	}
	st.events = append(st.events, events...)

	byDate := func(subs []*subTransaction) func(i, j int) bool {
		return func(i, j int) bool { return subs[i].tx.Date.Before(subs[j].tx.Date) }
	}
	sort.SliceStable(st.acquisitions, byDate(st.acquisitions))
	sort.SliceStable(st.disposals, byDate(st.disposals))
	sort.SliceStable(st.events, func(i, j int) bool { return st.events[i].Date.Before(st.events[j].Date) })
	return st
}

// pendingAcquisitions returns the acquisitions that still hold unmatched
// quantity, in date order.
func (st *assetState) pendingAcquisitions() []*subTransaction {
	return pending(st.acquisitions)
}

// pendingDisposals returns the disposals that still hold unmatched quantity,
// in date order.
func (st *assetState) pendingDisposals() []*subTransaction {
	return pending(st.disposals)
}

func pending(subs []*subTransaction) []*subTransaction {
	var out []*subTransaction
	for _, s := range subs {
		if !s.exhausted() {
			out = append(out, s)
		}
	}
	return out
}

// record appends a match to the accumulating list.
func (st *assetState) record(m DisposalMatch) {
	st.matches = append(st.matches, m)
}

// complete verifies the completeness invariant: after all passes every
// disposal must be fully matched. The first violation is returned with
// enough context to be actionable.
func (st *assetState) complete() error {
	for _, d := range st.disposals {
		if !d.exhausted() {
			return fmt.Errorf("disposal of %s %s on %s still holds %s unmatched",
				d.tx.Quantity, st.asset, d.tx.Date, d.remaining())
		}
	}
	return nil
}
