package cgtcalc

import (
	"fmt"
	"sort"
)

// poolEntry is one element of the merged chronological stream the Section
// 104 processor walks: either a remaining sub-transaction or an asset event.
type poolEntry struct {
	date Date
	rank int // ordering among same-date entries
	sub  *subTransaction
	ev   *AssetEvent
}

// Same-date ordering: acquisitions enter the pool first, then corporate
// actions apply, then disposals draw on the adjusted pool.
const (
	rankAcquisition = iota
	rankEvent
	rankDisposal
)

// section104Pool is the running weighted-average-cost holding of one asset.
// Quantity and cost are never negative after any step.
type section104Pool struct {
	quantity Quantity
	cost     Money
}

// costBasisOf returns the average cost of qty units drawn from the pool.
func (p *section104Pool) costBasisOf(qty Quantity) Money {
	return p.cost.Mul(qty).Div(p.quantity)
}

// processPool runs the Section 104 pass: every acquisition and disposal
// still holding unmatched quantity, plus every asset event, merged into one
// date-sorted stream and folded into the pool.
func processPool(st *assetState, log *Logger) error {
	var stream []poolEntry
	for _, sub := range st.pendingAcquisitions() {
		stream = append(stream, poolEntry{date: sub.tx.Date, rank: rankAcquisition, sub: sub})
	}
	for _, sub := range st.pendingDisposals() {
		stream = append(stream, poolEntry{date: sub.tx.Date, rank: rankDisposal, sub: sub})
	}
	for i := range st.events {
		ev := &st.events[i]
		stream = append(stream, poolEntry{date: ev.Date, rank: rankEvent, ev: ev})
	}
	sort.SliceStable(stream, func(i, j int) bool {
		if stream[i].date.Before(stream[j].date) {
			return true
		}
		if stream[j].date.Before(stream[i].date) {
			return false
		}
		return stream[i].rank < stream[j].rank
	})

	var pool section104Pool
	for _, entry := range stream {
		if entry.ev != nil {
			if err := applyEvent(&pool, *entry.ev); err != nil {
				return err
			}
			log.Debug().
				Str("asset", st.asset).
				Str("event", entry.ev.Kind.String()).
				Str("date", entry.date.String()).
				Str("poolQuantity", pool.quantity.String()).
				Str("poolCost", pool.cost.String()).
				Msg("applied asset event")
			continue
		}

		sub := entry.sub
		qty := sub.remaining()
		switch sub.tx.Kind {
		case Acquisition:
			// The whole remaining quantity enters the pool; there is no
			// partial skip at this stage.
			pool.quantity = pool.quantity.Add(qty)
			pool.cost = pool.cost.Add(sub.costOf(qty))
			sub.consume(qty)
		case Disposal:
			if qty.GreaterThan(pool.quantity) {
				return fmt.Errorf("%w: disposal of %s %s on %s exceeds pool quantity %s",
					ErrInsufficientPool, qty, st.asset, sub.tx.Date, pool.quantity)
			}
			costBasis := pool.costBasisOf(qty)
			pool.quantity = pool.quantity.Sub(qty)
			pool.cost = pool.cost.Sub(costBasis)
			st.record(newPoolMatch(qty, sub, costBasis))
			sub.consume(qty)
			log.Debug().
				Str("asset", st.asset).
				Str("rule", MatchSection104.String()).
				Str("quantity", qty.String()).
				Str("disposal", sub.tx.Date.String()).
				Str("costBasis", costBasis.String()).
				Msg("matched disposal")
		}
	}

	if pool.quantity.IsPositive() {
		log.Debug().
			Str("asset", st.asset).
			Str("poolQuantity", pool.quantity.String()).
			Str("poolCost", pool.cost.String()).
			Msg("pool remainder")
	}
	return nil
}

// applyEvent folds one corporate action into the pool.
func applyEvent(pool *section104Pool, ev AssetEvent) error {
	switch ev.Kind {
	case Split:
		pool.quantity = pool.quantity.Mul(ev.Ratio)
	case Unsplit:
		pool.quantity = pool.quantity.Div(ev.Ratio)
	case CapitalReturn:
		adjusted := pool.cost.Sub(ev.Amount)
		if adjusted.IsNegative() {
			return fmt.Errorf("%w: capital return of %s for %s on %s exceeds pool cost %s",
				ErrInvalidAssetEvent, ev.Amount, ev.Asset, ev.Date, pool.cost)
		}
		pool.cost = adjusted
	case Dividend:
		pool.cost = pool.cost.Add(ev.Amount)
	}
	return nil
}
