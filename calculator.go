package cgtcalc

import (
	"errors"
	"fmt"
	"time"
)

// Error kinds surfaced by the calculator. All are fatal to the run: no
// partial results are ever returned.
var (
	// ErrUnsupportedDate marks a transaction dated before the rule-effective
	// cutoff.
	ErrUnsupportedDate = errors.New("unsupported transaction date")
	// ErrIncompleteProcessing marks an asset finishing all matching passes
	// with a disposal still holding unmatched quantity.
	ErrIncompleteProcessing = errors.New("incomplete processing")
	// ErrInsufficientPool marks a disposal quantity exceeding the Section
	// 104 pool quantity.
	ErrInsufficientPool = errors.New("insufficient pool")
	// ErrInvalidAssetEvent marks a corporate action inconsistent with the
	// pool state.
	ErrInvalidAssetEvent = errors.New("invalid asset event")
	// ErrMissingRate marks a tax year with no defined rates or allowance.
	ErrMissingRate = errors.New("missing tax year rates")
)

// ruleEffectiveDate is the first day the implemented matching rules apply.
// Transactions before 6 April 2008 fall under earlier indexation and
// taper-relief regimes this calculator does not model.
var ruleEffectiveDate = NewDate(2008, time.April, 6)

// Calculator computes realized capital gains from a ledger by applying the
// statutory lot-matching rules: same-day, then bed-and-breakfast, then the
// Section 104 pool.
type Calculator struct {
	rates *RateTable
	log   *Logger
}

// NewCalculator creates a calculator with the given rate table and logging
// sink. A nil logger discards all output.
func NewCalculator(rates *RateTable, log *Logger) *Calculator {
	if rates == nil {
		rates = DefaultRates()
	}
	if log == nil {
		log = NewSilentLogger()
	}
	return &Calculator{rates: rates, log: log}
}

// Process runs the full pipeline over a ledger and returns the immutable
// aggregated result. Assets are processed independently in sorted ticker
// order, so identical inputs always produce identical results.
func (c *Calculator) Process(ledger *Ledger) (*Result, error) {
	if err := ledger.Validate(); err != nil {
		return nil, err
	}
	for _, tx := range ledger.Transactions() {
		if tx.Date.Before(ruleEffectiveDate) {
			return nil, fmt.Errorf("%w: %s of %s on %s predates %s",
				ErrUnsupportedDate, tx.Kind, tx.Asset, tx.Date, ruleEffectiveDate)
		}
	}

	var matches []DisposalMatch
	for _, asset := range ledger.Assets() {
		st, err := c.processAsset(asset, ledger.transactionsOf(asset), ledger.eventsOf(asset))
		if err != nil {
			return nil, err
		}
		matches = append(matches, st.matches...)
	}

	return newResult(matches, c.rates)
}

// processAsset runs the three matching passes over one asset on a fresh
// state and checks the completeness invariant.
func (c *Calculator) processAsset(asset string, txs []Transaction, events []AssetEvent) (*assetState, error) {
	c.log.Debug().
		Str("asset", asset).
		Int("transactions", len(txs)).
		Int("events", len(events)).
		Msg("processing asset")

	st := newAssetState(asset, txs, events)
	matchPending(st, sameDayRule, MatchSameDay, c.log)
	matchPending(st, bedAndBreakfastRule, MatchBedAndBreakfast, c.log)
	if err := processPool(st, c.log); err != nil {
		return nil, err
	}
	if err := st.complete(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrIncompleteProcessing, err)
	}

	c.log.Debug().
		Str("asset", asset).
		Int("matches", len(st.matches)).
		Msg("asset processed")
	return st, nil
}
