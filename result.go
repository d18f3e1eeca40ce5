package cgtcalc

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// MatchKind tags a disposal match with the rule that produced it.
type MatchKind int

const (
	// MatchSameDay pairs a disposal with an acquisition on the same date.
	MatchSameDay MatchKind = iota
	// MatchBedAndBreakfast pairs a disposal with an acquisition within the
	// following 30 days.
	MatchBedAndBreakfast
	// MatchSection104 draws a disposal from the average-cost pool.
	MatchSection104
)

func (k MatchKind) String() string {
	switch k {
	case MatchSameDay:
		return "same-day"
	case MatchBedAndBreakfast:
		return "bed-and-breakfast"
	case MatchSection104:
		return "section-104"
	default:
		return "unknown"
	}
}

// DisposalMatch is one resolved pairing of disposed quantity to its
// acquisition cost basis. It is immutable after creation and self-describing
// by value: it outlives the per-asset state that produced it.
type DisposalMatch struct {
	Asset    string
	Kind     MatchKind
	Quantity Quantity
	// DisposalDate is the date of the disposal side.
	DisposalDate Date
	// AcquisitionDate is the date of the paired acquisition for same-day and
	// bed-and-breakfast matches; zero for Section 104 matches.
	AcquisitionDate Date
	// Proceeds is the matched quantity at the disposal price.
	Proceeds Money
	// Cost is the allowable cost: the acquisition cost of the matched
	// quantity (or the pool cost basis) plus the apportioned incidental
	// costs of the disposal.
	Cost Money
}

// Gain returns the gain (positive) or loss (negative) of the match.
func (m DisposalMatch) Gain() Money { return m.Proceeds.Sub(m.Cost) }

// TaxYear returns the tax year the disposal falls in.
func (m DisposalMatch) TaxYear() TaxYear { return TaxYearOf(m.DisposalDate) }

// newDirectMatch builds a same-day or bed-and-breakfast match of qty units,
// costed against the paired acquisition.
func newDirectMatch(kind MatchKind, qty Quantity, disp, acq *subTransaction) DisposalMatch {
	return DisposalMatch{
		Asset:           disp.tx.Asset,
		Kind:            kind,
		Quantity:        qty,
		DisposalDate:    disp.tx.Date,
		AcquisitionDate: acq.tx.Date,
		Proceeds:        disp.proceedsOf(qty),
		Cost:            acq.costOf(qty).Add(disp.expenseShare(qty)),
	}
}

// newPoolMatch builds a Section 104 match of qty units, costed at the pool
// average cost basis (which already embeds acquisition expenses).
func newPoolMatch(qty Quantity, disp *subTransaction, costBasis Money) DisposalMatch {
	return DisposalMatch{
		Asset:        disp.tx.Asset,
		Kind:         MatchSection104,
		Quantity:     qty,
		DisposalDate: disp.tx.Date,
		Proceeds:     disp.proceedsOf(qty),
		Cost:         costBasis.Add(disp.expenseShare(qty)),
	}
}

// TaxYearSummary aggregates the matches of one tax year.
type TaxYearSummary struct {
	Year      TaxYear
	Disposals int   // number of matches disposed in the year
	Proceeds  Money // total gross proceeds
	Gains     Money // sum of positive gains
	Losses    Money // sum of losses, as a positive amount
	Net       Money // gains minus losses
	Rates     TaxYearRates
	// Taxable is the net gain exceeding the annual exempt amount, never
	// negative.
	Taxable Money
	// TaxAtBasic and TaxAtHigher estimate the tax due on the taxable gain at
	// each band. The calculator does not know the taxpayer's income, so it
	// reports both.
	TaxAtBasic  Money
	TaxAtHigher Money
}

// Result is the final immutable aggregate of a calculation: every disposal
// match across all assets, with per-tax-year summaries.
type Result struct {
	Matches []DisposalMatch
	Years   []TaxYearSummary
}

// newResult aggregates matches into a Result. It fails with ErrMissingRate
// if a match falls in a tax year the rate table does not cover.
func newResult(matches []DisposalMatch, rates *RateTable) (*Result, error) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if !a.DisposalDate.Before(b.DisposalDate) && !b.DisposalDate.Before(a.DisposalDate) {
			return a.Asset < b.Asset
		}
		return a.DisposalDate.Before(b.DisposalDate)
	})

	byYear := make(map[TaxYear]*TaxYearSummary)
	var years []TaxYear
	for _, m := range matches {
		year := m.TaxYear()
		summary, ok := byYear[year]
		if !ok {
			yearRates, found := rates.Lookup(year)
			if !found {
				return nil, fmt.Errorf("%w: no rates defined for tax year %s (disposal of %s on %s)",
					ErrMissingRate, year, m.Asset, m.DisposalDate)
			}
			summary = &TaxYearSummary{Year: year, Rates: yearRates}
			byYear[year] = summary
			years = append(years, year)
		}

		summary.Disposals++
		summary.Proceeds = summary.Proceeds.Add(m.Proceeds)
		gain := m.Gain()
		if gain.IsNegative() {
			summary.Losses = summary.Losses.Add(gain.Neg())
		} else {
			summary.Gains = summary.Gains.Add(gain)
		}
	}

	sort.Slice(years, func(i, j int) bool { return years[i] < years[j] })

	result := &Result{Matches: matches}
	for _, year := range years {
		summary := byYear[year]
		summary.Net = summary.Gains.Sub(summary.Losses)
		taxable := summary.Net.Sub(summary.Rates.Exemption)
		if taxable.IsNegative() {
			taxable = M(decimal.Zero, summary.Net.Currency())
		}
		summary.Taxable = taxable
		summary.TaxAtBasic = summary.Rates.BasicRate.Of(taxable)
		summary.TaxAtHigher = summary.Rates.HigherRate.Of(taxable)
		result.Years = append(result.Years, *summary)
	}
	return result, nil
}
