// Package cgtcalc computes realized UK capital-gains tax events from a
// chronological ledger of trades and corporate actions.
//
// Disposals are matched against acquisitions by the statutory rules, in
// order: same-day matching, then bed-and-breakfast matching (acquisitions
// within 30 days after a disposal), then the Section 104 holding — a single
// weighted-average-cost pool per asset absorbing everything else. The
// matching is exhaustive and non-overlapping: every unit of every disposal
// is accounted for exactly once, and a run fails rather than return a
// partial result.
//
// All arithmetic is decimal-exact; results are grouped by UK tax year
// (6 April to 5 April) and checked against a table of annual exempt amounts
// and rates.
package cgtcalc
