// Package renderer renders calculation results for the terminal.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/cgtcalc"
)

// ReportMarkdown renders the full calculation result as a markdown document:
// one summary table per tax year followed by the detailed match list.
func ReportMarkdown(result *cgtcalc.Result) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Capital Gains Report\n\n")

	fmt.Fprint(&b, "## Tax Year Summary\n\n")
	fmt.Fprintln(&b, "| Tax Year | Disposals | Proceeds | Gains | Losses | Net | Exemption | Taxable | Tax (basic) | Tax (higher) |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|---:|---:|---:|")
	for _, year := range result.Years {
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			year.Year,
			year.Disposals,
			year.Proceeds,
			year.Gains,
			year.Losses,
			year.Net.SignedString(),
			year.Rates.Exemption,
			year.Taxable,
			year.TaxAtBasic,
			year.TaxAtHigher,
		)
	}

	fmt.Fprint(&b, "\n## Disposal Matches\n\n")
	fmt.Fprintln(&b, "| Date | Asset | Rule | Quantity | Acquired | Proceeds | Cost | Gain |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|:---|---:|---:|---:|")
	for _, m := range result.Matches {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			m.DisposalDate,
			m.Asset,
			m.Kind,
			m.Quantity,
			acquiredColumn(m),
			m.Proceeds,
			m.Cost,
			m.Gain().SignedString(),
		)
	}

	return b.String()
}

// acquiredColumn explains which acquisition the rule paired: the paired
// acquisition date, or the pool for Section 104 matches.
func acquiredColumn(m cgtcalc.DisposalMatch) string {
	if m.Kind == cgtcalc.MatchSection104 {
		return "pool"
	}
	return m.AcquisitionDate.String()
}

// RatesMarkdown renders a rate table as markdown, years ascending.
func RatesMarkdown(years []cgtcalc.TaxYear, table *cgtcalc.RateTable) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Tax Year Rates\n\n")
	fmt.Fprintln(&b, "| Tax Year | Annual Exempt Amount | Basic Rate | Higher Rate |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	for _, year := range years {
		rates, ok := table.Lookup(year)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", year, rates.Exemption, rates.BasicRate, rates.HigherRate)
	}
	return b.String()
}
