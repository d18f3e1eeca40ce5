package renderer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/etnz/cgtcalc"
)

var matchHeader = []string{"Date", "Asset", "Rule", "Quantity", "Acquired", "Proceeds", "Cost", "Gain"}

func matchRow(m cgtcalc.DisposalMatch) []string {
	return []string{
		m.DisposalDate.String(),
		m.Asset,
		m.Kind.String(),
		m.Quantity.String(),
		acquiredColumn(m),
		m.Proceeds.String(),
		m.Cost.String(),
		m.Gain().SignedString(),
	}
}

// MatchesTable writes the disposal matches as a plain-text table, for
// terminals where markdown rendering is unwanted.
func MatchesTable(w io.Writer, result *cgtcalc.Result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(matchHeader)
	table.SetAutoWrapText(false)
	for _, m := range result.Matches {
		table.Append(matchRow(m))
	}
	table.Render()
}

// MatchesCSV writes the disposal matches as CSV with raw decimal amounts,
// suitable for a spreadsheet.
func MatchesCSV(w io.Writer, result *cgtcalc.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(matchHeader); err != nil {
		return fmt.Errorf("could not write CSV header: %w", err)
	}
	for _, m := range result.Matches {
		row := []string{
			m.DisposalDate.String(),
			m.Asset,
			m.Kind.String(),
			m.Quantity.String(),
			acquiredColumn(m),
			m.Proceeds.Amount().String(),
			m.Cost.Amount().String(),
			m.Gain().Amount().String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("could not write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
