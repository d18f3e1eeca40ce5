// Package cmd implements the CLI application to compute capital gains.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/etnz/cgtcalc"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&calculateCmd{}, "report")
	c.Register(&taxYearsCmd{}, "report")

	c.Register(&buyCmd{}, "ledger")
	c.Register(&sellCmd{}, "ledger")
	c.Register(&fmtCmd{}, "ledger")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "cgt.jsonl", "Path to the ledger file containing transactions and events (JSONL format)")

// DecodeLedger loads the ledger from the app ledger file, or the override
// path if non-empty.
func DecodeLedger(override string) (*cgtcalc.Ledger, error) {
	path := *ledgerFile
	if override != "" {
		path = override
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", path, err)
	}
	defer f.Close()
	ledger, err := cgtcalc.DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", path, err)
	}
	return ledger, nil
}

// decodeRates loads the rate table: the built-in defaults, merged with the
// override file if one is given.
func decodeRates(path string) (*cgtcalc.RateTable, error) {
	if path == "" {
		return cgtcalc.DefaultRates(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open rates file %q: %w", path, err)
	}
	defer f.Close()
	table, err := cgtcalc.DecodeRates(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode rates file %q: %w", path, err)
	}
	return table, nil
}

// appendRecord appends a single record to the app ledger file.
func appendRecord(record interface{ MarshalJSON() ([]byte, error) }) subcommands.ExitStatus {
	filename := *ledgerFile
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := cgtcalc.EncodeRecord(f, record); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended record to %s\n", filename)
	return subcommands.ExitSuccess
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when rendering fails (e.g. when piped).
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
