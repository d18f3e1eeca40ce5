package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/cgtcalc"
	"github.com/etnz/cgtcalc/renderer"
)

// calculateCmd holds the flags for the 'calculate' subcommand.
type calculateCmd struct {
	ledgerFile string
	ratesFile  string
	logLevel   string
	csv        bool
	plain      bool
}

func (*calculateCmd) Name() string     { return "calculate" }
func (*calculateCmd) Synopsis() string { return "compute realized capital gains from the ledger" }
func (*calculateCmd) Usage() string {
	return `cgt calculate [-l <ledger>] [-rates <file>] [-log <level>] [-csv | -plain]

  Reads the ledger, matches every disposal against its acquisitions using the
  same-day, bed-and-breakfast and Section 104 rules, and reports the gains
  grouped by tax year.
`
}

func (c *calculateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "l", "", "Ledger to report on. Defaults to the -ledger-file flag.")
	f.StringVar(&c.ratesFile, "rates", "", "TOML file overriding the built-in tax year rates.")
	f.StringVar(&c.logLevel, "log", "", "Log level (debug, info, warn, error). Logging is off by default.")
	f.BoolVar(&c.csv, "csv", false, "Write the matches as CSV to stdout instead of a report.")
	f.BoolVar(&c.plain, "plain", false, "Write the matches as a plain table instead of a markdown report.")
}

func (c *calculateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger(c.ledgerFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	rates, err := decodeRates(c.ratesFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	logger := cgtcalc.NewSilentLogger()
	if c.logLevel != "" {
		logger = cgtcalc.NewLogger(c.logLevel)
	}

	result, err := cgtcalc.NewCalculator(rates, logger).Process(ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing gains: %v\n", err)
		return subcommands.ExitFailure
	}

	switch {
	case c.csv:
		if err := renderer.MatchesCSV(os.Stdout, result); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	case c.plain:
		renderer.MatchesTable(os.Stdout, result)
	default:
		printMarkdown(renderer.ReportMarkdown(result))
	}
	return subcommands.ExitSuccess
}
