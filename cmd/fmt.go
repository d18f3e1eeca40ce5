package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/cgtcalc"
)

type fmtCmd struct {
	ledgerFile string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `cgt fmt [-l <ledger>]

  Validates and formats the ledger file. This command reads all records,
  validates them, sorts them by date, and writes them back in a canonical
  JSONL format.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "l", "", "Ledger to format. Defaults to the -ledger-file flag.")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path := *ledgerFile
	if c.ledgerFile != "" {
		path = c.ledgerFile
	}

	ledger, err := DecodeLedger(c.ledgerFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := ledger.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	out, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rewriting ledger file %q: %v\n", path, err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	if err := cgtcalc.EncodeLedger(out, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger file %q: %v\n", path, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Formatted ledger %q.\n", path)
	return subcommands.ExitSuccess
}
