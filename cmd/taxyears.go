package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/google/subcommands"

	"github.com/etnz/cgtcalc/renderer"
)

type taxYearsCmd struct {
	ratesFile string
}

func (*taxYearsCmd) Name() string     { return "taxyears" }
func (*taxYearsCmd) Synopsis() string { return "list the known tax year exemptions and rates" }
func (*taxYearsCmd) Usage() string {
	return `cgt taxyears [-rates <file>]

  Prints the annual exempt amount and CGT rates for every known tax year.
`
}

func (c *taxYearsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ratesFile, "rates", "", "TOML file overriding the built-in tax year rates.")
}

func (c *taxYearsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	table, err := decodeRates(c.ratesFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	years := table.Years()
	sort.Slice(years, func(i, j int) bool { return years[i] < years[j] })

	printMarkdown(renderer.RatesMarkdown(years, table))
	return subcommands.ExitSuccess
}
