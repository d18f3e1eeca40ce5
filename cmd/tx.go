package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/etnz/cgtcalc"
)

// tradeFlags are the flags shared by the buy and sell subcommands.
type tradeFlags struct {
	date     string
	asset    string
	quantity string
	price    string
	expenses string
}

func (t *tradeFlags) set(f *flag.FlagSet) {
	f.StringVar(&t.date, "d", cgtcalc.Today().String(), "Trade date.")
	f.StringVar(&t.asset, "a", "", "Asset ticker.")
	f.StringVar(&t.quantity, "q", "", "Number of units traded.")
	f.StringVar(&t.price, "p", "", "Unit price in GBP.")
	f.StringVar(&t.expenses, "e", "0", "Incidental costs of the trade in GBP.")
}

// transaction builds and validates the transaction described by the flags.
func (t *tradeFlags) transaction(kind cgtcalc.TransactionKind) (cgtcalc.Transaction, error) {
	day, err := cgtcalc.ParseDate(t.date)
	if err != nil {
		return cgtcalc.Transaction{}, err
	}
	quantity, err := decimal.NewFromString(t.quantity)
	if err != nil {
		return cgtcalc.Transaction{}, fmt.Errorf("invalid quantity %q: %w", t.quantity, err)
	}
	price, err := decimal.NewFromString(t.price)
	if err != nil {
		return cgtcalc.Transaction{}, fmt.Errorf("invalid price %q: %w", t.price, err)
	}
	expenses, err := decimal.NewFromString(t.expenses)
	if err != nil {
		return cgtcalc.Transaction{}, fmt.Errorf("invalid expenses %q: %w", t.expenses, err)
	}

	tx := cgtcalc.Transaction{
		Asset:    t.asset,
		Kind:     kind,
		Date:     day,
		Quantity: cgtcalc.Q(quantity),
		Price:    cgtcalc.M(price, cgtcalc.GBPCurrency),
		Expenses: cgtcalc.M(expenses, cgtcalc.GBPCurrency),
	}
	return tx, tx.Validate()
}

type buyCmd struct{ tradeFlags }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "append an acquisition to the ledger" }
func (*buyCmd) Usage() string {
	return `cgt buy -a <asset> -q <quantity> -p <price> [-e <expenses>] [-d <date>]

  Appends a buy record to the ledger file.
`
}
func (c *buyCmd) SetFlags(f *flag.FlagSet) { c.set(f) }

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tx, err := c.transaction(cgtcalc.Acquisition)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	return appendRecord(tx)
}

type sellCmd struct{ tradeFlags }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "append a disposal to the ledger" }
func (*sellCmd) Usage() string {
	return `cgt sell -a <asset> -q <quantity> -p <price> [-e <expenses>] [-d <date>]

  Appends a sell record to the ledger file.
`
}
func (c *sellCmd) SetFlags(f *flag.FlagSet) { c.set(f) }

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tx, err := c.transaction(cgtcalc.Disposal)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	return appendRecord(tx)
}
