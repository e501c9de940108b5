package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/expenses"
	"github.com/etnz/expenses/date"
	"github.com/etnz/expenses/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	rangeFlags
	by string
}

func (*summaryCmd) Name() string { return "summary" }
func (*summaryCmd) Synopsis() string {
	return "display total expenses, total income and current balance"
}
func (*summaryCmd) Usage() string {
	return `exp summary [-p <period> | -s <start_date>] [-e <end_date>] [-by <period>]

  Displays the key metrics of the ledger: total expenses, total income and
  the current balance, followed by the expenses per category.

  With -by, displays one row per period instead (e.g. -by month).
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	c.rangeFlags.SetFlags(f)
	f.StringVar(&c.by, "by", "", "Split the summary by period (day, week, month, quarter, year).")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := c.Range()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	var period date.Period
	if c.by != "" {
		if period, err = date.ParsePeriod(c.by); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	session, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer session.Close()

	ledger := session.Ledger()
	txs := ledger.Collect(expenses.ByRange(r))
	if c.by != "" {
		printMarkdown(renderer.PeriodicMarkdown(period, expenses.SummaryBy(txs, period), currency(session)))
		return subcommands.ExitSuccess
	}
	s := ledger.Summarize(r)
	printMarkdown(renderer.SummaryMarkdown(s, expenses.CategoryBreakdown(txs), currency(session)))
	return subcommands.ExitSuccess
}
