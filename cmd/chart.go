package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/expenses"
	"github.com/etnz/expenses/renderer"
	"github.com/google/subcommands"
)

type chartCmd struct {
	rangeFlags
	width int
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "display a bar chart of expenses by category" }
func (*chartCmd) Usage() string {
	return `exp chart [-p <period> | -s <start_date>] [-e <end_date>] [-w <width>]

  Displays the total amount spent in each category as a bar chart.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	c.rangeFlags.SetFlags(f)
	f.IntVar(&c.width, "w", renderer.DefaultBarWidth, "Width of the longest bar.")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := c.Range()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	session, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer session.Close()

	breakdown := expenses.CategoryBreakdown(session.Ledger().Collect(expenses.ByRange(r)))
	printMarkdown(renderer.ChartMarkdown(title("Expenses by Category", r), breakdown, currency(session), c.width))
	return subcommands.ExitSuccess
}
