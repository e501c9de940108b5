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

type historyCmd struct {
	rangeFlags
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the balance history" }
func (*historyCmd) Usage() string {
	return `exp history [-p <period> | -s <start_date>] [-e <end_date>]

  Displays the balance at the end of every day with at least one transaction.
`
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	printMarkdown(renderer.HistoryMarkdown(session.Ledger().BalanceHistory(expenses.ByRange(r)), currency(session)))
	return subcommands.ExitSuccess
}
