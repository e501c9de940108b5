package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/expenses"
	"github.com/etnz/expenses/date"
	"github.com/etnz/expenses/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type addCmd struct {
	date        string
	kind        string
	category    string
	description string
	amount      string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record an expense or an income" }
func (*addCmd) Usage() string {
	return `exp add -a <amount> [-t expense|income] [-c <category>] [-m <description>] [-d <date>]

  Records a transaction and saves the ledger. The running balance of every
  transaction is updated.

  An amount of zero or less records nothing.

Usage Examples:
# Lunch today
$ exp add -a 12.50 -c Food -m lunch

# Refund received last Monday
$ exp add -t income -c Other -a 30 -d -1w
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Transaction date. See 'topic dates' for the supported formats.")
	f.StringVar(&c.kind, "t", "expense", "Transaction type: expense or income.")
	f.StringVar(&c.category, "c", "Other", "Category, one of "+strings.Join(expenses.ExpenseCategories, ", ")+" or any other label.")
	f.StringVar(&c.description, "m", "", "Description of the transaction.")
	f.StringVar(&c.amount, "a", "", "Amount of the transaction, a positive number.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount == "" {
		fmt.Fprintln(os.Stderr, "Error: -a <amount> is required")
		return subcommands.ExitUsageError
	}
	amount, err := decimal.NewFromString(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount %q: %v\n", c.amount, err)
		return subcommands.ExitUsageError
	}
	on, err := date.ParseRelative(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	kind, err := expenses.ParseKind(c.kind)
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

	return submit(ctx, session, expenses.NewTransaction(on, kind, c.category, c.description, amount))
}

// submit submits tx and prints it with its balance.
func submit(ctx context.Context, session *expenses.Session, tx expenses.Transaction) subcommands.ExitStatus {
	added, err := session.Submit(ctx, tx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if !added {
		return subcommands.ExitSuccess
	}
	// The new transaction is the last one of its day.
	var last expenses.Transaction
	for _, t := range session.Ledger().Transactions(expenses.ByRange(date.NewRange(tx.Date, date.Daily))) {
		last = t
	}
	fmt.Fprintln(stdout, renderer.Transaction(last, currency(session)))
	return subcommands.ExitSuccess
}
