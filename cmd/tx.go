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

type txCmd struct {
	rangeFlags
	kind     string
	category string
	head     int
	tail     int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the transactions with their running balance" }
func (*txCmd) Usage() string {
	return `exp tx [-p <period> | -s <start_date>] [-e <end_date>] [-t <type>] [-c <category>] [-head <n>] [-tail <n>]

  Lists transactions from the ledger in date order, with the running balance
  after each of them. Both start and end dates are included.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	p.rangeFlags.SetFlags(f)
	f.StringVar(&p.kind, "t", "", "Only list transactions of this type (expense or income).")
	f.StringVar(&p.category, "c", "", "Only list transactions in this category.")
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N transactions.")
}

func (p *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.head > 0 && p.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}
	r, err := p.Range()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	filters := []func(expenses.Transaction) bool{expenses.ByRange(r)}
	if p.kind != "" {
		kind, err := expenses.ParseKind(p.kind)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		filters = append(filters, expenses.ByKind(kind))
	}
	if p.category != "" {
		filters = append(filters, expenses.ByCategory(p.category))
	}

	session, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer session.Close()

	txs := session.Ledger().Collect(filters...)
	if p.head > 0 && len(txs) > p.head {
		txs = txs[:p.head]
	}
	if p.tail > 0 && len(txs) > p.tail {
		txs = txs[len(txs)-p.tail:]
	}

	printMarkdown(renderer.TransactionsMarkdown(title("Transactions", r), txs, currency(session)))
	return subcommands.ExitSuccess
}
