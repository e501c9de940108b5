package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `exp fmt

  Validates and formats the ledger. This command reads all transactions,
  validates them, sorts them by date, derives every running balance again
  and writes them back in canonical form.

  Use it after editing the ledger file by hand.
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {}

func (p *fmtCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	session, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer session.Close()

	if err := session.Save(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving formatted ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Formatted %d transactions.\n", session.Ledger().Len())
	return subcommands.ExitSuccess
}
