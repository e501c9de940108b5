package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/expenses"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
	format string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export all transactions to a file" }
func (*exportCmd) Usage() string {
	return `exp export [-o <file>] [-format csv|json]

  Exports all transactions with their running balance. Use '-o -' to write
  to the standard output.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "transactions.csv", "Output file, '-' for the standard output.")
	f.StringVar(&c.format, "format", "csv", "Output format: csv or json.")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.format != "csv" && c.format != "json" {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q, want csv or json\n", c.format)
		return subcommands.ExitUsageError
	}

	session, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer session.Close()

	var buf bytes.Buffer
	switch c.format {
	case "json":
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		err = enc.Encode(session.Ledger())
	default:
		err = expenses.EncodeLedger(&buf, session.Ledger())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding transactions: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.output == "-" {
		stdout.Write(buf.Bytes())
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.output, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Exported %d transactions to %s\n", session.Ledger().Len(), c.output)
	return subcommands.ExitSuccess
}
