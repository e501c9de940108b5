package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/expenses"
	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

type configCmd struct {
	startingBalance string
	salary          string
	currency        string
	dsn             string
}

func (*configCmd) Name() string     { return "config" }
func (*configCmd) Synopsis() string { return "show or change the settings" }
func (*configCmd) Usage() string {
	return `exp config [-starting-balance <amount>] [-salary <amount>] [-currency <code>] [-db <dsn>]

  Without flags, shows the settings. Otherwise updates the settings file and,
  when the starting balance changes, every running balance in the ledger. With
  -db, the ledger updated is the one in the new store.

  Environment variables with the same name as the settings keys override the
  settings file. They are shown but never written to it.
`
}

func (c *configCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.startingBalance, "starting-balance", "", "Balance before the first transaction, can be negative.")
	f.StringVar(&c.salary, "salary", "", "Amount recorded by 'exp salary'.")
	f.StringVar(&c.currency, "currency", "", "ISO 4217 code of the currency used to display amounts.")
	f.StringVar(&c.dsn, "db", "", "PostgreSQL connection string to store the ledger in, 'none' to go back to the ledger file.")
}

func (c *configCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NFlag() == 0 {
		s, err := loadSettings()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(settingsMarkdown(s))
		return subcommands.ExitSuccess
	}

	s, err := expenses.ReadSettingsFile(*settingsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid settings: %v\n", err)
		return subcommands.ExitFailure
	}

	var start *decimal.Decimal
	if c.startingBalance != "" {
		d, err := decimal.NewFromString(c.startingBalance)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing starting balance: %v\n", err)
			return subcommands.ExitUsageError
		}
		start = &d
	}
	if c.salary != "" {
		d, err := decimal.NewFromString(c.salary)
		if err != nil || d.IsNegative() {
			fmt.Fprintf(os.Stderr, "Error: invalid salary %q\n", c.salary)
			return subcommands.ExitUsageError
		}
		s.Salary = d
	}
	if c.currency != "" {
		if err := expenses.ValidateCurrency(c.currency); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		s.Currency = c.currency
	}
	switch c.dsn {
	case "":
	case "none":
		s.DSN = ""
	default:
		s.DSN = c.dsn
	}

	if start != nil {
		// The ledger is saved first, the settings file is the last to change.
		current, err := loadSettings()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if c.dsn != "" {
			current.DSN = s.DSN
		}
		session, err := openSessionWith(ctx, current)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		defer session.Close()
		if err := session.SetStartingBalance(ctx, *start); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		s.StartingBalance = *start
	}

	if err := expenses.SaveSettings(*settingsFile, s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(settingsMarkdown(s))
	return subcommands.ExitSuccess
}

func settingsMarkdown(s expenses.Settings) string {
	db := "none, using " + *ledgerFile
	if s.DSN != "" {
		db = "configured"
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Settings")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Setting", "Key", "Value"},
		Rows: [][]string{
			{"Starting Balance", expenses.EnvStartingBalance, expenses.M(s.StartingBalance, s.Currency).String()},
			{"Salary", expenses.EnvSalary, expenses.M(s.Salary, s.Currency).String()},
			{"Currency", expenses.EnvCurrency, s.Currency},
			{"Database", expenses.EnvDSN, db},
		},
	})
	return doc.String()
}
