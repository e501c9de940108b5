package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/expenses"
	"github.com/etnz/expenses/date"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

type salaryCmd struct {
	date string
}

func (*salaryCmd) Name() string     { return "salary" }
func (*salaryCmd) Synopsis() string { return "record the monthly salary" }
func (*salaryCmd) Usage() string {
	return `exp salary [-d <date>]

  Records the configured salary as an Income in the Salary category.
  Configure it first with 'exp config -salary <amount>'.
`
}

func (c *salaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Day the salary was received. See 'topic dates' for the supported formats.")
}

func (c *salaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.ParseRelative(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	session, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer session.Close()

	salary := session.Settings().Salary
	if !salary.IsPositive() {
		logger.Warn("no salary configured, nothing recorded", zap.String("settings", *settingsFile))
	}
	return submit(ctx, session, expenses.NewSalary(on, salary))
}
