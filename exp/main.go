// Command exp tracks daily expenses and incomes in a CSV ledger.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/expenses/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	cmd.Completion(commander).Complete(path.Base(os.Args[0]))

	flag.Parse()

	logger, err := cmd.NewLogger(*cmd.Verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error creating logger:", err)
		os.Exit(1)
	}
	cmd.SetLogger(logger)

	if flag.NArg() > 0 && !registered(commander, flag.Arg(0)) {
		if found, code := cmd.RunExtension(flag.Arg(0), flag.Args()[1:]); found {
			logger.Sync()
			os.Exit(code)
		}
	}

	status := commander.Execute(context.Background())
	logger.Sync()
	os.Exit(int(status))
}

// registered reports whether name is a builtin subcommand.
func registered(c *subcommands.Commander, name string) (found bool) {
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		if cmd.Name() == name {
			found = true
		}
	})
	return found
}
