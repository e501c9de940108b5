package cmd

import (
	"flag"

	"github.com/etnz/expenses"
	"github.com/etnz/expenses/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var periods = predict.Set{"day", "week", "month", "quarter", "year"}

// flagPredictors maps flag names to their completion.
var flagPredictors = map[string]complete.Predictor{
	"ledger-file":   predict.Files("*.csv"),
	"settings-file": predict.Files("*.env"),
	"o":             predict.Files("*"),
	"t":             predict.Set{"expense", "income"},
	"c":             predict.Set(expenses.ExpenseCategories),
	"format":        predict.Set{"csv", "json"},
	"p":             periods,
	"by":            periods,
}

// Completion returns the shell completion of every command registered in c.
//
// The main package calls Complete on it before parsing the flags; it does
// nothing unless the shell is asking for completions.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: predictFlags(flag.CommandLine),
	}
	var names predict.Set
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		root.Sub[cmd.Name()] = &complete.Command{Flags: predictFlags(fs)}
		names = append(names, cmd.Name())
	})
	if help, ok := root.Sub["help"]; ok {
		help.Args = names
	}
	if topic, ok := root.Sub["topic"]; ok {
		topics, _ := docs.GetAllTopics()
		topic.Args = predict.Set(append(topics, "readme"))
	}
	return root
}

func predictFlags(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := flagPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}
