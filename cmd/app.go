// Package cmd implements the CLI application to track daily expenses.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/expenses"
	"github.com/etnz/expenses/date"
	"github.com/etnz/expenses/pgstore"
	"github.com/google/subcommands"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "transactions")
	c.Register(&salaryCmd{}, "transactions")
	c.Register(&fmtCmd{}, "transactions")

	c.Register(&txCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
	c.Register(&chartCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")
	c.Register(&queryCmd{}, "reports")
	c.Register(&exportCmd{}, "reports")

	c.Register(&configCmd{}, "settings")

	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "expenses.csv", "Path to the ledger file containing transactions (CSV format)")
var settingsFile = flag.String("settings-file", "expenses.env", "Path to the settings file (dotenv format)")
var dsn = flag.String("dsn", "", "PostgreSQL connection string. When set the ledger is stored in the database instead of the ledger file. Defaults to $"+expenses.EnvDSN)
var raw = flag.Bool("raw", false, "Print reports as raw markdown instead of rendering them for the terminal")

// Verbose enables development logging.
var Verbose = flag.Bool("v", false, "Verbose logging")

// stdout is where reports are printed.
var stdout io.Writer = os.Stdout

var logger = zap.NewNop()

// SetLogger sets the logger used by subcommands.
func SetLogger(l *zap.Logger) { logger = l }

// NewLogger returns the application logger writing to stderr: warnings and
// errors only, or everything in a human friendly format when verbose.
func NewLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// loadSettings reads the settings file, overridden by the environment.
func loadSettings() (expenses.Settings, error) {
	s, err := expenses.LoadSettings(*settingsFile)
	if err != nil {
		return s, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// openStore returns the PostgreSQL store if a DSN is configured, the ledger
// file otherwise.
func openStore(ctx context.Context, s expenses.Settings) (expenses.Store, error) {
	conn := *dsn
	if conn == "" {
		conn = s.DSN
	}
	if conn == "" {
		logger.Debug("using ledger file", zap.String("path", *ledgerFile))
		return expenses.NewFileStore(*ledgerFile), nil
	}
	logger.Debug("using database store")
	store, err := pgstore.Open(ctx, conn)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// openSession loads the settings and the ledger.
func openSession(ctx context.Context) (*expenses.Session, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, err
	}
	return openSessionWith(ctx, s)
}

// openSessionWith loads the ledger from the store selected by s.
func openSessionWith(ctx context.Context, s expenses.Settings) (*expenses.Session, error) {
	store, err := openStore(ctx, s)
	if err != nil {
		return nil, err
	}
	session, err := expenses.OpenSession(ctx, store, s, logger)
	if err != nil {
		if c, ok := store.(io.Closer); ok {
			c.Close()
		}
		return nil, err
	}
	return session, nil
}

// printMarkdown renders md for the terminal, or prints it as is with -raw.
func printMarkdown(md string) {
	if *raw {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		logger.Warn("could not create markdown renderer", zap.Error(err))
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		logger.Warn("could not render markdown", zap.Error(err))
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

// rangeFlags are the flags shared by reports to select a range of dates.
type rangeFlags struct {
	start  string
	end    string
	period string
}

func (r *rangeFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.start, "s", "", "The first day included (default: the oldest transaction). See 'topic dates' for the supported formats.")
	f.StringVar(&r.end, "e", "", "The last day included (default: no limit).")
	f.StringVar(&r.period, "p", "", "Predefined period containing the end date (day, week, month, quarter, year). Ignored with -s.")
}

// Range returns the selected range. Without any flag the range is unbounded.
func (r *rangeFlags) Range() (date.Range, error) {
	var end date.Date
	if r.end != "" {
		var err error
		if end, err = date.ParseRelative(r.end); err != nil {
			return date.Range{}, fmt.Errorf("invalid end date: %w", err)
		}
	}
	switch {
	case r.start != "":
		start, err := date.ParseRelative(r.start)
		if err != nil {
			return date.Range{}, fmt.Errorf("invalid start date: %w", err)
		}
		rg := date.Between(start, end)
		if rg.IsEmpty() {
			logger.Warn("start date is after end date, nothing selected", zap.Stringer("start", start), zap.Stringer("end", end))
		}
		return rg, nil
	case r.period != "":
		p, err := date.ParsePeriod(r.period)
		if err != nil {
			return date.Range{}, err
		}
		if end.IsZero() {
			end = date.Today()
		}
		return date.NewRange(end, p), nil
	default:
		return date.Between(date.Date{}, end), nil
	}
}

// currency returns the display currency of a session.
func currency(s *expenses.Session) string {
	if c := s.Settings().Currency; c != "" {
		return c
	}
	return expenses.DefaultCurrency
}

// title returns "name" followed by the description of r.
func title(name string, r date.Range) string {
	var b strings.Builder
	b.WriteString(name)
	if !r.From.IsZero() {
		fmt.Fprintf(&b, " from %s", r.From)
	}
	if !r.To.IsZero() {
		fmt.Fprintf(&b, " to %s", r.To)
	}
	return b.String()
}
