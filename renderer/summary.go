package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/expenses"
	"github.com/etnz/expenses/date"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the key metrics of a summary, followed by the
// expenses per category.
func SummaryMarkdown(s expenses.Summary, breakdown []expenses.CategoryAmount, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Summary" + rangeTitle(s.Range))

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Transactions", strconv.Itoa(s.Count)},
			{"Opening Balance", expenses.M(s.OpeningBalance, currency).String()},
			{"Total Income", expenses.M(s.TotalIncome, currency).String()},
			{"Total Expenses", expenses.M(s.TotalExpenses, currency).String()},
			{"Net", expenses.M(s.Net(), currency).SignedString()},
			{md.Bold("Current Balance"), md.Bold(expenses.M(s.CurrentBalance, currency).String())},
		},
	}
	doc.Table(table)

	if len(breakdown) > 0 {
		doc.H2("Expenses by Category")
		doc.Table(breakdownTable(breakdown, currency))
	}
	return doc.String()
}

func breakdownTable(breakdown []expenses.CategoryAmount, currency string) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Category", "Amount"},
		Rows:      make([][]string, 0, len(breakdown)),
	}
	for _, c := range breakdown {
		table.Rows = append(table.Rows, []string{c.Category, expenses.M(c.Amount, currency).String()})
	}
	return table
}

// rangeTitle returns a suffix for titles describing r, empty for an unbounded range.
func rangeTitle(r date.Range) string {
	switch {
	case r.From.IsZero() && r.To.IsZero():
		return ""
	case r.From == r.To:
		return fmt.Sprintf(" on %s", r.From)
	case r.From.IsZero():
		return fmt.Sprintf(" until %s", r.To)
	case r.To.IsZero():
		return fmt.Sprintf(" since %s", r.From)
	default:
		return fmt.Sprintf(" from %s to %s", r.From, r.To)
	}
}
