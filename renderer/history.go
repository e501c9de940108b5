package renderer

import (
	"bytes"
	"strings"

	"github.com/etnz/expenses"
	"github.com/etnz/expenses/date"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// HistoryMarkdown renders the end of day balance for every day with activity.
func HistoryMarkdown(h *date.History[decimal.Decimal], currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Balance History")

	if h.Len() == 0 {
		doc.PlainText("No transactions.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Balance", "Change"},
		Rows:   [][]string{},
	}
	var prev decimal.Decimal
	first := true
	for day, balance := range h.Values() {
		change := "-"
		if !first {
			change = expenses.M(balance.Sub(prev), currency).SignedString()
		}
		table.Rows = append(table.Rows, []string{
			day.String(),
			expenses.M(balance, currency).String(),
			change,
		})
		prev, first = balance, false
	}
	doc.Table(table)
	return doc.String()
}

// PeriodicMarkdown renders one row per summary: the monthly, weekly or yearly
// overview of the ledger.
func PeriodicMarkdown(period date.Period, summaries []expenses.Summary, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	name := period.String()
	doc.H1(strings.ToUpper(name[:1]) + name[1:] + " Overview")

	if len(summaries) == 0 {
		doc.PlainText("No transactions.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Period", "Income", "Expenses", "Net", "Balance"},
		Rows:   make([][]string, 0, len(summaries)),
	}
	for _, s := range summaries {
		table.Rows = append(table.Rows, []string{
			s.Range.Identifier(),
			expenses.M(s.TotalIncome, currency).String(),
			expenses.M(s.TotalExpenses, currency).String(),
			expenses.M(s.Net(), currency).SignedString(),
			expenses.M(s.CurrentBalance, currency).String(),
		})
	}
	doc.Table(table)
	return doc.String()
}
