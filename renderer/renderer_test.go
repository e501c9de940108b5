package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/expenses"
	"github.com/etnz/expenses/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// document is what the tests inspect of a rendered markdown.
type document struct {
	headings []string
	tables   [][][]string // rows of cells, header row included.
	text     string       // text of paragraphs.
}

// parse parses markdown the way a markdown viewer would, so that tests do not
// depend on the exact spacing of the output.
func parse(t *testing.T, src string) document {
	t.Helper()
	source := []byte(src)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(source))

	var doc document
	var paragraphs []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			doc.headings = append(doc.headings, nodeText(n, source))
			return ast.WalkSkipChildren, nil
		case *east.Table:
			doc.tables = append(doc.tables, nil)
		case *east.TableHeader, *east.TableRow:
			last := len(doc.tables) - 1
			doc.tables[last] = append(doc.tables[last], nil)
		case *east.TableCell:
			table := doc.tables[len(doc.tables)-1]
			table[len(table)-1] = append(table[len(table)-1], nodeText(n, source))
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			paragraphs = append(paragraphs, nodeText(n, source))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	doc.text = strings.Join(paragraphs, "\n")
	return doc
}

// nodeText concatenates the text of all n descendants.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(source))
			if c.SoftLineBreak() {
				b.WriteString(" ")
			}
		case *ast.String:
			b.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func D(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleLedger() *expenses.Ledger {
	ledger := expenses.NewLedger(D("100"))
	ledger.Append(
		expenses.NewIncome(date.New(2025, 1, 2), "Salary", "Monthly Salary", D("50")),
		expenses.NewExpense(date.New(2025, 1, 1), "Food", "lunch", D("30")),
		expenses.NewExpense(date.New(2025, 2, 1), "Bills", "power", D("10")),
	)
	return ledger
}

func TestTransactionsMarkdown(t *testing.T) {
	doc := parse(t, TransactionsMarkdown("Transactions", sampleLedger().Collect(), "USD"))

	if diff := cmp.Diff([]string{"Transactions"}, doc.headings); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}
	want := [][][]string{{
		{"Date", "Type", "Category", "Description", "Amount", "Balance"},
		{"2025-01-01", "Expense", "Food", "lunch", "-$30.00", "$70.00"},
		{"2025-01-02", "Income", "Salary", "Monthly Salary", "+$50.00", "$120.00"},
		{"2025-02-01", "Expense", "Bills", "power", "-$10.00", "$110.00"},
	}}
	if diff := cmp.Diff(want, doc.tables); diff != "" {
		t.Errorf("tables mismatch (-want +got):\n%s", diff)
	}
}

func TestTransactionsMarkdown_Empty(t *testing.T) {
	doc := parse(t, TransactionsMarkdown("Transactions", nil, "USD"))
	if len(doc.tables) != 0 || doc.text != "No transactions." {
		t.Errorf("got %d tables and text %q, want a 'No transactions.' message", len(doc.tables), doc.text)
	}
}

func TestTransaction(t *testing.T) {
	tx := sampleLedger().Collect()[1]
	want := "Received $50.00 (Salary) on 2025-01-02, balance is now $120.00"
	if got := Transaction(tx, "USD"); got != want {
		t.Errorf("Transaction() = %q, want %q", got, want)
	}
}

func TestSummaryMarkdown(t *testing.T) {
	ledger := sampleLedger()
	txs := ledger.Collect()
	doc := parse(t, SummaryMarkdown(ledger.Summarize(date.Range{}), expenses.CategoryBreakdown(txs), "USD"))

	wantHeadings := []string{"Summary from 2025-01-01 to 2025-02-01", "Expenses by Category"}
	if diff := cmp.Diff(wantHeadings, doc.headings); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}
	want := [][][]string{
		{
			{"Metric", "Value"},
			{"Transactions", "3"},
			{"Opening Balance", "$100.00"},
			{"Total Income", "$50.00"},
			{"Total Expenses", "$40.00"},
			{"Net", "+$10.00"},
			{"Current Balance", "$110.00"},
		},
		{
			{"Category", "Amount"},
			{"Bills", "$10.00"},
			{"Food", "$30.00"},
		},
	}
	if diff := cmp.Diff(want, doc.tables); diff != "" {
		t.Errorf("tables mismatch (-want +got):\n%s", diff)
	}
}

func TestChartMarkdown(t *testing.T) {
	breakdown := []expenses.CategoryAmount{
		{Category: "Bills", Amount: D("10")},
		{Category: "Food", Amount: D("30")},
	}
	doc := parse(t, ChartMarkdown("Expenses by Category", breakdown, "USD", 6))

	want := [][][]string{{
		{"Category", "Amount", "Share", "Chart"},
		{"Bills", "$10.00", "25.0%", "██"},
		{"Food", "$30.00", "75.0%", "██████"},
	}}
	if diff := cmp.Diff(want, doc.tables); diff != "" {
		t.Errorf("tables mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(doc.text, "Total: $40.00") {
		t.Errorf("text = %q, want the total", doc.text)
	}

	empty := parse(t, ChartMarkdown("Expenses by Category", nil, "USD", 6))
	if len(empty.tables) != 0 || empty.text != "No expenses." {
		t.Errorf("empty chart = %+v", empty)
	}
}

func TestChartMarkdown_Alignment(t *testing.T) {
	breakdown := []expenses.CategoryAmount{{Category: "Food", Amount: D("30")}}
	got := ChartMarkdown("Expenses by Category", breakdown, "USD", 6)
	if want := "|:--------|--------:|--------:|:--------|"; !strings.Contains(got, want) {
		t.Errorf("ChartMarkdown() = %q, want the delimiter row %q", got, want)
	}
}

func TestBar(t *testing.T) {
	testCases := []struct {
		v, max string
		width  int
		want   int
	}{
		{"10", "10", 30, 30},
		{"5", "10", 30, 15},
		{"0.01", "1000", 30, 1},
		{"0", "10", 30, 0},
		{"10", "10", 0, 0},
	}
	for _, tc := range testCases {
		got := bar(D(tc.v), D(tc.max), tc.width)
		if n := strings.Count(got, barChar); n != tc.want {
			t.Errorf("bar(%s, %s, %d) has %d chars, want %d", tc.v, tc.max, tc.width, n, tc.want)
		}
	}
}

func TestHistoryMarkdown(t *testing.T) {
	doc := parse(t, HistoryMarkdown(sampleLedger().BalanceHistory(), "USD"))
	want := [][][]string{{
		{"Date", "Balance", "Change"},
		{"2025-01-01", "$70.00", "-"},
		{"2025-01-02", "$120.00", "+$50.00"},
		{"2025-02-01", "$110.00", "-$10.00"},
	}}
	if diff := cmp.Diff(want, doc.tables); diff != "" {
		t.Errorf("tables mismatch (-want +got):\n%s", diff)
	}
}

func TestPeriodicMarkdown(t *testing.T) {
	summaries := expenses.SummaryBy(sampleLedger().Collect(), date.Monthly)
	doc := parse(t, PeriodicMarkdown(date.Monthly, summaries, "USD"))

	if diff := cmp.Diff([]string{"Monthly Overview"}, doc.headings); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}
	want := [][][]string{{
		{"Period", "Income", "Expenses", "Net", "Balance"},
		{"2025-01", "$50.00", "$30.00", "+$20.00", "$120.00"},
		{"2025-02", "$0.00", "$10.00", "-$10.00", "$110.00"},
	}}
	if diff := cmp.Diff(want, doc.tables); diff != "" {
		t.Errorf("tables mismatch (-want +got):\n%s", diff)
	}
}
