package expenses

import (
	"testing"

	"github.com/etnz/expenses/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestSummarize(t *testing.T) {
	ledger := NewLedger(D("100"))
	ledger.Append(
		income("2025-01-02", "Salary", "50"),
		expense("2025-01-01", "Food", "30"),
	)

	s := ledger.Summarize(date.Range{})
	if s.Count != 2 {
		t.Errorf("Count = %d, want 2", s.Count)
	}
	for _, c := range []struct {
		name      string
		got, want decimal.Decimal
	}{
		{"TotalExpenses", s.TotalExpenses, D("30")},
		{"TotalIncome", s.TotalIncome, D("50")},
		{"OpeningBalance", s.OpeningBalance, D("100")},
		{"CurrentBalance", s.CurrentBalance, D("120")},
		{"Net", s.Net(), D("20")},
	} {
		if !c.got.Equal(c.want) {
			t.Errorf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}
	if want := date.Between(date.New(2025, 1, 1), date.New(2025, 1, 2)); s.Range != want {
		t.Errorf("Range = %v, want %v", s.Range, want)
	}
}

func TestSummarize_Range(t *testing.T) {
	ledger := NewLedger(decimal.Zero)
	ledger.Append(
		income("2025-01-01", "Salary", "1000"),
		expense("2025-02-03", "Food", "30"),
		expense("2025-02-10", "Bills", "70"),
		expense("2025-03-01", "Food", "5"),
	)

	s := ledger.Summarize(date.NewRange(date.New(2025, 2, 14), date.Monthly))
	if !s.OpeningBalance.Equal(D("1000")) {
		t.Errorf("OpeningBalance = %s, want 1000", s.OpeningBalance)
	}
	if !s.CurrentBalance.Equal(D("900")) {
		t.Errorf("CurrentBalance = %s, want 900", s.CurrentBalance)
	}
	if !s.TotalExpenses.Equal(D("100")) {
		t.Errorf("TotalExpenses = %s, want 100", s.TotalExpenses)
	}

	for _, c := range []struct {
		name string
		r    date.Range
		want decimal.Decimal
	}{
		{"before first", date.NewRange(date.New(2024, 6, 1), date.Monthly), D("0")},
		{"between", date.NewRange(date.New(2025, 2, 20), date.Daily), D("900")},
		{"after last", date.NewRange(date.New(2025, 6, 1), date.Monthly), D("895")},
	} {
		s := ledger.Summarize(c.r)
		if s.Count != 0 || !s.OpeningBalance.Equal(c.want) || !s.CurrentBalance.Equal(c.want) {
			t.Errorf("Summarize(%s) = %d transactions, balances %s, %s; want 0, %s", c.name, s.Count, s.OpeningBalance, s.CurrentBalance, c.want)
		}
	}
}

func TestSummarize_EmptyBeforeFirst(t *testing.T) {
	ledger := NewLedger(D("100"))
	ledger.Append(
		expense("2025-01-01", "Food", "30"),
		income("2025-01-02", "Salary", "50"),
	)
	s := ledger.Summarize(date.NewRange(date.New(2024, 6, 1), date.Monthly))
	if !s.OpeningBalance.Equal(D("100")) || !s.CurrentBalance.Equal(D("100")) {
		t.Errorf("Summarize(2024-06) balances = %s, %s; want 100, 100", s.OpeningBalance, s.CurrentBalance)
	}
	if got := NewLedger(D("7")).Summarize(date.Range{}); !got.CurrentBalance.Equal(D("7")) {
		t.Errorf("Summarize() of an empty ledger = %s, want 7", got.CurrentBalance)
	}
}

func TestNewSummary_Empty(t *testing.T) {
	s := NewSummary(nil, D("42"))
	if s.Count != 0 || !s.TotalExpenses.IsZero() || !s.TotalIncome.IsZero() {
		t.Errorf("NewSummary(nil) = %+v, want zero totals", s)
	}
	if !s.CurrentBalance.Equal(D("42")) || !s.OpeningBalance.Equal(D("42")) {
		t.Errorf("NewSummary(nil) balances = %s, %s; want 42", s.OpeningBalance, s.CurrentBalance)
	}
}

func TestNewSummary_LastOfSameDay(t *testing.T) {
	txs := Derive([]Transaction{
		expense("2025-01-05", "Food", "1"),
		expense("2025-01-05", "Food", "2"),
		expense("2025-01-01", "Food", "4"),
	}, D("10"))
	s := NewSummary(txs, D("10"))
	if !s.CurrentBalance.Equal(D("3")) {
		t.Errorf("CurrentBalance = %s, want 3", s.CurrentBalance)
	}
}

func TestSummaryBy(t *testing.T) {
	ledger := NewLedger(decimal.Zero)
	ledger.Append(
		income("2025-01-01", "Salary", "1000"),
		expense("2025-01-20", "Food", "30"),
		expense("2025-03-10", "Bills", "70"),
	)
	got := SummaryBy(ledger.Collect(), date.Monthly)
	if len(got) != 2 {
		t.Fatalf("SummaryBy() got %d summaries, want 2", len(got))
	}
	if got[0].Range != date.NewRange(date.New(2025, 1, 1), date.Monthly) {
		t.Errorf("SummaryBy()[0].Range = %v", got[0].Range)
	}
	if !got[0].Net().Equal(D("970")) || !got[1].Net().Equal(D("-70")) {
		t.Errorf("SummaryBy() nets = %s, %s; want 970, -70", got[0].Net(), got[1].Net())
	}
	if !got[1].CurrentBalance.Equal(D("900")) {
		t.Errorf("SummaryBy()[1].CurrentBalance = %s, want 900", got[1].CurrentBalance)
	}
	if SummaryBy(nil, date.Monthly) != nil {
		t.Error("SummaryBy(nil) should be empty")
	}
}

func TestCategoryBreakdown(t *testing.T) {
	txs := []Transaction{
		expense("2025-01-01", "Transport", "3"),
		expense("2025-01-02", "Food", "10"),
		income("2025-01-03", "Salary", "1000"),
		expense("2025-01-04", "food", "2.5"),
		expense("2025-01-05", "Bills", "40"),
	}
	got := CategoryBreakdown(txs)
	want := []CategoryAmount{
		{"Bills", D("40")},
		{"Food", D("12.5")},
		{"Transport", D("3")},
	}
	opt := cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })
	if diff := cmp.Diff(want, got, opt); diff != "" {
		t.Errorf("CategoryBreakdown() mismatch (-want +got):\n%s", diff)
	}

	if got := CategoryBreakdown([]Transaction{income("2025-01-03", "Salary", "1000")}); len(got) != 0 {
		t.Errorf("CategoryBreakdown() of incomes = %v, want empty", got)
	}
}
