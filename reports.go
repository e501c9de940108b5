package expenses

import (
	"cmp"
	"slices"
	"strings"

	"github.com/etnz/expenses/date"
	"github.com/shopspring/decimal"
)

// Summary holds the metrics of a list of transactions.
type Summary struct {
	Range          date.Range      // Range covered by the transactions, zero if empty.
	Count          int             // Count is the number of transactions.
	TotalExpenses  decimal.Decimal // TotalExpenses is the sum of all expense amounts.
	TotalIncome    decimal.Decimal // TotalIncome is the sum of all income amounts.
	OpeningBalance decimal.Decimal // OpeningBalance is the balance before the first transaction.
	CurrentBalance decimal.Decimal // CurrentBalance is the balance after the last transaction.
}

// Net returns the income minus the expenses.
func (s Summary) Net() decimal.Decimal { return s.TotalIncome.Sub(s.TotalExpenses) }

// NewSummary computes the metrics of derived transactions, as returned by a
// Ledger or Derive.
//
// The current balance is the balance of the last transaction in date order.
// Without transactions both opening and current balances are start.
func NewSummary(txs []Transaction, start decimal.Decimal) Summary {
	s := Summary{
		Count:          len(txs),
		OpeningBalance: start,
		CurrentBalance: start,
	}
	if len(txs) == 0 {
		return s
	}

	first, last := 0, 0
	for i, tx := range txs {
		switch tx.Kind {
		case Expense:
			s.TotalExpenses = s.TotalExpenses.Add(tx.Amount)
		case Income:
			s.TotalIncome = s.TotalIncome.Add(tx.Amount)
		}
		if tx.Date.Before(txs[first].Date) {
			first = i
		}
		// ties go to the latest in order.
		if !tx.Date.Before(txs[last].Date) {
			last = i
		}
	}
	s.Range = date.Between(txs[first].Date, txs[last].Date)
	s.OpeningBalance = txs[first].balance.Sub(txs[first].Signed())
	s.CurrentBalance = txs[last].balance
	return s
}

// Summarize returns the summary of the ledger transactions within r accepted
// by all filters. When none is selected, both balances are the balance as of
// the end of r.
func (l *Ledger) Summarize(r date.Range, filters ...func(Transaction) bool) Summary {
	s := NewSummary(l.Collect(append([]func(Transaction) bool{ByRange(r)}, filters...)...), l.start)
	if s.Count == 0 {
		s.OpeningBalance = l.BalanceAsOf(r.To)
		s.CurrentBalance = s.OpeningBalance
	}
	return s
}

// BalanceAsOf returns the balance at the end of day: the starting balance
// before the first transaction, the current balance for a zero day.
func (l *Ledger) BalanceAsOf(day date.Date) decimal.Decimal {
	if day.IsZero() {
		return l.CurrentBalance()
	}
	if b, ok := l.BalanceHistory().ValueAsOf(day); ok {
		return b
	}
	return l.start
}

// SummaryBy splits derived transactions by period and returns one Summary
// per period with at least one transaction, in chronological order.
func SummaryBy(txs []Transaction, period date.Period) []Summary {
	var summaries []Summary
	for i := 0; i < len(txs); {
		r := date.NewRange(txs[i].Date, period)
		j := i
		for j < len(txs) && r.Contains(txs[j].Date) {
			j++
		}
		s := NewSummary(txs[i:j], decimal.Zero)
		s.Range = r
		summaries = append(summaries, s)
		i = j
	}
	return summaries
}

// CategoryAmount is the total amount spent in a category.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// CategoryBreakdown returns the total expense amount per category, ordered
// by category name. Income transactions are ignored.
//
// Categories are grouped ignoring case, the first spelling met is kept.
func CategoryBreakdown(txs []Transaction) []CategoryAmount {
	index := make(map[string]int)
	var breakdown []CategoryAmount
	for _, tx := range txs {
		if tx.Kind != Expense {
			continue
		}
		key := strings.ToLower(tx.Category)
		i, ok := index[key]
		if !ok {
			i = len(breakdown)
			index[key] = i
			breakdown = append(breakdown, CategoryAmount{Category: tx.Category})
		}
		breakdown[i].Amount = breakdown[i].Amount.Add(tx.Amount)
	}
	slices.SortFunc(breakdown, func(a, b CategoryAmount) int {
		return cmp.Compare(strings.ToLower(a.Category), strings.ToLower(b.Category))
	})
	return breakdown
}
