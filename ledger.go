package expenses

import (
	"iter"
	"slices"
	"sort"
	"strings"

	"github.com/etnz/expenses/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Derive returns a copy of txs sorted by date, where every transaction
// carries its running balance.
//
// The sort is stable: transactions on the same day keep their relative
// order. The balance before the first transaction is start, each Income adds
// its amount and each Expense subtracts it. txs is not modified.
func Derive(txs []Transaction, start decimal.Decimal) []Transaction {
	derived := slices.Clone(txs)
	sort.SliceStable(derived, func(i, j int) bool {
		return derived[i].Date.Before(derived[j].Date)
	})
	balance := start
	for i := range derived {
		balance = balance.Add(derived[i].Signed())
		derived[i].balance = balance
	}
	return derived
}

// Ledger represents the list of all transactions and the starting balance.
//
// In a Ledger transactions are always in chronological order, and their
// balance is always derived from the starting balance.
type Ledger struct {
	transactions []Transaction
	start        decimal.Decimal
}

// NewLedger creates an empty ledger.
func NewLedger(start decimal.Decimal) *Ledger {
	return &Ledger{
		transactions: make([]Transaction, 0),
		start:        start,
	}
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// StartingBalance returns the balance before the first transaction.
func (l *Ledger) StartingBalance() decimal.Decimal { return l.start }

// SetStartingBalance changes the starting balance and derives all balances again.
func (l *Ledger) SetStartingBalance(start decimal.Decimal) {
	l.start = start
	l.transactions = Derive(l.transactions, start)
}

// CurrentBalance returns the balance after the last transaction, or the
// starting balance if the ledger is empty.
func (l *Ledger) CurrentBalance() decimal.Decimal {
	if len(l.transactions) == 0 {
		return l.start
	}
	return l.transactions[len(l.transactions)-1].balance
}

// Append appends transactions to this ledger and maintains the chronological
// order and the balances.
//
// Transactions dated on or after the newest one in the ledger extend the
// balances from the current one. Otherwise the whole ledger is derived again.
func (l *Ledger) Append(txs ...Transaction) {
	if len(txs) == 0 {
		return
	}
	if !l.inOrder(txs) {
		l.transactions = Derive(append(slices.Clone(l.transactions), txs...), l.start)
		return
	}
	balance := l.CurrentBalance()
	for _, tx := range txs {
		balance = balance.Add(tx.Signed())
		tx.balance = balance
		l.transactions = append(l.transactions, tx)
	}
}

// inOrder reports whether txs can be appended at the end of the ledger
// without breaking the chronological order.
func (l *Ledger) inOrder(txs []Transaction) bool {
	last := l.NewestTransactionDate()
	for _, tx := range txs {
		if tx.Date.Before(last) {
			return false
		}
		last = tx.Date
	}
	return true
}

// Transactions returns an iterator over the transactions accepted by all
// filters, in chronological order. Without filters all transactions are
// yielded.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
	next:
		for i, tx := range l.transactions {
			for _, accept := range filters {
				if !accept(tx) {
					continue next
				}
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// Collect returns the transactions accepted by all filters, in chronological order.
func (l *Ledger) Collect(filters ...func(Transaction) bool) []Transaction {
	txs := make([]Transaction, 0, len(l.transactions))
	for _, tx := range l.Transactions(filters...) {
		txs = append(txs, tx)
	}
	return txs
}

// OldestTransactionDate returns the date of the earliest transaction in the
// ledger, or the zero Date if it is empty.
func (l *Ledger) OldestTransactionDate() date.Date {
	if len(l.transactions) == 0 {
		return date.Date{}
	}
	return l.transactions[0].Date
}

// NewestTransactionDate returns the date of the latest transaction in the
// ledger, or the zero Date if it is empty.
func (l *Ledger) NewestTransactionDate() date.Date {
	if len(l.transactions) == 0 {
		return date.Date{}
	}
	return l.transactions[len(l.transactions)-1].Date
}

// BalanceHistory returns, for each day, the balance after the last
// transaction of that day accepted by all filters. With no filter, or a
// ByRange filter, it is the end of day balance.
func (l *Ledger) BalanceHistory(filters ...func(Transaction) bool) *date.History[decimal.Decimal] {
	h := new(date.History[decimal.Decimal])
	for _, tx := range l.Transactions(filters...) {
		// Later transactions on the same day overwrite earlier ones.
		h.Append(tx.Date, tx.balance)
	}
	return h
}

// clone returns a copy of the ledger that shares nothing with l.
func (l *Ledger) clone() *Ledger {
	return &Ledger{transactions: slices.Clone(l.transactions), start: l.start}
}

// MarshalJSON implements the json.Marshaler interface for Ledger.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("startingBalance", l.start)
	w.Append("currentBalance", l.CurrentBalance())
	txs := l.transactions
	if txs == nil {
		txs = []Transaction{}
	}
	w.Append("transactions", txs)
	return w.MarshalJSON()
}

// ByRange returns a predicate that accepts transactions within r, boundaries included.
func ByRange(r date.Range) func(Transaction) bool {
	return func(tx Transaction) bool { return r.Contains(tx.Date) }
}

// ByKind returns a predicate that accepts transactions of kind k.
func ByKind(k Kind) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Kind == k }
}

// ByCategory returns a predicate that accepts transactions in category, ignoring case.
func ByCategory(category string) func(Transaction) bool {
	return func(tx Transaction) bool { return strings.EqualFold(tx.Category, category) }
}
