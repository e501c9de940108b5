package expenses

import (
	"github.com/etnz/expenses/date"
	"github.com/shopspring/decimal"
)

// D is a short hand for a decimal in tests.
func D(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func expense(on, category string, amount string) Transaction {
	return NewExpense(date.MustParse(on), category, "", D(amount))
}

func income(on, category string, amount string) Transaction {
	return NewIncome(date.MustParse(on), category, "", D(amount))
}

// balances returns the balances of txs as strings, easier to diff.
func balances(txs []Transaction) []string {
	out := make([]string, len(txs))
	for i, tx := range txs {
		out[i] = tx.Balance().String()
	}
	return out
}

// descriptions returns the descriptions of txs, used to check order.
func descriptions(txs []Transaction) []string {
	out := make([]string, len(txs))
	for i, tx := range txs {
		out[i] = tx.Description
	}
	return out
}
