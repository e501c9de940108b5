package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/expenses"
	md "github.com/nao1215/markdown"
)

// TransactionsMarkdown renders transactions as a table with their running
// balance, in the order given.
func TransactionsMarkdown(title string, txs []expenses.Transaction, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(title)

	if len(txs) == 0 {
		doc.PlainText("No transactions.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Type", "Category", "Description", "Amount", "Balance"},
		Rows:   make([][]string, 0, len(txs)),
	}
	for _, tx := range txs {
		table.Rows = append(table.Rows, []string{
			tx.Date.String(),
			tx.Kind.String(),
			tx.Category,
			tx.Description,
			expenses.M(tx.Signed(), currency).SignedString(),
			expenses.M(tx.Balance(), currency).String(),
		})
	}
	doc.Table(table)
	return doc.String()
}

// Transaction renders a single transaction as a sentence.
func Transaction(tx expenses.Transaction, currency string) string {
	amount := expenses.M(tx.Amount, currency)
	balance := expenses.M(tx.Balance(), currency)
	switch tx.Kind {
	case expenses.Income:
		return fmt.Sprintf("Received %s (%s) on %s, balance is now %s", amount, tx.Category, tx.Date, balance)
	default:
		return fmt.Sprintf("Spent %s (%s) on %s, balance is now %s", amount, tx.Category, tx.Date, balance)
	}
}
