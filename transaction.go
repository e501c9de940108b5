package expenses

import (
	"github.com/etnz/expenses/date"
	"github.com/shopspring/decimal"
)

// Suggested categories for expenses.
var ExpenseCategories = []string{"Food", "Transport", "Entertainment", "Bills", "Other"}

// SalaryCategory is the category of the income recorded when the salary is received.
const SalaryCategory = "Salary"

// Transaction is a dated income or expense.
//
// Its running balance is derived by the Ledger it belongs to and cannot be set.
type Transaction struct {
	Date        date.Date       // Date is the day the transaction took place.
	Kind        Kind            // Kind tells whether it is an Expense or an Income.
	Category    string          // Category is a free-form label.
	Description string          // Description is a free-form text.
	Amount      decimal.Decimal // Amount is the non-negative value of the transaction.

	balance decimal.Decimal
}

// NewTransaction creates a new Transaction.
func NewTransaction(on date.Date, kind Kind, category, description string, amount decimal.Decimal) Transaction {
	return Transaction{
		Date:        on,
		Kind:        kind,
		Category:    category,
		Description: description,
		Amount:      amount,
	}
}

// NewExpense creates a new Expense transaction.
func NewExpense(on date.Date, category, description string, amount decimal.Decimal) Transaction {
	return NewTransaction(on, Expense, category, description, amount)
}

// NewIncome creates a new Income transaction.
func NewIncome(on date.Date, category, description string, amount decimal.Decimal) Transaction {
	return NewTransaction(on, Income, category, description, amount)
}

// NewSalary creates the Income recorded when the monthly salary is received.
func NewSalary(on date.Date, amount decimal.Decimal) Transaction {
	return NewIncome(on, SalaryCategory, "Monthly Salary", amount)
}

// Balance returns the running balance right after this transaction.
//
// It is only meaningful for transactions obtained from a Ledger or Derive.
func (t Transaction) Balance() decimal.Decimal { return t.balance }

// Signed returns the amount with the effect it has on the balance: positive
// for an Income, negative for an Expense.
func (t Transaction) Signed() decimal.Decimal { return t.Kind.signed(t.Amount) }

// Equal reports whether t and u describe the same transaction, balance included.
func (t Transaction) Equal(u Transaction) bool {
	return t.Date == u.Date &&
		t.Kind == u.Kind &&
		t.Category == u.Category &&
		t.Description == u.Description &&
		t.Amount.Equal(u.Amount) &&
		t.balance.Equal(u.balance)
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", t.Date)
	w.Append("type", t.Kind)
	w.Append("category", t.Category)
	w.Optional("description", t.Description)
	w.Append("amount", t.Amount)
	w.Append("balance", t.balance)
	return w.MarshalJSON()
}
