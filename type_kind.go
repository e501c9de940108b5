package expenses

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidKind is returned when a transaction type cannot be parsed.
var ErrInvalidKind = errors.New("invalid transaction type")

// Kind is the type of a transaction: money going out or coming in.
type Kind int

const (
	// Expense decreases the balance.
	Expense Kind = iota
	// Income increases the balance.
	Income
)

func (k Kind) String() string {
	switch k {
	case Expense:
		return "Expense"
	case Income:
		return "Income"
	default:
		return "unknown"
	}
}

// ParseKind parses a transaction type, ignoring case.
//
// "Salary" is accepted as an Income, it is how some older files spell it.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expense":
		return Expense, nil
	case "income", "salary":
		return Income, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// signed returns amount with the sign it has on the balance.
func (k Kind) signed(amount decimal.Decimal) decimal.Decimal {
	if k == Expense {
		return amount.Neg()
	}
	return amount
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
