package expenses

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/etnz/expenses/date"
	"github.com/shopspring/decimal"
)

// Header is the fixed header of the CSV ledger file.
var Header = []string{"Date", "Type", "Category", "Description", "Amount", "Balance"}

// DecodeLedger decodes transactions from CSV data and returns a Ledger with
// a zero starting balance.
//
// An empty input, or an input with only the header, is an empty ledger. The
// Balance column is not trusted: balances are derived again.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger(decimal.Zero)

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return ledger, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var txs []Transaction
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading from input: %w", err)
		}
		line, _ := cr.FieldPos(0)
		tx, err := decodeRecord(record)
		if err != nil {
			return nil, fmt.Errorf("invalid transaction on line %d: %w", line, err)
		}
		txs = append(txs, tx)
	}

	// Append derives the balances and sorts stably, so rows on the same day
	// keep the file order.
	ledger.Append(txs...)
	return ledger, nil
}

func checkHeader(header []string) error {
	got := make([]string, len(header))
	for i, h := range header {
		got[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	if !slices.Equal(got, Header) {
		return fmt.Errorf("invalid header %q want %q", strings.Join(got, ","), strings.Join(Header, ","))
	}
	return nil
}

func decodeRecord(record []string) (Transaction, error) {
	on, err := date.Parse(record[0])
	if err != nil {
		return Transaction{}, err
	}
	kind, err := ParseKind(record[1])
	if err != nil {
		return Transaction{}, err
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(record[4]))
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid amount %q: %w", record[4], err)
	}
	if amount.IsNegative() {
		return Transaction{}, fmt.Errorf("negative amount %s", amount)
	}
	return NewTransaction(on, kind, record[2], record[3], amount), nil
}

// EncodeLedger writes the ledger in CSV, header first, one row per
// transaction in chronological order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, tx := range ledger.Transactions() {
		record := []string{
			tx.Date.String(),
			tx.Kind.String(),
			tx.Category,
			tx.Description,
			tx.Amount.String(),
			tx.balance.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write transaction: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
