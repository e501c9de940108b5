// Package pgstore stores a ledger in a PostgreSQL table.
package pgstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/etnz/expenses"
	"github.com/etnz/expenses/date"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Table is the name of the table holding the transactions.
const Table = "ledger_transactions"

const schema = `
CREATE TABLE IF NOT EXISTS ledger_transactions (
	position    INTEGER PRIMARY KEY,
	date        DATE NOT NULL,
	type        TEXT NOT NULL,
	category    TEXT NOT NULL,
	description TEXT NOT NULL,
	amount      NUMERIC NOT NULL CHECK (amount >= 0),
	balance     NUMERIC NOT NULL
);`

// Store is an expenses.Store in PostgreSQL.
//
// Rows are kept in the ledger order, the position column preserves the order
// of transactions on the same day.
type Store struct {
	db *sql.DB
}

var _ expenses.Store = (*Store)(nil)

// Open connects to the database at dsn and creates the table if needed.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	s := New(db)
	if err := s.Init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New returns a Store on an already opened database.
func New(db *sql.DB) *Store { return &Store{db: db} }

// Init creates the table if it does not exist.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("could not create table %s: %w", Table, err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Load reads all transactions. An empty table is an empty ledger.
func (s *Store) Load(ctx context.Context) (*expenses.Ledger, error) {
	const query = `SELECT date, type, category, description, amount FROM ledger_transactions ORDER BY position`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query transactions: %w", err)
	}
	defer rows.Close()

	var txs []expenses.Transaction
	for rows.Next() {
		var (
			on                          time.Time
			kind, category, description string
			amount                      decimal.Decimal
		)
		if err := rows.Scan(&on, &kind, &category, &description, &amount); err != nil {
			return nil, fmt.Errorf("could not read transaction %d: %w", len(txs)+1, err)
		}
		tx, err := newTransaction(on, kind, category, description, amount)
		if err != nil {
			return nil, fmt.Errorf("invalid transaction %d: %w", len(txs)+1, err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not read transactions: %w", err)
	}

	ledger := expenses.NewLedger(decimal.Zero)
	ledger.Append(txs...)
	return ledger, nil
}

func newTransaction(on time.Time, kind, category, description string, amount decimal.Decimal) (expenses.Transaction, error) {
	k, err := expenses.ParseKind(kind)
	if err != nil {
		return expenses.Transaction{}, err
	}
	if amount.IsNegative() {
		return expenses.Transaction{}, fmt.Errorf("negative amount %s", amount)
	}
	return expenses.NewTransaction(date.New(on.Date()), k, category, description, amount), nil
}

// Save replaces all rows with the ledger transactions in a single database
// transaction, either all rows are replaced or none.
func (s *Store) Save(ctx context.Context, ledger *expenses.Ledger) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ledger_transactions`); err != nil {
		return fmt.Errorf("could not clear transactions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(Table, "position", "date", "type", "category", "description", "amount", "balance"))
	if err != nil {
		return fmt.Errorf("could not prepare copy: %w", err)
	}
	for i, t := range ledger.Transactions() {
		if _, err := stmt.ExecContext(ctx, i, t.Date.String(), t.Kind.String(), t.Category, t.Description, t.Amount.String(), t.Balance().String()); err != nil {
			stmt.Close()
			return fmt.Errorf("could not copy transaction %d: %w", i+1, err)
		}
	}
	// flush the copy buffer.
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("could not copy transactions: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("could not copy transactions: %w", err)
	}
	return tx.Commit()
}
