package expenses

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/etnz/expenses/date"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// memoryStore is a Store in memory that can be made to fail.
type memoryStore struct {
	ledger *Ledger
	saves  int
	fail   bool
	closed bool
}

func (m *memoryStore) Load(context.Context) (*Ledger, error) {
	if m.ledger == nil {
		return NewLedger(decimal.Zero), nil
	}
	return m.ledger.clone(), nil
}

func (m *memoryStore) Save(_ context.Context, ledger *Ledger) error {
	if m.fail {
		return errors.New("disk full")
	}
	m.saves++
	m.ledger = ledger.clone()
	return nil
}

func (m *memoryStore) Close() error {
	m.closed = true
	return nil
}

func TestSession_Submit(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{}
	s, err := OpenSession(ctx, store, Settings{StartingBalance: D("100")}, nil)
	if err != nil {
		t.Fatalf("OpenSession() unexpected error: %v", err)
	}

	added, err := s.Submit(ctx, income("2025-01-02", "Salary", "50"))
	if err != nil || !added {
		t.Fatalf("Submit() = %v, %v; want true, nil", added, err)
	}
	if _, err := s.Submit(ctx, expense("2025-01-01", "Food", "30")); err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}

	if got := s.Ledger().CurrentBalance(); !got.Equal(D("120")) {
		t.Errorf("CurrentBalance() = %s, want 120", got)
	}
	if store.saves != 2 || store.ledger.Len() != 2 {
		t.Errorf("store has %d saves and %d transactions, want 2 and 2", store.saves, store.ledger.Len())
	}
}

func TestSession_SubmitNonPositive(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{}
	s, err := OpenSession(ctx, store, DefaultSettings(), nil)
	if err != nil {
		t.Fatalf("OpenSession() unexpected error: %v", err)
	}
	for _, amount := range []string{"0", "-5"} {
		added, err := s.Submit(ctx, expense("2025-01-01", "Food", amount))
		if err != nil || added {
			t.Errorf("Submit(%s) = %v, %v; want false, nil", amount, added, err)
		}
	}
	if s.Ledger().Len() != 0 || store.saves != 0 {
		t.Errorf("ledger has %d transactions and %d saves, want 0", s.Ledger().Len(), store.saves)
	}
}

func TestSession_SubmitRollback(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{}
	s, err := OpenSession(ctx, store, Settings{StartingBalance: D("10")}, nil)
	if err != nil {
		t.Fatalf("OpenSession() unexpected error: %v", err)
	}
	if _, err := s.Submit(ctx, expense("2025-01-01", "Food", "3")); err != nil {
		t.Fatal(err)
	}

	store.fail = true
	added, err := s.Submit(ctx, expense("2024-12-31", "Food", "4"))
	if err == nil || added {
		t.Fatalf("Submit() = %v, %v; want false and an error", added, err)
	}
	if s.Ledger().Len() != 1 {
		t.Errorf("Ledger().Len() = %d after failed save, want 1", s.Ledger().Len())
	}
	if got := s.Ledger().CurrentBalance(); !got.Equal(D("7")) {
		t.Errorf("CurrentBalance() = %s after failed save, want 7", got)
	}

	if err := s.SetStartingBalance(ctx, D("1000")); err == nil {
		t.Error("SetStartingBalance() expected an error, got nil")
	}
	if got := s.Ledger().StartingBalance(); !got.Equal(D("10")) {
		t.Errorf("StartingBalance() = %s after failed save, want 10", got)
	}
}

func TestSession_ReceiveSalary(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSession(ctx, &memoryStore{}, Settings{Salary: D("2500")}, nil)
	if err != nil {
		t.Fatalf("OpenSession() unexpected error: %v", err)
	}
	on := date.New(2025, 7, 31)
	if added, err := s.ReceiveSalary(ctx, on); err != nil || !added {
		t.Fatalf("ReceiveSalary() = %v, %v; want true, nil", added, err)
	}
	got := s.Ledger().Collect()
	if len(got) != 1 {
		t.Fatalf("ledger has %d transactions, want 1", len(got))
	}
	want := NewSalary(on, D("2500"))
	if got[0].Date != want.Date || got[0].Kind != Income || got[0].Category != "Salary" || got[0].Description != "Monthly Salary" || !got[0].Amount.Equal(want.Amount) {
		t.Errorf("ReceiveSalary() added %+v, want %+v", got[0], want)
	}

	// An unset salary records nothing.
	s, _ = OpenSession(ctx, &memoryStore{}, DefaultSettings(), nil)
	if added, err := s.ReceiveSalary(ctx, on); err != nil || added {
		t.Errorf("ReceiveSalary() without salary = %v, %v; want false, nil", added, err)
	}
}

func TestSession_SetStartingBalance(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{}
	s, err := OpenSession(ctx, store, DefaultSettings(), nil)
	if err != nil {
		t.Fatal(err)
	}
	s.Submit(ctx, expense("2025-01-01", "Food", "30"))
	s.Submit(ctx, income("2025-01-02", "Salary", "50"))

	if err := s.SetStartingBalance(ctx, D("100")); err != nil {
		t.Fatalf("SetStartingBalance() unexpected error: %v", err)
	}
	if got := balances(store.ledger.Collect()); got[0] != "70" || got[1] != "120" {
		t.Errorf("saved balances = %v, want [70 120]", got)
	}
	if !s.Settings().StartingBalance.Equal(D("100")) {
		t.Errorf("Settings().StartingBalance = %s, want 100", s.Settings().StartingBalance)
	}
}

func TestSession_FileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "expenses.csv")
	core, logs := observer.New(zap.InfoLevel)

	s, err := OpenSession(ctx, NewFileStore(path), Settings{StartingBalance: D("100")}, zap.New(core))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit(ctx, expense("2025-01-01", "Food", "30")); err != nil {
		t.Fatal(err)
	}
	if logs.FilterMessage("transaction added").Len() != 1 {
		t.Errorf("expected one 'transaction added' log, got %v", logs.All())
	}

	// A new session on the same file sees the transaction.
	s2, err := OpenSession(ctx, NewFileStore(path), Settings{StartingBalance: D("100")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := s2.Ledger().CurrentBalance(); !got.Equal(D("70")) {
		t.Errorf("reloaded CurrentBalance() = %s, want 70", got)
	}
}

func TestSession_Close(t *testing.T) {
	store := &memoryStore{}
	s, err := OpenSession(context.Background(), store, DefaultSettings(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil || !store.closed {
		t.Errorf("Close() = %v, closed = %v", err, store.closed)
	}
}
