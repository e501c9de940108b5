package expenses

import (
	"context"
	"fmt"
	"io"

	"github.com/etnz/expenses/date"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Session holds the ledger loaded once from a Store, and applies the user
// actions to it. Every action that changes the ledger saves it as a whole.
type Session struct {
	store    Store
	settings Settings
	ledger   *Ledger
	logger   *zap.Logger
}

// OpenSession loads the ledger from store and derives its balances from the
// settings' starting balance. A nil logger disables logging.
func OpenSession(ctx context.Context, store Store, settings Settings, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ledger, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load ledger: %w", err)
	}
	ledger.SetStartingBalance(settings.StartingBalance)
	logger.Debug("ledger loaded",
		zap.Int("transactions", ledger.Len()),
		zap.Stringer("startingBalance", settings.StartingBalance),
	)
	return &Session{
		store:    store,
		settings: settings,
		ledger:   ledger,
		logger:   logger,
	}, nil
}

// Ledger returns the ledger of the session. It must not be modified.
func (s *Session) Ledger() *Ledger { return s.ledger }

// Settings returns the settings of the session.
func (s *Session) Settings() Settings { return s.settings }

// Submit appends tx to the ledger and saves it.
//
// A transaction with an amount of zero or less is ignored: Submit returns
// false and a nil error, and nothing is saved. If saving fails the ledger is
// left as it was before the call.
func (s *Session) Submit(ctx context.Context, tx Transaction) (bool, error) {
	if !tx.Amount.IsPositive() {
		s.logger.Debug("ignoring transaction without a positive amount",
			zap.Stringer("date", tx.Date),
			zap.Stringer("amount", tx.Amount),
		)
		return false, nil
	}
	prev := s.ledger.clone()
	s.ledger.Append(tx)
	if err := s.save(ctx); err != nil {
		s.ledger = prev
		return false, err
	}
	s.logger.Info("transaction added",
		zap.Stringer("date", tx.Date),
		zap.Stringer("type", tx.Kind),
		zap.String("category", tx.Category),
		zap.Stringer("amount", tx.Amount),
		zap.Stringer("balance", s.ledger.CurrentBalance()),
	)
	return true, nil
}

// ReceiveSalary submits an Income of the configured salary on day 'on'.
func (s *Session) ReceiveSalary(ctx context.Context, on date.Date) (bool, error) {
	return s.Submit(ctx, NewSalary(on, s.settings.Salary))
}

// SetStartingBalance changes the starting balance, derives the balances and
// saves the ledger. If saving fails the session is left unchanged.
func (s *Session) SetStartingBalance(ctx context.Context, start decimal.Decimal) error {
	prev := s.ledger.clone()
	s.ledger.SetStartingBalance(start)
	if err := s.save(ctx); err != nil {
		s.ledger = prev
		return err
	}
	s.settings.StartingBalance = start
	s.logger.Info("starting balance changed", zap.Stringer("startingBalance", start))
	return nil
}

// Save derives all balances again and saves the ledger.
func (s *Session) Save(ctx context.Context) error {
	s.ledger.SetStartingBalance(s.ledger.StartingBalance())
	return s.save(ctx)
}

func (s *Session) save(ctx context.Context) error {
	if err := s.store.Save(ctx, s.ledger); err != nil {
		s.logger.Error("could not save ledger", zap.Error(err))
		return fmt.Errorf("could not save ledger: %w", err)
	}
	return nil
}

// Close releases the store if it needs to.
func (s *Session) Close() error {
	if c, ok := s.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
