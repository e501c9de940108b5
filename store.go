package expenses

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

// Store loads and saves a whole ledger.
//
// Load returns an empty ledger when nothing has been saved yet. Save is all
// or nothing: when it fails the previously saved ledger is left unchanged.
type Store interface {
	Load(ctx context.Context) (*Ledger, error)
	Save(ctx context.Context, ledger *Ledger) error
}

// FileStore is a Store in a single CSV file.
type FileStore struct {
	path string
}

// NewFileStore returns a Store for the CSV file at path.
func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

// Path returns the path of the CSV file.
func (s *FileStore) Path() string { return s.path }

// Load reads the ledger from the file. A missing file is an empty ledger.
func (s *FileStore) Load(_ context.Context) (*Ledger, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewLedger(decimal.Zero), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", s.path, err)
	}
	defer f.Close()

	ledger, err := DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", s.path, err)
	}
	return ledger, nil
}

// Save writes the ledger in a temporary file next to the target and then
// renames it over the target.
func (s *FileStore) Save(_ context.Context, ledger *Ledger) (err error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory for ledger %q: %w", s.path, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("error opening ledger file %q for writing: %w", s.path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := EncodeLedger(tmp, ledger); err != nil {
		return fmt.Errorf("could not encode ledger %q: %w", s.path, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return fmt.Errorf("could not set ledger %q permissions: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not write ledger %q: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("could not replace ledger %q: %w", s.path, err)
	}
	return nil
}
