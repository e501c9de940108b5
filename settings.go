package expenses

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Settings keys, both in the settings file and in the environment.
const (
	EnvStartingBalance = "EXP_STARTING_BALANCE"
	EnvSalary          = "EXP_SALARY"
	EnvCurrency        = "EXP_CURRENCY"
	EnvDSN             = "EXP_DSN"
)

// Settings are the user preferences that survive between sessions.
type Settings struct {
	StartingBalance decimal.Decimal // StartingBalance is the balance before the first transaction.
	Salary          decimal.Decimal // Salary is the amount recorded when the salary is received.
	Currency        string          // Currency is the ISO 4217 code used to display amounts.
	DSN             string          // DSN is the PostgreSQL connection string, empty to use the CSV file.
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{Currency: DefaultCurrency}
}

// LoadSettings reads settings from the dotenv file at path, and then from
// the process environment, which takes precedence.
//
// A missing file, or an empty path, yields the defaults.
func LoadSettings(path string) (Settings, error) {
	values, err := readSettingsValues(path)
	if err != nil {
		return Settings{}, err
	}
	for _, key := range []string{EnvStartingBalance, EnvSalary, EnvCurrency, EnvDSN} {
		if v, ok := os.LookupEnv(key); ok {
			values[key] = v
		}
	}
	return parseSettings(values)
}

// ReadSettingsFile is like LoadSettings but ignores the process environment.
// It is the base to update before SaveSettings.
func ReadSettingsFile(path string) (Settings, error) {
	values, err := readSettingsValues(path)
	if err != nil {
		return Settings{}, err
	}
	return parseSettings(values)
}

func readSettingsValues(path string) (map[string]string, error) {
	values := make(map[string]string)
	if path == "" {
		return values, nil
	}
	fromFile, err := godotenv.Read(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not read settings file %q: %w", path, err)
	}
	for k, v := range fromFile {
		values[k] = v
	}
	return values, nil
}

func parseSettings(values map[string]string) (Settings, error) {
	s := DefaultSettings()
	var errs error
	parse := func(key string, dst *decimal.Decimal) {
		v, ok := values[key]
		if !ok || v == "" {
			return
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("invalid %s %q: %w", key, v, err))
			return
		}
		*dst = d
	}
	parse(EnvStartingBalance, &s.StartingBalance)
	parse(EnvSalary, &s.Salary)
	if s.Salary.IsNegative() {
		errs = errors.Join(errs, fmt.Errorf("invalid %s %s: must not be negative", EnvSalary, s.Salary))
	}
	if v := values[EnvCurrency]; v != "" {
		if err := ValidateCurrency(v); err != nil {
			errs = errors.Join(errs, fmt.Errorf("invalid %s: %w", EnvCurrency, err))
		} else {
			s.Currency = v
		}
	}
	s.DSN = values[EnvDSN]
	return s, errs
}

// SaveSettings writes s to the dotenv file at path.
func SaveSettings(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create directory for settings %q: %w", path, err)
	}
	values := map[string]string{
		EnvStartingBalance: s.StartingBalance.String(),
		EnvSalary:          s.Salary.String(),
		EnvCurrency:        s.Currency,
	}
	if s.DSN != "" {
		values[EnvDSN] = s.DSN
	}
	if err := godotenv.Write(values, path); err != nil {
		return fmt.Errorf("could not write settings file %q: %w", path, err)
	}
	return nil
}
