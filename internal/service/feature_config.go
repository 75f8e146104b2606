package service

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

const defaultSheetName = "Sheet1"

// LedgerConfig points at the spreadsheet that holds the bookings.
type LedgerConfig struct {
	SpreadsheetID string `toml:"spreadsheet_id"`
	SheetName     string `toml:"sheet_name"`
}

// CalendarConfig holds configuration for the optional Google Calendar mirror.
// An empty CalendarID disables it.
type CalendarConfig struct {
	CalendarID string `toml:"calendar_id"`
}

// FeatureConfig holds non-sensitive integration settings.
// Source: TOML configuration file
type FeatureConfig struct {
	Ledger   LedgerConfig   `toml:"ledger"`
	Calendar CalendarConfig `toml:"calendar"`
}

// LoadFeatureConfig loads feature configuration from a TOML file. A missing
// file yields the defaults.
func LoadFeatureConfig(path string) (*FeatureConfig, error) {
	var cfg FeatureConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load feature config: %w", err)
	}
	if cfg.Ledger.SheetName == "" {
		cfg.Ledger.SheetName = defaultSheetName
	}
	return &cfg, nil
}

// CalendarEnabled reports whether bookings should be mirrored to a calendar.
func (c *FeatureConfig) CalendarEnabled() bool {
	return c.Calendar.CalendarID != ""
}
