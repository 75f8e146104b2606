package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/naturalhealing/booking/internal/models"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsService stores bookings as rows of a Google Sheets worksheet.
type SheetsService struct {
	srv    *sheets.Service
	config LedgerConfig
}

// NewSheetsService authenticates with a service-account JSON blob.
func NewSheetsService(ctx context.Context, config LedgerConfig, credentialsJSON []byte) (*SheetsService, error) {
	if len(credentialsJSON) == 0 {
		return nil, fmt.Errorf("ledger credentials are not configured")
	}
	return newSheetsService(ctx, config, option.WithAuthCredentialsJSON(option.ServiceAccount, credentialsJSON))
}

func newSheetsService(ctx context.Context, config LedgerConfig, opts ...option.ClientOption) (*SheetsService, error) {
	if config.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet_id is not configured")
	}
	if config.SheetName == "" {
		config.SheetName = defaultSheetName
	}

	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	return &SheetsService{srv: srv, config: config}, nil
}

// AppendRow appends one row after the last non-empty row of the sheet.
// Values are written RAW so a leading "+" is kept as text.
func (s *SheetsService) AppendRow(ctx context.Context, fields []string) error {
	row := make([]interface{}, len(fields))
	for i, f := range fields {
		row[i] = f
	}

	_, err := s.srv.Spreadsheets.Values.
		Append(s.config.SpreadsheetID, s.sheetRange("A1"), &sheets.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append row: %w", err)
	}
	return nil
}

// GetAllRows returns every data row keyed by the header row, in sheet order.
func (s *SheetsService) GetAllRows(ctx context.Context) ([]map[string]string, error) {
	resp, err := s.srv.Spreadsheets.Values.
		Get(s.config.SpreadsheetID, s.sheetRange("")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return rowsToRecords(resp.Values), nil
}

// EnsureHeader writes the ledger column names into the first row of an
// empty sheet. A sheet that already has a first row is left untouched.
func (s *SheetsService) EnsureHeader(ctx context.Context) (bool, error) {
	resp, err := s.srv.Spreadsheets.Values.
		Get(s.config.SpreadsheetID, s.sheetRange("A1:G1")).
		Context(ctx).
		Do()
	if err != nil {
		return false, fmt.Errorf("failed to read header: %w", err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return false, nil
	}

	header := make([]interface{}, len(models.LedgerColumns))
	for i, c := range models.LedgerColumns {
		header[i] = c
	}
	_, err = s.srv.Spreadsheets.Values.
		Update(s.config.SpreadsheetID, s.sheetRange("A1"), &sheets.ValueRange{Values: [][]interface{}{header}}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return false, fmt.Errorf("failed to write header: %w", err)
	}
	return true, nil
}

// sheetRange builds an A1 range on the configured sheet; an empty cells
// argument addresses the whole sheet.
func (s *SheetsService) sheetRange(cells string) string {
	name := "'" + strings.ReplaceAll(s.config.SheetName, "'", "''") + "'"
	if cells == "" {
		return name
	}
	return name + "!" + cells
}

func rowsToRecords(values [][]interface{}) []map[string]string {
	records := []map[string]string{}
	if len(values) == 0 {
		return records
	}

	header := make([]string, len(values[0]))
	for i, h := range values[0] {
		header[i] = strings.TrimSpace(fmt.Sprint(h))
	}

	for _, row := range values[1:] {
		record := make(map[string]string, len(header))
		for i, key := range header {
			if key == "" {
				continue
			}
			if i < len(row) && row[i] != nil {
				record[key] = fmt.Sprint(row[i])
			} else {
				record[key] = ""
			}
		}
		records = append(records, record)
	}
	return records
}
