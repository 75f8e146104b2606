package flow

import (
	"bytes"
	"context"
	"errors"

	"github.com/naturalhealing/booking/internal/config"
	"github.com/naturalhealing/booking/internal/logger"
	"github.com/naturalhealing/booking/internal/models"
)

// --- mocks ---

type mockLedger struct {
	rows     [][]string
	appendFn func(fields []string) error
	getFn    func() ([]map[string]string, error)
	getCalls int
}

func (m *mockLedger) AppendRow(_ context.Context, fields []string) error {
	if m.appendFn != nil {
		if err := m.appendFn(fields); err != nil {
			return err
		}
	}
	m.rows = append(m.rows, fields)
	return nil
}

func (m *mockLedger) GetAllRows(_ context.Context) ([]map[string]string, error) {
	m.getCalls++
	if m.getFn != nil {
		return m.getFn()
	}
	out := make([]map[string]string, 0, len(m.rows))
	for _, row := range m.rows {
		rec := map[string]string{}
		for i, col := range models.LedgerColumns {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

type emailCall struct {
	to, subject, body string
	isHTML            bool
}

type mockEmail struct {
	calls []emailCall
	errFn func(to string) error
}

func (m *mockEmail) Send(to, subject, body string, isHTML bool) error {
	m.calls = append(m.calls, emailCall{to: to, subject: subject, body: body, isHTML: isHTML})
	if m.errFn != nil {
		return m.errFn(to)
	}
	return nil
}

type mockCalendar struct {
	records []models.BookingRecord
	err     error
}

func (m *mockCalendar) CreateBookingEvent(_ context.Context, record models.BookingRecord) error {
	m.records = append(m.records, record)
	return m.err
}

var errUnreachable = errors.New("dial tcp: connection refused")

// --- helpers ---

func newTestBookingFlow() (*BookingFlow, *mockLedger, *mockEmail, *bytes.Buffer) {
	var buf bytes.Buffer
	ledger := &mockLedger{}
	email := &mockEmail{}
	return &BookingFlow{
		Logger: logger.NewWithWriter(&buf),
		Shop:   config.DefaultShop(),
		Ledger: ledger,
		Email:  email,
	}, ledger, email, &buf
}

func validForm() BookingForm {
	return BookingForm{
		Name:     "Asha",
		Phone:    "9800000000",
		Email:    "asha@example.com",
		Age:      "34",
		Location: "Davangere",
		Date:     "2025-06-15",
		Slot:     "10:00 AM - 11:00 AM",
	}
}
