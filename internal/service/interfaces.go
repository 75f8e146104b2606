package service

import (
	"context"

	"github.com/naturalhealing/booking/internal/models"
)

// Ledger abstracts the remote booking spreadsheet for testability.
type Ledger interface {
	AppendRow(ctx context.Context, fields []string) error
	GetAllRows(ctx context.Context) ([]map[string]string, error)
}

// EmailSender abstracts email sending operations for testability.
type EmailSender interface {
	Send(to, subject, body string, isHTML bool) error
}

// CalendarClient abstracts Google Calendar operations for testability.
type CalendarClient interface {
	CreateBookingEvent(ctx context.Context, record models.BookingRecord) error
}
