package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/naturalhealing/booking/internal/models"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// ShopLocation is the practice's time zone (IST, UTC+05:30).
var ShopLocation = time.FixedZone("IST", 5*60*60+30*60)

type CalendarService struct {
	srv    *calendar.Service
	config CalendarConfig
	loc    *time.Location
}

func NewCalendarService(ctx context.Context, config CalendarConfig, credentialsJSON []byte) (*CalendarService, error) {
	if len(credentialsJSON) == 0 {
		return nil, fmt.Errorf("calendar credentials are not configured")
	}
	return newCalendarService(ctx, config, option.WithAuthCredentialsJSON(option.ServiceAccount, credentialsJSON))
}

func newCalendarService(ctx context.Context, config CalendarConfig, opts ...option.ClientOption) (*CalendarService, error) {
	if config.CalendarID == "" {
		return nil, fmt.Errorf("calendar_id is not configured")
	}

	srv, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &CalendarService{srv: srv, config: config, loc: ShopLocation}, nil
}

// CreateBookingEvent inserts the appointment into the practitioner's calendar.
func (s *CalendarService) CreateBookingEvent(ctx context.Context, record models.BookingRecord) error {
	start, end, err := SlotWindow(record.Date, record.Slot, s.loc)
	if err != nil {
		return err
	}

	event := &calendar.Event{
		Summary: fmt.Sprintf("Appointment: %s", record.Name),
		Description: fmt.Sprintf("Name: %s\nPhone: %s\nEmail: %s\nAge: %s\nLocation: %s\nSlot: %s",
			record.Name, record.Phone, record.Email, record.Age, record.Location, record.Slot),
		Start: &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:   &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)},
	}

	if _, err := s.srv.Events.Insert(s.config.CalendarID, event).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to create calendar event: %w", err)
	}
	return nil
}

// SlotWindow parses a booking date ("2006-01-02") and slot
// ("10:00 AM - 11:00 AM") into start and end times in loc.
func SlotWindow(date, slot string, loc *time.Location) (time.Time, time.Time, error) {
	from, to, ok := strings.Cut(slot, "-")
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid slot %q", slot)
	}

	const layout = "2006-01-02 3:04 PM"
	start, err := time.ParseInLocation(layout, date+" "+strings.TrimSpace(from), loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid slot start %q: %w", slot, err)
	}
	end, err := time.ParseInLocation(layout, date+" "+strings.TrimSpace(to), loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid slot end %q: %w", slot, err)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("slot %q ends before it starts", slot)
	}
	return start, end, nil
}
