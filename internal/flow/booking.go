package flow

import (
	"context"
	"strings"
	"time"

	"github.com/naturalhealing/booking/internal/logger"
	"github.com/naturalhealing/booking/internal/models"
	"github.com/naturalhealing/booking/internal/service"
	"github.com/naturalhealing/booking/internal/session"
)

const confirmedMessage = "Booking confirmed!"

// BookingForm is the raw submission of the booking page.
type BookingForm struct {
	Name     string
	Phone    string
	Email    string
	Age      string
	Location string
	Date     string
	Slot     string
}

// BookingPage is the data rendered on the booking form.
type BookingPage struct {
	Shop            models.ShopInfo
	Today           string
	RegisteredName  string
	RegisteredPhone string
}

// BookingFlow takes a visitor from registration to a recorded, notified
// booking. Ledger, Email and Calendar may be nil: a nil Ledger fails every
// submission with ErrStorage, nil Email/Calendar skip that step.
type BookingFlow struct {
	Logger   *logger.Logger
	Shop     models.ShopInfo
	Ledger   service.Ledger
	Email    service.EmailSender
	Calendar service.CalendarClient
}

// Register stores the visitor's name and phone on the session, replacing
// any earlier registration.
func (f *BookingFlow) Register(sess *session.Context, name, phone string) {
	sess.Name = name
	sess.Phone = phone
	sess.Registered = true
	f.Logger.Info("Visitor registered", logger.Action("register"), logger.Status("registered"))
}

// BookingPage returns the form data for a registered session.
func (f *BookingFlow) BookingPage(sess *session.Context, today time.Time) (*BookingPage, error) {
	reg, ok := sess.Registration()
	if !ok {
		return nil, ErrNotRegistered
	}
	return &BookingPage{
		Shop:            f.Shop,
		Today:           today.Format("2006-01-02"),
		RegisteredName:  reg.Name,
		RegisteredPhone: reg.Phone,
	}, nil
}

// Submit validates the form, appends the booking to the ledger and then
// attempts the customer and practitioner emails. Only the ledger write can
// fail the booking; notification failures are logged and reported on the
// Confirmation.
func (f *BookingFlow) Submit(ctx context.Context, form BookingForm) (*models.Confirmation, error) {
	record, err := f.validate(form)
	if err != nil {
		f.Logger.Warn("Booking rejected", logger.Action("book"), logger.Status("invalid"), logger.Error(err))
		return nil, err
	}

	if err := f.appendToLedger(ctx, record); err != nil {
		return nil, err
	}

	f.Logger.Info("Booking recorded",
		logger.Action("book"),
		logger.Status("recorded"),
		logger.Date(record.Date),
		logger.Slot(record.Slot))

	confirmation := &models.Confirmation{Record: record, Message: confirmedMessage}
	confirmation.CustomerNotified = f.notifyCustomer(record)
	confirmation.PractitionerNotified = f.notifyPractitioner(record)
	f.mirrorToCalendar(ctx, record)

	return confirmation, nil
}

func (f *BookingFlow) validate(form BookingForm) (models.BookingRecord, error) {
	record := models.BookingRecord{
		Name:     form.Name,
		Phone:    form.Phone,
		Email:    form.Email,
		Age:      form.Age,
		Location: form.Location,
		Date:     form.Date,
		Slot:     form.Slot,
	}

	required := []struct {
		value string
		label string
	}{
		{record.Email, "Email"},
		{record.Name, "Name"},
		{record.Phone, "Phone"},
		{record.Date, "Date"},
		{record.Slot, "Slot"},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return models.BookingRecord{}, &BookingError{Kind: ErrValidation, Message: field.label + " is required."}
		}
	}

	record.Phone = NormalizePhone(record.Phone, f.Shop.CountryCode)
	return record, nil
}

func (f *BookingFlow) appendToLedger(ctx context.Context, record models.BookingRecord) error {
	if f.Ledger == nil {
		f.Logger.Error("Booking not recorded", logger.Action("book"), logger.Status("ledger_unavailable"))
		return &BookingError{Kind: ErrStorage, Message: "Booking could not be recorded. Please try again later.", Err: ErrLedgerUnavailable}
	}
	if err := f.Ledger.AppendRow(ctx, record.Row()); err != nil {
		f.Logger.Error("Booking not recorded", logger.Action("book"), logger.Status("ledger_write_failed"), logger.Error(err))
		return &BookingError{Kind: ErrStorage, Message: "Booking could not be recorded. Please try again later.", Err: err}
	}
	return nil
}

func (f *BookingFlow) notifyCustomer(record models.BookingRecord) bool {
	body, err := customerEmailBody(f.Shop, record)
	if err != nil {
		f.Logger.Error("Failed to render confirmation email", logger.Email(record.Email), logger.Error(err))
		return false
	}
	return f.send(record.Email, customerSubject, body, true)
}

func (f *BookingFlow) notifyPractitioner(record models.BookingRecord) bool {
	return f.send(f.Shop.OwnerEmail, practitionerSubject, practitionerEmailBody(f.Shop, record), false)
}

func (f *BookingFlow) send(to, subject, body string, isHTML bool) bool {
	if f.Email == nil {
		f.Logger.Warn("Email not sent", logger.Email(to), logger.Reason("no_email_service"))
		return false
	}
	if err := f.Email.Send(to, subject, body, isHTML); err != nil {
		f.Logger.Error("Email failed", logger.Email(to), logger.Error(err))
		return false
	}
	f.Logger.Info("Email sent", logger.Email(to), logger.Status("sent"))
	return true
}

func (f *BookingFlow) mirrorToCalendar(ctx context.Context, record models.BookingRecord) {
	if f.Calendar == nil {
		return
	}
	if err := f.Calendar.CreateBookingEvent(ctx, record); err != nil {
		f.Logger.Warn("Calendar event not created", logger.Date(record.Date), logger.Slot(record.Slot), logger.Error(err))
		return
	}
	f.Logger.Info("Calendar event created", logger.Date(record.Date), logger.Slot(record.Slot))
}

// NormalizePhone prefixes countryCode unless phone already starts with "+".
func NormalizePhone(phone, countryCode string) string {
	if strings.HasPrefix(phone, "+") {
		return phone
	}
	return countryCode + phone
}
