package flow

import (
	"context"
	"crypto/subtle"

	"github.com/naturalhealing/booking/internal/logger"
	"github.com/naturalhealing/booking/internal/models"
	"github.com/naturalhealing/booking/internal/service"
	"github.com/naturalhealing/booking/internal/session"
)

const listingUnavailableWarning = "Booking records are unavailable right now."

// Credentials is the single admin username/password pair.
type Credentials struct {
	Username string
	Password string
}

// Listing is the dashboard view of the ledger. Warning is set when the
// ledger could not be read and Records is empty because of it.
type Listing struct {
	Records []models.BookingRecord
	Warning string
}

// AdminFlow gates the booking listing behind the configured credentials.
type AdminFlow struct {
	Logger      *logger.Logger
	Credentials Credentials
	Ledger      service.Ledger
}

// Login authenticates sess when both strings match exactly.
func (f *AdminFlow) Login(sess *session.Context, username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(f.Credentials.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(f.Credentials.Password)) == 1
	if !userOK || !passOK || f.Credentials.Username == "" {
		sess.Authenticated = false
		f.Logger.Warn("Admin login failed", logger.Action("login"), logger.Status("invalid_credentials"))
		return ErrInvalidCredentials
	}

	sess.Authenticated = true
	f.Logger.Info("Admin logged in", logger.Action("login"), logger.Status("authenticated"))
	return nil
}

// ListBookings returns every ledger row for an authenticated session. Ledger
// failures degrade to an empty listing with a warning.
func (f *AdminFlow) ListBookings(ctx context.Context, sess *session.Context) (*Listing, error) {
	if !sess.Authenticated {
		return nil, ErrUnauthenticated
	}

	if f.Ledger == nil {
		f.Logger.Warn("Dashboard rendered without records", logger.Action("dashboard"), logger.Reason("ledger_unavailable"))
		return &Listing{Records: []models.BookingRecord{}, Warning: listingUnavailableWarning}, nil
	}

	rows, err := f.Ledger.GetAllRows(ctx)
	if err != nil {
		f.Logger.Error("Error retrieving sheet records", logger.Action("dashboard"), logger.Error(err))
		return &Listing{Records: []models.BookingRecord{}, Warning: listingUnavailableWarning}, nil
	}

	records := make([]models.BookingRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.RecordFromRow(row))
	}
	f.Logger.Info("Dashboard records loaded", logger.Action("dashboard"), logger.Count(len(records)))
	return &Listing{Records: records}, nil
}

// Logout clears the authenticated flag. Safe to call when already logged out.
func (f *AdminFlow) Logout(sess *session.Context) {
	sess.Authenticated = false
	f.Logger.Info("Admin logged out", logger.Action("logout"))
}
