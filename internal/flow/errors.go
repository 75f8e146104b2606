package flow

import "errors"

var (
	// ErrValidation marks a missing required booking field (user-correctable).
	ErrValidation = errors.New("validation error")
	// ErrStorage marks a ledger that is unavailable or rejected the write.
	ErrStorage = errors.New("storage error")
	// ErrInvalidCredentials marks a failed admin login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated marks an admin request without a logged-in session.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrNotRegistered marks a booking page request before registration.
	ErrNotRegistered = errors.New("not registered")
	// ErrLedgerUnavailable is the cause used when no ledger could be built at startup.
	ErrLedgerUnavailable = errors.New("ledger unavailable")
)

// BookingError is a failed booking with a message safe to show the client.
type BookingError struct {
	Kind    error
	Message string
	Err     error
}

func (e *BookingError) Error() string {
	if e.Err != nil {
		return e.Kind.Error() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.Error() + ": " + e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *BookingError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
