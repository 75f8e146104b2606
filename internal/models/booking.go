package models

import "strings"

// LedgerColumns is the fixed column order of the booking ledger.
var LedgerColumns = []string{"Name", "Phone", "Email", "Age", "Location", "Date", "Slot"}

// Registration is the visitor identity captured before booking.
type Registration struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// BookingRecord represents one appointment row in the ledger.
type BookingRecord struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Age      string `json:"age"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Slot     string `json:"slot"`
}

// Row returns the record's fields in ledger column order.
func (b BookingRecord) Row() []string {
	return []string{b.Name, b.Phone, b.Email, b.Age, b.Location, b.Date, b.Slot}
}

// RecordFromRow builds a record from a header-keyed ledger row. Header
// names are matched case-insensitively; unknown columns are ignored.
func RecordFromRow(row map[string]string) BookingRecord {
	get := func(column string) string {
		if v, ok := row[column]; ok {
			return v
		}
		for k, v := range row {
			if strings.EqualFold(strings.TrimSpace(k), column) {
				return v
			}
		}
		return ""
	}
	return BookingRecord{
		Name:     get("Name"),
		Phone:    get("Phone"),
		Email:    get("Email"),
		Age:      get("Age"),
		Location: get("Location"),
		Date:     get("Date"),
		Slot:     get("Slot"),
	}
}

// Confirmation is returned for a booking that reached the ledger.
type Confirmation struct {
	Record               BookingRecord `json:"record"`
	Message              string        `json:"message"`
	CustomerNotified     bool          `json:"customer_notified"`
	PractitionerNotified bool          `json:"practitioner_notified"`
}
