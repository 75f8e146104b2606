package flow

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"

	"github.com/naturalhealing/booking/internal/models"
)

const (
	customerSubject     = "Your Appointment is Confirmed!"
	practitionerSubject = "New Appointment Booking"
)

//go:embed templates/customer_confirmation.html
var templateFS embed.FS

var customerTemplate = template.Must(template.ParseFS(templateFS, "templates/customer_confirmation.html"))

type customerEmailData struct {
	Name       string
	HealerName string
	Date       string
	Slot       string
	Address    string
	MapsURL    template.URL
	CallURL    template.URL
}

// customerEmailBody renders the HTML confirmation sent to the client.
func customerEmailBody(shop models.ShopInfo, record models.BookingRecord) (string, error) {
	data := customerEmailData{
		Name:       record.Name,
		HealerName: shop.HealerName,
		Date:       record.Date,
		Slot:       record.Slot,
		Address:    shop.Address,
		MapsURL:    template.URL(mapsSearchURL(shop.Address)),
		CallURL:    template.URL("tel:" + shop.OwnerPhone),
	}

	var buf bytes.Buffer
	if err := customerTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render confirmation email: %w", err)
	}
	return buf.String(), nil
}

// practitionerEmailBody is the plain-text notice sent to the practice.
func practitionerEmailBody(shop models.ShopInfo, record models.BookingRecord) string {
	return fmt.Sprintf("Hello %s,\n\nNew booking received:\n\n"+
		"Name: %s\nPhone: %s\nEmail: %s\nAge: %s\nLocation: %s\nDate: %s\nSlot: %s\n\n"+
		"Regards,\nThe %s System",
		shop.HealerName,
		record.Name, record.Phone, record.Email, record.Age, record.Location, record.Date, record.Slot,
		shop.Name)
}

func mapsSearchURL(address string) string {
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(address)
}
