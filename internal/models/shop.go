package models

// ShopInfo holds the practice details shown on the booking page and used
// in notification emails.
type ShopInfo struct {
	Name        string
	HealerName  string
	City        string
	Address     string
	OwnerPhone  string
	OwnerEmail  string
	CountryCode string
	Treatments  []string
	Slots       []string
}
