package config

import "github.com/naturalhealing/booking/internal/models"

// DefaultShop returns the practice's static details. Each call returns an
// independent copy, so callers cannot mutate shared state.
func DefaultShop() models.ShopInfo {
	return models.ShopInfo{
		Name:        "Natural Healing Center",
		HealerName:  "Healer TarunKumar UN",
		City:        "Davangere",
		Address:     "Kirwadi Layout,1st Main,1st Cross,Lenin Nagara,Nituvalli Main Road,Davanagere 577008",
		OwnerPhone:  "+919741367959",
		OwnerEmail:  "tarunun11@gmail.com",
		CountryCode: "+91",
		Treatments: []string{
			"Single Seed Point",
			"Color Therapy",
			"Seed Therapy",
			"Meditation Guidance",
			"Acupressure(Aricular Theropy)",
			"Colour Numerology",
		},
		Slots: []string{
			"10:00 AM - 11:00 AM",
			"11:00 AM - 12:00 PM",
			"2:00 PM - 3:00 PM",
			"3:00 PM - 4:00 PM",
			"5:00 PM - 6:00 PM",
		},
	}
}
