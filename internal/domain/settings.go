package domain

// WebsiteSettings is the singleton configuration document exposed by the
// settings API. It is not a table of its own: each field is stored as a
// sys_config row under the 'site' category, structured sub-documents as
// JSON values.
type WebsiteSettings struct {
	BookingEnabled  bool                   `json:"bookingEnabled"`
	MaintenanceMode bool                   `json:"maintenanceMode"`
	BusinessHours   map[string]BusinessDay `json:"businessHours"`
	ContactInfo     ContactInfo            `json:"contactInfo"`
	SocialMedia     SocialMedia            `json:"socialMedia"`
	SiteContent     SiteContent            `json:"siteContent"`
}

// BusinessDay holds opening hours for one weekday. Both fields empty
// means closed.
type BusinessDay struct {
	Open  string `json:"open,omitempty"`
	Close string `json:"close,omitempty"`
}

type ContactInfo struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type SocialMedia struct {
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Tiktok    string `json:"tiktok"`
}

type SiteContent struct {
	HeroTitle    string `json:"heroTitle"`
	HeroSubtitle string `json:"heroSubtitle"`
	AboutText    string `json:"aboutText"`
	FooterText   string `json:"footerText"`
}

// DefaultWebsiteSettings is the document inserted when no settings rows
// exist at read time.
func DefaultWebsiteSettings() WebsiteSettings {
	return WebsiteSettings{
		BookingEnabled:  true,
		MaintenanceMode: false,
		BusinessHours: map[string]BusinessDay{
			"monday":    {Open: "09:00", Close: "18:00"},
			"tuesday":   {Open: "09:00", Close: "18:00"},
			"wednesday": {Open: "09:00", Close: "18:00"},
			"thursday":  {Open: "09:00", Close: "20:00"},
			"friday":    {Open: "09:00", Close: "20:00"},
			"saturday":  {Open: "10:00", Close: "16:00"},
			"sunday":    {},
		},
		ContactInfo: ContactInfo{
			Phone:   "+49 30 1234567",
			Email:   "hello@amberleaf.example",
			Address: "Lindenstrasse 12, Berlin",
		},
		SocialMedia: SocialMedia{
			Instagram: "https://instagram.com/amberleafspa",
			Facebook:  "https://facebook.com/amberleafspa",
		},
		SiteContent: SiteContent{
			HeroTitle:    "Amber Leaf Spa",
			HeroSubtitle: "Massage, skincare and slow rituals",
			AboutText:    "A small studio spa in the heart of the city.",
			FooterText:   "© Amber Leaf Spa",
		},
	}
}
