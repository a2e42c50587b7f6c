package model

import "time"

// Bartender represents a bartender profile as stored in the `bartenders`
// table. Registration captures profile fields plus URLs of the uploaded
// identity documents; the upload plumbing itself lives outside this
// service, the columns only hold the resulting locations. A bartender
// cannot authenticate until an administrator flips Approved to true,
// regardless of valid credentials.
type Bartender struct {
	ID              string    `json:"id"`
	FirstName       string    `json:"firstname"`
	LastName        string    `json:"lastname"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	PasswordHash    string    `json:"-"`
	Experience      string    `json:"experience"`
	Skills          string    `json:"skills"`
	Rate            string    `json:"rate"`
	Street          string    `json:"street"`
	Apt             string    `json:"apt"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	Zip             string    `json:"zip"`
	LicenseNumber   string    `json:"license_number"`
	ProfilePhotoURL string    `json:"profile_photo"`
	LicenseFileURL  string    `json:"bartending_license"`
	GovernmentIDURL string    `json:"government_id"`
	Approved        bool      `json:"approved"`
	CreatedAt       time.Time `json:"created_at"`
}

// PublicBartender is the sanitized directory view returned to customers
// browsing bartenders. Credential and document fields are omitted.
type PublicBartender struct {
	ID              string `json:"id"`
	FirstName       string `json:"firstname"`
	LastName        string `json:"lastname"`
	Experience      string `json:"experience"`
	Skills          string `json:"skills"`
	Rate            string `json:"rate"`
	City            string `json:"city"`
	State           string `json:"state"`
	ProfilePhotoURL string `json:"profile_photo"`
}

// Public returns the sanitized directory view of b.
func (b Bartender) Public() PublicBartender {
	return PublicBartender{
		ID:              b.ID,
		FirstName:       b.FirstName,
		LastName:        b.LastName,
		Experience:      b.Experience,
		Skills:          b.Skills,
		Rate:            b.Rate,
		City:            b.City,
		State:           b.State,
		ProfilePhotoURL: b.ProfilePhotoURL,
	}
}
