package profile

// Profile is a user's donation-relevant personal, medical and location
// record. Each user has at most one.
type Profile struct {
	ID               int     `json:"profileId"`
	UserID           int     `json:"userId"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Weight           float64 `json:"weight"`
	Height           float64 `json:"height"`
	Region           string  `json:"region"`
	Province         string  `json:"province"`
	Municipality     string  `json:"municipality"`
	BloodType        string  `json:"bloodType"`
	Availability     bool    `json:"availability"`
	LastDonationDate *string `json:"lastDonationDate,omitempty"`
	CreatedAt        string  `json:"createdAt,omitempty"`
	UpdatedAt        string  `json:"updatedAt,omitempty"`
}
