package donation

const (
	TypeDonating  = "donating"
	TypeReceiving = "receiving"
)

// Request records an intent to give or receive blood. Donating requests
// mirror the requester's profile at creation time; receiving requests carry
// caller-supplied fields and stay editable.
type Request struct {
	ID           int    `json:"requestId"`
	Reference    string `json:"reference"`
	UserID       int    `json:"userId"`
	RequestType  string `json:"requestType"`
	BloodType    string `json:"bloodType"`
	Region       string `json:"region"`
	Province     string `json:"province"`
	Municipality string `json:"municipality"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// donorsFor maps a recipient blood type to the donor types it can accept.
var donorsFor = map[string][]string{
	"O-":  {"O-"},
	"O+":  {"O-", "O+"},
	"A-":  {"O-", "A-"},
	"A+":  {"O-", "O+", "A-", "A+"},
	"B-":  {"O-", "B-"},
	"B+":  {"O-", "O+", "B-", "B+"},
	"AB-": {"O-", "A-", "B-", "AB-"},
	"AB+": {"O-", "O+", "A-", "A+", "B-", "B+", "AB-", "AB+"},
}

// CompatibleDonors returns the donor blood types acceptable for a recipient
// of the given type, or nil for an unknown code.
func CompatibleDonors(bloodType string) []string {
	return donorsFor[bloodType]
}
