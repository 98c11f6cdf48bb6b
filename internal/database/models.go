package database

// TimestampFormat is the wire format for created_at/added_on timestamps.
const TimestampFormat = "2006-01-02 15:04"

// User is a credential store record. The password hash never leaves the
// process.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"password,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// Item is an inventory record scoped to its owner. Category and
// PredictedExpiry hold sentinel values until enrichment succeeds.
type Item struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	Name            string `json:"item_name"`
	Category        string `json:"category"`
	PredictedExpiry string `json:"predicted_expiry"`
	AddedOn         string `json:"added_on"`
}
