package schema

// UserTasteProfileTable represents the 'users.tasteprofile' table
type UserTasteProfileTable struct {
	Table       string
	UserID      string
	Sweetness   string
	Body        string
	Acidity     string
	Tannin      string
	PriceBucket string
	Traits      string
	WineTypes   string
	Steps       string
	UpdatedAt   string
}

// UserTasteProfile is the schema definition for users.tasteprofile
var UserTasteProfile = UserTasteProfileTable{
	Table:       "users.tasteprofile",
	UserID:      "userid",
	Sweetness:   "sweetness",
	Body:        "body",
	Acidity:     "acidity",
	Tannin:      "tannin",
	PriceBucket: "pricebucket",
	Traits:      "traits",
	WineTypes:   "winetypes",
	Steps:       "steps",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t UserTasteProfileTable) Columns() []string {
	return []string{t.UserID, t.Sweetness, t.Body, t.Acidity, t.Tannin, t.PriceBucket, t.Traits, t.WineTypes, t.Steps, t.UpdatedAt}
}
