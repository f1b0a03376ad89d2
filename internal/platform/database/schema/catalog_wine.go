package schema

// CatalogWineTable represents the 'catalog.wine' table
type CatalogWineTable struct {
	Table        string
	ID           string
	Name         string
	Winery       string
	Category     string
	Price        string
	Rating       string
	Region       string
	Vintage      string
	Sweetness    string
	Body         string
	Acidity      string
	Tannin       string
	Traits       string
	FoodPairings string
	UpdatedAt    string
	DeletedAt    string
}

// CatalogWine is the schema definition for catalog.wine
var CatalogWine = CatalogWineTable{
	Table:        "catalog.wine",
	ID:           "id",
	Name:         "name",
	Winery:       "winery",
	Category:     "category",
	Price:        "price",
	Rating:       "rating",
	Region:       "region",
	Vintage:      "vintage",
	Sweetness:    "sweetness",
	Body:         "body",
	Acidity:      "acidity",
	Tannin:       "tannin",
	Traits:       "traits",
	FoodPairings: "foodpairings",
	UpdatedAt:    "updatedat",
	DeletedAt:    "deletedat",
}

// Columns returns the columns scanned into a wine record, in scan order
func (t CatalogWineTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Winery, t.Category, t.Price, t.Rating, t.Region, t.Vintage,
		t.Sweetness, t.Body, t.Acidity, t.Tannin, t.Traits, t.FoodPairings,
	}
}
