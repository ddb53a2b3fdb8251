package billing

import (
	"github.com/tamilselvan8428/rajasnacksBilling/internal/model"

	"github.com/shopspring/decimal"
)

// SampleCatalog is the starter price list used when the catalog is empty and
// seeding is enabled.
func SampleCatalog(ids IDGenerator) []model.Product {
	return []model.Product{
		{ID: ids.Generate(), Name: "Rice", NameLocalized: "அரிசி", Price: decimal.NewFromInt(50)},
		{ID: ids.Generate(), Name: "Sugar", NameLocalized: "சீனி", Price: decimal.NewFromInt(40)},
		{ID: ids.Generate(), Name: "Oil", NameLocalized: "எண்ணெய்", Price: decimal.NewFromInt(120)},
	}
}
