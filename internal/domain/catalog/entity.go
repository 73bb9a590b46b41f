// internal/domain/catalog/entity.go
package catalog

import (
	"github.com/your-org/storefront/internal/pkg/money"
)

// Detail keys shown in the product modal, with the text used when a product omits them
var DetailDefaults = []DetailField{
	{Key: "Material", Default: "Standard Alloy"},
	{Key: "WaterResistance", Default: "Water Resistant"},
	{Key: "Usage", Default: "Universal"},
	{Key: "Features", Default: "Standard Timekeeping"},
}

// DetailField names a modal detail and its fallback
type DetailField struct {
	Key     string
	Default string
}

// Product represents a catalog entry with its load-time derived fields
type Product struct {
	ID            int               `json:"id"`
	Name          string            `json:"name"`
	Category      string            `json:"category"`
	Price         money.Amount      `json:"price"`
	Image         string            `json:"image"`
	Description   string            `json:"description"`
	Details       map[string]string `json:"details,omitempty"`
	Rating        float64           `json:"rating"`
	Discount      int               `json:"discount"`
	IsNew         bool              `json:"isNew"`
	OriginalIndex int               `json:"originalIndex"`
}

// sourceProduct is the shape read from the catalog source. Rating, discount
// and details decode leniently so one off-type field never fails the load;
// an unusable rating or discount is treated as absent.
type sourceProduct struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	Price       money.Amount   `json:"price"`
	Image       string         `json:"image"`
	Description string         `json:"description"`
	Details     detailMap      `json:"details"`
	Rating      optionalNumber `json:"rating"`
	Discount    optionalNumber `json:"discount"`
	IsNew       bool           `json:"isNew"`
}

// HasDiscount checks if the product is discounted
func (p Product) HasDiscount() bool {
	return p.Discount > 0 && p.Discount < 100
}

// OriginalPrice returns the pre-discount price shown struck through,
// round(price * 100 / (100 - discount)). Undiscounted products return Price.
func (p Product) OriginalPrice() money.Amount {
	if !p.HasDiscount() {
		return p.Price
	}
	return p.Price.MulInt(100).DivInt(int64(100 - p.Discount)).Round(0)
}

// DisplayDetails returns the modal details with defaults filled in for
// missing entries. Extra detail keys are preserved.
func (p Product) DisplayDetails() map[string]string {
	out := make(map[string]string, len(p.Details)+len(DetailDefaults))
	for k, v := range p.Details {
		out[k] = v
	}
	for _, f := range DetailDefaults {
		if out[f.Key] == "" {
			out[f.Key] = f.Default
		}
	}
	return out
}

// clone returns a deep copy so callers cannot mutate cached products
func (p Product) clone() Product {
	if p.Details != nil {
		details := make(map[string]string, len(p.Details))
		for k, v := range p.Details {
			details[k] = v
		}
		p.Details = details
	}
	return p
}
