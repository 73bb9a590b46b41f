// internal/domain/cart/entity.go
package cart

import (
	"github.com/your-org/storefront/internal/pkg/money"
)

// Item represents a line in the visitor's cart. Prices are stored as
// numbers; values persisted as strings are coerced, and unparseable ones read as 0.
type Item struct {
	Name      string       `json:"name"`
	Price     money.Amount `json:"price"`
	Image     string       `json:"image"`
	ProductID *int         `json:"productId,omitempty"`
}

// Summary is the cart as rendered by the sidebar, the account tab and checkout
type Summary struct {
	Items []Item       `json:"items"`
	Count int          `json:"count"`
	Total money.Amount `json:"total"`
}

// Total sums the item prices
func Total(items []Item) money.Amount {
	total := money.Zero
	for _, item := range items {
		total = total.Add(item.Price)
	}
	return total
}

// Summarize builds the rendered view of items
func Summarize(items []Item) Summary {
	if items == nil {
		items = []Item{}
	}
	return Summary{
		Items: items,
		Count: len(items),
		Total: Total(items),
	}
}

// Clone copies items so snapshots are independent of later cart changes
func Clone(items []Item) []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		if item.ProductID != nil {
			id := *item.ProductID
			item.ProductID = &id
		}
		out[i] = item
	}
	return out
}
