// internal/domain/wishlist/entity.go
package wishlist

import (
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/pkg/money"
)

// Item represents a saved-for-later product. Entries are unique by name.
type Item struct {
	ID    int          `json:"id,omitempty"`
	Name  string       `json:"name"`
	Price money.Amount `json:"price"`
	Image string       `json:"image"`
}

// Summary is the wishlist as rendered by the sidebar and the account tab
type Summary struct {
	Items []Item `json:"items"`
	Count int    `json:"count"`
}

// Summarize builds the rendered view of items
func Summarize(items []Item) Summary {
	if items == nil {
		items = []Item{}
	}
	return Summary{Items: items, Count: len(items)}
}

// IndexOf returns the position of the entry named name, or -1
func IndexOf(items []Item, name string) int {
	for i, item := range items {
		if item.Name == name {
			return i
		}
	}
	return -1
}

// ToCartItem converts a wishlist entry into a cart line
func (i Item) ToCartItem() cart.Item {
	item := cart.Item{
		Name:  i.Name,
		Price: i.Price,
		Image: i.Image,
	}
	if i.ID != 0 {
		id := i.ID
		item.ProductID = &id
	}
	return item
}
