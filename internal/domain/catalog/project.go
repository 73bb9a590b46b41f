// internal/domain/catalog/project.go
package catalog

import (
	"sort"
	"strings"
)

// Filters
const (
	FilterAll        = "all"
	FilterNewArrival = "new-arrival"
)

// Sort keys
const (
	SortRelevance = "relevance"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
	SortDiscount  = "discount"
	SortNewest    = "newest"
)

// Project filters products and sorts them by key. The input is not modified.
// Sorting is stable so equal keys keep their input order. An empty or unknown
// sort key sorts by load order.
func Project(products []Product, filter, sortKey string) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if matchesFilter(p, filter) {
			out = append(out, p)
		}
	}

	var less func(a, b Product) bool
	switch sortKey {
	case SortPriceLow:
		less = func(a, b Product) bool { return a.Price.LessThan(b.Price) }
	case SortPriceHigh:
		less = func(a, b Product) bool { return a.Price.GreaterThan(b.Price) }
	case SortRating:
		less = func(a, b Product) bool { return a.Rating > b.Rating }
	case SortDiscount:
		less = func(a, b Product) bool { return a.Discount > b.Discount }
	case SortNewest:
		less = func(a, b Product) bool { return a.IsNew && !b.IsNew }
	default:
		less = func(a, b Product) bool { return a.OriginalIndex < b.OriginalIndex }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func matchesFilter(p Product, filter string) bool {
	switch filter {
	case "", FilterAll:
		return true
	case FilterNewArrival:
		return p.IsNew
	default:
		return p.Category == filter
	}
}

// Search keeps products whose name, category or any detail value contains
// query, ignoring case. A blank query returns products unchanged.
func Search(products []Product, query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return products
	}

	out := make([]Product, 0)
	for _, p := range products {
		if matchesQuery(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func matchesQuery(p Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Category), q) {
		return true
	}
	for _, v := range p.Details {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}
