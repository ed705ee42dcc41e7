// Package catalog derives the displayed product view from the full product
// list and the shopper's search, category and sort selections.
package catalog

import (
	"cmp"
	"slices"
	"strings"

	domproduct "example.com/storefront/internal/domain/product"
)

// AllCategories is the category sentinel that disables the category filter.
const AllCategories = "All"

type Query struct {
	Search   string
	Category string
	Sort     SortOption
}

type View struct {
	Products   []domproduct.Product
	Categories []string
	Query      Query
}

// Build derives the view for q. products is never modified.
func Build(products []domproduct.Product, q Query) View {
	return View{
		Products:   Filter(products, q),
		Categories: Categories(products),
		Query:      q,
	}
}

// Filter applies the category and search filters (conjunctively) and then
// the sort option. The result is a fresh slice. A blank search disables the
// search filter; otherwise the term is matched as typed, surrounding spaces
// included.
func Filter(products []domproduct.Product, q Query) []domproduct.Product {
	var term string
	if strings.TrimSpace(q.Search) != "" {
		term = strings.ToLower(q.Search)
	}
	filterCategory := q.Category != "" && q.Category != AllCategories

	filtered := make([]domproduct.Product, 0, len(products))
	for _, p := range products {
		if filterCategory && p.Category != q.Category {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}
		filtered = append(filtered, p)
	}

	switch q.Sort {
	case SortLowToHigh:
		slices.SortStableFunc(filtered, func(a, b domproduct.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortHighToLow:
		slices.SortStableFunc(filtered, func(a, b domproduct.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	}
	return filtered
}

// Categories lists the distinct non-empty categories in order of first
// appearance.
func Categories(products []domproduct.Product) []string {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}
