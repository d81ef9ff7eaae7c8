// Package catalog derives the visible product list from the full catalog,
// the active filter criteria and the selected sort option. Everything here
// is a pure function of its inputs, recomputed from scratch on every call.
package catalog

import (
	"sort"

	"storefront-service/internal/domain"
)

// VisibleProducts returns the products passing all filter predicates, in the
// order implied by sortOpt. Sorting is stable: products with equal sort keys
// keep their relative catalog order, and SortRelevance performs no reordering
// at all. The input slice is never modified.
func VisibleProducts(products []domain.Product, criteria domain.FilterCriteria, sortOpt domain.SortOption) []domain.Product {
	visible := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matches(p, criteria) {
			visible = append(visible, p)
		}
	}

	switch sortOpt {
	case domain.SortPriceAsc:
		sort.SliceStable(visible, func(i, j int) bool { return visible[i].Price < visible[j].Price })
	case domain.SortPriceDesc:
		sort.SliceStable(visible, func(i, j int) bool { return visible[i].Price > visible[j].Price })
	case domain.SortRatingDesc:
		sort.SliceStable(visible, func(i, j int) bool { return visible[i].Rating > visible[j].Rating })
	}
	return visible
}

// matches reports whether p passes every filter predicate. An empty category
// set passes all categories, the price bounds are inclusive, and a nil
// MinRating disables the rating floor.
func matches(p domain.Product, c domain.FilterCriteria) bool {
	if len(c.Categories) > 0 && !containsString(c.Categories, p.Category) {
		return false
	}
	if p.Price < c.PriceMin || p.Price > c.PriceMax {
		return false
	}
	if c.MinRating != nil && p.Rating < *c.MinRating {
		return false
	}
	return true
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// AvailableCategories returns the distinct category names across the whole
// catalog (not the filtered subset), sorted alphabetically. This feeds the
// filter sidebar, so it must reflect the current catalog even while filters
// are active.
func AvailableCategories(products []domain.Product) []string {
	seen := make(map[string]struct{}, len(products))
	names := make([]string, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		names = append(names, p.Category)
	}
	sort.Strings(names)
	return names
}
