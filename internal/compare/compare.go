// Package compare implements the side-by-side product comparison: a bounded
// working set of up to four products plus the derivation of comparison rows
// (the union of spec keys and a per-row difference flag).
package compare

import (
	"errors"
	"sort"

	"storefront-service/internal/domain"
)

// MaxProducts is the comparison list capacity.
const MaxProducts = 4

// ErrComparisonFull is returned when toggling would grow the list past
// MaxProducts; the list is left unchanged.
var ErrComparisonFull = errors.New("compare: comparison list is full")

// NoValue marks a product that has no value for a spec key. It counts as a
// distinct value when computing row differences, the same one for every
// product missing the key.
const NoValue = "-"

// Toggle flips product's membership in list: present (by ID) removes it,
// absent appends it. Below capacity, Toggle is its own inverse. At capacity
// an append is rejected with ErrComparisonFull and list is returned as is.
func Toggle(list []domain.Product, product domain.Product) ([]domain.Product, error) {
	for _, p := range list {
		if p.ID == product.ID {
			return Remove(list, product.ID), nil
		}
	}
	if len(list) >= MaxProducts {
		return list, ErrComparisonFull
	}
	out := make([]domain.Product, len(list), len(list)+1)
	copy(out, list)
	return append(out, product), nil
}

// Remove deletes the product with id from list; an unknown id is a no-op.
func Remove(list []domain.Product, id int64) []domain.Product {
	out := make([]domain.Product, 0, len(list))
	for _, p := range list {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// SpecKeys returns the union of spec-map keys across products, in first-seen
// product order with each product's keys sorted, so the row order is
// deterministic. Products without a spec map contribute nothing.
func SpecKeys(products []domain.Product) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, p := range products {
		own := make([]string, 0, len(p.Specs))
		for k := range p.Specs {
			own = append(own, k)
		}
		sort.Strings(own)
		for _, k := range own {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// SpecValue is the displayed cell value for a product and spec key: the
// product's own value, or NoValue when the key is missing.
func SpecValue(p domain.Product, key string) string {
	if v, ok := p.Specs[key]; ok {
		return v
	}
	return NoValue
}

// RowDiffers reports whether accessor yields more than one distinct value
// across products. With fewer than two products there is nothing to differ
// from, so the result is always false.
func RowDiffers(products []domain.Product, accessor func(domain.Product) string) bool {
	if len(products) < 2 {
		return false
	}
	first := accessor(products[0])
	for _, p := range products[1:] {
		if accessor(p) != first {
			return true
		}
	}
	return false
}
