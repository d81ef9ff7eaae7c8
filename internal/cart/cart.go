// Package cart implements the shopping cart line-item operations and the
// promo/pricing derivation. All functions are pure: they take the current
// cart state and return a new one, leaving the input untouched, so the HTTP
// layer can load a session, apply an operation and store the result back.
package cart

import "storefront-service/internal/domain"

// Add merges product into items: if a line for product.ID already exists its
// quantity is incremented by one, otherwise a new line with quantity 1 is
// appended.
func Add(items []domain.CartItem, product domain.Product) []domain.CartItem {
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID == product.ID {
			out[i].Quantity++
			return out
		}
	}
	return append(out, domain.CartItem{Product: product, Quantity: 1})
}

// UpdateQuantity adjusts the quantity of the line for id by delta. A change
// that would drop the quantity below 1 leaves the line unchanged - removal
// is a distinct explicit operation, never a side effect of decrementing.
// An unknown id is a no-op.
func UpdateQuantity(items []domain.CartItem, id int64, delta int) []domain.CartItem {
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		if q := out[i].Quantity + delta; q >= 1 {
			out[i].Quantity = q
		}
		break
	}
	return out
}

// Remove deletes the line for id if present; an unknown id is a no-op.
func Remove(items []domain.CartItem, id int64) []domain.CartItem {
	out := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

// Subtotal is the sum over all lines of price times quantity.
func Subtotal(items []domain.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Count is the total number of units in the cart (the header badge number).
func Count(items []domain.CartItem) int {
	var n int
	for _, item := range items {
		n += item.Quantity
	}
	return n
}
