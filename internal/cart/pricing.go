package cart

import (
	"errors"

	"storefront-service/internal/domain"
)

// ErrInvalidPromoCode is returned when a promo code is unknown or inactive.
// The caller surfaces it to the user and must not touch the active discount.
var ErrInvalidPromoCode = errors.New("cart: invalid or inactive promo code")

// DeliveryRule decides the delivery fee from the post-discount total:
// delivery is free above FreeOver, otherwise Fee applies.
type DeliveryRule struct {
	Fee      float64
	FreeOver float64
}

// Quote is the full pricing breakdown for a cart with an optional discount.
type Quote struct {
	Subtotal   float64 `json:"subtotal"`
	Discount   float64 `json:"discount"`
	Total      float64 `json:"total"`       // subtotal minus discount, clamped at 0
	Delivery   float64 `json:"delivery"`    // computed on Total, not Subtotal
	FinalTotal float64 `json:"final_total"` // Total plus Delivery
}

// ApplyPromo looks up code in the registry. It succeeds only on an exact
// code match against an active entry; the returned discount carries the
// registry entry's code string, not the caller's input.
func ApplyPromo(registry []domain.PromoCode, code string) (domain.PromoDiscount, error) {
	for _, p := range registry {
		if p.Code == code && p.IsActive {
			return domain.PromoDiscount{Code: p.Code, Type: p.Type, Value: p.Value}, nil
		}
	}
	return domain.PromoDiscount{}, ErrInvalidPromoCode
}

// DiscountAmount derives the absolute discount from the subtotal. A percent
// discount is a fraction of the subtotal; a fixed discount is its value,
// capped at the subtotal so the total never goes negative.
func DiscountAmount(subtotal float64, d *domain.PromoDiscount) float64 {
	if d == nil {
		return 0
	}
	var amount float64
	switch d.Type {
	case domain.PromoPercent:
		amount = subtotal * d.Value / 100
	case domain.PromoFixed:
		amount = d.Value
	}
	if amount > subtotal {
		amount = subtotal
	}
	return amount
}

// Price computes the full quote for items under discount d and rule.
func Price(items []domain.CartItem, d *domain.PromoDiscount, rule DeliveryRule) Quote {
	subtotal := Subtotal(items)
	discount := DiscountAmount(subtotal, d)
	total := subtotal - discount

	var delivery float64
	if total <= rule.FreeOver {
		delivery = rule.Fee
	}

	return Quote{
		Subtotal:   subtotal,
		Discount:   discount,
		Total:      total,
		Delivery:   delivery,
		FinalTotal: total + delivery,
	}
}
