package domain

// Product represents a catalog product.
// The json tags correspond to the fields expected in API responses/requests.
type Product struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Price       float64           `json:"price"`
	OldPrice    *float64          `json:"old_price,omitempty"` // Pre-discount price, display only; >= Price when set
	Image       string            `json:"image"`
	Rating      float64           `json:"rating"` // 0..5
	Reviews     int               `json:"reviews"`
	IsGenius    bool              `json:"is_genius"`
	Category    string            `json:"category"`
	Description *string           `json:"description,omitempty"`
	Features    []string          `json:"features,omitempty"`
	Specs       map[string]string `json:"specs,omitempty"`
}

// Category is a managed storefront category (mega-menu entry).
// Its ID is a slug derived from the name. Products reference categories
// by name only; deleting a category never cascades to products.
type Category struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Icon          string   `json:"icon"`
	Subcategories []string `json:"subcategories,omitempty"`
}

// CartItem is a product snapshot plus a quantity of at least 1.
// Line identity is the product ID: adding an already-present product
// increments the quantity instead of appending a duplicate line.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// PromoType discriminates how a promo code's value is applied.
type PromoType string

const (
	PromoPercent PromoType = "percent" // value is a percentage of the subtotal
	PromoFixed   PromoType = "fixed"   // value is an absolute amount
)

// PromoCode is a registry entry. A code is redeemable only while IsActive
// is true; the code string is matched exactly.
type PromoCode struct {
	ID       string    `json:"id"`
	Code     string    `json:"code"`
	Type     PromoType `json:"type"`
	Value    float64   `json:"value"`
	IsActive bool      `json:"is_active"`
}

// PromoDiscount is the discount currently applied to a cart. At most one
// is active at a time: applying a new valid code replaces it, it never stacks.
type PromoDiscount struct {
	Code  string    `json:"code"`
	Type  PromoType `json:"type"`
	Value float64   `json:"value"`
}

// OrderStatus enumerates the order lifecycle states. Transitions are
// intentionally unconstrained: an admin may move an order from any
// status to any other.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Order is a customer order. Orders are created from seed data or by an
// admin; only the status field is ever mutated afterwards.
type Order struct {
	ID           string      `json:"id"`
	CustomerName string      `json:"customer_name"`
	Email        string      `json:"email"`
	Date         string      `json:"date"`
	Total        float64     `json:"total"`
	Status       OrderStatus `json:"status"`
	Items        []CartItem  `json:"items"`
}

// SortOption selects the ordering of a filtered product list.
type SortOption string

const (
	SortRelevance  SortOption = "relevance" // catalog order, no reordering
	SortPriceAsc   SortOption = "priceAsc"
	SortPriceDesc  SortOption = "priceDesc"
	SortRatingDesc SortOption = "ratingDesc"
)

// Valid reports whether s is a known sort option.
func (s SortOption) Valid() bool {
	switch s {
	case SortRelevance, SortPriceAsc, SortPriceDesc, SortRatingDesc:
		return true
	}
	return false
}

// FilterCriteria narrows the visible product list. The three predicates
// combine with AND; an empty category set and a nil MinRating pass everything.
type FilterCriteria struct {
	Categories []string
	PriceMin   float64
	PriceMax   float64
	MinRating  *float64
}

// Session holds the per-client storefront state: the cart, the comparison
// list and the active promo discount. Everything is process-lifetime only.
type Session struct {
	ID         string         `json:"id"`
	Cart       []CartItem     `json:"cart"`
	Comparison []Product      `json:"comparison"`
	Discount   *PromoDiscount `json:"discount,omitempty"`
}
