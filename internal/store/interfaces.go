package store

import (
	"context"

	"storefront-service/internal/domain"
)

// ProductStorer defines the catalog operations for products.
type ProductStorer interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// CategoryStorer defines the catalog operations for managed categories.
type CategoryStorer interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// OrderStorer defines the back-office operations for orders. Orders are
// created from seed data; only their status is ever mutated.
type OrderStorer interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

// PromoStorer defines the back-office operations for the promo-code registry.
type PromoStorer interface {
	ListPromos(ctx context.Context) ([]domain.PromoCode, error)
	CreatePromo(ctx context.Context, promo *domain.PromoCode) (*domain.PromoCode, error)
	DeletePromo(ctx context.Context, id string) error
	TogglePromo(ctx context.Context, id string) (*domain.PromoCode, error)
}

// SessionStorer persists per-client storefront state (cart, comparison list,
// active discount) for the lifetime of the process. GetSession returns a
// copy; changes take effect only through PutSession.
type SessionStorer interface {
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	PutSession(ctx context.Context, session *domain.Session) error
}
