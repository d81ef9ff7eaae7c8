package store

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"storefront-service/internal/domain"
)

// Predefined errors for store operations
var (
	ErrProductNotFound  = errors.New("store: product not found")
	ErrCategoryNotFound = errors.New("store: category not found")
	ErrCategoryExists   = errors.New("store: category already exists")
	ErrOrderNotFound    = errors.New("store: order not found")
	ErrPromoNotFound    = errors.New("store: promo code not found")
	ErrPromoCodeExists  = errors.New("store: promo code already exists")
	ErrSessionNotFound  = errors.New("store: session not found")
)

// MemoryStore implements every storer interface over in-memory collections.
// All state is process-lifetime only and resets to the seed data on restart.
// A single mutex guards everything; contention is irrelevant at demo scale.
type MemoryStore struct {
	mu         sync.Mutex
	products   []domain.Product
	categories []domain.Category
	orders     []domain.Order
	promos     []domain.PromoCode
	sessions   map[string]domain.Session
	nextID     int64 // next product ID to assign
}

// NewMemoryStore creates an empty MemoryStore. Use Seed to load the static
// demo data.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]domain.Session),
		nextID:   1,
	}
}

// --- ProductStorer Implementation ---

func (s *MemoryStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *MemoryStore) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			prod := p
			return &prod, nil
		}
	}
	return nil, ErrProductNotFound
}

// CreateProduct appends a product to the catalog. An absent (zero) ID is
// assigned from a monotonic counter; a caller-supplied ID is kept and the
// counter advanced past it so later assignments stay unique.
func (s *MemoryStore) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := *product
	if created.ID == 0 {
		created.ID = s.nextID
	}
	if created.ID >= s.nextID {
		s.nextID = created.ID + 1
	}
	s.products = append(s.products, created)
	return &created, nil
}

func (s *MemoryStore) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == product.ID {
			s.products[i] = *product
			updated := *product
			return &updated, nil
		}
	}
	return nil, ErrProductNotFound
}

func (s *MemoryStore) DeleteProduct(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

// --- CategoryStorer Implementation ---

func (s *MemoryStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

// CreateCategory appends a category. When no ID is supplied it is derived by
// slugifying the name. A duplicate slug is rejected with ErrCategoryExists.
func (s *MemoryStore) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := *category
	if created.ID == "" {
		created.ID = Slugify(created.Name)
	}
	for _, c := range s.categories {
		if c.ID == created.ID {
			return nil, ErrCategoryExists
		}
	}
	s.categories = append(s.categories, created)
	return &created, nil
}

// DeleteCategory removes the category entry only. Products referencing the
// category's name keep it; orphaned category strings are tolerated.
func (s *MemoryStore) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.categories {
		if c.ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return nil
		}
	}
	return ErrCategoryNotFound
}

// Slugify derives a category ID from its display name: lower case with
// whitespace runs collapsed to single hyphens.
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// --- OrderStorer Implementation ---

func (s *MemoryStore) ListOrders(ctx context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	return out, nil
}

// UpdateOrderStatus replaces the status field. No transition graph is
// enforced: any status may follow any other (admin override).
func (s *MemoryStore) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			updated := s.orders[i]
			return &updated, nil
		}
	}
	return nil, ErrOrderNotFound
}

// --- PromoStorer Implementation ---

func (s *MemoryStore) ListPromos(ctx context.Context) ([]domain.PromoCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.PromoCode, len(s.promos))
	copy(out, s.promos)
	return out, nil
}

// CreatePromo registers a promo code. The code string is canonicalized to
// upper case; redemption lookups stay exact-match against that form.
func (s *MemoryStore) CreatePromo(ctx context.Context, promo *domain.PromoCode) (*domain.PromoCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := *promo
	created.Code = strings.ToUpper(strings.TrimSpace(created.Code))
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	for _, p := range s.promos {
		if p.Code == created.Code {
			return nil, ErrPromoCodeExists
		}
	}
	s.promos = append(s.promos, created)
	return &created, nil
}

func (s *MemoryStore) DeletePromo(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.promos {
		if p.ID == id {
			s.promos = append(s.promos[:i], s.promos[i+1:]...)
			return nil
		}
	}
	return ErrPromoNotFound
}

func (s *MemoryStore) TogglePromo(ctx context.Context, id string) (*domain.PromoCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.promos {
		if s.promos[i].ID == id {
			s.promos[i].IsActive = !s.promos[i].IsActive
			updated := s.promos[i]
			return &updated, nil
		}
	}
	return nil, ErrPromoNotFound
}

// --- SessionStorer Implementation ---

func (s *MemoryStore) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	out := copySession(sess)
	return &out, nil
}

func (s *MemoryStore) PutSession(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = copySession(*session)
	return nil
}

// copySession deep-copies the slices so callers never alias store state.
func copySession(sess domain.Session) domain.Session {
	out := sess
	out.Cart = append([]domain.CartItem(nil), sess.Cart...)
	out.Comparison = append([]domain.Product(nil), sess.Comparison...)
	if sess.Discount != nil {
		d := *sess.Discount
		out.Discount = &d
	}
	return out
}
