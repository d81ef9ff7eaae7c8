package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"storefront-service/internal/auth"
	"storefront-service/internal/domain"
	"storefront-service/internal/store"
)

// --- Admin Gate ---

// AdminLoginInput defines the expected input for the back-office login.
type AdminLoginInput struct {
	Password string `json:"password" validate:"required"`
}

// AdminLogin exchanges the shared password for a bearer token. A wrong
// password answers 401 with an inline error; the client keeps its input for
// retry.
func (h *HTTPHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var input AdminLoginInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	token, err := h.gate.Login(input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrBadPassword) {
			respondWithError(w, http.StatusUnauthorized, "Wrong password")
		} else {
			h.logger.Printf("ERROR: AdminLogin token issue failed: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to issue admin token")
		}
		return
	}

	response := struct {
		Token string `json:"token"`
	}{Token: token}
	respondWithJSON(w, http.StatusOK, response)
}

// --- Product Handlers ---

// ProductInput defines the expected input for creating or updating a product.
type ProductInput struct {
	Title       string            `json:"title" validate:"required,max=255"`
	Price       float64           `json:"price" validate:"gte=0"`
	OldPrice    *float64          `json:"old_price" validate:"omitempty,gtefield=Price"`
	Image       string            `json:"image" validate:"omitempty,url,max=2048"`
	Rating      float64           `json:"rating" validate:"gte=0,lte=5"`
	Reviews     int               `json:"reviews" validate:"gte=0"`
	IsGenius    bool              `json:"is_genius"`
	Category    string            `json:"category" validate:"required,max=255"`
	Description *string           `json:"description" validate:"omitempty"`
	Features    []string          `json:"features" validate:"omitempty,dive,max=255"`
	Specs       map[string]string `json:"specs" validate:"omitempty"`
}

func (in *ProductInput) toDomain(id int64) *domain.Product {
	return &domain.Product{
		ID:          id,
		Title:       in.Title,
		Price:       in.Price,
		OldPrice:    in.OldPrice,
		Image:       in.Image,
		Rating:      in.Rating,
		Reviews:     in.Reviews,
		IsGenius:    in.IsGenius,
		Category:    in.Category,
		Description: in.Description,
		Features:    in.Features,
		Specs:       in.Specs,
	}
}

func (h *HTTPHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input ProductInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	// ID 0 lets the store assign the next one from its counter.
	created, err := h.products.CreateProduct(r.Context(), input.toDomain(0))
	if err != nil {
		h.logger.Printf("ERROR: CreateProduct store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *HTTPHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "productId")
	productID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || productID <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var input ProductInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	updated, err := h.products.UpdateProduct(r.Context(), input.toDomain(productID))
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
		} else {
			h.logger.Printf("ERROR: UpdateProduct store operation for ID %d failed: %v", productID, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to update product")
		}
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *HTTPHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "productId")
	productID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || productID <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	if err := h.products.DeleteProduct(r.Context(), productID); err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
		} else {
			h.logger.Printf("ERROR: DeleteProduct store operation for ID %d failed: %v", productID, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		}
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

// --- Category Handlers ---

// CategoryCreateInput defines the expected input for creating a category.
// The ID is derived by slugifying the name.
type CategoryCreateInput struct {
	Name          string   `json:"name" validate:"required,max=255"`
	Icon          string   `json:"icon" validate:"omitempty,max=64"`
	Subcategories []string `json:"subcategories" validate:"omitempty,dive,max=255"`
}

func (h *HTTPHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var input CategoryCreateInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	category := &domain.Category{
		Name:          input.Name,
		Icon:          input.Icon,
		Subcategories: input.Subcategories,
	}

	created, err := h.categories.CreateCategory(r.Context(), category)
	if err != nil {
		if errors.Is(err, store.ErrCategoryExists) {
			respondWithError(w, http.StatusConflict, store.ErrCategoryExists.Error())
		} else {
			h.logger.Printf("ERROR: CreateCategory store operation failed: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to create category")
		}
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// DeleteCategory removes the category entry only; products referencing the
// category name are left alone.
func (h *HTTPHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")
	if categoryID == "" {
		respondWithError(w, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	if err := h.categories.DeleteCategory(r.Context(), categoryID); err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrCategoryNotFound.Error())
		} else {
			h.logger.Printf("ERROR: DeleteCategory store operation for ID %s failed: %v", categoryID, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to delete category")
		}
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

// --- Order Handlers ---

func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		h.logger.Printf("ERROR: ListOrders store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	response := struct {
		Data []domain.Order `json:"data"`
	}{Data: orders}
	respondWithJSON(w, http.StatusOK, response)
}

// OrderStatusInput defines the expected input for an order status change.
type OrderStatusInput struct {
	Status domain.OrderStatus `json:"status" validate:"required"`
}

// UpdateOrderStatus replaces the order's status. Any known status may follow
// any other; there is no transition graph.
func (h *HTTPHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	var input OrderStatusInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}
	if !input.Status.Valid() {
		respondWithError(w, http.StatusBadRequest, "Invalid order status")
		return
	}

	updated, err := h.orders.UpdateOrderStatus(r.Context(), orderID, input.Status)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrOrderNotFound.Error())
		} else {
			h.logger.Printf("ERROR: UpdateOrderStatus store operation for ID %s failed: %v", orderID, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to update order status")
		}
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

// --- Promo Handlers ---

func (h *HTTPHandler) ListPromos(w http.ResponseWriter, r *http.Request) {
	promos, err := h.promos.ListPromos(r.Context())
	if err != nil {
		h.logger.Printf("ERROR: ListPromos store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve promo codes")
		return
	}

	response := struct {
		Data []domain.PromoCode `json:"data"`
	}{Data: promos}
	respondWithJSON(w, http.StatusOK, response)
}

// PromoCreateInput defines the expected input for registering a promo code.
type PromoCreateInput struct {
	Code     string           `json:"code" validate:"required,max=64"`
	Type     domain.PromoType `json:"type" validate:"required,oneof=percent fixed"`
	Value    float64          `json:"value" validate:"required,gt=0"`
	IsActive bool             `json:"is_active"`
}

func (h *HTTPHandler) CreatePromo(w http.ResponseWriter, r *http.Request) {
	var input PromoCreateInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	promo := &domain.PromoCode{
		Code:     input.Code,
		Type:     input.Type,
		Value:    input.Value,
		IsActive: input.IsActive,
	}

	created, err := h.promos.CreatePromo(r.Context(), promo)
	if err != nil {
		if errors.Is(err, store.ErrPromoCodeExists) {
			respondWithError(w, http.StatusConflict, store.ErrPromoCodeExists.Error())
		} else {
			h.logger.Printf("ERROR: CreatePromo store operation failed: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to create promo code")
		}
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *HTTPHandler) DeletePromo(w http.ResponseWriter, r *http.Request) {
	promoID := chi.URLParam(r, "promoId")

	if err := h.promos.DeletePromo(r.Context(), promoID); err != nil {
		if errors.Is(err, store.ErrPromoNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrPromoNotFound.Error())
		} else {
			h.logger.Printf("ERROR: DeletePromo store operation for ID %s failed: %v", promoID, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to delete promo code")
		}
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (h *HTTPHandler) TogglePromo(w http.ResponseWriter, r *http.Request) {
	promoID := chi.URLParam(r, "promoId")

	updated, err := h.promos.TogglePromo(r.Context(), promoID)
	if err != nil {
		if errors.Is(err, store.ErrPromoNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrPromoNotFound.Error())
		} else {
			h.logger.Printf("ERROR: TogglePromo store operation for ID %s failed: %v", promoID, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to toggle promo code")
		}
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}
