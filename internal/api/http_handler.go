package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"storefront-service/internal/assistant"
	"storefront-service/internal/auth"
	"storefront-service/internal/cart"
	"storefront-service/internal/store"
)

// Deps bundles everything the HTTP handlers need.
type Deps struct {
	Products   store.ProductStorer
	Categories store.CategoryStorer
	Orders     store.OrderStorer
	Promos     store.PromoStorer
	Sessions   store.SessionStorer
	Relay      *assistant.Relay
	Gate       *auth.Gate
	Delivery   cart.DeliveryRule
	Logger     *log.Logger
}

// HTTPHandler holds dependencies for HTTP handlers.
type HTTPHandler struct {
	products   store.ProductStorer
	categories store.CategoryStorer
	orders     store.OrderStorer
	promos     store.PromoStorer
	sessions   store.SessionStorer
	relay      *assistant.Relay
	gate       *auth.Gate
	delivery   cart.DeliveryRule
	logger     *log.Logger
	validate   *validator.Validate
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(d Deps) *HTTPHandler {
	return &HTTPHandler{
		products:   d.Products,
		categories: d.Categories,
		orders:     d.Orders,
		promos:     d.Promos,
		sessions:   d.Sessions,
		relay:      d.Relay,
		gate:       d.Gate,
		delivery:   d.Delivery,
		logger:     d.Logger,
		validate:   validator.New(),
	}
}

// --- Helpers ---

// ErrorResponse defines the structure for JSON error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil { // Avoid writing empty body for 204 No Content
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("ERROR: Failed to encode JSON response: %v", err)
			http.Error(w, `{"error": "Internal server error during JSON encoding"}`, http.StatusInternalServerError)
		}
	}
}

// decodeAndValidate decodes the request body into input and runs the struct
// validation, writing the 400 response itself on failure.
func (h *HTTPHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, input interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return false
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return false
	}
	return true
}

// --- Route Registration ---

// RegisterRoutes sets up the HTTP routes for the service.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.ListProducts) // GET /api/v1/products?category=&min_price=&max_price=&min_rating=&sort=
		// Must precede the {productId} route so "categories" is not parsed as an ID
		r.Get("/categories", h.ListAvailableCategories)
		r.Get("/{productId}", h.GetProductByID)
	})

	r.Get("/api/v1/categories", h.ListCategories)

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Post("/items", h.AddCartItem)
		r.Patch("/items/{productId}", h.UpdateCartItem)
		r.Delete("/items/{productId}", h.RemoveCartItem)
		r.Post("/promo", h.ApplyPromo)
		r.Delete("/promo", h.RemovePromo)
	})

	r.Route("/api/v1/comparison", func(r chi.Router) {
		r.Get("/", h.GetComparison)
		r.Post("/toggle", h.ToggleComparison)
		r.Delete("/", h.ClearComparison)
		r.Delete("/{productId}", h.RemoveComparison)
	})

	r.Post("/api/v1/assistant/messages", h.SendAssistantMessage)

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Post("/login", h.AdminLogin)

		r.Group(func(r chi.Router) {
			r.Use(h.gate.Middleware)

			r.Post("/products", h.CreateProduct)
			r.Put("/products/{productId}", h.UpdateProduct)
			r.Delete("/products/{productId}", h.DeleteProduct)

			r.Post("/categories", h.CreateCategory)
			r.Delete("/categories/{categoryId}", h.DeleteCategory)

			r.Get("/orders", h.ListOrders)
			r.Patch("/orders/{orderId}/status", h.UpdateOrderStatus)

			r.Get("/promos", h.ListPromos)
			r.Post("/promos", h.CreatePromo)
			r.Delete("/promos/{promoId}", h.DeletePromo)
			r.Post("/promos/{promoId}/toggle", h.TogglePromo)
		})
	})
}
