package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"storefront-service/internal/assistant"
	"storefront-service/internal/cart"
	"storefront-service/internal/compare"
	"storefront-service/internal/domain"
	"storefront-service/internal/store"
)

// sessionCookie names the cookie carrying the per-client session ID.
const sessionCookie = "storefront_session"

// session loads the client's session, creating one (and setting the cookie)
// on first use. All cart, comparison and promo state hangs off this session.
func (h *HTTPHandler) session(w http.ResponseWriter, r *http.Request) (*domain.Session, error) {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		sess, err := h.sessions.GetSession(r.Context(), c.Value)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, store.ErrSessionNotFound) {
			return nil, err
		}
		// Stale cookie after a restart: state is process-lifetime only,
		// so fall through and start a fresh session under a new ID.
	}

	sess := &domain.Session{ID: uuid.NewString()}
	if err := h.sessions.PutSession(r.Context(), sess); err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}

// saveSession writes the mutated session back and responds 500 on failure.
func (h *HTTPHandler) saveSession(w http.ResponseWriter, r *http.Request, sess *domain.Session) bool {
	if err := h.sessions.PutSession(r.Context(), sess); err != nil {
		h.logger.Printf("ERROR: PutSession for %s failed: %v", sess.ID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to save session state")
		return false
	}
	return true
}

// --- Cart Handlers ---

// CartView is the cart response: the line items plus the derived pricing
// quote, recomputed in full on every request.
type CartView struct {
	Items   []domain.CartItem     `json:"items"`
	Count   int                   `json:"count"`
	Promo   *domain.PromoDiscount `json:"promo,omitempty"`
	Pricing cart.Quote            `json:"pricing"`
}

func (h *HTTPHandler) cartView(sess *domain.Session) CartView {
	items := sess.Cart
	if items == nil {
		items = []domain.CartItem{}
	}
	return CartView{
		Items:   items,
		Count:   cart.Count(sess.Cart),
		Promo:   sess.Discount,
		Pricing: cart.Price(sess.Cart, sess.Discount, h.delivery),
	}
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.logger.Printf("ERROR: GetCart session load failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}
	respondWithJSON(w, http.StatusOK, h.cartView(sess))
}

// AddCartItemInput defines the expected input for adding a product to the cart.
type AddCartItemInput struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

func (h *HTTPHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var input AddCartItemInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	product, err := h.products.GetProductByID(r.Context(), input.ProductID)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
		} else {
			h.logger.Printf("ERROR: AddCartItem product lookup for ID %d failed: %v", input.ProductID, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to retrieve product")
		}
		return
	}

	sess, err := h.session(w, r)
	if err != nil {
		h.logger.Printf("ERROR: AddCartItem session load failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}

	sess.Cart = cart.Add(sess.Cart, *product)
	if !h.saveSession(w, r, sess) {
		return
	}
	respondWithJSON(w, http.StatusOK, h.cartView(sess))
}

// UpdateCartItemInput defines the expected input for a quantity change.
type UpdateCartItemInput struct {
	Delta int `json:"delta" validate:"required"`
}

func (h *HTTPHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "productId")
	productID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || productID <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var input UpdateCartItemInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	sess, err := h.session(w, r)
	if err != nil {
		h.logger.Printf("ERROR: UpdateCartItem session load failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}

	// Unknown IDs and decrements below quantity 1 are deliberate no-ops.
	sess.Cart = cart.UpdateQuantity(sess.Cart, productID, input.Delta)
	if !h.saveSession(w, r, sess) {
		return
	}
	respondWithJSON(w, http.StatusOK, h.cartView(sess))
}

func (h *HTTPHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "productId")
	productID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || productID <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	sess, err := h.session(w, r)
	if err != nil {
		h.logger.Printf("ERROR: RemoveCartItem session load failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}

	sess.Cart = cart.Remove(sess.Cart, productID)
	if !h.saveSession(w, r, sess) {
		return
	}
	respondWithJSON(w, http.StatusOK, h.cartView(sess))
}

// --- Promo Handlers ---

// ApplyPromoInput defines the expected input for redeeming a promo code.
type ApplyPromoInput struct {
	Code string `json:"code" validate:"required,max=64"`
}

func (h *HTTPHandler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	var input ApplyPromoInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	registry, err := h.promos.ListPromos(r.Context())
	if err != nil {
		h.logger.Printf("ERROR: ApplyPromo registry load failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load promo registry")
		return
	}

	sess, err := h.session(w, r)
	if err != nil {
		h.logger.Printf("ERROR: ApplyPromo session load failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}

	discount, err := cart.ApplyPromo(registry, input.Code)
	if err != nil {
		// Invalid or inactive code: the active discount stays untouched.
		respondWithError(w, http.StatusUnprocessableEntity, "Invalid or inactive promo code")
		return
	}

	// A new valid code replaces the active discount, it never stacks.
	sess.Discount = &discount
	if !h.saveSession(w, r, sess) {
		return
	}
	respondWithJSON(w, http.StatusOK, h.cartView(sess))
}

func (h *HTTPHandler) RemovePromo(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.logger.Printf("ERROR: RemovePromo session load failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}

	sess.Discount = nil
	if !h.saveSession(w, r, sess) {
		return
	}
	respondWithJSON(w, http.StatusOK, h.cartView(sess))
}

// --- Comparison Handlers ---

// ComparisonRow is one row of the comparison table with its difference flag.
type ComparisonRow struct {
	Label   string   `json:"label"`
	Values  []string `json:"values"`
	Differs bool     `json:"differs"`
}

// ComparisonView is the comparison response: the compared products and the
// derived rows (built-ins plus the spec-key union).
type ComparisonView struct {
	Products []domain.Product `json:"products"`
	Rows     []ComparisonRow  `json:"rows"`
}

func comparisonView(products []domain.Product) ComparisonView {
	if products == nil {
		products = []domain.Product{}
	}

	row := func(label string, accessor func(domain.Product) string) ComparisonRow {
		values := make([]string, len(products))
		for i, p := range products {
			values[i] = accessor(p)
		}
		return ComparisonRow{Label: label, Values: values, Differs: compare.RowDiffers(products, accessor)}
	}

	rows := []ComparisonRow{
		row("price", func(p domain.Product) string { return strconv.FormatFloat(p.Price, 'f', 2, 64) }),
		row("rating", func(p domain.Product) string { return strconv.FormatFloat(p.Rating, 'f', -1, 64) }),
		row("category", func(p domain.Product) string { return p.Category }),
	}
	for _, key := range compare.SpecKeys(products) {
		key := key
		rows = append(rows, row(key, func(p domain.Product) string { return compare.SpecValue(p, key) }))
	}

	return ComparisonView{Products: products, Rows: rows}
}

func (h *HTTPHandler) GetComparison(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.logger.Printf("ERROR: GetComparison session load failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}
	respondWithJSON(w, http.StatusOK, comparisonView(sess.Comparison))
}

// ToggleComparisonInput defines the expected input for toggling a product in
// the comparison list.
type ToggleComparisonInput struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

func (h *HTTPHandler) ToggleComparison(w http.ResponseWriter, r *http.Request) {
	var input ToggleComparisonInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	product, err := h.products.GetProductByID(r.Context(), input.ProductID)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
		} else {
			h.logger.Printf("ERROR: ToggleComparison product lookup for ID %d failed: %v", input.ProductID, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to retrieve product")
		}
		return
	}

	sess, err := h.session(w, r)
	if err != nil {
		h.logger.Printf("ERROR: ToggleComparison session load failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}

	list, err := compare.Toggle(sess.Comparison, *product)
	if err != nil {
		// Capacity reached: the list is unchanged, surface the notice.
		respondWithError(w, http.StatusConflict, "You can compare at most 4 products")
		return
	}

	sess.Comparison = list
	if !h.saveSession(w, r, sess) {
		return
	}
	respondWithJSON(w, http.StatusOK, comparisonView(sess.Comparison))
}

func (h *HTTPHandler) RemoveComparison(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "productId")
	productID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || productID <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	sess, err := h.session(w, r)
	if err != nil {
		h.logger.Printf("ERROR: RemoveComparison session load failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}

	sess.Comparison = compare.Remove(sess.Comparison, productID)
	if !h.saveSession(w, r, sess) {
		return
	}
	respondWithJSON(w, http.StatusOK, comparisonView(sess.Comparison))
}

func (h *HTTPHandler) ClearComparison(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.logger.Printf("ERROR: ClearComparison session load failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}

	sess.Comparison = nil
	if !h.saveSession(w, r, sess) {
		return
	}
	respondWithJSON(w, http.StatusOK, comparisonView(sess.Comparison))
}

// --- Assistant Handler ---

// AssistantMessageInput defines the expected input for a chat message.
type AssistantMessageInput struct {
	Message string `json:"message" validate:"required,max=4000"`
}

// SendAssistantMessage relays the user's text plus the catalog summary to the
// completion API. A failure downstream still answers 200 with a substituted
// reply; only an overlapping send for the same session is rejected.
func (h *HTTPHandler) SendAssistantMessage(w http.ResponseWriter, r *http.Request) {
	var input AssistantMessageInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	sess, err := h.session(w, r)
	if err != nil {
		h.logger.Printf("ERROR: SendAssistantMessage session load failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}

	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		h.logger.Printf("ERROR: SendAssistantMessage catalog load failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load catalog")
		return
	}

	reply, err := h.relay.Send(r.Context(), sess.ID, input.Message, products)
	if err != nil {
		if errors.Is(err, assistant.ErrRelayBusy) {
			respondWithError(w, http.StatusConflict, "A message is already being processed for this session")
			return
		}
		h.logger.Printf("ERROR: SendAssistantMessage relay failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to send message")
		return
	}

	response := struct {
		Reply string `json:"reply"`
	}{Reply: reply}
	respondWithJSON(w, http.StatusOK, response)
}
