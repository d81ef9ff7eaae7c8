package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/assistant"
)

// sessionClient keeps the session cookie across requests, like a browser would.
func sessionClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	res, err := client.Do(req)
	require.NoError(t, err)
	return res
}

func decodeCart(t *testing.T, res *http.Response) CartView {
	t.Helper()
	defer res.Body.Close()
	var view CartView
	require.NoError(t, json.NewDecoder(res.Body).Decode(&view))
	return view
}

func TestHTTPHandler_GetCart_StartsEmpty(t *testing.T) {
	server := setupTestChiServer(t, testDeps())
	client := sessionClient(t)

	res := doJSON(t, client, http.MethodGet, server.URL+"/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	view := decodeCart(t, res)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0, view.Count)
	assert.Nil(t, view.Promo)
	assert.Equal(t, 0.0, view.Pricing.Subtotal)
}

func TestHTTPHandler_AddCartItem_MergesQuantity(t *testing.T) {
	server := setupTestChiServer(t, testDeps())
	client := sessionClient(t)

	res := doJSON(t, client, http.MethodPost, server.URL+"/api/v1/cart/items", AddCartItemInput{ProductID: 7})
	require.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	res = doJSON(t, client, http.MethodPost, server.URL+"/api/v1/cart/items", AddCartItemInput{ProductID: 7})
	require.Equal(t, http.StatusOK, res.StatusCode)

	view := decodeCart(t, res)
	require.Len(t, view.Items, 1)
	assert.Equal(t, int64(7), view.Items[0].ID)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, 2, view.Count)
	assert.InDelta(t, 98.00, view.Pricing.Subtotal, 0.001)
}

func TestHTTPHandler_AddCartItem_UnknownProduct(t *testing.T) {
	server := setupTestChiServer(t, testDeps())
	client := sessionClient(t)

	res := doJSON(t, client, http.MethodPost, server.URL+"/api/v1/cart/items", AddCartItemInput{ProductID: 999})
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestHTTPHandler_UpdateCartItem_DecrementBelowOneIsNoop(t *testing.T) {
	server := setupTestChiServer(t, testDeps())
	client := sessionClient(t)

	res := doJSON(t, client, http.MethodPost, server.URL+"/api/v1/cart/items", AddCartItemInput{ProductID: 7})
	require.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	res = doJSON(t, client, http.MethodPatch, server.URL+"/api/v1/cart/items/7", UpdateCartItemInput{Delta: -1})
	require.Equal(t, http.StatusOK, res.StatusCode)

	view := decodeCart(t, res)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)
}

func TestHTTPHandler_RemoveCartItem(t *testing.T) {
	server := setupTestChiServer(t, testDeps())
	client := sessionClient(t)

	res := doJSON(t, client, http.MethodPost, server.URL+"/api/v1/cart/items", AddCartItemInput{ProductID: 7})
	require.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	res = doJSON(t, client, http.MethodDelete, server.URL+"/api/v1/cart/items/7", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	view := decodeCart(t, res)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0, view.Count)
}

func TestHTTPHandler_SessionIsolation(t *testing.T) {
	server := setupTestChiServer(t, testDeps())
	first := sessionClient(t)
	second := sessionClient(t)

	res := doJSON(t, first, http.MethodPost, server.URL+"/api/v1/cart/items", AddCartItemInput{ProductID: 1})
	require.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	res = doJSON(t, second, http.MethodGet, server.URL+"/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	view := decodeCart(t, res)
	assert.Empty(t, view.Items)
}

func TestHTTPHandler_ApplyPromo_PercentDiscount(t *testing.T) {
	server := setupTestChiServer(t, testDeps())
	client := sessionClient(t)

	res := doJSON(t, client, http.MethodPost, server.URL+"/api/v1/cart/items", AddCartItemInput{ProductID: 1})
	require.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	res = doJSON(t, client, http.MethodPost, server.URL+"/api/v1/cart/promo", ApplyPromoInput{Code: "GENIUS"})
	require.Equal(t, http.StatusOK, res.StatusCode)

	view := decodeCart(t, res)
	require.NotNil(t, view.Promo)
	assert.Equal(t, "GENIUS", view.Promo.Code)
	assert.InDelta(t, 2199.00, view.Pricing.Subtotal, 0.001)
	assert.InDelta(t, 219.90, view.Pricing.Discount, 0.001)
	assert.InDelta(t, 1979.10, view.Pricing.Total, 0.001)
	// Discounted total is over the free-delivery threshold.
	assert.Equal(t, 0.0, view.Pricing.Delivery)
	assert.InDelta(t, 1979.10, view.Pricing.FinalTotal, 0.001)
}

func TestHTTPHandler_ApplyPromo_InvalidKeepsCurrent(t *testing.T) {
	server := setupTestChiServer(t, testDeps())
	client := sessionClient(t)

	res := doJSON(t, client, http.MethodPost, server.URL+"/api/v1/cart/promo", ApplyPromoInput{Code: "SUMMER"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	// Inactive code is rejected with 422.
	res = doJSON(t, client, http.MethodPost, server.URL+"/api/v1/cart/promo", ApplyPromoInput{Code: "WELCOME50"})
	require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	res.Body.Close()

	res = doJSON(t, client, http.MethodGet, server.URL+"/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	view := decodeCart(t, res)
	require.NotNil(t, view.Promo)
	assert.Equal(t, "SUMMER", view.Promo.Code)
}

func TestHTTPHandler_RemovePromo(t *testing.T) {
	server := setupTestChiServer(t, testDeps())
	client := sessionClient(t)

	res := doJSON(t, client, http.MethodPost, server.URL+"/api/v1/cart/promo", ApplyPromoInput{Code: "GENIUS"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	res = doJSON(t, client, http.MethodDelete, server.URL+"/api/v1/cart/promo", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	view := decodeCart(t, res)
	assert.Nil(t, view.Promo)
	assert.Equal(t, 0.0, view.Pricing.Discount)
}

func decodeComparison(t *testing.T, res *http.Response) ComparisonView {
	t.Helper()
	defer res.Body.Close()
	var view ComparisonView
	require.NoError(t, json.NewDecoder(res.Body).Decode(&view))
	return view
}

func TestHTTPHandler_ToggleComparison_AddAndRemove(t *testing.T) {
	server := setupTestChiServer(t, testDeps())
	client := sessionClient(t)

	res := doJSON(t, client, http.MethodPost, server.URL+"/api/v1/comparison/toggle", ToggleComparisonInput{ProductID: 1})
	require.Equal(t, http.StatusOK, res.StatusCode)
	view := decodeComparison(t, res)
	require.Len(t, view.Products, 1)

	// Toggling the same product again removes it.
	res = doJSON(t, client, http.MethodPost, server.URL+"/api/v1/comparison/toggle", ToggleComparisonInput{ProductID: 1})
	require.Equal(t, http.StatusOK, res.StatusCode)
	view = decodeComparison(t, res)
	assert.Empty(t, view.Products)
}

func TestHTTPHandler_ToggleComparison_CapacityConflict(t *testing.T) {
	server := setupTestChiServer(t, testDeps())
	client := sessionClient(t)

	for _, id := range []int64{1, 2, 3, 4} {
		res := doJSON(t, client, http.MethodPost, server.URL+"/api/v1/comparison/toggle", ToggleComparisonInput{ProductID: id})
		require.Equal(t, http.StatusOK, res.StatusCode)
		res.Body.Close()
	}

	res := doJSON(t, client, http.MethodPost, server.URL+"/api/v1/comparison/toggle", ToggleComparisonInput{ProductID: 5})
	require.Equal(t, http.StatusConflict, res.StatusCode)
	res.Body.Close()

	// The list is unchanged and a member can still be toggled out.
	res = doJSON(t, client, http.MethodGet, server.URL+"/api/v1/comparison", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	view := decodeComparison(t, res)
	require.Len(t, view.Products, 4)
}

func TestHTTPHandler_GetComparison_RowsAndDiffs(t *testing.T) {
	server := setupTestChiServer(t, testDeps())
	client := sessionClient(t)

	for _, id := range []int64{1, 2} {
		res := doJSON(t, client, http.MethodPost, server.URL+"/api/v1/comparison/toggle", ToggleComparisonInput{ProductID: id})
		require.Equal(t, http.StatusOK, res.StatusCode)
		res.Body.Close()
	}

	res := doJSON(t, client, http.MethodGet, server.URL+"/api/v1/comparison", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	view := decodeComparison(t, res)

	require.GreaterOrEqual(t, len(view.Rows), 3)
	rows := make(map[string]ComparisonRow, len(view.Rows))
	for _, row := range view.Rows {
		rows[row.Label] = row
	}

	price, ok := rows["price"]
	require.True(t, ok)
	assert.Equal(t, []string{"2199.00", "2399.00"}, price.Values)
	assert.True(t, price.Differs)

	// Both products are made by Apple, so the manufacturer row matches.
	maker, ok := rows["Производител"]
	require.True(t, ok)
	assert.Equal(t, []string{"Apple", "Apple"}, maker.Values)
	assert.False(t, maker.Differs)

	battery, ok := rows["Батерия"]
	require.True(t, ok)
	assert.Equal(t, []string{"3274 mAh", "До 18 часа"}, battery.Values)
	assert.True(t, battery.Differs)
}

func TestHTTPHandler_GetComparison_MissingSpecRendersMarker(t *testing.T) {
	server := setupTestChiServer(t, testDeps())
	client := sessionClient(t)

	// A phone and a TV share almost no spec keys.
	for _, id := range []int64{1, 3} {
		res := doJSON(t, client, http.MethodPost, server.URL+"/api/v1/comparison/toggle", ToggleComparisonInput{ProductID: id})
		require.Equal(t, http.StatusOK, res.StatusCode)
		res.Body.Close()
	}

	res := doJSON(t, client, http.MethodGet, server.URL+"/api/v1/comparison", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	view := decodeComparison(t, res)

	for _, row := range view.Rows {
		if row.Label == "Процесор" {
			assert.Equal(t, []string{"A17 Pro", "-"}, row.Values)
			assert.True(t, row.Differs)
			return
		}
	}
	t.Fatal("expected a row for the CPU spec key")
}

func TestHTTPHandler_ClearComparison(t *testing.T) {
	server := setupTestChiServer(t, testDeps())
	client := sessionClient(t)

	res := doJSON(t, client, http.MethodPost, server.URL+"/api/v1/comparison/toggle", ToggleComparisonInput{ProductID: 3})
	require.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	res = doJSON(t, client, http.MethodDelete, server.URL+"/api/v1/comparison", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	view := decodeComparison(t, res)
	assert.Empty(t, view.Products)
}

// echoCompleter answers with the user message it received.
type echoCompleter struct{}

func (echoCompleter) Complete(_ context.Context, _ string, message string) (string, error) {
	return "echo: " + message, nil
}

func TestHTTPHandler_SendAssistantMessage(t *testing.T) {
	deps := testDeps()
	deps.Relay = assistant.NewRelay(echoCompleter{}, log.New(io.Discard, "", 0))
	server := setupTestChiServer(t, deps)
	client := sessionClient(t)

	res := doJSON(t, client, http.MethodPost, server.URL+"/api/v1/assistant/messages", AssistantMessageInput{Message: "имате ли лаптопи?"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	defer res.Body.Close()

	var payload struct {
		Reply string `json:"reply"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	assert.Equal(t, "echo: имате ли лаптопи?", payload.Reply)
}

func TestHTTPHandler_SendAssistantMessage_EmptyMessageRejected(t *testing.T) {
	server := setupTestChiServer(t, testDeps())
	client := sessionClient(t)

	res := doJSON(t, client, http.MethodPost, server.URL+"/api/v1/assistant/messages", AssistantMessageInput{Message: ""})
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
