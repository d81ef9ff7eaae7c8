package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/domain"
)

var (
	phone   = domain.Product{ID: 1, Title: "Phone", Price: 2199.00}
	tshirt  = domain.Product{ID: 7, Title: "T-Shirt", Price: 49.00}
	earbuds = domain.Product{ID: 8, Title: "Earbuds", Price: 529.00}
)

func TestAdd_NewProduct_AppendsLineWithQuantityOne(t *testing.T) {
	items := Add(nil, phone)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestAdd_ExistingProduct_IncrementsQuantity(t *testing.T) {
	items := Add(Add(nil, phone), phone)
	require.Len(t, items, 1, "adding a present product must merge, not duplicate")
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAdd_DoesNotMutateInput(t *testing.T) {
	original := Add(nil, phone)
	Add(original, phone)
	assert.Equal(t, 1, original[0].Quantity)
}

func TestUpdateQuantity_Increment(t *testing.T) {
	items := Add(nil, phone)
	items = UpdateQuantity(items, phone.ID, 2)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestUpdateQuantity_DecrementBelowOne_IsNoOp(t *testing.T) {
	items := Add(nil, phone)
	items = UpdateQuantity(items, phone.ID, -1)
	require.Len(t, items, 1, "decrement below 1 must not remove the line")
	assert.Equal(t, 1, items[0].Quantity, "quantity must stay at 1")
}

func TestUpdateQuantity_DecrementToOne(t *testing.T) {
	items := Add(Add(nil, phone), phone)
	items = UpdateQuantity(items, phone.ID, -1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestUpdateQuantity_UnknownID_IsNoOp(t *testing.T) {
	items := Add(nil, phone)
	got := UpdateQuantity(items, 999, 5)
	assert.Equal(t, items, got)
}

func TestRemove_DeletesLine(t *testing.T) {
	items := Add(Add(nil, phone), tshirt)
	items = Remove(items, phone.ID)
	require.Len(t, items, 1)
	assert.Equal(t, tshirt.ID, items[0].ID)
}

func TestRemove_UnknownID_IsNoOp(t *testing.T) {
	items := Add(nil, phone)
	got := Remove(items, 999)
	assert.Equal(t, items, got)
}

func TestSubtotal_Linear(t *testing.T) {
	var items []domain.CartItem
	assert.Zero(t, Subtotal(items))

	items = Add(items, tshirt)
	before := Subtotal(items)

	// Adding quantity q of price p raises the subtotal by exactly p*q.
	for i := 0; i < 3; i++ {
		items = Add(items, earbuds)
	}
	assert.InDelta(t, before+earbuds.Price*3, Subtotal(items), 1e-9)
}

func TestCount_SumsQuantities(t *testing.T) {
	items := Add(Add(Add(nil, phone), phone), tshirt)
	assert.Equal(t, 3, Count(items))
}
