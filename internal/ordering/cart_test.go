package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mozo/internal/catalog"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(catalog.DefaultMenu())
}

func TestApplyAdd(t *testing.T) {
	cat := testCatalog()

	// Scenario A: empty cart, add 2 Lomo Saltado
	res := Apply(Cart{}, cat, []Action{{Op: OpAdd, Item: "Lomo Saltado", Qty: 2, HasQty: true}})
	require.Len(t, res.Cart, 1)
	line := res.Cart["f1"]
	assert.Equal(t, 2, line.Qty)
	assert.Equal(t, 64.0, res.Cart.Total())

	// Adding again increments the existing line
	res = Apply(res.Cart, cat, []Action{{Op: OpAdd, Item: "lomo saltado"}})
	assert.Equal(t, 3, res.Cart["f1"].Qty)
}

func TestApplySet(t *testing.T) {
	cat := testCatalog()
	cart := Apply(Cart{}, cat, []Action{{Op: OpAdd, Item: "Lomo Saltado", Qty: 2, HasQty: true}}).Cart

	// Scenario B: set to 1
	res := Apply(cart, cat, []Action{{Op: OpSet, Item: "Lomo Saltado", Qty: 1, HasQty: true}})
	require.Len(t, res.Cart, 1)
	assert.Equal(t, 1, res.Cart["f1"].Qty)

	// Set creates a line when absent
	res = Apply(Cart{}, cat, []Action{{Op: OpSet, Item: "Limonada 500ml", Qty: 3, HasQty: true}})
	assert.Equal(t, 3, res.Cart["b2"].Qty)
}

func TestApplyRemove(t *testing.T) {
	cat := testCatalog()
	cart := Apply(Cart{}, cat, []Action{{Op: OpAdd, Item: "Lomo Saltado"}}).Cart

	// Scenario C: removing the last unit deletes the line
	res := Apply(cart, cat, []Action{{Op: OpRemove, Item: "Lomo Saltado", Qty: 1, HasQty: true}})
	assert.Empty(t, res.Cart)

	// Removing an absent item is a no-op
	res = Apply(Cart{}, cat, []Action{{Op: OpRemove, Item: "Lomo Saltado"}})
	assert.Empty(t, res.Cart)
	assert.Empty(t, res.Applied)

	// Over-removal deletes rather than going negative
	cart = Apply(Cart{}, cat, []Action{{Op: OpAdd, Item: "Lomo Saltado", Qty: 2, HasQty: true}}).Cart
	res = Apply(cart, cat, []Action{{Op: OpRemove, Item: "Lomo Saltado", Qty: 5, HasQty: true}})
	assert.Empty(t, res.Cart)
}

func TestSetZeroEqualsRemoveAll(t *testing.T) {
	cat := testCatalog()
	cart := Apply(Cart{}, cat, []Action{{Op: OpAdd, Item: "Lomo Saltado", Qty: 2, HasQty: true}}).Cart

	bySet := Apply(cart, cat, []Action{{Op: OpSet, Item: "Lomo Saltado", Qty: 0, HasQty: true}})
	byRemove := Apply(cart, cat, []Action{{Op: OpRemove, Item: "Lomo Saltado", Qty: 2, HasQty: true}})
	assert.Equal(t, bySet.Cart, byRemove.Cart)
	assert.Empty(t, bySet.Cart)
}

func TestApplyClearAndConfirm(t *testing.T) {
	cat := testCatalog()
	cart := Apply(Cart{}, cat, []Action{
		{Op: OpAdd, Item: "Lomo Saltado"},
		{Op: OpAdd, Item: "Limonada 500ml"},
	}).Cart
	require.Len(t, cart, 2)

	res := Apply(cart, cat, []Action{{Op: OpClear}})
	assert.Empty(t, res.Cart)

	// Clearing an empty cart is idempotent
	res = Apply(res.Cart, cat, []Action{{Op: OpClear}})
	assert.Empty(t, res.Cart)

	// Confirm signals without mutating
	res = Apply(cart, cat, []Action{{Op: OpConfirm}})
	assert.True(t, res.Confirmed)
	assert.Equal(t, cart, res.Cart)
}

func TestApplySkipsUntrustedInput(t *testing.T) {
	cat := testCatalog()

	// Unknown item names are silently skipped
	res := Apply(Cart{}, cat, []Action{
		{Op: OpAdd, Item: "Plato Inventado", Qty: 3, HasQty: true},
		{Op: OpAdd, Item: "Lomo Saltado"},
	})
	require.Len(t, res.Cart, 1)
	assert.Equal(t, 1, res.Cart["f1"].Qty)

	// Unknown ops are no-ops
	res = Apply(res.Cart, cat, []Action{{Op: Op("upsert"), Item: "Lomo Saltado"}})
	assert.Equal(t, 1, res.Cart["f1"].Qty)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	cat := testCatalog()
	cart := Apply(Cart{}, cat, []Action{{Op: OpAdd, Item: "Lomo Saltado", Qty: 2, HasQty: true}}).Cart

	_ = Apply(cart, cat, []Action{
		{Op: OpSet, Item: "Lomo Saltado", Qty: 9, HasQty: true},
		{Op: OpClear},
	})
	assert.Equal(t, 2, cart["f1"].Qty, "input cart must stay untouched")
}

func TestApplyFoldAppend(t *testing.T) {
	cat := testCatalog()
	a1 := []Action{
		{Op: OpAdd, Item: "Lomo Saltado", Qty: 2, HasQty: true},
		{Op: OpAdd, Item: "Chicha Morada 500ml"},
	}
	a2 := []Action{
		{Op: OpSet, Item: "Lomo Saltado", Qty: 1, HasQty: true},
		{Op: OpRemove, Item: "Chicha Morada 500ml"},
	}

	sequential := Apply(Apply(Cart{}, cat, a1).Cart, cat, a2).Cart
	combined := Apply(Cart{}, cat, append(append([]Action{}, a1...), a2...)).Cart
	assert.Equal(t, combined, sequential)
}

func TestApplyDefaultQuantities(t *testing.T) {
	cat := testCatalog()

	// add without qty defaults to 1
	res := Apply(Cart{}, cat, []Action{{Op: OpAdd, Item: "Lomo Saltado"}})
	assert.Equal(t, 1, res.Cart["f1"].Qty)

	// add with qty 0 clamps to 1
	res = Apply(Cart{}, cat, []Action{{Op: OpAdd, Item: "Lomo Saltado", Qty: 0, HasQty: true}})
	assert.Equal(t, 1, res.Cart["f1"].Qty)

	// remove without qty decrements by 1
	cart := Apply(Cart{}, cat, []Action{{Op: OpAdd, Item: "Lomo Saltado", Qty: 3, HasQty: true}}).Cart
	res = Apply(cart, cat, []Action{{Op: OpRemove, Item: "Lomo Saltado"}})
	assert.Equal(t, 2, res.Cart["f1"].Qty)
}

func TestCartLinesOrder(t *testing.T) {
	cat := testCatalog()
	cart := Apply(Cart{}, cat, []Action{
		{Op: OpAdd, Item: "Suspiro a la Limeña"},
		{Op: OpAdd, Item: "Causa Limeña"},
		{Op: OpAdd, Item: "Lomo Saltado"},
	}).Cart

	lines := cart.Lines(cat)
	require.Len(t, lines, 3)
	assert.Equal(t, "Causa Limeña", lines[0].Item.Name)
	assert.Equal(t, "Lomo Saltado", lines[1].Item.Name)
	assert.Equal(t, "Suspiro a la Limeña", lines[2].Item.Name)
}
