package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	cat := New(DefaultMenu())

	item, ok := cat.Lookup("Lomo Saltado")
	require.True(t, ok)
	assert.Equal(t, "f1", item.ID)
	assert.Equal(t, 32.0, item.Price)
	assert.Equal(t, CategoryMains, item.Category)

	// Case-insensitive, whitespace-trimmed
	item, ok = cat.Lookup("  lomo saltado ")
	require.True(t, ok)
	assert.Equal(t, "f1", item.ID)

	// Exact on the full normalized name; no substring matching
	_, ok = cat.Lookup("lomo")
	assert.False(t, ok)

	_, ok = cat.Lookup("Ceviche")
	assert.False(t, ok)
}

func TestItemsGroupedByCategory(t *testing.T) {
	cat := New(DefaultMenu())
	items := cat.Items()
	require.Len(t, items, cat.Len())

	// Stable order: all starters, then mains, drinks, desserts
	var seen []Category
	for _, it := range items {
		if len(seen) == 0 || seen[len(seen)-1] != it.Category {
			seen = append(seen, it.Category)
		}
	}
	assert.Equal(t, []Category{CategoryStarters, CategoryMains, CategoryDrinks, CategoryDesserts}, seen)

	// Repeated calls return the same order
	assert.Equal(t, items, cat.Items())
}

func TestMentionsItem(t *testing.T) {
	cat := New(DefaultMenu())

	assert.True(t, cat.MentionsItem("quiero un lomo saltado por favor"))
	assert.True(t, cat.MentionsItem("2 Chicha Morada 500ml"))
	assert.False(t, cat.MentionsItem("no, solo 1"))
	assert.False(t, cat.MentionsItem("agrega algo rico"))
}

func TestCurrency(t *testing.T) {
	assert.Equal(t, "S/ 32.00", Currency(32))
	assert.Equal(t, "S/ 7.50", Currency(7.5))
}
