package catalog

import (
	"fmt"
	"strings"
)

// Category represents the menu section an item belongs to
type Category string

const (
	CategoryStarters Category = "Starters"
	CategoryMains    Category = "Mains"
	CategoryDrinks   Category = "Drinks"
	CategoryDesserts Category = "Desserts"
)

// Categories lists the menu sections in display order.
var Categories = []Category{CategoryStarters, CategoryMains, CategoryDrinks, CategoryDesserts}

// Item represents a dish on the menu
type Item struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Category Category `json:"category"`
}

// Catalog is a read-only lookup table of orderable items, loaded once
// at process start.
type Catalog struct {
	items  []Item
	byName map[string]int
}

// New builds a catalog from an ordered item list. Later items with a
// duplicate name overwrite the earlier lookup entry but keep list order.
func New(items []Item) *Catalog {
	c := &Catalog{
		items:  make([]Item, len(items)),
		byName: make(map[string]int, len(items)),
	}
	copy(c.items, items)
	for i, it := range c.items {
		c.byName[normalizeName(it.Name)] = i
	}
	return c
}

// Lookup finds an item by name. Matching is case-insensitive and
// whitespace-trimmed, exact on the normalized full name; synonym
// handling belongs to the assistant prompt, not here.
func (c *Catalog) Lookup(name string) (Item, bool) {
	i, ok := c.byName[normalizeName(name)]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Items returns all items grouped by category, stable within each group.
func (c *Catalog) Items() []Item {
	out := make([]Item, 0, len(c.items))
	for _, cat := range Categories {
		for _, it := range c.items {
			if it.Category == cat {
				out = append(out, it)
			}
		}
	}
	// Items with an unknown category still belong to the menu.
	for _, it := range c.items {
		if !knownCategory(it.Category) {
			out = append(out, it)
		}
	}
	return out
}

// Len returns the number of items on the menu.
func (c *Catalog) Len() int {
	return len(c.items)
}

// MentionsItem reports whether the text explicitly names any catalog
// item (case-insensitive substring match on the full item name).
func (c *Catalog) MentionsItem(text string) bool {
	lowered := strings.ToLower(text)
	for _, it := range c.items {
		if strings.Contains(lowered, strings.ToLower(it.Name)) {
			return true
		}
	}
	return false
}

// Currency formats a price the way the menu displays it.
func Currency(n float64) string {
	return fmt.Sprintf("S/ %.2f", n)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func knownCategory(cat Category) bool {
	for _, c := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// DefaultMenu is the built-in menu used to seed an empty store.
func DefaultMenu() []Item {
	return []Item{
		{ID: "e1", Name: "Causa Limeña", Price: 18, Category: CategoryStarters},
		{ID: "e2", Name: "Papa a la Huancaína", Price: 16, Category: CategoryStarters},
		{ID: "f1", Name: "Lomo Saltado", Price: 32, Category: CategoryMains},
		{ID: "f2", Name: "Aji de Gallina", Price: 28, Category: CategoryMains},
		{ID: "f3", Name: "Arroz con Pollo", Price: 26, Category: CategoryMains},
		{ID: "b1", Name: "Chicha Morada 500ml", Price: 8, Category: CategoryDrinks},
		{ID: "b2", Name: "Limonada 500ml", Price: 7, Category: CategoryDrinks},
		{ID: "p1", Name: "Suspiro a la Limeña", Price: 14, Category: CategoryDesserts},
		{ID: "p2", Name: "Mazamorra Morada", Price: 12, Category: CategoryDesserts},
	}
}
