package ordering

import (
	"strconv"

	"mozo/internal/catalog"
)

// Line is one cart entry. Quantity is always >= 1; a line that reaches
// zero is deleted rather than kept.
type Line struct {
	Item catalog.Item `json:"item"`
	Qty  int          `json:"qty"`
}

// Cart maps item ID to line. The zero value is an empty cart.
type Cart map[string]Line

// Clone returns an independent copy of the cart.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for id, line := range c {
		out[id] = line
	}
	return out
}

// Total returns the cart total.
func (c Cart) Total() float64 {
	var total float64
	for _, line := range c {
		total += line.Item.Price * float64(line.Qty)
	}
	return total
}

// Lines returns the cart lines in menu order.
func (c Cart) Lines(cat *catalog.Catalog) []Line {
	out := make([]Line, 0, len(c))
	for _, it := range cat.Items() {
		if line, ok := c[it.ID]; ok {
			out = append(out, line)
		}
	}
	return out
}

// ApplyResult reports what a reconciliation pass did beyond the new
// cart snapshot itself.
type ApplyResult struct {
	Cart      Cart
	Applied   []string // one human-readable note per effective action
	Confirmed bool     // a confirm action was seen
}

// Apply folds a sequence of actions over a cart snapshot, left to
// right, and returns a new snapshot; the input cart is never mutated.
// Assistant output is untrusted, so actions naming unknown items and
// actions with unknown ops are skipped without error.
func Apply(cart Cart, cat *catalog.Catalog, actions []Action) ApplyResult {
	next := cart.Clone()
	res := ApplyResult{}

	for _, a := range actions {
		switch a.Op {
		case OpAdd:
			item, ok := cat.Lookup(a.Item)
			if !ok {
				continue
			}
			qty := a.QtyOrDefault(1)
			if qty < 1 {
				qty = 1
			}
			line := next[item.ID]
			line.Item = item
			line.Qty += qty
			next[item.ID] = line
			res.Applied = append(res.Applied, addedNote(qty, item.Name))

		case OpRemove:
			item, ok := cat.Lookup(a.Item)
			if !ok {
				continue
			}
			line, exists := next[item.ID]
			if !exists {
				continue
			}
			qty := a.QtyOrDefault(1)
			if qty < 1 {
				qty = 1
			}
			line.Qty -= qty
			if line.Qty <= 0 {
				delete(next, item.ID)
			} else {
				next[item.ID] = line
			}
			res.Applied = append(res.Applied, removedNote(qty, item.Name))

		case OpSet:
			item, ok := cat.Lookup(a.Item)
			if !ok {
				continue
			}
			qty := a.QtyOrDefault(1)
			if qty <= 0 {
				delete(next, item.ID)
			} else {
				next[item.ID] = Line{Item: item, Qty: qty}
			}
			res.Applied = append(res.Applied, setNote(qty, item.Name))

		case OpClear:
			next = make(Cart)
			res.Applied = append(res.Applied, "Carrito vaciado.")

		case OpConfirm:
			res.Confirmed = true
			res.Applied = append(res.Applied, "Confirmación recibida. El asistente te pedirá datos de entrega.")

		default:
			// Unknown op: tolerated, no effect.
		}
	}

	res.Cart = next
	return res
}

func addedNote(qty int, name string) string {
	return "Agregado: " + itemRef(qty, name) + "."
}

func removedNote(qty int, name string) string {
	return "Quitado: " + itemRef(qty, name) + "."
}

func setNote(qty int, name string) string {
	if qty <= 0 {
		return "Quitado del pedido: " + name + "."
	}
	return "Ajustado: " + itemRef(qty, name) + "."
}

func itemRef(qty int, name string) string {
	return strconv.Itoa(qty) + " x " + name
}
