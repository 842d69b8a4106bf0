// Package ordering implements the conversational order-reconciliation
// core: tolerant parsing of assistant-emitted action blocks, quantity
// extraction from natural language, and the pure cart fold that applies
// parsed actions to a session's cart.
package ordering

// Op identifies a cart-mutation operation requested by the assistant.
type Op string

const (
	OpAdd     Op = "add"
	OpRemove  Op = "remove"
	OpSet     Op = "set"
	OpClear   Op = "clear"
	OpConfirm Op = "confirm"
)

// Action is one structured cart-mutation instruction. Actions come only
// from parsing assistant output or explicit local commands and never
// outlive a single reconciliation step (except as pending actions held
// until the next user turn).
type Action struct {
	Op     Op
	Item   string
	Qty    int
	HasQty bool
}

// QtyOrDefault returns the action quantity, or def when absent.
func (a Action) QtyOrDefault(def int) int {
	if !a.HasQty {
		return def
	}
	return a.Qty
}
