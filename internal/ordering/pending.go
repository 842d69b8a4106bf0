package ordering

import (
	"mozo/internal/catalog"
)

// Resolution is the outcome of weighing an outstanding pending action
// set against a new user utterance.
type Resolution struct {
	Apply          []Action
	ConsumePending bool
}

// ResolvePending decides whether an unconfirmed action set from a prior
// assistant turn should be applied now. A follow-up that names no
// catalog item is read as a correction of the pending suggestion
// ("no, solo 1"): any quantity found in it overrides the qty of every
// pending add/set, and the pending set is applied and consumed. An
// utterance that does name an item is a fresh intent; the pending set
// is discarded unconsumed and normal turn processing takes over.
func ResolvePending(pending []Action, utterance string, cat *catalog.Catalog) Resolution {
	if len(pending) == 0 {
		return Resolution{}
	}
	if cat.MentionsItem(utterance) {
		return Resolution{}
	}

	apply := make([]Action, len(pending))
	copy(apply, pending)

	if qty, ok := ExtractQuantity(utterance); ok {
		for i := range apply {
			if apply[i].Op == OpAdd || apply[i].Op == OpSet {
				apply[i].Qty = qty
				apply[i].HasQty = true
			}
		}
	}

	return Resolution{Apply: apply, ConsumePending: true}
}
