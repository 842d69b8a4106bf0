// Package chat holds the per-session conversation orchestrator: the
// state machine that turns one user utterance into local-command
// execution, pending-intent resolution, or a single LLM gateway call
// followed by cart reconciliation.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"mozo/internal/catalog"
	"mozo/internal/models/providers"
	"mozo/internal/monitoring"
	"mozo/internal/ordering"
)

var (
	// ErrEmptyInput rejects empty or whitespace-only submissions before
	// any state is touched.
	ErrEmptyInput = errors.New("empty input")

	// ErrBusy rejects a submission while a gateway call is outstanding;
	// one session has at most one in flight.
	ErrBusy = errors.New("assistant is busy")
)

// TurnResult is what one accepted user turn produced.
type TurnResult struct {
	Reply     string          `json:"reply"`
	Cart      []ordering.Line `json:"cart"`
	Total     float64         `json:"total"`
	Confirmed bool            `json:"confirmed"`
}

// Session owns one conversation: its transcript, cart and pending
// actions. All three are touched only under the session mutex.
type Session struct {
	mu sync.Mutex

	gateway providers.Provider
	cat     *catalog.Catalog

	transcript []providers.Message
	cart       ordering.Cart
	pending    []ordering.Action
	busy       bool

	historyLimit int
}

// NewSession creates an idle session with an empty cart and a greeting
// in the transcript.
func NewSession(gateway providers.Provider, cat *catalog.Catalog, historyLimit int) *Session {
	if historyLimit <= 0 {
		historyLimit = 40
	}
	return &Session{
		gateway:      gateway,
		cat:          cat,
		cart:         make(ordering.Cart),
		historyLimit: historyLimit,
		transcript: []providers.Message{
			{Role: "assistant", Content: greeting},
		},
	}
}

// Busy reports whether a gateway call is outstanding, so the renderer
// can disable submission.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Transcript returns a copy of the visible conversation.
func (s *Session) Transcript() []providers.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]providers.Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Cart returns the current cart lines in menu order plus the total.
func (s *Session) Cart() ([]ordering.Line, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines(s.cat), s.cart.Total()
}

// Submit processes one user turn. Local commands and pending-intent
// resolutions complete synchronously; anything else makes exactly one
// gateway call. A gateway failure is not an error of the turn: the
// session appends a fixed apology, keeps the cart untouched and goes
// back to idle.
func (s *Session) Submit(ctx context.Context, text string) (*TurnResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}

	// An unconfirmed suggestion from the previous assistant turn is
	// settled first: a follow-up naming no menu item corrects and
	// applies it; one naming an item discards it as a fresh intent.
	if res := ordering.ResolvePending(s.pending, text, s.cat); res.ConsumePending {
		applied := ordering.Apply(s.cart, s.cat, res.Apply)
		s.cart = applied.Cart
		s.pending = nil

		reply := strings.Join(applied.Applied, " ")
		if reply == "" {
			reply = "Listo."
		}
		reply += "\n\n" + RenderCartText(s.cart, s.cat)

		result := s.finishTurn(text, reply, applied.Confirmed)
		s.mu.Unlock()
		monitoring.TurnsTotal.WithLabelValues(monitoring.OutcomePending).Inc()
		return result, nil
	}
	s.pending = nil

	if result, handled := s.runLocalCommand(text); handled {
		s.mu.Unlock()
		monitoring.TurnsTotal.WithLabelValues(monitoring.OutcomeLocal).Inc()
		return result, nil
	}

	userText := text
	if isConfirmCommand(text) {
		// The confirmation command still goes to the assistant, as a
		// synthesized summary it can validate and finalize.
		userText = "Deseo confirmar este pedido:\n" + RenderCartText(s.cart, s.cat) +
			"\nPor favor indícame cómo finalizar."
	}

	return s.callAssistant(ctx, userText)
}

// callAssistant runs the AwaitingModel leg of the turn. The session
// mutex is held on entry and released around the gateway call.
func (s *Session) callAssistant(ctx context.Context, text string) (*TurnResult, error) {
	s.busy = true
	userMsg := providers.Message{Role: "user", Content: text}
	messages := s.gatewayMessages(userMsg)
	s.mu.Unlock()

	start := time.Now()
	reply, err := s.gateway.Complete(ctx, messages)
	monitoring.GatewayLatency.Observe(time.Since(start).Seconds())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false

	if err != nil {
		monitoring.GatewayErrorsTotal.Inc()
		monitoring.TurnsTotal.WithLabelValues(monitoring.OutcomeError).Inc()
		return s.finishTurn(text, gatewayErrorReply, false), nil
	}

	// The order block is the only mechanism that may mutate the cart;
	// a pending block is stored for the next turn to settle.
	raw, _ := ordering.LastFencedBlock(reply, "order")
	actions := ordering.ParseActions(raw)
	applied := ordering.Apply(s.cart, s.cat, actions)
	s.cart = applied.Cart
	for _, a := range actions {
		monitoring.CartActionsTotal.WithLabelValues(string(a.Op)).Inc()
	}

	if rawPending, ok := ordering.LastFencedBlock(reply, "pending"); ok {
		if pendingActions := ordering.ParseActions(rawPending); len(pendingActions) > 0 {
			s.pending = pendingActions
		}
	}

	visible := ordering.StripFencedBlocks(reply)
	if len(applied.Applied) > 0 {
		visible += "\n\n_" + strings.Join(applied.Applied, " ") + "_\n\n" +
			RenderCartText(s.cart, s.cat)
	}
	if strings.TrimSpace(visible) == "" {
		visible = "Listo."
	}

	monitoring.TurnsTotal.WithLabelValues(monitoring.OutcomeModel).Inc()
	return s.finishTurn(text, visible, applied.Confirmed), nil
}

// finishTurn appends the turn to the transcript and snapshots the
// result. Caller holds the mutex.
func (s *Session) finishTurn(userText, reply string, confirmed bool) *TurnResult {
	s.transcript = append(s.transcript,
		providers.Message{Role: "user", Content: userText},
		providers.Message{Role: "assistant", Content: reply},
	)
	return &TurnResult{
		Reply:     reply,
		Cart:      s.cart.Lines(s.cat),
		Total:     s.cart.Total(),
		Confirmed: confirmed,
	}
}

// gatewayMessages assembles the bounded context for one gateway call:
// system instructions, serialized menu and cart, then the transcript
// tail plus the new user message. Caller holds the mutex.
func (s *Session) gatewayMessages(userMsg providers.Message) []providers.Message {
	tail := s.transcript
	if len(tail) > s.historyLimit {
		tail = tail[len(tail)-s.historyLimit:]
	}

	messages := make([]providers.Message, 0, len(tail)+4)
	messages = append(messages,
		providers.Message{Role: "system", Content: systemPrompt},
		providers.Message{Role: "assistant", Content: menuContext(s.cat)},
		providers.Message{Role: "assistant", Content: cartContext(s.cart, s.cat)},
	)
	messages = append(messages, tail...)
	return append(messages, userMsg)
}

// runLocalCommand intercepts the text-command shortcuts that operate on
// catalog and cart without a gateway round trip. The confirmation
// command is not handled here; it still needs the assistant. Caller
// holds the mutex.
func (s *Session) runLocalCommand(text string) (*TurnResult, bool) {
	switch {
	case text == "/menu":
		return s.finishTurn(text, RenderMenuText(s.cat), false), true

	case text == "/cart" || text == "/carrito":
		return s.finishTurn(text, RenderCartText(s.cart, s.cat), false), true

	case text == "/clear" || text == "/vaciar":
		s.cart = make(ordering.Cart)
		return s.finishTurn(text, "Listo, tu carrito está vacío.", false), true

	case strings.HasPrefix(text, "/add "):
		return s.applyNamedCommand(text, ordering.OpAdd, strings.TrimSpace(text[len("/add "):])), true

	case strings.HasPrefix(text, "/remove "):
		return s.applyNamedCommand(text, ordering.OpRemove, strings.TrimSpace(text[len("/remove "):])), true

	case strings.HasPrefix(text, "/quitar "):
		return s.applyNamedCommand(text, ordering.OpRemove, strings.TrimSpace(text[len("/quitar "):])), true
	}
	return nil, false
}

func (s *Session) applyNamedCommand(text string, op ordering.Op, name string) *TurnResult {
	if _, ok := s.cat.Lookup(name); !ok {
		reply := "No encontré “" + name + "” en el menú. Escribe /menu para ver opciones."
		return s.finishTurn(text, reply, false)
	}
	applied := ordering.Apply(s.cart, s.cat, []ordering.Action{{Op: op, Item: name}})
	s.cart = applied.Cart
	monitoring.CartActionsTotal.WithLabelValues(string(op)).Inc()

	reply := strings.Join(applied.Applied, " ")
	if reply == "" {
		// remove on an item not in the cart is a no-op.
		reply = "“" + name + "” no está en tu carrito."
	}
	return s.finishTurn(text, reply, false)
}

func isConfirmCommand(text string) bool {
	return text == "/confirm" || text == "/confirmar"
}
