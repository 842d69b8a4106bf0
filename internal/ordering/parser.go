package ordering

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var (
	fencedBlockRe = regexp.MustCompile("(?s)```([a-zA-Z0-9]*)[ \t]*\r?\n?(.*?)```")

	// Bare object keys: `{ op: "add" }` -> `{ "op": "add" }`.
	bareKeyRe = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
)

// LastFencedBlock returns the body of the last fenced block labeled with
// tag. The assistant is instructed to emit at most one block per tag,
// but when it repeats itself the final block wins.
func LastFencedBlock(text, tag string) (string, bool) {
	matches := fencedBlockRe.FindAllStringSubmatch(text, -1)
	body := ""
	found := false
	for _, m := range matches {
		if strings.EqualFold(m[1], tag) {
			body = strings.TrimSpace(m[2])
			found = true
		}
	}
	return body, found
}

// StripFencedBlocks removes every fenced block from the text, leaving
// only the prose the user should see.
func StripFencedBlocks(text string) string {
	return strings.TrimSpace(fencedBlockRe.ReplaceAllString(text, ""))
}

// rawAction is the wire shape of one instruction inside an action block.
// Qty is left loose because models emit numbers, quoted numbers, floats
// and garbage interchangeably.
type rawAction struct {
	Op   string      `json:"op"`
	Item string      `json:"item"`
	Qty  interface{} `json:"qty"`
}

// ParseActions tolerantly parses an action block body into a sequence of
// actions. It never fails: unparsable input yields an empty sequence.
//
// Parsing degrades through tiers, first success wins:
//  1. the whole trimmed string as strict JSON (object or array);
//  2. the whole string again after normalizing quasi-JSON (bare keys,
//     single-quoted strings);
//  3. tiers 1-2 per line, silently dropping lines that still fail.
func ParseActions(raw string) []Action {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if actions, ok := parseUnit(raw); ok {
		return actions
	}

	var actions []Action
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if parsed, ok := parseUnit(line); ok {
			actions = append(actions, parsed...)
		}
	}
	return actions
}

// parseUnit attempts strict-then-normalized parsing of one unit of input.
func parseUnit(s string) ([]Action, bool) {
	if actions, ok := parseStrict(s); ok {
		return actions, true
	}
	return parseStrict(normalizeQuasiJSON(s))
}

func parseStrict(s string) ([]Action, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}

	var raws []rawAction
	switch s[0] {
	case '[':
		if err := json.Unmarshal([]byte(s), &raws); err != nil {
			return nil, false
		}
	case '{':
		var one rawAction
		if err := json.Unmarshal([]byte(s), &one); err != nil {
			return nil, false
		}
		raws = []rawAction{one}
	default:
		return nil, false
	}

	actions := make([]Action, 0, len(raws))
	for _, r := range raws {
		a := Action{
			Op:   Op(strings.ToLower(strings.TrimSpace(r.Op))),
			Item: strings.TrimSpace(r.Item),
		}
		if qty, ok := coerceQty(r.Qty); ok {
			a.Qty = qty
			a.HasQty = true
		}
		actions = append(actions, a)
	}
	return actions, true
}

// coerceQty turns a loose qty value into a non-negative integer.
// Invalid or negative values count as absent so the reconciler applies
// its per-op default.
func coerceQty(v interface{}) (int, bool) {
	switch q := v.(type) {
	case float64:
		if q < 0 {
			return 0, false
		}
		return int(q), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(q))
		if err != nil || n < 0 {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// normalizeQuasiJSON rewrites the two quasi-JSON habits models fall
// into: unquoted object keys and single-quoted string literals.
func normalizeQuasiJSON(s string) string {
	s = requoteSingleQuoted(s)
	return bareKeyRe.ReplaceAllString(s, `$1"$2":`)
}

// requoteSingleQuoted converts single-quoted string literals to
// double-quoted ones, tolerating escaped quotes inside either kind.
func requoteSingleQuoted(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inSingle := false
	inDouble := false
	for i := 0; i < len(s); i++ {
		c := s[i]

		if c == '\\' && i+1 < len(s) {
			next := s[i+1]
			if inSingle && next == '\'' {
				// Escaped quote inside a single-quoted literal; it needs
				// no escaping once the literal is double-quoted.
				b.WriteByte('\'')
				i++
				continue
			}
			b.WriteByte(c)
			b.WriteByte(next)
			i++
			continue
		}

		switch {
		case c == '"' && !inSingle:
			inDouble = !inDouble
			b.WriteByte(c)
		case c == '\'' && !inDouble:
			inSingle = !inSingle
			b.WriteByte('"')
		case c == '"' && inSingle:
			// A raw double quote inside a single-quoted literal must be
			// escaped in the rewritten form.
			b.WriteString(`\"`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
