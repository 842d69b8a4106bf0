package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastFencedBlock(t *testing.T) {
	text := "Claro, lo agrego.\n```order\n{\"op\":\"add\",\"item\":\"Lomo Saltado\",\"qty\":2}\n```"
	body, ok := LastFencedBlock(text, "order")
	require.True(t, ok)
	assert.Equal(t, `{"op":"add","item":"Lomo Saltado","qty":2}`, body)

	// Last block wins when the model repeats itself
	text = "```order\n{\"op\":\"add\",\"item\":\"A\"}\n```\nmejor así:\n```order\n{\"op\":\"add\",\"item\":\"B\"}\n```"
	body, ok = LastFencedBlock(text, "order")
	require.True(t, ok)
	assert.Contains(t, body, `"B"`)

	// Tag match is case-insensitive and per tag
	text = "```ORDER\n{\"op\":\"clear\"}\n```\n```pending\n{\"op\":\"add\",\"item\":\"C\"}\n```"
	body, ok = LastFencedBlock(text, "order")
	require.True(t, ok)
	assert.Contains(t, body, "clear")

	_, ok = LastFencedBlock("sin bloques por aquí", "order")
	assert.False(t, ok)
}

func TestStripFencedBlocks(t *testing.T) {
	text := "Agregado al pedido.\n```order\n{\"op\":\"add\",\"item\":\"Lomo Saltado\"}\n```"
	assert.Equal(t, "Agregado al pedido.", StripFencedBlocks(text))

	text = "Antes\n```order\n{}\n```\nentre\n```pending\n{}\n```"
	stripped := StripFencedBlocks(text)
	assert.NotContains(t, stripped, "```")
	assert.Contains(t, stripped, "Antes")
	assert.Contains(t, stripped, "entre")

	assert.Equal(t, "solo prosa", StripFencedBlocks("solo prosa"))
}

func TestParseActionsStrict(t *testing.T) {
	actions := ParseActions(`{"op":"add","item":"Lomo Saltado","qty":2}`)
	require.Len(t, actions, 1)
	assert.Equal(t, OpAdd, actions[0].Op)
	assert.Equal(t, "Lomo Saltado", actions[0].Item)
	assert.Equal(t, 2, actions[0].Qty)
	assert.True(t, actions[0].HasQty)

	actions = ParseActions(`[{"op":"add","item":"A","qty":1},{"op":"remove","item":"B"}]`)
	require.Len(t, actions, 2)
	assert.Equal(t, OpRemove, actions[1].Op)
	assert.False(t, actions[1].HasQty)
}

func TestParseActionsQuasiJSON(t *testing.T) {
	// Unquoted keys
	actions := ParseActions(`{op: "add", item: "Lomo Saltado", qty: 2}`)
	require.Len(t, actions, 1)
	assert.Equal(t, OpAdd, actions[0].Op)
	assert.Equal(t, 2, actions[0].Qty)

	// Single-quoted strings
	actions = ParseActions(`{'op': 'add', 'item': 'Lomo Saltado', 'qty': 2}`)
	require.Len(t, actions, 1)
	assert.Equal(t, "Lomo Saltado", actions[0].Item)

	// Both at once, with an escaped quote inside the literal
	actions = ParseActions(`{op: 'add', item: 'Papa a la Huanca\'ina'}`)
	require.Len(t, actions, 1)
	assert.Equal(t, "Papa a la Huanca'ina", actions[0].Item)
}

func TestParseActionsPerLineRecovery(t *testing.T) {
	raw := "{\"op\":\"add\",\"item\":\"A\",\"qty\":1}\nesto no es json\n{op: \"remove\", item: \"B\"}"
	actions := ParseActions(raw)
	require.Len(t, actions, 2)
	assert.Equal(t, OpAdd, actions[0].Op)
	assert.Equal(t, OpRemove, actions[1].Op)
}

func TestParseActionsNeverFails(t *testing.T) {
	inputs := []string{
		"",
		"   \n\t ",
		"el cliente quiere dos lomos",
		"{broken",
		"[{]}",
		"null",
		"42",
		"{\"op\":}",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			actions := ParseActions(in)
			assert.Empty(t, actions, "input %q should yield no actions", in)
		})
	}
}

func TestParseActionsOpNormalization(t *testing.T) {
	actions := ParseActions(`{"op":" ADD ","item":"A"}`)
	require.Len(t, actions, 1)
	assert.Equal(t, OpAdd, actions[0].Op)

	// Unknown ops are preserved, not dropped
	actions = ParseActions(`{"op":"upsert","item":"A"}`)
	require.Len(t, actions, 1)
	assert.Equal(t, Op("upsert"), actions[0].Op)
}

func TestParseActionsQtyCoercion(t *testing.T) {
	// Quoted number
	actions := ParseActions(`{"op":"add","item":"A","qty":"3"}`)
	require.Len(t, actions, 1)
	assert.True(t, actions[0].HasQty)
	assert.Equal(t, 3, actions[0].Qty)

	// Float truncates
	actions = ParseActions(`{"op":"add","item":"A","qty":2.9}`)
	require.Len(t, actions, 1)
	assert.Equal(t, 2, actions[0].Qty)

	// Negative and garbage count as absent
	for _, raw := range []string{
		`{"op":"add","item":"A","qty":-1}`,
		`{"op":"add","item":"A","qty":"muchos"}`,
		`{"op":"add","item":"A","qty":null}`,
		`{"op":"add","item":"A"}`,
	} {
		actions = ParseActions(raw)
		require.Len(t, actions, 1, "input %q", raw)
		assert.False(t, actions[0].HasQty, "input %q", raw)
	}

	// Zero is a real value, not absence
	actions = ParseActions(`{"op":"set","item":"A","qty":0}`)
	require.Len(t, actions, 1)
	assert.True(t, actions[0].HasQty)
	assert.Equal(t, 0, actions[0].Qty)
}
