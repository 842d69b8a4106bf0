package chat

import (
	"encoding/json"
	"fmt"
	"strings"

	"mozo/internal/catalog"
	"mozo/internal/ordering"
)

// systemPrompt instructs the model to answer in prose and to carry any
// cart mutation in a trailing fenced block. Synonym mapping between
// colloquial dish names and exact menu names happens here, not in the
// catalog lookup.
const systemPrompt = "Eres un asistente de pedidos para un restaurante. Interactúas SOLO por chat. " +
	"Si el cliente solicita agregar, quitar, ajustar, vaciar o confirmar, responde normalmente y, " +
	"AL FINAL de tu mensaje agrega un bloque de código con el lenguaje 'order' que contenga un JSON con la acción o una lista de acciones. " +
	"Formato: ```order\n{ \"op\":\"add|remove|set|clear|confirm\", \"item\":\"Nombre exacto del menú\", \"qty\":N }\n``` " +
	"Usa siempre el nombre EXACTO del menú en \"item\", aunque el cliente use un apodo (\"lomo\" es \"Lomo Saltado\"). " +
	"Si la petición es ambigua, pregunta y pon tu mejor interpretación en un bloque 'pending' con el mismo formato en lugar de 'order'. " +
	"Si no hay cambios en carrito, no incluyas ningún bloque. " +
	"Pide datos de entrega (nombre y teléfono) solo cuando el cliente quiera confirmar."

const greeting = "¡Hola! Soy tu asistente de pedidos. Escribe /menu para ver el menú, " +
	"/carrito para ver tu pedido, /vaciar para empezar de cero y /confirmar cuando quieras finalizar."

const gatewayErrorReply = "No pude contactar al asistente. Intenta de nuevo en un momento."

// menuContext serializes the short menu the way the assistant expects it.
func menuContext(cat *catalog.Catalog) string {
	type entry struct {
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Category string  `json:"category"`
	}
	items := cat.Items()
	entries := make([]entry, len(items))
	for i, it := range items {
		entries[i] = entry{Name: it.Name, Price: it.Price, Category: string(it.Category)}
	}
	data, _ := json.Marshal(entries)
	return "MENÚ: " + string(data)
}

// cartContext serializes the current cart snapshot for the assistant.
func cartContext(cart ordering.Cart, cat *catalog.Catalog) string {
	type entry struct {
		Name      string  `json:"name"`
		Qty       int     `json:"qty"`
		UnitPrice float64 `json:"unit_price"`
		LineTotal float64 `json:"line_total"`
	}
	lines := cart.Lines(cat)
	entries := make([]entry, len(lines))
	for i, l := range lines {
		entries[i] = entry{
			Name:      l.Item.Name,
			Qty:       l.Qty,
			UnitPrice: l.Item.Price,
			LineTotal: l.Item.Price * float64(l.Qty),
		}
	}
	data, _ := json.Marshal(entries)
	return fmt.Sprintf("CARRITO_ACTUAL: %s | TOTAL: %s", data, catalog.Currency(cart.Total()))
}

// RenderMenuText renders the menu grouped by category for a /menu reply.
func RenderMenuText(cat *catalog.Catalog) string {
	var lines []string
	for _, c := range catalog.Categories {
		lines = append(lines, "*"+string(c)+"*")
		for _, it := range cat.Items() {
			if it.Category == c {
				lines = append(lines, fmt.Sprintf("- %s — %s", it.Name, catalog.Currency(it.Price)))
			}
		}
		lines = append(lines, "")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// RenderCartText renders the cart for a /cart reply.
func RenderCartText(cart ordering.Cart, cat *catalog.Catalog) string {
	lines := cart.Lines(cat)
	if len(lines) == 0 {
		return "Tu carrito está vacío."
	}
	out := make([]string, 0, len(lines)+1)
	for _, l := range lines {
		out = append(out, fmt.Sprintf("- %d x %s = %s", l.Qty, l.Item.Name, catalog.Currency(l.Item.Price*float64(l.Qty))))
	}
	out = append(out, "", "Total: "+catalog.Currency(cart.Total()))
	return strings.Join(out, "\n")
}
