package ui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

func colorizeJSON(v any, st Styles) string {
	var b strings.Builder
	renderJSON(&b, v, st, 0)
	return b.String()
}

func renderJSON(b *strings.Builder, v any, st Styles, indent int) {
	ind := strings.Repeat("  ", indent)
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(st.JSONPunct.Render("{"))
		if len(keys) > 0 {
			b.WriteString("\n")
		}
		for i, k := range keys {
			b.WriteString(ind + "  ")
			b.WriteString(st.JSONKey.Render(quote(k)))
			b.WriteString(st.JSONPunct.Render(": "))
			renderJSON(b, t[k], st, indent+1)
			if i < len(keys)-1 {
				b.WriteString(st.JSONPunct.Render(","))
			}
			b.WriteString("\n")
		}
		b.WriteString(ind)
		b.WriteString(st.JSONPunct.Render("}"))
	case []any:
		b.WriteString(st.JSONPunct.Render("["))
		if len(t) > 0 {
			b.WriteString("\n")
		}
		for i, it := range t {
			b.WriteString(ind + "  ")
			renderJSON(b, it, st, indent+1)
			if i < len(t)-1 {
				b.WriteString(st.JSONPunct.Render(","))
			}
			b.WriteString("\n")
		}
		b.WriteString(ind)
		b.WriteString(st.JSONPunct.Render("]"))
	case []string:
		items := make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
		renderJSON(b, items, st, indent)
	case string:
		b.WriteString(st.JSONString.Render(quote(t)))
	case time.Time:
		b.WriteString(st.JSONString.Render(quote(t.Format(time.RFC3339))))
	case float64, float32, int, int32, int64, uint, uint32, uint64:
		b.WriteString(st.JSONNumber.Render(fmt.Sprint(t)))
	case bool:
		b.WriteString(st.JSONBool.Render(fmt.Sprint(t)))
	case nil:
		b.WriteString(st.JSONNull.Render("null"))
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			b.WriteString(st.JSONString.Render(quote(fmt.Sprint(t))))
			return
		}
		var generic any
		if json.Unmarshal(raw, &generic) != nil {
			b.WriteString(string(raw))
			return
		}
		renderJSON(b, generic, st, indent)
	}
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
