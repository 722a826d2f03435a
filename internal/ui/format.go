package ui

import (
	"fmt"
	"time"

	"devhome/internal/table"
)

func sizeCell(v any) string {
	n, ok := asInt64(v)
	if !ok {
		return table.Stringify(v)
	}
	return table.FormatSize(n)
}

func hexCell(v any) string {
	switch t := v.(type) {
	case uint64:
		return table.FormatHex(t, 8)
	case int64:
		if t >= 0 {
			return table.FormatHex(uint64(t), 8)
		}
	case int:
		if t >= 0 {
			return table.FormatHex(uint64(t), 8)
		}
	}
	return table.Stringify(v)
}

func timeCell(v any) string {
	t, ok := v.(time.Time)
	if !ok || t.IsZero() {
		return table.Stringify(v)
	}
	return t.Local().Format("2006-01-02 15:04")
}

// zeroBlank hides zero line and column numbers.
func zeroBlank(v any) string {
	if n, ok := asInt64(v); ok && n == 0 {
		return ""
	}
	return table.Stringify(v)
}

func asInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint64:
		return int64(t), true
	case float64:
		return int64(t), true
	}
	return 0, false
}

func percent(used, max int64) string {
	if max <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1f%%", 100*float64(used)/float64(max))
}
