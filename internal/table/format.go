package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count in the largest binary unit that keeps the
// value at or above one. Whole values print without decimals.
func FormatSize(bytes int64) string {
	sign := ""
	if bytes < 0 {
		sign = "-"
		bytes = -bytes
	}
	if bytes < 1024 {
		return sign + strconv.FormatInt(bytes, 10) + sizeUnits[0]
	}
	unit := 0
	div := int64(1)
	for unit < len(sizeUnits)-1 && bytes/div >= 1024 {
		div *= 1024
		unit++
	}
	if bytes%div == 0 {
		return sign + strconv.FormatInt(bytes/div, 10) + sizeUnits[unit]
	}
	return sign + strconv.FormatFloat(float64(bytes)/float64(div), 'f', 1, 64) + sizeUnits[unit]
}

// FormatHex renders v as 0x-prefixed uppercase hex, zero padded to width digits.
func FormatHex(v uint64, width int) string {
	if width <= 0 {
		return "0x" + strings.ToUpper(strconv.FormatUint(v, 16))
	}
	return fmt.Sprintf("0x%0*X", width, v)
}

// Truncate cuts s to width terminal cells, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// Pad right-pads s with spaces up to width terminal cells.
func Pad(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}
