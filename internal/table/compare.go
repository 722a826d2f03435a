package table

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator orders two values: negative when a sorts first, zero when equal.
type Comparator[T any] func(a, b T) int

type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// CompareNumber orders ascending. NaN operands compare equal to everything;
// keep them out of sortable columns.
func CompareNumber[N Number](a, b N) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func CompareBool(a, b bool) int {
	return b2i(a) - b2i(b)
}

func b2i(v bool) int {
	if v {
		return 1
	}
	return 0
}

// collator is not safe for concurrent use.
var (
	collMu sync.Mutex
	coll   = collate.New(language.Und, collate.Numeric, collate.IgnoreCase)
)

// CompareString collates with numeric substrings ordered by value ("a2" < "a10").
// Strings equal apart from case put the uppercase form first.
func CompareString(a, b any) int {
	sa, sb := Stringify(a), Stringify(b)
	collMu.Lock()
	r := coll.CompareString(sa, sb)
	collMu.Unlock()
	if r != 0 {
		return r
	}
	return upperFirst(sa, sb)
}

func upperFirst(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	for i := 0; i < len(ra) && i < len(rb); i++ {
		if ra[i] == rb[i] {
			continue
		}
		ua, ub := unicode.IsUpper(ra[i]), unicode.IsUpper(rb[i])
		if ua && !ub {
			return -1
		}
		if ub && !ua {
			return 1
		}
		return CompareNumber(ra[i], rb[i])
	}
	return CompareNumber(len(ra), len(rb))
}

// MultiSort composes comparators left to right; the first non-zero result wins.
func MultiSort[T any](cmps ...Comparator[T]) Comparator[T] {
	return func(a, b T) int {
		for _, c := range cmps {
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return 0
	}
}

// Reverse flips a comparator for descending order.
func Reverse[T any](c Comparator[T]) Comparator[T] {
	return func(a, b T) int { return c(b, a) }
}

// Stringify renders cell values the way tables display them.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, bool:
		return fmt.Sprint(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return strings.Trim(string(b), "\"")
	}
}
