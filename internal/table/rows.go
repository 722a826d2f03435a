package table

import (
	"sort"
	"time"
)

// Row is one record of an explorer table. Index is the insertion order and
// doubles as the stable row identity.
type Row struct {
	Index  int
	Fields map[string]any
}

func (r Row) Get(name string) any { return r.Fields[name] }

func IndexRows(records []map[string]any) []Row {
	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = Row{Index: i, Fields: rec}
	}
	return rows
}

type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindTime
)

type SortSpec struct {
	Column string
	Desc   bool
}

// ByField lifts a value comparator into a row comparator on one column.
func ByField(name string, kind Kind) Comparator[Row] {
	return func(a, b Row) int {
		return compareValues(a.Fields[name], b.Fields[name], kind)
	}
}

// ByIndex restores insertion order and is appended as the final tie-break.
func ByIndex(a, b Row) int { return CompareNumber(a.Index, b.Index) }

func compareValues(a, b any, kind Kind) int {
	switch kind {
	case KindNumber:
		fa, okA := toFloat(a)
		fb, okB := toFloat(b)
		if okA && okB {
			return CompareNumber(fa, fb)
		}
		// rows missing the value sort after the ones that have it
		return CompareBool(!okA, !okB)
	case KindBool:
		ba, _ := a.(bool)
		bb, _ := b.(bool)
		return CompareBool(ba, bb)
	case KindTime:
		ta, _ := a.(time.Time)
		tb, _ := b.(time.Time)
		return ta.Compare(tb)
	}
	return CompareString(a, b)
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}

// Comparators builds the composite row comparator for the given sort specs.
func Comparators(specs []SortSpec, kinds map[string]Kind) Comparator[Row] {
	cmps := make([]Comparator[Row], 0, len(specs)+1)
	for _, s := range specs {
		c := ByField(s.Column, kinds[s.Column])
		if s.Desc {
			c = Reverse(c)
		}
		cmps = append(cmps, c)
	}
	cmps = append(cmps, ByIndex)
	return MultiSort(cmps...)
}

// SortRows sorts a copy of rows; the input slice is left untouched.
func SortRows(rows []Row, specs []SortSpec, kinds map[string]Kind) []Row {
	out := append([]Row(nil), rows...)
	cmp := Comparators(specs, kinds)
	sort.SliceStable(out, func(i, j int) bool { return cmp(out[i], out[j]) < 0 })
	return out
}
