package ui

import (
	"regexp"
	"strings"

	"devhome/internal/filter"
	"devhome/internal/table"
)

func (m *Model) setSearch(q string) {
	m.searchPattern, m.searchRegex = filter.ParseQuery(q)
}

func (m *Model) searchNext() {
	e := m.current()
	if e == nil || m.searchPattern == "" {
		return
	}
	n := len(e.view)
	start := e.tbl.Cursor() + 1
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		if m.rowMatchesSearch(e, e.view[idx]) {
			e.tbl.SetCursor(idx)
			return
		}
	}
	m.lastMsg = "no match for " + m.searchPattern
}

func (m *Model) searchPrev() {
	e := m.current()
	if e == nil || m.searchPattern == "" {
		return
	}
	n := len(e.view)
	start := e.tbl.Cursor() - 1
	if start < 0 {
		start = n - 1
	}
	for i := 0; i < n; i++ {
		idx := start - i
		if idx < 0 {
			idx += n
		}
		if m.rowMatchesSearch(e, e.view[idx]) {
			e.tbl.SetCursor(idx)
			return
		}
	}
	m.lastMsg = "no match for " + m.searchPattern
}

// rowMatchesSearch looks at the cells as displayed.
func (m *Model) rowMatchesSearch(e *explorer, r table.Row) bool {
	cells := make([]string, len(e.cols))
	for i, c := range e.cols {
		cells[i] = c.cell(r.Fields[c.Field])
	}
	text := strings.Join(cells, " ")
	if m.searchRegex {
		re, err := regexp.Compile(m.searchPattern)
		if err != nil {
			return false
		}
		return re.MatchString(text)
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(m.searchPattern))
}
