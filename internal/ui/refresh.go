package ui

import (
	btable "github.com/charmbracelet/bubbles/table"

	"devhome/internal/filter"
	"devhome/internal/table"
)

type column struct {
	Field string
	Title string
	Kind  table.Kind
	Width int
	// SortField orders by another field, e.g. severity by its rank.
	SortField string
	Format    func(any) string
}

func (c column) sortKey() string {
	if c.SortField != "" {
		return c.SortField
	}
	return c.Field
}

func (c column) cell(v any) string {
	if c.Format != nil {
		return c.Format(v)
	}
	return table.Stringify(v)
}

// explorer is a sortable, filterable table over one kind of record.
type explorer struct {
	name     string
	cols     []column
	kinds    map[string]table.Kind
	defaults []table.SortSpec
	all      []table.Row
	view     []table.Row
	sortCol  int // -1 keeps the default order
	desc     bool
	selCol   int
	criteria filter.Criteria
	width    int
	tbl      btable.Model
	styles   Styles
}

func newExplorer(name string, cols []column, defaults []table.SortSpec, st Styles) *explorer {
	e := &explorer{name: name, cols: cols, defaults: defaults, sortCol: -1, styles: st, kinds: map[string]table.Kind{}}
	for _, c := range cols {
		e.kinds[c.sortKey()] = c.Kind
	}
	e.tbl = btable.New(btable.WithFocused(true), btable.WithHeight(10))
	ts := btable.DefaultStyles()
	ts.Header = st.TableStyles.Header
	ts.Cell = st.TableStyles.Cell
	ts.Selected = st.TableStyles.Selected
	e.tbl.SetStyles(ts)
	e.applyColumns()
	return e
}

func (e *explorer) SetRows(rows []table.Row) {
	e.all = rows
	e.refresh()
}

func (e *explorer) sortSpecs() []table.SortSpec {
	var specs []table.SortSpec
	if e.sortCol >= 0 && e.sortCol < len(e.cols) {
		specs = append(specs, table.SortSpec{Column: e.cols[e.sortCol].sortKey(), Desc: e.desc})
	}
	return append(specs, e.defaults...)
}

// refresh re-applies filter and sort and rebuilds the table rows, keeping the
// cursor in range.
func (e *explorer) refresh() {
	rows, err := filter.Apply(e.all, e.criteria)
	if err != nil {
		rows = e.all
	}
	e.view = table.SortRows(rows, e.sortSpecs(), e.kinds)
	out := make([]btable.Row, len(e.view))
	for i, r := range e.view {
		cells := make(btable.Row, len(e.cols))
		for j, c := range e.cols {
			cells[j] = c.cell(r.Fields[c.Field])
		}
		out[i] = cells
	}
	cur := e.tbl.Cursor()
	e.applyColumns()
	e.tbl.SetRows(out)
	if cur >= len(out) {
		cur = len(out) - 1
	}
	if cur < 0 {
		cur = 0
	}
	e.tbl.SetCursor(cur)
}

// cycleSort moves the sort to the selected column, or to the next one when
// the selected column is already the sort column.
func (e *explorer) cycleSort() {
	if len(e.cols) == 0 {
		return
	}
	if e.sortCol == e.selCol {
		e.selCol = (e.selCol + 1) % len(e.cols)
	}
	e.sortCol = e.selCol
	e.desc = false
	e.refresh()
}

func (e *explorer) toggleDirection() {
	if e.sortCol < 0 {
		e.sortCol = e.selCol
	} else {
		e.desc = !e.desc
	}
	e.refresh()
}

func (e *explorer) moveColumn(delta int) {
	if len(e.cols) == 0 {
		return
	}
	e.selCol = (e.selCol + delta + len(e.cols)) % len(e.cols)
	e.applyColumns()
}

func (e *explorer) selectedColumn() column {
	return e.cols[e.selCol]
}

func (e *explorer) setCriteria(c filter.Criteria) error {
	if _, err := filter.NewEvaluator(c); err != nil {
		return err
	}
	e.criteria = c
	e.refresh()
	return nil
}

func (e *explorer) selected() (table.Row, bool) {
	i := e.tbl.Cursor()
	if i < 0 || i >= len(e.view) {
		return table.Row{}, false
	}
	return e.view[i], true
}

func (e *explorer) fields() []string {
	out := make([]string, len(e.cols))
	for i, c := range e.cols {
		out[i] = c.Field
	}
	return out
}

func (e *explorer) resize(width, height int) {
	e.width = width
	if height < 3 {
		height = 3
	}
	e.tbl.SetHeight(height)
	e.tbl.SetWidth(width)
	e.applyColumns()
}

func (e *explorer) applyColumns() {
	widths := e.computeWidths()
	cols := make([]btable.Column, len(e.cols))
	for i, c := range e.cols {
		title := c.Title
		if i == e.sortCol {
			if e.desc {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		if i == e.selCol {
			title = "›" + title
		}
		cols[i] = btable.Column{Title: title, Width: widths[i]}
	}
	e.tbl.SetColumns(cols)
}

// computeWidths gives every column its preferred width and hands the rest of
// the terminal to the last column.
func (e *explorer) computeWidths() []int {
	widths := make([]int, len(e.cols))
	used := 0
	for i, c := range e.cols {
		w := c.Width
		if floor := len([]rune(c.Title)) + 3; w < floor {
			w = floor
		}
		widths[i] = w
		used += w + 1
	}
	if n := len(widths); n > 0 && e.width > used {
		widths[n-1] += e.width - used
	}
	return widths
}
