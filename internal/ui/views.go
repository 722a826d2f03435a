package ui

import (
	"fmt"
	"strings"

	bprogress "github.com/charmbracelet/bubbles/progress"

	"devhome/internal/model"
	"devhome/internal/table"
)

func overlay(base, top string) string {
	bLines := strings.Split(base, "\n")
	oLines := strings.Split(top, "\n")
	n := len(bLines)
	if len(oLines) > n {
		n = len(oLines)
	}
	for len(bLines) < n {
		bLines = append(bLines, "")
	}
	for len(oLines) < n {
		oLines = append(oLines, "")
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		// whitespace-only overlay lines are transparent
		if strings.TrimSpace(oLines[i]) != "" {
			out[i] = oLines[i]
		} else {
			out[i] = bLines[i]
		}
	}
	return strings.Join(out, "\n")
}

// usageLine renders "Flash ▕████──▏ 12 KB / 256 KB (4.7%)". Without a known
// maximum only the used size is shown.
func usageLine(label string, used, max int64, width int, st Styles) string {
	text := fmt.Sprintf("%-6s %s", label, table.FormatSize(used))
	if max <= 0 {
		return text
	}
	frac := float64(used) / float64(max)
	color := st.BarActive
	if frac >= 0.9 {
		color = "#E53935"
	}
	bar := bprogress.New(bprogress.WithSolidFill(color), bprogress.WithoutPercentage(), bprogress.WithWidth(width))
	return fmt.Sprintf("%-6s %s %s / %s (%s)", label, bar.ViewAs(frac), table.FormatSize(used), table.FormatSize(max), percent(used, max))
}

func (m *Model) renderMemoryHeader(mem *model.Memory) string {
	w := m.termWidth / 3
	if w < 10 {
		w = 10
	}
	t := mem.Total
	view := "sections"
	if m.showSymbols {
		view = "symbols"
	}
	return strings.Join([]string{
		usageLine("Flash", t.Flash, t.FlashMax, w, m.styles),
		usageLine("RAM", t.RAM, t.RAMMax, w, m.styles),
		m.styles.Help.Render(fmt.Sprintf("%d sections, %d symbols  [m] showing %s", len(mem.Sections), len(mem.Symbols), view)),
	}, "\n")
}

func (m *Model) renderDefectDetail() string {
	d, ok := m.selectedDefect()
	if !ok {
		return ""
	}
	sev := d.Severity
	if st, ok := m.styles.Severity[strings.ToLower(sev)]; ok {
		sev = st.Render(sev)
	}
	loc := d.File
	if d.Line > 0 {
		loc = fmt.Sprintf("%s:%d", d.File, d.Line)
	}
	ref := d.ID
	if d.CWE > 0 {
		ref = fmt.Sprintf("%s CWE-%d", ref, d.CWE)
	}
	return fmt.Sprintf("%s %s  %s\n%s", sev, loc, m.styles.Help.Render(strings.TrimSpace(ref)), d.Message)
}
