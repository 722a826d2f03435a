package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"devhome/internal/util/logx"
)

var titleCaser = cases.Title(language.English)

func (m *Model) View() string {
	v := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		m.renderBody(),
		m.renderBottom(),
		m.styles.Status.Render(m.statusLine()),
		m.help.ShortHelpView(m.shortHelp()),
	)
	if m.modalActive {
		dimmed := lipgloss.NewStyle().Faint(true).Render(v)
		v = overlay(dimmed, m.renderModal())
	}
	return v
}

func (m *Model) renderTabs() string {
	parts := make([]string, len(tabNames))
	for i, n := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, titleCaser.String(n))
		if tab(i) == m.tab {
			parts[i] = m.styles.TabActive.Render(label)
		} else {
			parts[i] = m.styles.TabInactive.Render(label)
		}
	}
	line := strings.Join(parts, "  ")
	if m.project != nil {
		line += "   " + m.styles.Title.Render(m.project.Name)
		if m.dirty {
			line += m.styles.Warn.Render(" ●")
		}
	}
	return line
}

func (m *Model) renderBody() string {
	if m.store == nil {
		if m.loadErr != nil {
			return m.styles.Error.Render("Could not load workspace: " + m.loadErr.Error())
		}
		return m.spin.View() + " Loading workspace…"
	}
	switch m.tab {
	case tabProjects:
		return m.projects.tbl.View()
	case tabOptions:
		if m.project == nil {
			return m.styles.Help.Render("Select a project first")
		}
		return m.renderOptions()
	case tabMemory:
		if m.inspection == nil || m.inspection.Memory == nil {
			return m.styles.Help.Render("No memory report for this project")
		}
		return m.renderMemoryHeader(m.inspection.Memory) + "\n" + m.current().tbl.View()
	case tabDefects:
		if m.inspection == nil || len(m.inspection.Defects) == 0 {
			return m.styles.Success.Render("No defects reported")
		}
		return m.defects.tbl.View() + "\n" + m.renderDefectDetail()
	case tabProgress:
		body := m.progress.View()
		if m.source != "" {
			info := "events: " + m.source
			if m.run != "" {
				info += "  run: " + shortRun(m.run)
			}
			body += "\n" + m.styles.Help.Render(info)
		}
		return body
	}
	return ""
}

func (m *Model) renderBottom() string {
	switch m.inlineMode {
	case inlineSearch:
		return "search " + m.input.View() + m.styles.Help.Render("    [enter]=find [esc]=cancel [n/N]=next/prev")
	case inlineFilter:
		field := ""
		if e := m.current(); e != nil {
			field = e.selectedColumn().Field
		}
		return fmt.Sprintf("filter %s %s", field, m.input.View()) + m.styles.Help.Render("    [enter]=apply [esc]=cancel")
	case inlineExpr:
		return "expr " + m.input.View() + m.styles.Help.Render("    e.g. line > 10 && severity == 'high'")
	case inlineEdit:
		return m.input.View() + m.styles.Help.Render("    [enter]=set [esc]=cancel")
	case inlineEditList:
		label := ""
		if e, ok := m.currentEditor(); ok {
			label = e.Label
		}
		return label + m.styles.Help.Render("    one entry per line  [ctrl+s]=set [esc]=cancel") + "\n" + m.area.View()
	case inlineExport:
		return "export to " + m.input.View() + m.styles.Help.Render("    .csv or .ndjson")
	}
	if e := m.current(); e != nil && e.criteria.Active() {
		return m.styles.Warn.Render("filter: "+e.criteria.String()) + m.styles.Help.Render("    [X]=clear")
	}
	return ""
}

func (m *Model) statusLine() string {
	parts := []string{}
	if e := m.current(); e != nil && m.store != nil {
		cur := 0
		if len(e.view) > 0 {
			cur = e.tbl.Cursor() + 1
		}
		parts = append(parts, fmt.Sprintf("%s %d/%d", e.name, cur, len(e.view)))
		if len(e.view) != len(e.all) {
			parts = append(parts, fmt.Sprintf("(%d total)", len(e.all)))
		}
	}
	if m.tab == tabOptions && m.saving {
		parts = append(parts, "saving…")
	}
	if m.progress.Snapshot().Phase.Active() && m.tab != tabProgress {
		parts = append(parts, m.progress.Snapshot().Label)
	}
	if m.lastMsg != "" {
		parts = append(parts, m.lastMsg)
	}
	return strings.Join(parts, " | ")
}

func (m *Model) shortHelp() []key.Binding {
	k := m.keymap
	switch m.tab {
	case tabOptions:
		return []key.Binding{k.Toggle, k.PrevCol, k.NextCol, k.Edit, k.Save, k.Help, k.Quit}
	case tabProjects:
		return []key.Binding{k.Open, k.Sort, k.Search, k.Filter, k.Inspect, k.Help, k.Quit}
	case tabMemory:
		return []key.Binding{k.Symbols, k.Sort, k.SortDir, k.Filter, k.Export, k.Help, k.Quit}
	case tabDefects:
		return []key.Binding{k.Open, k.Explain, k.Sort, k.Expr, k.Export, k.Help, k.Quit}
	}
	return k.ShortHelp()
}

func (m *Model) buildHelpItems() []helpItem {
	var items []helpItem
	for i, group := range m.keymap.FullHelp() {
		for _, b := range group {
			items = append(items, helpItem{group: helpGroups[i], binding: b})
		}
	}
	return items
}

func (m *Model) renderHelp() string {
	if len(m.helpItems) == 0 {
		m.helpItems = m.buildHelpItems()
	}
	if m.helpSel < 0 {
		m.helpSel = 0
	}
	if m.helpSel >= len(m.helpItems) {
		m.helpSel = len(m.helpItems) - 1
	}
	lines := []string{}
	group := ""
	for i, it := range m.helpItems {
		if it.group != group {
			group = it.group
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, group+":")
		}
		prefix := "  "
		if i == m.helpSel {
			prefix = "> "
		}
		h := it.binding.Help()
		lines = append(lines, fmt.Sprintf("%s[%s] %s", prefix, h.Key, h.Desc))
	}
	return m.styles.Help.Render(strings.Join(lines, "\n"))
}

func (m *Model) openModal(kind modalKind, title, body string) {
	m.modalActive = true
	m.modalKind = kind
	m.modalTitle = title
	m.modalBody = body
	m.resizeModal()
}

func (m *Model) openHelpModal() {
	m.helpItems = m.buildHelpItems()
	m.helpSel = 0
	m.openModal(modalHelp, "Help", m.renderHelp())
}

func (m *Model) openInspectorModal() {
	e := m.current()
	if e == nil {
		return
	}
	row, ok := e.selected()
	if !ok {
		return
	}
	m.openModal(modalInspector, strings.TrimSuffix(e.name, "s"), colorizeJSON(row.Fields, m.styles))
}

func (m *Model) openAppLogsModal() {
	m.openModal(modalLogs, "Application Logs", logx.Dump())
}

func (m *Model) resizeModal() {
	w := m.termWidth - 6
	h := m.termHeight - 6
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}
	m.modalVP = viewport.New(w-4, h-4)
	m.modalVP.SetContent(m.modalBody)
}

func (m *Model) renderModal() string {
	var content string
	switch m.modalKind {
	case modalHelp:
		m.modalVP.SetContent(m.renderHelp())
		content = m.modalVP.View() + "\n[esc]=close  [enter]=run"
	case modalExplain:
		if m.explaining {
			content = m.spin.View() + " asking OpenAI…"
		} else {
			content = m.modalVP.View() + "\n[esc/enter]=close"
		}
	case modalLogs:
		header := []string{
			fmt.Sprintf("workspace: %s", m.cfg.Workspace),
			fmt.Sprintf("project: %s  events: %s  phase: %s", m.projectID, m.source, m.progress.Snapshot().Phase),
		}
		content = m.styles.Help.Render(strings.Join(header, "\n")) + "\n" + m.modalVP.View() + "\n[esc/enter]=close"
	default:
		content = m.modalVP.View() + "\n[esc/enter]=close"
	}
	boxW := m.termWidth - 6
	if boxW < 20 {
		boxW = 20
	}
	title := m.styles.PopupTitle.Render(m.modalTitle)
	body := m.styles.PopupBox.Width(boxW).Render(title + "\n" + content)
	return lipgloss.Place(m.termWidth, m.termHeight, lipgloss.Center, lipgloss.Center, body)
}

func shortRun(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
