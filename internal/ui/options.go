package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"devhome/internal/editor"
	"devhome/internal/table"
)

func (m *Model) rebuildEditors() {
	m.editors = m.registry.ResolveAll(m.schema, m.values, m.project)
	if m.optSel >= len(m.editors) {
		m.optSel = len(m.editors) - 1
	}
	if m.optSel < 0 {
		m.optSel = 0
	}
}

func (m *Model) currentEditor() (editor.Editor, bool) {
	if m.optSel < 0 || m.optSel >= len(m.editors) {
		return editor.Editor{}, false
	}
	return m.editors[m.optSel], true
}

func (m *Model) setValue(name string, v any) {
	m.values[name] = v
	m.dirty = true
	m.rebuildEditors()
}

func (m *Model) moveOption(delta int) {
	if len(m.editors) == 0 {
		return
	}
	m.optSel = (m.optSel + delta + len(m.editors)) % len(m.editors)
}

func (m *Model) toggleOption() {
	e, ok := m.currentEditor()
	if !ok || e.Disabled || e.Kind != editor.KindCheckbox {
		return
	}
	on, _ := e.Value.(bool)
	m.setValue(e.Name, !on)
}

// cycleOption steps a select through its choices.
func (m *Model) cycleOption(delta int) {
	e, ok := m.currentEditor()
	if !ok || e.Disabled || e.Kind != editor.KindSelect || len(e.Choices) == 0 {
		return
	}
	cur := -1
	s := table.Stringify(e.Value)
	for i, c := range e.Choices {
		if c == s {
			cur = i
			break
		}
	}
	next := (cur + delta + len(e.Choices)) % len(e.Choices)
	if cur < 0 && delta < 0 {
		next = len(e.Choices) - 1
	}
	m.setValue(e.Name, e.Choices[next])
}

func (m *Model) beginEdit() tea.Cmd {
	e, ok := m.currentEditor()
	if !ok || e.Disabled {
		return nil
	}
	if e.Kind == editor.KindCheckbox {
		m.toggleOption()
		return nil
	}
	if e.Kind == editor.KindTextArea {
		m.inlineMode = inlineEditList
		m.area.Placeholder = e.Placeholder
		m.area.SetValue(e.Text(e.Value))
		m.area.CursorEnd()
		return m.area.Focus()
	}
	m.inlineMode = inlineEdit
	m.input.Prompt = e.Label + ": "
	m.input.Placeholder = e.Placeholder
	m.input.SetValue(e.Text(e.Value))
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) applyEdit(raw string) {
	e, ok := m.currentEditor()
	if !ok {
		return
	}
	v, err := e.Parse(raw)
	if err != nil {
		m.lastMsg = err.Error()
		return
	}
	m.setValue(e.Name, v)
	m.lastMsg = fmt.Sprintf("%s updated (w to save)", e.Label)
}

func (m *Model) saveOptions() tea.Cmd {
	if m.store == nil || m.projectID == "" || m.saving {
		return nil
	}
	if !m.dirty {
		m.lastMsg = "no changes to save"
		return nil
	}
	m.saving = true
	return saveCmd(m.store, m.projectID, m.values)
}

func (m *Model) renderOptions() string {
	if len(m.editors) == 0 {
		return m.styles.Help.Render("No options declared for this workspace")
	}
	var b strings.Builder
	group := ""
	for i, e := range m.editors {
		if i < len(m.schema) && m.schema[i].Group != group {
			group = m.schema[i].Group
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(m.styles.Group.Render(strings.ToUpper(group)) + "\n")
		}
		marker := "  "
		if i == m.optSel {
			marker = "› "
		}
		label := table.Pad(e.Label, 24)
		value := e.Display(e.Value)
		switch e.Kind {
		case editor.KindSelect:
			value = "◂ " + value + " ▸"
		case editor.KindInput, editor.KindTextArea:
			if value == "" && e.Placeholder != "" {
				value = m.styles.Help.Render(e.Placeholder)
			}
		}
		line := marker + label + " " + value
		if i < len(m.schema) && m.registry.IsCustomized(&m.schema[i]) {
			line += m.styles.Help.Render("  ·custom")
		}
		if i == m.optSel {
			line = m.styles.Title.Render(line)
		}
		b.WriteString(line + "\n")
		if i == m.optSel && e.Help != "" {
			b.WriteString("    " + m.styles.Help.Render(e.Help) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
