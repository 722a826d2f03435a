package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"devhome/internal/ai"
	"devhome/internal/filter"
	"devhome/internal/ingest"
	"devhome/internal/progress"
	"devhome/internal/util/logx"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth, m.termHeight = msg.Width, msg.Height
		m.resize()
		if m.modalActive {
			m.resizeModal()
		}
		return m, nil
	case spinner.TickMsg:
		if !m.loading && !m.explaining && !m.saving {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case progress.TickMsg:
		return m, m.progress.Update(msg)
	case loadedMsg:
		return m, m.applyLoaded(msg)
	case eventMsg:
		if msg.gen != m.ingestGen {
			return m, nil
		}
		logx.Debugf("ingest: step=%s done=%v", msg.ev.Step, msg.ev.Done)
		runs := ingest.Runs{ID: m.run, Steps: m.progress.Steps()}
		if runs.Apply(msg.ev) {
			logx.Infof("ingest: new inspection run %s", runs.ID)
		}
		m.run = runs.ID
		cmd := m.progress.SetSteps(runs.Steps)
		return m, tea.Batch(cmd, waitEvent(msg.gen, m.events, m.ingestErrs))
	case ingestErrMsg:
		if msg.gen != m.ingestGen {
			return m, nil
		}
		logx.Warnf("ingest: %v", msg.err)
		return m, waitEvent(msg.gen, m.events, m.ingestErrs)
	case ingestDoneMsg:
		if msg.gen == m.ingestGen {
			logx.Infof("ingest: %s source finished", m.source)
		}
		return m, nil
	case savedMsg:
		m.saving = false
		if msg.err != nil {
			m.lastMsg = "save failed: " + msg.err.Error()
			logx.Errorf("ui: save %s: %v", msg.id, msg.err)
			return m, nil
		}
		if msg.id == m.projectID {
			m.dirty = false
		}
		m.lastMsg = "options saved"
		return m, nil
	case exportedMsg:
		if msg.err != nil {
			m.lastMsg = "export failed: " + msg.err.Error()
			logx.Errorf("export: %v", msg.err)
		} else {
			m.lastMsg = fmt.Sprintf("exported %d rows to %s", msg.rows, msg.path)
			logx.Infof("export: %d rows to %s", msg.rows, msg.path)
		}
		return m, nil
	case explainMsg:
		m.explaining = false
		if msg.err != nil {
			logx.Warnf("ai: %v", msg.err)
			m.modalBody = m.styles.Error.Render(msg.err.Error())
		} else {
			m.modalBody = msg.text
		}
		m.modalVP.SetContent(m.modalBody)
		return m, nil
	case toastMsg:
		m.lastMsg = msg.text
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) resize() {
	h := m.termHeight - 5
	m.projects.resize(m.termWidth, h)
	m.sections.resize(m.termWidth, h-3)
	m.symbols.resize(m.termWidth, h-3)
	m.defects.resize(m.termWidth, h-2)
	m.progress.SetWidth(m.termWidth - 4)
	m.help.Width = m.termWidth
	m.area.SetWidth(m.termWidth - 4)
}

func (m *Model) quit() tea.Cmd {
	m.shutdown()
	return tea.Quit
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := m.keymap
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if m.modalActive {
		return m.handleModalKey(msg)
	}
	if m.inlineMode != inlineNone {
		return m.handleInlineKey(msg)
	}

	switch {
	case key.Matches(msg, k.Quit):
		return m.quit()
	case key.Matches(msg, k.Help):
		m.openHelpModal()
		return nil
	case key.Matches(msg, k.AppLogs):
		m.openAppLogsModal()
		return nil
	case key.Matches(msg, k.NextTab):
		m.tab = (m.tab + 1) % tab(len(tabNames))
		return nil
	case key.Matches(msg, k.PrevTab):
		m.tab = (m.tab + tab(len(tabNames)) - 1) % tab(len(tabNames))
		return nil
	case key.Matches(msg, k.JumpTab):
		m.tab = tab(msg.Runes[0] - '1')
		return nil
	case key.Matches(msg, k.Reload):
		return m.reload()
	}
	if m.store == nil {
		return nil
	}
	if m.tab == tabOptions {
		return m.handleOptionsKey(msg)
	}
	if e := m.current(); e != nil {
		return m.handleExplorerKey(e, msg)
	}
	return nil
}

func (m *Model) reload() tea.Cmd {
	if m.loading {
		return nil
	}
	if err := m.host.Reload("workspace"); err != nil {
		logx.Warnf("host: reload: %v", err)
	}
	m.loading = true
	m.lastMsg = "reloading…"
	if m.store == nil {
		return tea.Batch(loadCmd(m.cfg.Workspace), m.spin.Tick)
	}
	return tea.Batch(reloadCmd(m.store), m.spin.Tick)
}

func (m *Model) handleModalKey(msg tea.KeyMsg) tea.Cmd {
	if m.modalKind == modalHelp {
		switch msg.Type {
		case tea.KeyUp:
			if m.helpSel > 0 {
				m.helpSel--
			}
			return nil
		case tea.KeyDown:
			if m.helpSel+1 < len(m.helpItems) {
				m.helpSel++
			}
			return nil
		case tea.KeyEnter:
			m.modalActive = false
			if len(m.helpItems) > 0 {
				return keyCmd(m.helpItems[m.helpSel].binding)
			}
			return nil
		}
		if msg.Type == tea.KeyEsc || msg.String() == "q" || msg.String() == "?" {
			m.modalActive = false
		}
		return nil
	}
	if msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter || msg.String() == "q" {
		m.modalActive = false
		return nil
	}
	var cmd tea.Cmd
	m.modalVP, cmd = m.modalVP.Update(msg)
	return cmd
}

func (m *Model) beginInline(mode inlineMode, prompt, value string) tea.Cmd {
	m.inlineMode = mode
	m.input.Prompt = prompt
	m.input.Placeholder = ""
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) endInline() {
	m.inlineMode = inlineNone
	m.input.Blur()
	m.area.Blur()
}

func (m *Model) handleInlineKey(msg tea.KeyMsg) tea.Cmd {
	if m.inlineMode == inlineEditList {
		return m.handleListEditKey(msg)
	}
	switch msg.Type {
	case tea.KeyEsc:
		m.endInline()
		return nil
	case tea.KeyEnter:
		mode := m.inlineMode
		q := strings.TrimSpace(m.input.Value())
		m.endInline()
		return m.applyInline(mode, q)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// handleListEditKey edits a list option one entry per line; enter starts a
// new entry and ctrl+s applies.
func (m *Model) handleListEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.endInline()
		return nil
	case tea.KeyCtrlS:
		raw := m.area.Value()
		m.endInline()
		m.applyEdit(raw)
		return nil
	}
	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return cmd
}

func (m *Model) applyInline(mode inlineMode, q string) tea.Cmd {
	if mode == inlineEdit {
		m.applyEdit(q)
		return nil
	}
	e := m.current()
	if e == nil {
		return nil
	}
	switch mode {
	case inlineSearch:
		m.setSearch(q)
		m.searchNext()
	case inlineFilter:
		c := e.criteria
		c.Query, c.UseRegex = filter.ParseQuery(q)
		c.Field = e.selectedColumn().Field
		if err := e.setCriteria(c); err != nil {
			m.lastMsg = err.Error()
		}
	case inlineExpr:
		c := e.criteria
		c.Expr = q
		if err := e.setCriteria(c); err != nil {
			m.lastMsg = err.Error()
		}
	case inlineExport:
		if q == "" {
			return nil
		}
		if len(e.view) == 0 {
			m.lastMsg = "nothing to export"
			return nil
		}
		return exportCmd(q, e.fields(), e.view)
	}
	return nil
}

func (m *Model) handleOptionsKey(msg tea.KeyMsg) tea.Cmd {
	k := m.keymap
	switch {
	case key.Matches(msg, k.Up):
		m.moveOption(-1)
	case key.Matches(msg, k.Down):
		m.moveOption(1)
	case key.Matches(msg, k.Toggle):
		m.toggleOption()
	case key.Matches(msg, k.PrevCol):
		m.cycleOption(-1)
	case key.Matches(msg, k.NextCol):
		m.cycleOption(1)
	case key.Matches(msg, k.Edit):
		return m.beginEdit()
	case key.Matches(msg, k.Save):
		return tea.Batch(m.saveOptions(), m.spin.Tick)
	}
	return nil
}

func (m *Model) handleExplorerKey(e *explorer, msg tea.KeyMsg) tea.Cmd {
	k := m.keymap
	switch {
	case key.Matches(msg, k.PrevCol):
		e.moveColumn(-1)
	case key.Matches(msg, k.NextCol):
		e.moveColumn(1)
	case key.Matches(msg, k.Sort):
		e.cycleSort()
	case key.Matches(msg, k.SortDir):
		e.toggleDirection()
	case key.Matches(msg, k.Search):
		return m.beginInline(inlineSearch, "/", m.searchPattern)
	case key.Matches(msg, k.SearchNext):
		m.searchNext()
	case key.Matches(msg, k.SearchPrev):
		m.searchPrev()
	case key.Matches(msg, k.Filter):
		return m.beginInline(inlineFilter, "> ", e.criteria.Query)
	case key.Matches(msg, k.Expr):
		return m.beginInline(inlineExpr, "> ", e.criteria.Expr)
	case key.Matches(msg, k.ClearFilter):
		_ = e.setCriteria(filter.Criteria{})
	case key.Matches(msg, k.Export):
		return m.beginInline(inlineExport, "> ", m.defaultExportPath(e))
	case key.Matches(msg, k.Inspect):
		m.openInspectorModal()
	case key.Matches(msg, k.Symbols) && m.tab == tabMemory:
		m.showSymbols = !m.showSymbols
	case key.Matches(msg, k.Open):
		return m.open()
	case key.Matches(msg, k.Reveal):
		m.reveal()
	case key.Matches(msg, k.CWE) && m.tab == tabDefects:
		m.openCWE()
	case key.Matches(msg, k.Explain) && m.tab == tabDefects:
		return m.explain()
	default:
		var cmd tea.Cmd
		e.tbl, cmd = e.tbl.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) defaultExportPath(e *explorer) string {
	name := e.name
	if m.projectID != "" && e != m.projects {
		name = m.projectID + "-" + name
	}
	return name + ".csv"
}

// open switches to the selected project, or opens the selected defect in an
// editor.
func (m *Model) open() tea.Cmd {
	switch m.tab {
	case tabProjects:
		row, ok := m.projects.selected()
		if !ok {
			return nil
		}
		id, _ := row.Fields["id"].(string)
		cmd := m.selectProject(id)
		m.tab = tabOptions
		return cmd
	case tabDefects:
		d, ok := m.selectedDefect()
		if !ok {
			return nil
		}
		if err := m.host.OpenTextDocument(m.resolvePath(d.File), d.Line, d.Column); err != nil {
			m.lastMsg = err.Error()
		}
	}
	return nil
}

func (m *Model) reveal() {
	var target string
	switch m.tab {
	case tabProjects:
		if row, ok := m.projects.selected(); ok {
			target, _ = row.Fields["path"].(string)
		}
	case tabDefects:
		if d, ok := m.selectedDefect(); ok {
			target = m.resolvePath(d.File)
		}
	case tabMemory:
		if row, ok := m.symbols.selected(); ok && m.showSymbols {
			f, _ := row.Fields["file"].(string)
			target = m.resolvePath(f)
		}
	}
	if target == "" {
		return
	}
	if err := m.host.RevealFile(target); err != nil {
		m.lastMsg = err.Error()
	}
}

func (m *Model) openCWE() {
	d, ok := m.selectedDefect()
	if !ok || d.CWE <= 0 {
		m.lastMsg = "defect has no CWE reference"
		return
	}
	if err := m.host.OpenURL(fmt.Sprintf("https://cwe.mitre.org/data/definitions/%d.html", d.CWE)); err != nil {
		m.lastMsg = err.Error()
	}
}

func (m *Model) explain() tea.Cmd {
	d, ok := m.selectedDefect()
	if !ok {
		return nil
	}
	if m.cfg.Offline || !m.ai.Enabled() {
		m.lastMsg = ai.ErrDisabled.Error() + " (set OPENAI_API_KEY, drop -offline)"
		return nil
	}
	root := ""
	if m.project != nil {
		root = m.project.Path
	}
	snippet, err := readSnippet(root, d.File, d.Line, 8)
	if err != nil {
		logx.Debugf("ai: no snippet for %s: %v", d.File, err)
	}
	m.explaining = true
	m.openModal(modalExplain, fmt.Sprintf("Explain %s:%d", filepath.Base(d.File), d.Line), "")
	return tea.Batch(explainCmd(m.ctx, m.ai, d, snippet), m.spin.Tick)
}

func (m *Model) resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || m.project == nil || m.project.Path == "" {
		return p
	}
	return filepath.Join(m.project.Path, p)
}
