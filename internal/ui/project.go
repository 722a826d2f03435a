package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"devhome/internal/model"
	"devhome/internal/store"
	"devhome/internal/table"
	"devhome/internal/util/logx"
)

// applyLoaded installs a freshly loaded store and reopens the current (or
// configured, or most recent) project.
func (m *Model) applyLoaded(msg loadedMsg) tea.Cmd {
	m.loading = false
	if msg.err != nil {
		m.loadErr = msg.err
		logx.Errorf("store: %v", msg.err)
		return nil
	}
	m.loadErr = nil
	m.store = msg.store
	m.schema = m.store.Schema()

	projects := m.store.Projects()
	records := make([]map[string]any, len(projects))
	for i, p := range projects {
		records[i] = p.Record()
	}
	m.projects.SetRows(table.IndexRows(records))
	logx.Infof("store: loaded %d projects and %d options from %s", len(projects), len(m.schema), m.store.Path())

	id := m.projectID
	if id == "" {
		id = m.cfg.Project
	}
	if id == "" && len(projects) > 0 {
		id = projects[0].ID
	}
	if id == "" {
		return nil
	}
	return m.selectProject(id)
}

func (m *Model) selectProject(id string) tea.Cmd {
	p, err := m.store.Project(id)
	if err != nil {
		m.lastMsg = err.Error()
		logx.Warnf("ui: %v", err)
		return nil
	}
	m.projectID = id
	m.project = &p
	m.values = m.store.Config(id)
	m.dirty = false
	m.optSel = 0
	m.rebuildEditors()

	insp, err := m.store.Inspection(id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logx.Warnf("ui: %v", err)
		}
		insp = model.Inspection{}
	}
	m.inspection = &insp
	m.fillInspection()

	m.stopIngest()
	cmd := m.progress.SetSteps(stepsFromPlan(insp.Steps))
	return tea.Batch(cmd, m.startIngest())
}

func (m *Model) fillInspection() {
	var sections, symbols, defects []map[string]any
	if mem := m.inspection.Memory; mem != nil {
		for _, s := range mem.Sections {
			sections = append(sections, s.Record())
		}
		for _, s := range mem.Symbols {
			symbols = append(symbols, s.Record())
		}
	}
	for _, d := range m.inspection.Defects {
		rec := d.Record()
		rec["rank"] = model.SeverityRank(d.Severity)
		defects = append(defects, rec)
	}
	m.sections.SetRows(table.IndexRows(sections))
	m.symbols.SetRows(table.IndexRows(symbols))
	m.defects.SetRows(table.IndexRows(defects))
}

// current returns the explorer of the active tab, if it has one.
func (m *Model) current() *explorer {
	switch m.tab {
	case tabProjects:
		return m.projects
	case tabMemory:
		if m.showSymbols {
			return m.symbols
		}
		return m.sections
	case tabDefects:
		return m.defects
	}
	return nil
}

func (m *Model) selectedDefect() (model.Defect, bool) {
	row, ok := m.defects.selected()
	if !ok || m.inspection == nil {
		return model.Defect{}, false
	}
	if row.Index < 0 || row.Index >= len(m.inspection.Defects) {
		return model.Defect{}, false
	}
	return m.inspection.Defects[row.Index], true
}
