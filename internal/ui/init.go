package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"devhome/internal/config"
	"devhome/internal/editor"
	"devhome/internal/host"
	"devhome/internal/progress"
	"devhome/internal/table"
)

func initialModel(ctx context.Context, cfg *config.Config, deps Deps) *Model {
	st := NewStyles(cfg.Theme == config.ThemeDark)
	m := &Model{
		ctx:      ctx,
		cfg:      cfg,
		registry: deps.Registry,
		host:     deps.Host,
		ai:       deps.AI,
		loading:  true,
		tab:      parseTab(cfg.Tab),
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		styles:   st,
		input:    textinput.New(),
		area:     textarea.New(),
		spin:     spinner.New(),
		values:   map[string]any{},
	}
	if m.registry == nil {
		m.registry = editor.NewRegistry()
	}
	if m.host == nil {
		m.host = &host.Recorder{}
	}
	m.spin.Spinner = spinner.Dot
	m.input.CharLimit = 512
	m.area.ShowLineNumbers = false
	m.area.CharLimit = 0
	m.area.SetHeight(6)
	m.modalVP = viewport.New(80, 20)

	popts := []progress.Option{progress.WithColors(st.BarActive, st.BarSuccess)}
	if deps.Clock != nil {
		popts = append(popts, progress.WithClock(deps.Clock))
	}
	m.progress = progress.New("Inspecting", cfg.Tick(), popts...)

	m.projects = newExplorer("projects", []column{
		{Field: "name", Title: "Name", Width: 22},
		{Field: "id", Title: "ID", Width: 16},
		{Field: "platforms", Title: "Platforms", Width: 16},
		{Field: "boards", Title: "Boards", Width: 18},
		{Field: "modified", Title: "Modified", Kind: table.KindTime, Width: 17, Format: timeCell},
		{Field: "path", Title: "Path", Width: 20},
	}, []table.SortSpec{{Column: "modified", Desc: true}}, st)

	m.sections = newExplorer("sections", []column{
		{Field: "name", Title: "Section", Width: 16},
		{Field: "type", Title: "Type", Width: 8},
		{Field: "address", Title: "Address", Kind: table.KindNumber, Width: 11, Format: hexCell},
		{Field: "size", Title: "Size", Kind: table.KindNumber, Width: 10, Format: sizeCell},
	}, []table.SortSpec{{Column: "address"}}, st)

	m.symbols = newExplorer("symbols", []column{
		{Field: "name", Title: "Symbol", Width: 24},
		{Field: "type", Title: "Type", Width: 8},
		{Field: "section", Title: "Section", Width: 10},
		{Field: "address", Title: "Address", Kind: table.KindNumber, Width: 11, Format: hexCell},
		{Field: "size", Title: "Size", Kind: table.KindNumber, Width: 10, Format: sizeCell},
		{Field: "file", Title: "Location", Width: 20},
	}, []table.SortSpec{{Column: "size", Desc: true}, {Column: "name"}}, st)

	m.defects = newExplorer("defects", []column{
		{Field: "severity", Title: "Severity", Width: 9, SortField: "rank", Kind: table.KindNumber},
		{Field: "tool", Title: "Tool", Width: 9},
		{Field: "category", Title: "Category", Width: 12},
		{Field: "file", Title: "File", Width: 22},
		{Field: "line", Title: "Line", Kind: table.KindNumber, Width: 6, Format: zeroBlank},
		{Field: "message", Title: "Message", Width: 30},
	}, []table.SortSpec{{Column: "rank", Desc: true}, {Column: "file"}, {Column: "line"}}, st)
	return m
}

// Run shows the dashboard until the user quits or ctx ends.
func Run(ctx context.Context, cfg *config.Config, deps Deps) error {
	m := initialModel(ctx, cfg, deps)
	p := tea.NewProgram(m, programOptions(ctx, cfg)...)
	_, err := p.Run()
	m.shutdown()
	return err
}

func programOptions(ctx context.Context, cfg *config.Config) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if cfg.UseStdin {
		// stdin carries step events, so keys come from the terminal.
		opts = append(opts, tea.WithInputTTY())
	}
	return opts
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(loadCmd(m.cfg.Workspace), m.spin.Tick)
}

// shutdown releases the progress timer and the event source.
func (m *Model) shutdown() {
	m.progress.Stop()
	m.stopIngest()
}
