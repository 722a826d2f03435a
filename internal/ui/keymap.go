package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type KeyMap struct {
	NextTab     key.Binding
	PrevTab     key.Binding
	JumpTab     key.Binding
	Up          key.Binding
	Down        key.Binding
	PrevCol     key.Binding
	NextCol     key.Binding
	Sort        key.Binding
	SortDir     key.Binding
	Search      key.Binding
	SearchNext  key.Binding
	SearchPrev  key.Binding
	Filter      key.Binding
	Expr        key.Binding
	ClearFilter key.Binding
	Export      key.Binding
	Inspect     key.Binding
	Open        key.Binding
	Reveal      key.Binding
	CWE         key.Binding
	Explain     key.Binding
	Symbols     key.Binding
	Toggle      key.Binding
	Edit        key.Binding
	Save        key.Binding
	Reload      key.Binding
	AppLogs     key.Binding
	Help        key.Binding
	Close       key.Binding
	Quit        key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextTab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous tab")),
		JumpTab:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "jump to tab")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous row")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next row")),
		PrevCol:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous column / choice")),
		NextCol:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next column / choice")),
		Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort by next column")),
		SortDir:     key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "toggle sort direction")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		SearchNext:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
		SearchPrev:  key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "previous match")),
		Filter:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter selected column")),
		Expr:        key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "filter by expression")),
		ClearFilter: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear filter")),
		Export:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export view")),
		Inspect:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "inspect row")),
		Open:        key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open project / location")),
		Reveal:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reveal file")),
		CWE:         key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "open CWE entry")),
		Explain:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "explain defect (OpenAI)")),
		Symbols:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "sections / symbols")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle option")),
		Edit:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit option")),
		Save:        key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save options")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload workspace")),
		AppLogs:     key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "application logs")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Close:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Help, k.Quit}
}

// FullHelp groups match helpGroups.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.JumpTab, k.Up, k.Down, k.PrevCol, k.NextCol},
		{k.Sort, k.SortDir, k.Search, k.SearchNext, k.SearchPrev, k.Filter, k.Expr, k.ClearFilter},
		{k.Inspect, k.Export, k.Open, k.Reveal, k.CWE, k.Explain, k.Symbols},
		{k.Toggle, k.Edit, k.Save},
		{k.Reload, k.AppLogs, k.Help, k.Quit},
	}
}

var helpGroups = []string{"Navigation", "Table", "Actions", "Options", "Control"}

// keyMsgFor synthesizes the key press of a binding so help entries can run it.
func keyMsgFor(b key.Binding) tea.KeyMsg {
	keys := b.Keys()
	if len(keys) == 0 {
		return tea.KeyMsg{}
	}
	switch keys[0] {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys[0])}
}

func keyCmd(b key.Binding) tea.Cmd {
	msg := keyMsgFor(b)
	return func() tea.Msg { return msg }
}
