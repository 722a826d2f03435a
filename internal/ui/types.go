package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"devhome/internal/ai"
	"devhome/internal/config"
	"devhome/internal/editor"
	"devhome/internal/host"
	"devhome/internal/ingest"
	"devhome/internal/model"
	"devhome/internal/progress"
	"devhome/internal/store"
)

type tab int

const (
	tabProjects tab = iota
	tabOptions
	tabMemory
	tabDefects
	tabProgress
)

var tabNames = []string{"projects", "options", "memory", "defects", "progress"}

func (t tab) String() string { return tabNames[t] }

func parseTab(s string) tab {
	for i, n := range tabNames {
		if n == s {
			return tab(i)
		}
	}
	return tabProjects
}

type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalInspector
	modalLogs
	modalExplain
)

type inlineMode int

const (
	inlineNone inlineMode = iota
	inlineSearch
	inlineFilter
	inlineExpr
	inlineEdit
	inlineEditList
	inlineExport
)

// Deps are the collaborators the dashboard is handed at startup.
type Deps struct {
	Registry *editor.Registry
	Host     host.Actions
	AI       *ai.Client
	Clock    progress.Clock
}

type Model struct {
	ctx      context.Context
	cfg      *config.Config
	registry *editor.Registry
	host     host.Actions
	ai       *ai.Client

	// Data. store is nil until the first load completes.
	store      *store.Store
	loading    bool
	loadErr    error
	projectID  string
	project    *model.Project
	inspection *model.Inspection
	schema     []model.Option
	values     map[string]any
	dirty      bool
	saving     bool

	// Options tab
	editors []editor.Editor
	optSel  int

	// Explorers
	projects    *explorer
	sections    *explorer
	symbols     *explorer
	defects     *explorer
	showSymbols bool

	// Inspection progress
	progress     *progress.Model
	events       <-chan ingest.Event
	ingestErrs   <-chan error
	ingestCancel context.CancelFunc
	ingestGen    int
	source       string
	run          string

	// UI
	tab        tab
	keymap     KeyMap
	help       help.Model
	styles     Styles
	input      textinput.Model
	area       textarea.Model
	spin       spinner.Model
	termWidth  int
	termHeight int
	lastMsg    string

	inlineMode    inlineMode
	searchPattern string
	searchRegex   bool

	modalActive bool
	modalKind   modalKind
	modalVP     viewport.Model
	modalTitle  string
	modalBody   string
	explaining  bool
	helpItems   []helpItem
	helpSel     int
}

type helpItem struct {
	group   string
	binding key.Binding
}
