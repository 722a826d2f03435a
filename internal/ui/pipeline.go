package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"devhome/internal/ai"
	"devhome/internal/export"
	"devhome/internal/ingest"
	"devhome/internal/model"
	"devhome/internal/progress"
	"devhome/internal/store"
	"devhome/internal/table"
	"devhome/internal/util/logx"
)

type loadedMsg struct {
	store *store.Store
	err   error
}

type eventMsg struct {
	gen int
	ev  ingest.Event
}

type ingestErrMsg struct {
	gen int
	err error
}

type ingestDoneMsg struct{ gen int }

type explainMsg struct {
	text string
	err  error
}

type savedMsg struct {
	id  string
	err error
}

type exportedMsg struct {
	path string
	rows int
	err  error
}

type toastMsg struct{ text string }

func loadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		s, err := store.Load(path)
		return loadedMsg{store: s, err: err}
	}
}

func reloadCmd(s *store.Store) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{store: s, err: s.Reload()}
	}
}

// startIngest (re)starts the step event source for the current project:
// stdin or a progress file when configured, otherwise a demo run over the
// inspection's pending steps.
func (m *Model) startIngest() tea.Cmd {
	if m.ingestCancel != nil {
		m.ingestCancel()
		m.ingestCancel = nil
	}
	m.ingestGen++
	opt := ingest.Options{}
	switch {
	case m.cfg.UseStdin:
		opt.Source = ingest.SourceStdin
	case m.cfg.ProgressFile != "":
		opt.Source, opt.Path, opt.Follow = ingest.SourceFile, m.cfg.ProgressFile, m.cfg.Follow
	case hasPending(m.progress.Steps()):
		opt.Source, opt.Demo = ingest.SourceDemo, m.progress.Steps()
	default:
		m.source = ""
		return nil
	}
	m.source = string(opt.Source)
	m.run = ""
	ctx, cancel := context.WithCancel(m.ctx)
	m.ingestCancel = cancel
	m.events, m.ingestErrs = ingest.Read(ctx, opt)
	logx.Infof("ingest: source=%s path=%s follow=%v", opt.Source, opt.Path, opt.Follow)
	return waitEvent(m.ingestGen, m.events, m.ingestErrs)
}

func (m *Model) stopIngest() {
	if m.ingestCancel != nil {
		m.ingestCancel()
		m.ingestCancel = nil
	}
	m.ingestGen++
}

func waitEvent(gen int, events <-chan ingest.Event, errs <-chan error) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return ingestDoneMsg{gen: gen}
				}
				return eventMsg{gen: gen, ev: ev}
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				return ingestErrMsg{gen: gen, err: err}
			}
		}
	}
}

func hasPending(steps []progress.Step) bool {
	for _, s := range steps {
		if !s.Done {
			return true
		}
	}
	return false
}

func stepsFromPlan(plan []model.StepPlan) []progress.Step {
	out := make([]progress.Step, len(plan))
	for i, p := range plan {
		out[i] = progress.Step{Name: p.Name, Done: p.Done, ExpectedDuration: p.Expected}
	}
	return out
}

func saveCmd(s *store.Store, id string, values map[string]any) tea.Cmd {
	snapshot := make(map[string]any, len(values))
	for k, v := range values {
		snapshot[k] = v
	}
	return func() tea.Msg {
		return savedMsg{id: id, err: s.SaveConfig(id, snapshot)}
	}
}

func exportCmd(path string, cols []string, rows []table.Row) tea.Cmd {
	return func() tea.Msg {
		var err error
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json", ".ndjson", ".jsonl":
			err = export.ToNDJSON(path, rows)
		default:
			err = export.ToCSV(path, cols, rows)
		}
		return exportedMsg{path: path, rows: len(rows), err: err}
	}
}

func explainCmd(ctx context.Context, client *ai.Client, d model.Defect, snippet string) tea.Cmd {
	return func() tea.Msg {
		text, err := client.ExplainDefect(ctx, d, snippet)
		return explainMsg{text: text, err: err}
	}
}

// readSnippet returns the lines around line (1-based) of a source file.
func readSnippet(root, file string, line, radius int) (string, error) {
	if file == "" {
		return "", errors.New("defect has no file")
	}
	p := file
	if !filepath.IsAbs(p) && root != "" {
		p = filepath.Join(root, p)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	lines := strings.Split(string(b), "\n")
	if line <= 0 {
		line = 1
	}
	from, to := line-1-radius, line+radius
	if from < 0 {
		from = 0
	}
	if to > len(lines) {
		to = len(lines)
	}
	if from >= to {
		return "", fmt.Errorf("line %d is past the end of %s", line, file)
	}
	var sb strings.Builder
	for i := from; i < to; i++ {
		fmt.Fprintf(&sb, "%4d| %s\n", i+1, lines[i])
	}
	return sb.String(), nil
}
