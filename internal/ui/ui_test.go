package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"devhome/internal/config"
	"devhome/internal/editor"
	"devhome/internal/host"
	"devhome/internal/ingest"
	"devhome/internal/progress"
)

func newTestModel(t *testing.T, args ...string) (*Model, *host.Recorder) {
	t.Helper()
	src, err := os.ReadFile(filepath.Join("..", "store", "testdata", "workspace.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	ws := filepath.Join(t.TempDir(), "workspace.yaml")
	if err := os.WriteFile(ws, src, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Parse(append([]string{"-workspace", ws, "-offline"}, args...))
	if err != nil {
		t.Fatal(err)
	}
	reg := editor.NewRegistry()
	editor.RegisterProjectEditors(reg)
	rec := &host.Recorder{}
	m := initialModel(context.Background(), cfg, Deps{Registry: reg, Host: rec})
	t.Cleanup(m.shutdown)
	send(m, tea.WindowSizeMsg{Width: 140, Height: 40})
	return m, rec
}

func send(m *Model, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func load(t *testing.T, m *Model) {
	t.Helper()
	send(m, loadCmd(m.cfg.Workspace)())
	if m.loadErr != nil {
		t.Fatalf("load: %v", m.loadErr)
	}
}

func press(m *Model, keys string) tea.Cmd {
	var msg tea.KeyMsg
	switch keys {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	return send(m, msg)
}

func indexes(e *explorer) []int {
	out := make([]int, len(e.view))
	for i, r := range e.view {
		out[i] = r.Index
	}
	return out
}

func TestLoadSelectsMostRecentProject(t *testing.T) {
	m, _ := newTestModel(t)
	if !strings.Contains(m.View(), "Loading workspace") {
		t.Fatalf("expected loading placeholder before the store arrives")
	}
	load(t, m)
	if m.projectID != "weather-station" {
		t.Fatalf("selected %q", m.projectID)
	}
	if got := m.projects.view[0].Fields["id"]; got != "weather-station" {
		t.Fatalf("first row %v", got)
	}
	if strings.Contains(m.View(), "Loading workspace") {
		t.Fatalf("placeholder must go away once loaded")
	}
}

func TestLoadError(t *testing.T) {
	m, _ := newTestModel(t)
	send(m, loadedMsg{err: os.ErrNotExist})
	if !strings.Contains(m.View(), "Could not load workspace") {
		t.Fatalf("expected load error in view")
	}
}

func TestSortCycling(t *testing.T) {
	m, _ := newTestModel(t)
	load(t, m)
	press(m, "s")
	if got := m.projects.view[0].Fields["id"]; got != "blink" {
		t.Fatalf("ascending by name should start with blink, got %v", got)
	}
	press(m, "S")
	if got := m.projects.view[0].Fields["id"]; got != "weather-station" {
		t.Fatalf("descending by name should start with weather-station, got %v", got)
	}
}

func TestOpenProjectSwitchesToOptions(t *testing.T) {
	m, _ := newTestModel(t)
	load(t, m)
	press(m, "/")
	press(m, "blink")
	press(m, "enter")
	press(m, "o")
	if m.projectID != "blink" || m.tab != tabOptions {
		t.Fatalf("project %q tab %s", m.projectID, m.tab)
	}
}

func TestDefectsOrderAndHostActions(t *testing.T) {
	m, rec := newTestModel(t, "-project", "blink", "-tab", "defects")
	load(t, m)
	if diff := cmp.Diff([]int{1, 2, 0}, indexes(m.defects)); diff != "" {
		t.Fatalf("severity order (-want +got):\n%s", diff)
	}
	press(m, "o")
	press(m, "c")
	want := []host.Call{
		{Action: "openTextDocument", Target: "/home/dev/projects/blink/src/main.cpp", Line: 21, Column: 5},
		{Action: "openURL", Target: "https://cwe.mitre.org/data/definitions/788.html"},
	}
	if diff := cmp.Diff(want, rec.Calls()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestExpressionFilter(t *testing.T) {
	m, _ := newTestModel(t, "-project", "blink", "-tab", "defects")
	load(t, m)
	press(m, "F")
	press(m, "line > 10")
	press(m, "enter")
	if len(m.defects.view) != 2 {
		t.Fatalf("expected 2 defects past line 10, got %d", len(m.defects.view))
	}
	if !strings.Contains(m.View(), "expr: line > 10") {
		t.Fatalf("active filter should be shown")
	}
	press(m, "X")
	if len(m.defects.view) != 3 {
		t.Fatalf("clear should restore all rows")
	}

	press(m, "F")
	press(m, "line >")
	press(m, "enter")
	if m.lastMsg == "" || len(m.defects.view) != 3 {
		t.Fatalf("bad expression must be reported and not applied")
	}
}

func TestColumnFilter(t *testing.T) {
	m, _ := newTestModel(t, "-project", "blink", "-tab", "defects")
	load(t, m)
	press(m, "right") // tool
	press(m, "f")
	press(m, "clang")
	press(m, "enter")
	if diff := cmp.Diff([]int{2}, indexes(m.defects)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestInspectAndHelpModals(t *testing.T) {
	m, _ := newTestModel(t, "-project", "blink", "-tab", "defects")
	load(t, m)
	press(m, "enter")
	if !m.modalActive || m.modalKind != modalInspector || !strings.Contains(m.modalBody, "arrayIndexOutOfBounds") {
		t.Fatalf("inspector modal not shown: %v %v", m.modalActive, m.modalKind)
	}
	press(m, "esc")
	if m.modalActive {
		t.Fatalf("esc should close the modal")
	}
	press(m, "?")
	if m.modalKind != modalHelp {
		t.Fatalf("help modal expected")
	}
	press(m, "down")
	cmd := press(m, "enter")
	if m.modalActive || cmd == nil {
		t.Fatalf("enter should close help and run the entry")
	}
	if msg, ok := cmd().(tea.KeyMsg); !ok || msg.Type != tea.KeyShiftTab {
		t.Fatalf("second help entry should be shift+tab, got %#v", msg)
	}
}

func TestExplainOffline(t *testing.T) {
	m, _ := newTestModel(t, "-project", "blink", "-tab", "defects")
	load(t, m)
	if cmd := press(m, "i"); cmd != nil {
		t.Fatalf("no request expected offline")
	}
	if m.modalActive || !strings.Contains(m.lastMsg, "disabled") {
		t.Fatalf("expected disabled notice, got %q", m.lastMsg)
	}
}

func TestExportView(t *testing.T) {
	m, _ := newTestModel(t, "-project", "blink", "-tab", "memory")
	load(t, m)
	press(m, "e")
	if m.input.Value() != "blink-sections.csv" {
		t.Fatalf("default export path %q", m.input.Value())
	}
	out := filepath.Join(t.TempDir(), "sections.csv")
	m.input.SetValue(out)
	cmd := press(m, "enter")
	send(m, cmd())
	if !strings.Contains(m.lastMsg, "exported 3 rows") {
		t.Fatalf("status %q", m.lastMsg)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if lines[0] != "name,type,address,size" || len(lines) != 4 {
		t.Fatalf("unexpected csv:\n%s", b)
	}
}

func TestMemorySymbolsToggle(t *testing.T) {
	m, _ := newTestModel(t, "-project", "blink", "-tab", "memory")
	load(t, m)
	if m.current() != m.sections {
		t.Fatalf("sections shown first")
	}
	press(m, "m")
	if m.current() != m.symbols {
		t.Fatalf("m should switch to symbols")
	}
	if got := m.symbols.view[0].Fields["name"]; got != "main" {
		t.Fatalf("largest symbol first, got %v", got)
	}
	if !strings.Contains(m.View(), "Flash") {
		t.Fatalf("memory header missing")
	}
}

func optionIndex(t *testing.T, m *Model, name string) int {
	t.Helper()
	for i, e := range m.editors {
		if e.Name == name {
			return i
		}
	}
	t.Fatalf("no editor for %s", name)
	return -1
}

func TestOptionsEditing(t *testing.T) {
	m, _ := newTestModel(t, "-project", "blink", "-tab", "options")
	load(t, m)

	m.optSel = optionIndex(t, m, "debug_build")
	press(m, " ")
	if m.values["debug_build"] != true || !m.dirty {
		t.Fatalf("space should toggle the checkbox")
	}

	m.optSel = optionIndex(t, m, "board")
	press(m, "right")
	if m.values["board"] != "nanoatmega328" {
		t.Fatalf("board = %v", m.values["board"])
	}

	m.optSel = optionIndex(t, m, "upload_speed")
	press(m, "enter")
	if m.inlineMode != inlineEdit {
		t.Fatalf("enter should edit text options")
	}
	press(m, "5")
	press(m, "enter")
	if _, set := m.values["upload_speed"]; set || !strings.Contains(m.lastMsg, "minimum") {
		t.Fatalf("out of range value must be rejected, status %q", m.lastMsg)
	}

	cmd := m.saveOptions()
	if cmd == nil {
		t.Fatalf("save expected")
	}
	send(m, cmd())
	if m.dirty || m.lastMsg != "options saved" {
		t.Fatalf("dirty=%v status=%q", m.dirty, m.lastMsg)
	}
	if got := m.store.Config("blink")["debug_build"]; got != true {
		t.Fatalf("saved debug_build = %v", got)
	}
}

func TestListOptionKeepsCommas(t *testing.T) {
	m, _ := newTestModel(t, "-project", "weather-station", "-tab", "options")
	load(t, m)

	m.optSel = optionIndex(t, m, "lib_deps")
	press(m, "enter")
	if m.inlineMode != inlineEditList {
		t.Fatalf("list options should open the multi-line editor, mode %v", m.inlineMode)
	}
	if got := m.area.Value(); got != "bblanchon/ArduinoJson\nadafruit/DHT sensor library" {
		t.Fatalf("editor text %q", got)
	}

	m.area.SetValue("bblanchon/ArduinoJson @ >=6.0,<7\n-Wl,--gc-sections")
	send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.inlineMode != inlineNone {
		t.Fatalf("ctrl+s should close the editor")
	}
	want := []string{"bblanchon/ArduinoJson @ >=6.0,<7", "-Wl,--gc-sections"}
	if diff := cmp.Diff(want, m.values["lib_deps"]); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	// Reopening and applying without changes keeps the entries intact.
	press(m, "enter")
	send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if diff := cmp.Diff(want, m.values["lib_deps"]); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if !strings.Contains(m.View(), "⏎") {
		t.Fatalf("list values should render with entry separators")
	}
}

func TestProgressFollowsEvents(t *testing.T) {
	m, _ := newTestModel(t, "-project", "blink", "-tab", "progress")
	load(t, m)
	if m.source != string(ingest.SourceDemo) {
		t.Fatalf("pending steps should start the demo source, got %q", m.source)
	}
	if !m.progress.Ticking() {
		t.Fatalf("progress should tick while Code runs")
	}

	send(m, eventMsg{gen: m.ingestGen - 1, ev: ingest.Event{Step: "Code", Done: true}})
	if m.progress.Snapshot().Phase == progress.AllDone {
		t.Fatalf("stale events must be ignored")
	}
	send(m, eventMsg{gen: m.ingestGen, ev: ingest.Event{Step: "Code", Done: true}})
	if m.progress.Snapshot().Phase != progress.AllDone || m.progress.Ticking() {
		t.Fatalf("all steps done should stop the timer")
	}
	if !strings.Contains(m.View(), "100%") {
		t.Fatalf("view should show completion")
	}
}

func TestNewRunResetsSteps(t *testing.T) {
	m, _ := newTestModel(t, "-project", "blink", "-tab", "progress")
	load(t, m)
	send(m, eventMsg{gen: m.ingestGen, ev: ingest.Event{Run: "0192aaaa-run-one", Step: "Code"}})
	if len(m.progress.Steps()) < 2 {
		t.Fatalf("first run keeps the planned steps, got %+v", m.progress.Steps())
	}
	send(m, eventMsg{gen: m.ingestGen, ev: ingest.Event{Run: "0192bbbb-run-two", Step: "Flash", Expected: time.Second}})
	steps := m.progress.Steps()
	if len(steps) != 1 || steps[0].Name != "Flash" {
		t.Fatalf("new run should replace the steps, got %+v", steps)
	}
	if !strings.Contains(m.View(), "run: 0192bbbb") {
		t.Fatalf("view should show the run id")
	}
}

func TestReadSnippet(t *testing.T) {
	dir := t.TempDir()
	src := "a\nb\nc\nd\ne\n"
	if err := os.WriteFile(filepath.Join(dir, "x.c"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := readSnippet(dir, "x.c", 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != "   2| b\n   3| c\n   4| d\n" {
		t.Fatalf("snippet %q", got)
	}
	if _, err := readSnippet(dir, "x.c", 100, 1); err == nil {
		t.Fatalf("line past the end should fail")
	}
}

func TestStdinEventsReadKeysFromTerminal(t *testing.T) {
	ctx := context.Background()
	if got := len(programOptions(ctx, &config.Config{})); got != 2 {
		t.Fatalf("default options: %d", got)
	}
	if got := len(programOptions(ctx, &config.Config{UseStdin: true})); got != 3 {
		t.Fatalf("-stdin should add a terminal input option, got %d", got)
	}
}
