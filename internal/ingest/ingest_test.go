package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"devhome/internal/progress"
)

func TestParseEvent(t *testing.T) {
	ev, err := ParseEvent(`{"step":"Memory","done":true,"expectedMs":5000,"ts":"2026-10-01T10:00:00Z"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Step != "Memory" || !ev.Done || ev.Expected != 5*time.Second || ev.When.Year() != 2026 {
		t.Fatalf("unexpected event %+v", ev)
	}
	for _, bad := range []string{"not json", `{"done":true}`} {
		if _, err := ParseEvent(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseEventLogfmt(t *testing.T) {
	ev, err := ParseEvent(`step="Code analysis" done=false expected=1m30s ts=2026-10-01T10:00:00Z`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Step != "Code analysis" || ev.Done || ev.Expected != 90*time.Second || ev.When.Year() != 2026 {
		t.Fatalf("unexpected event %+v", ev)
	}
	ev, err = ParseEvent("step=Memory done=true expectedMs=250")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ev.Done || ev.Expected != 250*time.Millisecond || ev.When.IsZero() {
		t.Fatalf("unexpected event %+v", ev)
	}
	for _, bad := range []string{"done=true", "step=x done=maybe", "step=x expected=soon"} {
		if _, err := ParseEvent(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestSplitLogfmt(t *testing.T) {
	got := splitLogfmt(`a=1 b="two words"  c=x=y d=`)
	want := map[string]string{"a": "1", "b": "two words", "c": "x=y", "d": ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestApply(t *testing.T) {
	steps := []progress.Step{{Name: "Memory", ExpectedDuration: time.Second}}
	got := Apply(steps, Event{Step: "Memory", Done: true})
	got = Apply(got, Event{Step: "Code", Expected: 2 * time.Second})
	want := []progress.Step{
		{Name: "Memory", Done: true, ExpectedDuration: time.Second},
		{Name: "Code", ExpectedDuration: 2 * time.Second},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if steps[0].Done {
		t.Fatalf("input steps must not be modified")
	}
}

func TestRunsRestartOnNewRun(t *testing.T) {
	var r Runs
	if r.Apply(Event{Run: "a", Step: "Memory", Done: true}) {
		t.Fatalf("first run must not count as a restart")
	}
	r.Apply(Event{Step: "Code"})
	if r.ID != "a" || len(r.Steps) != 2 {
		t.Fatalf("unexpected state %+v", r)
	}
	if !r.Apply(Event{Run: "b", Step: "Code", Expected: time.Second}) {
		t.Fatalf("changed run id must restart")
	}
	want := []progress.Step{{Name: "Code", ExpectedDuration: time.Second}}
	if diff := cmp.Diff(want, r.Steps); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if NewRunID() == NewRunID() {
		t.Fatalf("run ids must be unique")
	}
}

func TestReadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "steps.ndjson")
	lines := []string{
		Event{Step: "Memory", Done: true}.Marshal(),
		"garbage",
		"",
		Event{Step: "Code", Done: true, Expected: time.Second}.Marshal(),
	}
	if err := os.WriteFile(p, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	events, errs := Read(ctx, Options{Source: SourceFile, Path: p})

	var names []string
	for ev := range events {
		names = append(names, ev.Step)
	}
	nerr := 0
	for range errs {
		nerr++
	}
	if diff := cmp.Diff([]string{"Memory", "Code"}, names); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if nerr != 1 {
		t.Fatalf("expected one parse error, got %d", nerr)
	}
}

func TestReadMissingFile(t *testing.T) {
	events, errs := Read(context.Background(), Options{Source: SourceFile, Path: filepath.Join(t.TempDir(), "none")})
	for range events {
	}
	if err := <-errs; err == nil {
		t.Fatalf("expected open error")
	}
}

func TestDemoStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	events, _ := Read(ctx, Options{Source: SourceDemo, Demo: []progress.Step{{Name: "Memory", ExpectedDuration: time.Hour}}})
	cancel()
	select {
	case _, ok := <-events:
		if ok {
			t.Fatalf("no event expected after cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("demo source did not stop")
	}
}
