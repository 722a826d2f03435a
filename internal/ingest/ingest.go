package ingest

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nxadm/tail"

	"devhome/internal/progress"
)

type SourceKind string

const (
	SourceStdin SourceKind = "stdin"
	SourceFile  SourceKind = "file"
	SourceDemo  SourceKind = "demo"
)

type Options struct {
	Source SourceKind
	Path   string
	Follow bool
	// Demo lists the steps the demo source walks through.
	Demo []progress.Step
}

// Event reports a change of one inspection step. Run identifies the
// inspection run; a new value means the previous step list is obsolete.
type Event struct {
	Run      string        `json:"run,omitempty"`
	Step     string        `json:"step"`
	Done     bool          `json:"done"`
	Expected time.Duration `json:"-"`
	When     time.Time     `json:"ts,omitempty"`
	Raw      string        `json:"-"`
}

type wireEvent struct {
	Run        string    `json:"run,omitempty"`
	Step       string    `json:"step"`
	Done       bool      `json:"done"`
	ExpectedMS int64     `json:"expectedMs,omitempty"`
	When       time.Time `json:"ts,omitempty"`
}

// ParseEvent decodes one event line, either a JSON object or logfmt pairs.
func ParseEvent(line string) (Event, error) {
	if !strings.HasPrefix(strings.TrimSpace(line), "{") {
		return parseLogfmt(line)
	}
	var w wireEvent
	if err := json.Unmarshal([]byte(line), &w); err != nil {
		return Event{}, fmt.Errorf("ingest: bad event: %w", err)
	}
	if strings.TrimSpace(w.Step) == "" {
		return Event{}, errors.New("ingest: event without step")
	}
	ev := Event{Run: w.Run, Step: w.Step, Done: w.Done, Expected: time.Duration(w.ExpectedMS) * time.Millisecond, When: w.When, Raw: line}
	if ev.When.IsZero() {
		ev.When = time.Now()
	}
	return ev, nil
}

func (e Event) Marshal() string {
	b, _ := json.Marshal(wireEvent{Run: e.Run, Step: e.Step, Done: e.Done, ExpectedMS: e.Expected.Milliseconds(), When: e.When})
	return string(b)
}

// Apply folds an event into a step list and returns the new list. Unknown
// steps are appended.
func Apply(steps []progress.Step, ev Event) []progress.Step {
	out := append([]progress.Step(nil), steps...)
	for i := range out {
		if out[i].Name == ev.Step {
			out[i].Done = ev.Done
			if ev.Expected > 0 {
				out[i].ExpectedDuration = ev.Expected
			}
			return out
		}
	}
	return append(out, progress.Step{Name: ev.Step, Done: ev.Done, ExpectedDuration: ev.Expected})
}

// Runs folds events of successive inspection runs into one step list.
type Runs struct {
	ID    string
	Steps []progress.Step
}

// Apply folds ev and reports whether it started a new run, in which case the
// previous steps were dropped first.
func (r *Runs) Apply(ev Event) bool {
	restarted := ev.Run != "" && r.ID != "" && ev.Run != r.ID
	if restarted {
		r.Steps = nil
	}
	if ev.Run != "" {
		r.ID = ev.Run
	}
	r.Steps = Apply(r.Steps, ev)
	return restarted
}

// Read streams events until the source ends or ctx is cancelled. Malformed
// lines are reported on the error channel and skipped.
func Read(ctx context.Context, opt Options) (<-chan Event, <-chan error) {
	out := make(chan Event, 64)
	errs := make(chan error, 16)

	go func() {
		defer close(out)
		defer close(errs)

		switch opt.Source {
		case SourceStdin:
			readFromReader(ctx, os.Stdin, out, errs)
		case SourceFile:
			if opt.Follow {
				readFromTail(ctx, opt.Path, out, errs)
				return
			}
			f, err := os.Open(opt.Path)
			if err != nil {
				errs <- err
				return
			}
			defer f.Close()
			readFromReader(ctx, f, out, errs)
		case SourceDemo:
			demo(ctx, opt.Demo, out)
		default:
			errs <- errors.New("ingest: unknown source kind")
		}
	}()

	return out, errs
}

func emit(ctx context.Context, line string, out chan<- Event, errs chan<- error) bool {
	if strings.TrimSpace(line) == "" {
		return true
	}
	ev, err := ParseEvent(line)
	if err != nil {
		select {
		case errs <- err:
		default:
		}
		return true
	}
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func readFromReader(ctx context.Context, r io.Reader, out chan<- Event, errs chan<- error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if !emit(ctx, scanner.Text(), out, errs) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		errs <- err
	}
}

func readFromTail(ctx context.Context, path string, out chan<- Event, errs chan<- error) {
	t, err := tail.TailFile(path, tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
		Poll:      true,
	})
	if err != nil {
		errs <- err
		return
	}
	defer t.Cleanup()
	for {
		select {
		case <-ctx.Done():
			_ = t.Stop()
			return
		case l, ok := <-t.Lines:
			if !ok {
				return
			}
			if l.Err != nil {
				errs <- l.Err
				continue
			}
			if !emit(ctx, l.Text, out, errs) {
				_ = t.Stop()
				return
			}
		}
	}
}

// NewRunID returns a time-ordered identifier for an inspection run.
func NewRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// demo completes each step after its expected duration, with a short floor so
// the walkthrough never stalls.
func demo(ctx context.Context, steps []progress.Step, out chan<- Event) {
	run := NewRunID()
	for _, s := range steps {
		if s.Done {
			continue
		}
		wait := s.ExpectedDuration
		if wait < 500*time.Millisecond {
			wait = 500 * time.Millisecond
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		select {
		case out <- Event{Run: run, Step: s.Name, Done: true, When: time.Now()}:
		case <-ctx.Done():
			return
		}
	}
}
