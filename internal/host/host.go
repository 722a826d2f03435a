// Package host performs actions outside the terminal: opening URLs and
// source locations, revealing files and reloading dashboard resources.
package host

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"

	"devhome/internal/util/logx"
)

type Actions interface {
	OpenURL(url string) error
	OpenTextDocument(path string, line, column int) error
	RevealFile(path string) error
	Reload(resource string) error
}

const (
	osDarwin  = "darwin"
	osWindows = "windows"
)

// Editors that accept a path:line:col goto argument, tried in order.
var gotoEditors = []string{"code", "codium", "cursor"}

// System launches the platform's handlers. Commands are started and not
// waited on.
type System struct {
	GOOS     string
	LookPath func(string) (string, error)
	Start    func(name string, args ...string) error
	// OnReload is called for Reload; without it Reload is a no-op.
	OnReload func(resource string) error
}

func NewSystem(onReload func(string) error) *System {
	return &System{GOOS: runtime.GOOS, LookPath: exec.LookPath, Start: startDetached, OnReload: onReload}
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func (s *System) run(name string, args ...string) error {
	logx.Debugf("host: %s %v", name, args)
	if err := s.Start(name, args...); err != nil {
		return fmt.Errorf("host: %s: %w", name, err)
	}
	return nil
}

func (s *System) openDefault(target string) error {
	switch s.GOOS {
	case osDarwin:
		return s.run("open", target)
	case osWindows:
		return s.run("cmd", "/c", "start", "", target)
	default:
		return s.run("xdg-open", target)
	}
}

func (s *System) OpenURL(url string) error {
	if url == "" {
		return errors.New("host: empty url")
	}
	return s.openDefault(url)
}

// OpenTextDocument jumps to line and column when a goto-capable editor is
// installed and otherwise opens the file with its default application.
func (s *System) OpenTextDocument(path string, line, column int) error {
	if path == "" {
		return errors.New("host: empty path")
	}
	for _, ed := range gotoEditors {
		if _, err := s.LookPath(ed); err == nil {
			return s.run(ed, "-g", Location(path, line, column))
		}
	}
	return s.openDefault(path)
}

func (s *System) RevealFile(path string) error {
	if path == "" {
		return errors.New("host: empty path")
	}
	switch s.GOOS {
	case osDarwin:
		return s.run("open", "-R", path)
	case osWindows:
		return s.run("explorer", "/select,", path)
	default:
		return s.run("xdg-open", filepath.Dir(path))
	}
}

func (s *System) Reload(resource string) error {
	if s.OnReload == nil {
		return nil
	}
	return s.OnReload(resource)
}

// Location formats path:line:col, dropping parts that are not positive.
func Location(path string, line, column int) string {
	if line <= 0 {
		return path
	}
	loc := path + ":" + strconv.Itoa(line)
	if column > 0 {
		loc += ":" + strconv.Itoa(column)
	}
	return loc
}

// Call is one recorded action.
type Call struct {
	Action string
	Target string
	Line   int
	Column int
}

// Recorder implements Actions by remembering calls.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
	Err   error
}

func (r *Recorder) record(c Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
	return r.Err
}

func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

func (r *Recorder) OpenURL(url string) error {
	return r.record(Call{Action: "openURL", Target: url})
}

func (r *Recorder) OpenTextDocument(path string, line, column int) error {
	return r.record(Call{Action: "openTextDocument", Target: path, Line: line, Column: column})
}

func (r *Recorder) RevealFile(path string) error {
	return r.record(Call{Action: "revealFile", Target: path})
}

func (r *Recorder) Reload(resource string) error {
	return r.record(Call{Action: "reload", Target: resource})
}
