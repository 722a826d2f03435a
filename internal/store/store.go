package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"devhome/internal/model"
	"devhome/internal/util/logx"
)

var ErrNotFound = errors.New("store: not found")

// Workspace is the document the host application hands over: already
// resolved projects, the option schema, option values and inspection results.
type Workspace struct {
	Projects    []model.Project             `json:"projects" yaml:"projects"`
	Schema      []model.Option              `json:"schema" yaml:"schema"`
	Config      map[string]map[string]any   `json:"config,omitempty" yaml:"config,omitempty"`
	Inspections map[string]model.Inspection `json:"inspections,omitempty" yaml:"inspections,omitempty"`
}

type Store struct {
	mu   sync.RWMutex
	path string
	ws   Workspace
	// saved option values per project, layered over ws.Config
	overrides map[string]map[string]any
}

func Load(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the workspace and any saved overrides.
func (s *Store) Reload() error {
	ws, err := readWorkspace(s.path)
	if err != nil {
		return err
	}
	seen := map[string]bool{}
	files := map[string]string{}
	for i := range ws.Projects {
		p := &ws.Projects[i]
		if p.ID == "" {
			p.ID = slug(p.Name)
		}
		if p.ID == "" {
			return fmt.Errorf("store: project #%d has neither id nor name", i+1)
		}
		if seen[p.ID] {
			return fmt.Errorf("store: duplicate project id %q", p.ID)
		}
		seen[p.ID] = true
		f := slug(p.ID)
		if f == "" || strings.Trim(f, ".") == "" {
			return fmt.Errorf("store: project id %q has no usable file name", p.ID)
		}
		if other, ok := files[f]; ok {
			return fmt.Errorf("store: project ids %q and %q share the config file %s.yaml", other, p.ID, f)
		}
		files[f] = p.ID
	}
	for i := range ws.Schema {
		if err := ws.Schema[i].Resolve(); err != nil {
			logx.Warnf("store: schema option %q: %v", ws.Schema[i].Name, err)
		}
	}
	overrides := map[string]map[string]any{}
	for id := range seen {
		vals, err := readOverrides(s.overridePath(id))
		if err != nil {
			return err
		}
		if vals != nil {
			overrides[id] = vals
		}
	}

	s.mu.Lock()
	s.ws = ws
	s.overrides = overrides
	s.mu.Unlock()
	logx.Infof("store: loaded %s: %d projects, %d options", s.path, len(ws.Projects), len(ws.Schema))
	return nil
}

func readWorkspace(path string) (Workspace, error) {
	var ws Workspace
	b, err := os.ReadFile(path)
	if err != nil {
		return ws, fmt.Errorf("store: read workspace: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(b, &ws)
	} else {
		err = yaml.Unmarshal(b, &ws)
	}
	if err != nil {
		return ws, fmt.Errorf("store: decode %s: %w", path, err)
	}
	return ws, nil
}

func readOverrides(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read overrides: %w", err)
	}
	vals := map[string]any{}
	if err := yaml.Unmarshal(b, &vals); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", path, err)
	}
	return vals, nil
}

func (s *Store) Path() string { return s.path }

// Projects returns the projects, most recently modified first.
func (s *Store) Projects() []model.Project {
	s.mu.RLock()
	out := append([]model.Project(nil), s.ws.Projects...)
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Modified.After(out[j].Modified) })
	return out
}

func (s *Store) Project(id string) (model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.ws.Projects {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Project{}, fmt.Errorf("project %q: %w", id, ErrNotFound)
}

func (s *Store) Schema() []model.Option {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Option(nil), s.ws.Schema...)
}

// Config returns the option values of a project, saved values taking
// precedence over the workspace document.
func (s *Store) Config(id string) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := map[string]any{}
	for k, v := range s.ws.Config[id] {
		out[k] = v
	}
	for k, v := range s.overrides[id] {
		out[k] = v
	}
	return out
}

func (s *Store) Inspection(id string) (model.Inspection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	in, ok := s.ws.Inspections[id]
	if !ok {
		return model.Inspection{}, fmt.Errorf("inspection %q: %w", id, ErrNotFound)
	}
	return in, nil
}

func (s *Store) overridePath(id string) string {
	return filepath.Join(filepath.Dir(s.path), ".devhome", slug(id)+".yaml")
}

// SaveConfig writes the option values of a project next to the workspace.
// The file is replaced atomically.
func (s *Store) SaveConfig(id string, values map[string]any) error {
	if _, err := s.Project(id); err != nil {
		return err
	}
	p := s.overridePath(id)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	b, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("store: encode config: %w", err)
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("store: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("store: %w", err)
	}

	saved := make(map[string]any, len(values))
	for k, v := range values {
		saved[k] = v
	}
	s.mu.Lock()
	s.overrides[id] = saved
	s.mu.Unlock()
	logx.Infof("store: saved %d options of %s to %s", len(values), id, p)
	return nil
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	dash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '.':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
