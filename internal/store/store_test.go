package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"devhome/internal/model"
)

func copyWorkspace(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile("testdata/workspace.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	p := filepath.Join(t.TempDir(), "workspace.yaml")
	if err := os.WriteFile(p, b, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return p
}

func TestLoadWorkspace(t *testing.T) {
	s, err := Load(copyWorkspace(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	projects := s.Projects()
	ids := []string{}
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	if diff := cmp.Diff([]string{"weather-station", "blink"}, ids); diff != "" {
		t.Fatalf("projects should be newest first with derived ids (-want +got):\n%s", diff)
	}

	schema := s.Schema()
	if schema[3].Type != model.OptionIntegerRange || *schema[3].Max != 921600 {
		t.Fatalf("unexpected option %+v", schema[3])
	}
	if last := schema[len(schema)-1]; last.Type != "" || last.RawType != "color" {
		t.Fatalf("unknown types should stay unresolved, got %+v", last)
	}

	in, err := s.Inspection("blink")
	if err != nil {
		t.Fatalf("inspection: %v", err)
	}
	if in.Memory.Sections[2].Address != 0x800100 || len(in.Memory.Symbols) != 4 {
		t.Fatalf("unexpected memory %+v", in.Memory)
	}
	if in.Steps[1].Expected != 20*time.Second {
		t.Fatalf("unexpected step %+v", in.Steps[1])
	}
	if _, err := s.Inspection("weather-station"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveConfigOverridesWorkspace(t *testing.T) {
	path := copyWorkspace(t)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := s.Config("blink")["monitor_speed"]; got != 115200 {
		t.Fatalf("unexpected monitor_speed %v", got)
	}

	if err := s.SaveConfig("blink", map[string]any{"monitor_speed": 57600, "debug_build": true}); err != nil {
		t.Fatalf("save: %v", err)
	}
	want := map[string]any{"board": "uno", "framework": "arduino", "monitor_speed": 57600, "debug_build": true}
	if diff := cmp.Diff(want, s.Config("blink")); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if diff := cmp.Diff(want, reloaded.Config("blink")); diff != "" {
		t.Fatalf("saved values should survive a reload (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(path), ".devhome", "blink.yaml.tmp")); !os.IsNotExist(err) {
		t.Fatalf("temp file should be gone, stat err=%v", err)
	}
	if err := s.SaveConfig("nope", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadJSONAndErrors(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "ws.json")
	doc := `{"projects":[{"id":"a","name":"A"},{"id":"a","name":"B"}]}`
	if err := os.WriteFile(p, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(p); err == nil {
		t.Fatalf("expected duplicate id error")
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestRejectsConfigFileCollisions(t *testing.T) {
	cases := map[string]string{
		"same file":   `{"projects":[{"id":"My Proj"},{"id":"my-proj"}]}`,
		"punctuation": `{"projects":[{"id":"!!!"}]}`,
		"dots":        `{"projects":[{"id":".."}]}`,
	}
	for name, doc := range cases {
		p := filepath.Join(t.TempDir(), "ws.json")
		if err := os.WriteFile(p, []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(p); err == nil {
			t.Fatalf("%s: expected load error", name)
		}
	}

	p := filepath.Join(t.TempDir(), "ws.json")
	if err := os.WriteFile(p, []byte(`{"projects":[{"id":"My Proj"},{"id":"my-proj-2"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(p); err != nil {
		t.Fatalf("distinct files should load: %v", err)
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{"Weather Station": "weather-station", "  ESP32 / Demo ": "esp32-demo", "a_b.c": "a_b.c"}
	for in, want := range cases {
		if got := slug(in); got != want {
			t.Fatalf("slug(%q) = %q, want %q", in, got, want)
		}
	}
}
