package ai

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"devhome/internal/model"
	"devhome/internal/util/logx"
)

// Cache keeps explanations on disk so reopening a defect costs no request.
type Cache struct {
	dir string
}

// NewCache stores entries under dir, or under the OS temp dir when dir is empty.
func NewCache(dir string) *Cache {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "devhome-explain-cache")
	}
	return &Cache{dir: dir}
}

func cacheKey(d model.Defect, snippet string) string {
	h := sha1.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00%d\x00%s\x00%s", d.Tool, d.ID, d.File, d.Line, d.Message, snippet)
	return hex.EncodeToString(h.Sum(nil))
}

type cacheEntry struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Text string `json:"text"`
}

func (c *Cache) path(d model.Defect, snippet string) string {
	return filepath.Join(c.dir, "explain_"+cacheKey(d, snippet)+".json")
}

func (c *Cache) Get(d model.Defect, snippet string) (string, bool) {
	if c == nil {
		return "", false
	}
	b, err := os.ReadFile(c.path(d, snippet))
	if err != nil {
		return "", false
	}
	var e cacheEntry
	if err := json.Unmarshal(b, &e); err != nil || e.Text == "" {
		return "", false
	}
	return e.Text, true
}

// Put writes the entry atomically through a temp file.
func (c *Cache) Put(d model.Defect, snippet, text string) error {
	if c == nil {
		return nil
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	p := c.path(d, snippet)
	tmp := p + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cacheEntry{File: d.File, Line: d.Line, Text: text}); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, p); err != nil {
		return err
	}
	logx.Debugf("ai: cached explanation for %s:%d", d.File, d.Line)
	return nil
}
