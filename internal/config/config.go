package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

var tabs = []string{"projects", "options", "memory", "defects", "progress"}

type Config struct {
	Workspace        string
	Project          string
	Tab              string
	Theme            Theme
	Offline          bool
	ProgressFile     string
	Follow           bool
	UseStdin         bool
	TickMS           int
	Configure        string
	Headless         bool
	ExportFormat     string
	ExportOut        string
	OpenAIModel      string
	OpenAIBase       string
	OpenAITimeoutSec int
	ShowVersion      bool
}

func Load() (*Config, error) {
	return Parse(os.Args[1:])
}

func Parse(args []string) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet("devhome", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.Workspace, "workspace", getenvDefault("DEVHOME_WORKSPACE", "workspace.yaml"), "workspace file (yaml or json) with projects, option schema and inspections")
	fs.StringVar(&cfg.Project, "project", "", "project id to open (default: first project)")
	fs.StringVar(&cfg.Tab, "tab", "projects", "initial tab: "+strings.Join(tabs, "|"))
	theme := string(ThemeDark)
	fs.StringVar(&theme, "theme", getenvDefault("DEVHOME_THEME", string(ThemeDark)), "theme: dark|light")
	fs.BoolVar(&cfg.Offline, "offline", false, "disable OpenAI defect explanations")
	fs.StringVar(&cfg.ProgressFile, "progress-file", "", "NDJSON step events to drive inspection progress")
	fs.BoolVar(&cfg.Follow, "follow", false, "follow the progress file (tail -f)")
	fs.BoolVar(&cfg.UseStdin, "stdin", false, "read step events from stdin")
	fs.IntVar(&cfg.TickMS, "tick-ms", getenvDefaultInt("DEVHOME_TICK_MS", 250), "progress refresh period in milliseconds")
	fs.StringVar(&cfg.Configure, "configure", "", "edit options of the given project in terminal prompts and exit")
	fs.BoolVar(&cfg.Headless, "headless", false, "print inspection progress to stderr instead of running the dashboard")
	fs.StringVar(&cfg.ExportFormat, "export", "", "export defects of -project: csv|json")
	fs.StringVar(&cfg.ExportOut, "out", "", "output path for export")
	fs.StringVar(&cfg.OpenAIModel, "openai-model", getenvDefault("DEVHOME_OPENAI_MODEL", "gpt-4o-mini"), "OpenAI model override")
	fs.StringVar(&cfg.OpenAIBase, "openai-base-url", getenvDefault("DEVHOME_OPENAI_BASE_URL", ""), "OpenAI base URL override")
	fs.IntVar(&cfg.OpenAITimeoutSec, "openai-timeout-sec", getenvDefaultInt("DEVHOME_OPENAI_TIMEOUT_SEC", 60), "OpenAI request timeout in seconds")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Theme = Theme(theme)
	if cfg.Theme != ThemeDark && cfg.Theme != ThemeLight {
		return nil, fmt.Errorf("unknown theme %q", theme)
	}
	if !validTab(cfg.Tab) {
		return nil, fmt.Errorf("unknown tab %q", cfg.Tab)
	}
	if cfg.ExportFormat != "" {
		if cfg.ExportFormat != "csv" && cfg.ExportFormat != "json" {
			return nil, fmt.Errorf("unknown export format %q", cfg.ExportFormat)
		}
		if cfg.ExportOut == "" {
			return nil, errors.New("--export requires --out path")
		}
	}
	if cfg.Follow && cfg.ProgressFile == "" {
		return nil, errors.New("--follow requires --progress-file")
	}
	if cfg.TickMS < 50 {
		cfg.TickMS = 50
	}
	return cfg, nil
}

func validTab(t string) bool {
	for _, v := range tabs {
		if v == t {
			return true
		}
	}
	return false
}

func getenvDefault(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvDefaultInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func (c *Config) Tick() time.Duration { return time.Duration(c.TickMS) * time.Millisecond }

func (c *Config) OpenAIKey() string { return os.Getenv("OPENAI_API_KEY") }

func (c *Config) String() string {
	return fmt.Sprintf("workspace=%s project=%s tab=%s theme=%s offline=%v progress=%s follow=%v", c.Workspace, c.Project, c.Tab, c.Theme, c.Offline, c.ProgressFile, c.Follow)
}
