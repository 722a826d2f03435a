package model

import (
	"strings"
	"time"
)

type MemorySection struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Address uint64 `json:"address" yaml:"address"`
	Size    int64  `json:"size" yaml:"size"`
}

type Symbol struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Bind    string `json:"bind,omitempty" yaml:"bind,omitempty"`
	Section string `json:"section" yaml:"section"`
	Address uint64 `json:"address" yaml:"address"`
	Size    int64  `json:"size" yaml:"size"`
	File    string `json:"file,omitempty" yaml:"file,omitempty"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
}

type MemoryTotals struct {
	Flash    int64 `json:"flash" yaml:"flash"`
	FlashMax int64 `json:"flashMax,omitempty" yaml:"flashMax,omitempty"`
	RAM      int64 `json:"ram" yaml:"ram"`
	RAMMax   int64 `json:"ramMax,omitempty" yaml:"ramMax,omitempty"`
}

type Memory struct {
	Total    MemoryTotals    `json:"total" yaml:"total"`
	Sections []MemorySection `json:"sections" yaml:"sections"`
	Symbols  []Symbol        `json:"symbols" yaml:"symbols"`
}

type Defect struct {
	Tool     string `json:"tool" yaml:"tool"`
	Severity string `json:"severity" yaml:"severity"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
	Message  string `json:"message" yaml:"message"`
	File     string `json:"file" yaml:"file"`
	Line     int    `json:"line" yaml:"line"`
	Column   int    `json:"column,omitempty" yaml:"column,omitempty"`
	CWE      int    `json:"cwe,omitempty" yaml:"cwe,omitempty"`
}

// StepPlan is the persisted form of an inspection step.
type StepPlan struct {
	Name     string        `json:"name" yaml:"name"`
	Done     bool          `json:"done" yaml:"done"`
	Expected time.Duration `json:"expected" yaml:"expected"`
}

type Inspection struct {
	Memory  *Memory    `json:"memory,omitempty" yaml:"memory,omitempty"`
	Defects []Defect   `json:"defects,omitempty" yaml:"defects,omitempty"`
	Steps   []StepPlan `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// SeverityRank orders severities high > medium > low; unknown values rank lowest.
func SeverityRank(s string) int {
	switch strings.ToLower(s) {
	case "high":
		return 3
	case "medium":
		return 2
	case "low":
		return 1
	}
	return 0
}

func (s MemorySection) Record() map[string]any {
	return map[string]any{"name": s.Name, "type": s.Type, "address": s.Address, "size": s.Size}
}

func (s Symbol) Record() map[string]any {
	return map[string]any{
		"name": s.Name, "type": s.Type, "bind": s.Bind, "section": s.Section,
		"address": s.Address, "size": s.Size, "file": s.File, "line": s.Line,
	}
}

func (d Defect) Record() map[string]any {
	return map[string]any{
		"tool": d.Tool, "severity": d.Severity, "category": d.Category, "id": d.ID,
		"message": d.Message, "file": d.File, "line": d.Line, "column": d.Column, "cwe": d.CWE,
	}
}
