package model

import "time"

type Project struct {
	ID           string    `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	Path         string    `json:"path" yaml:"path"`
	Description  string    `json:"description,omitempty" yaml:"description,omitempty"`
	Platforms    []string  `json:"platforms,omitempty" yaml:"platforms,omitempty"`
	Boards       []string  `json:"boards,omitempty" yaml:"boards,omitempty"`
	Environments []string  `json:"environments,omitempty" yaml:"environments,omitempty"`
	Ports        []string  `json:"ports,omitempty" yaml:"ports,omitempty"`
	Modified     time.Time `json:"modified" yaml:"modified"`
}

// Record flattens a project into the field map consumed by table rows.
func (p Project) Record() map[string]any {
	return map[string]any{
		"id":           p.ID,
		"name":         p.Name,
		"path":         p.Path,
		"description":  p.Description,
		"platforms":    joinList(p.Platforms),
		"boards":       joinList(p.Boards),
		"environments": joinList(p.Environments),
		"modified":     p.Modified,
	}
}

func joinList(v []string) string {
	out := ""
	for i, s := range v {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
