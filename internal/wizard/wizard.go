// Package wizard edits project options interactively outside the dashboard.
package wizard

import (
	"context"
	"fmt"

	"devhome/internal/editor"
	"devhome/internal/table"
)

// Run prompts every enabled editor in order and returns the collected values
// keyed by option name. Answers are parsed and validated by the editor, so
// integer bounds hold even when the driver skips validation.
func Run(ctx context.Context, d PromptDriver, editors []editor.Editor) (map[string]any, error) {
	out := make(map[string]any, len(editors))
	for _, e := range editors {
		if e.Disabled {
			continue
		}
		v, err := ask(ctx, d, e)
		if err != nil {
			return nil, err
		}
		out[e.Name] = v
	}
	return out, nil
}

func ask(ctx context.Context, d PromptDriver, e editor.Editor) (any, error) {
	kind := e.Kind
	if (kind == editor.KindSelect || kind == editor.KindMultiSelect) && len(e.Choices) == 0 {
		// nothing to pick from, e.g. no serial ports detected
		kind = editor.KindInput
	}
	switch kind {
	case editor.KindCheckbox:
		def, _ := e.Value.(bool)
		return d.Confirm(ctx, ConfirmConfig{Message: e.Label, Default: def, Help: e.Help})
	case editor.KindSelect:
		idx, err := d.Select(ctx, SelectConfig{
			Message:      e.Label,
			Options:      e.Choices,
			DefaultIndex: indexOf(e.Choices, table.Stringify(e.Value)),
			Help:         e.Help,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(e.Choices) {
			return nil, fmt.Errorf("wizard: %s: no choice selected", e.Name)
		}
		return e.Choices[idx], nil
	case editor.KindMultiSelect:
		idx, err := d.MultiSelect(ctx, SelectConfig{
			Message:  e.Label,
			Options:  e.Choices,
			Defaults: indicesOf(e.Choices, editor.ToList(e.Value)),
			Help:     e.Help,
		})
		if err != nil {
			return nil, err
		}
		vals := make([]string, 0, len(idx))
		for _, i := range idx {
			if i >= 0 && i < len(e.Choices) {
				vals = append(vals, e.Choices[i])
			}
		}
		return vals, nil
	case editor.KindTextArea:
		raw, err := d.TextArea(ctx, TextAreaConfig{
			Message: e.Label,
			Default: e.Text(e.Value),
			Help:    e.Help,
		})
		if err != nil {
			return nil, err
		}
		return e.Parse(raw)
	}
	raw, err := d.Input(ctx, InputConfig{
		Message:   e.Label,
		Default:   e.Text(e.Value),
		Help:      e.Help,
		Validator: func(s string) error { _, err := e.Parse(s); return err },
	})
	if err != nil {
		return nil, err
	}
	return e.Parse(raw)
}
