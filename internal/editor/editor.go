package editor

import (
	"fmt"
	"strconv"
	"strings"

	"devhome/internal/model"
)

type Kind int

const (
	KindInput Kind = iota
	KindTextArea
	KindCheckbox
	KindSelect
	KindMultiSelect
)

func (k Kind) String() string {
	switch k {
	case KindTextArea:
		return "textarea"
	case KindCheckbox:
		return "checkbox"
	case KindSelect:
		return "select"
	case KindMultiSelect:
		return "multiselect"
	}
	return "input"
}

// Trigger names the event that commits an edited value.
type Trigger string

const (
	TriggerBlur   Trigger = "blur"
	TriggerChange Trigger = "change"
)

type InputProps struct {
	Placeholder string
	Disabled    bool
}

type ItemProps struct {
	Label    string
	Help     string
	HideHelp bool
}

type DecoratorOptions struct {
	ValueProp string
	Trigger   Trigger
	Initial   any
}

// Editor is the renderable description of one form control.
type Editor struct {
	Kind        Kind
	Name        string
	Label       string
	Help        string
	Placeholder string
	Disabled    bool
	Value       any
	ValueProp   string
	Trigger     Trigger
	Choices     []string
	Numeric     bool
	Min, Max    *int
}

// describe assembles an Editor from the option and the (possibly mutated) props.
func describe(kind Kind, opt *model.Option, in *InputProps, item *ItemProps, dec *DecoratorOptions) Editor {
	e := Editor{
		Kind:        kind,
		Placeholder: in.Placeholder,
		Disabled:    in.Disabled,
		Label:       item.Label,
		ValueProp:   dec.ValueProp,
		Trigger:     dec.Trigger,
		Value:       dec.Initial,
	}
	if !item.HideHelp {
		e.Help = item.Help
	}
	if e.ValueProp == "" {
		e.ValueProp = "value"
	}
	if opt != nil {
		e.Name = opt.Name
		if e.Label == "" {
			e.Label = opt.Label()
		}
		if e.Help == "" && !item.HideHelp {
			e.Help = opt.Description
		}
		if e.Value == nil {
			e.Value = opt.Default
		}
		e.Min, e.Max = opt.Min, opt.Max
		e.Numeric = opt.Type == model.OptionInteger || opt.Type == model.OptionIntegerRange
	}
	return e
}

// Display renders a value the way the control shows it.
func (e Editor) Display(v any) string {
	switch e.Kind {
	case KindCheckbox:
		if truthy(v) {
			return "[x]"
		}
		return "[ ]"
	case KindMultiSelect:
		return strings.Join(ToList(v), ", ")
	case KindTextArea:
		return strings.Join(ToList(v), " ⏎ ")
	}
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// Text renders a value as editable text that Parse reads back unchanged.
// List entries go one per line since they may contain commas.
func (e Editor) Text(v any) string {
	switch e.Kind {
	case KindTextArea:
		return strings.Join(ToList(v), "\n")
	case KindCheckbox:
		return strconv.FormatBool(truthy(v))
	}
	return e.Display(v)
}

// Parse converts raw text typed into the control into a typed value and
// validates integer bounds.
func (e Editor) Parse(raw string) (any, error) {
	switch e.Kind {
	case KindCheckbox:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%s: expected true or false", e.Name)
		}
		return b, nil
	case KindTextArea:
		return splitLines(raw), nil
	case KindMultiSelect:
		vals := splitLines(strings.ReplaceAll(raw, ",", "\n"))
		for _, v := range vals {
			if len(e.Choices) > 0 && !contains(e.Choices, v) {
				return nil, fmt.Errorf("%s: %q is not one of %s", e.Name, v, strings.Join(e.Choices, ", "))
			}
		}
		return vals, nil
	case KindSelect:
		v := strings.TrimSpace(raw)
		if len(e.Choices) > 0 && !contains(e.Choices, v) {
			return nil, fmt.Errorf("%s: %q is not one of %s", e.Name, v, strings.Join(e.Choices, ", "))
		}
		return v, nil
	}
	if !e.Numeric {
		return strings.TrimSpace(raw), nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: expected an integer", e.Name)
	}
	if e.Min != nil && n < *e.Min {
		return nil, fmt.Errorf("%s: %d is below the minimum %d", e.Name, n, *e.Min)
	}
	if e.Max != nil && n > *e.Max {
		return nil, fmt.Errorf("%s: %d is above the maximum %d", e.Name, n, *e.Max)
	}
	return n, nil
}

// ToList normalizes stored multi-values (lists, or newline separated text).
// Entries are kept as is; commas inside an entry are not separators.
func ToList(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, it := range t {
			out = append(out, fmt.Sprint(it))
		}
		return out
	case string:
		return splitLines(t)
	}
	return []string{fmt.Sprint(v)}
}

func splitLines(raw string) []string {
	out := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(t)
		return b
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
