package editor

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"devhome/internal/model"
	"devhome/internal/util/logx"
)

func opt(name string, typ model.OptionType) *model.Option {
	return &model.Option{Name: name, Type: typ, RawType: string(typ)}
}

func TestRegistryFirstMatchWins(t *testing.T) {
	reg := NewRegistry()
	always := func(*model.Option) bool { return true }
	reg.Register("first", always, func(o *model.Option, in *InputProps, item *ItemProps, dec *DecoratorOptions, _ *model.Project) Editor {
		return Editor{Name: "first"}
	})
	reg.Register("second", always, func(o *model.Option, in *InputProps, item *ItemProps, dec *DecoratorOptions, _ *model.Project) Editor {
		return Editor{Name: "second"}
	})

	if got := reg.Resolve(opt("x", model.OptionText), nil, nil, nil, nil); got.Name != "first" {
		t.Fatalf("expected first rule to win, got %q", got.Name)
	}
}

func TestRegistryIsCustomized(t *testing.T) {
	reg := NewRegistry()
	reg.Register("ports", func(o *model.Option) bool { return o != nil && o.Name == "upload_port" }, Default)

	if !reg.IsCustomized(opt("upload_port", model.OptionText)) {
		t.Fatalf("expected upload_port to be customized")
	}
	if reg.IsCustomized(opt("board", model.OptionText)) {
		t.Fatalf("expected board to use the default strategy")
	}
	if reg.IsCustomized(nil) {
		t.Fatalf("nil option should not match")
	}
}

func TestRegisterIsIdempotentByName(t *testing.T) {
	reg := NewRegistry()
	never := func(*model.Option) bool { return false }
	if !reg.Register("dup", never, Default) {
		t.Fatalf("first registration should succeed")
	}
	if reg.Register("dup", func(*model.Option) bool { return true }, Default) {
		t.Fatalf("second registration with the same name should be a no-op")
	}
	if reg.IsCustomized(opt("x", model.OptionText)) {
		t.Fatalf("the original rule should still be in place")
	}
	if reg.Register(" ", never, Default) || reg.Register("nil", nil, Default) {
		t.Fatalf("invalid registrations should be rejected")
	}
}

func TestDefaultBooleanMutatesProps(t *testing.T) {
	reg := NewRegistry()
	item := &ItemProps{Help: "enable the watchdog"}
	dec := &DecoratorOptions{Initial: true}
	e := reg.Resolve(opt("watchdog", model.OptionBoolean), &InputProps{}, item, dec, nil)

	if e.Kind != KindCheckbox {
		t.Fatalf("expected checkbox, got %s", e.Kind)
	}
	if dec.ValueProp != "checked" || dec.Trigger != TriggerChange || !item.HideHelp {
		t.Fatalf("expected props to be rewired, got dec=%+v item=%+v", dec, item)
	}
	if e.Help != "" {
		t.Fatalf("help should be suppressed, got %q", e.Help)
	}
	if e.Display(e.Value) != "[x]" {
		t.Fatalf("unexpected display %q", e.Display(e.Value))
	}
}

func TestDefaultStrategies(t *testing.T) {
	reg := NewRegistry()
	multi := opt("lib_extra_dirs", model.OptionText)
	multi.Multiple = true
	choice := opt("framework", model.OptionChoice)
	choice.Choices = []string{"arduino", "espidf"}
	multiChoice := opt("targets", model.OptionChoice)
	multiChoice.Choices = []string{"upload", "monitor"}
	multiChoice.Multiple = true

	cases := []struct {
		name    string
		opt     *model.Option
		kind    Kind
		trigger Trigger
		choices []string
	}{
		{"text", opt("build_type", model.OptionText), KindInput, TriggerBlur, nil},
		{"file", opt("extra_scripts", model.OptionFile), KindInput, TriggerBlur, nil},
		{"integer", opt("monitor_speed", model.OptionInteger), KindInput, TriggerBlur, nil},
		{"integer range", opt("upload_speed", model.OptionIntegerRange), KindInput, TriggerBlur, nil},
		{"multiple text", multi, KindTextArea, TriggerBlur, nil},
		{"untyped", nil, KindTextArea, TriggerBlur, nil},
		{"choice", choice, KindSelect, TriggerChange, []string{"arduino", "espidf"}},
		{"multi choice", multiChoice, KindMultiSelect, TriggerChange, []string{"upload", "monitor"}},
	}
	for _, c := range cases {
		dec := &DecoratorOptions{}
		e := reg.Resolve(c.opt, nil, nil, dec, nil)
		if e.Kind != c.kind {
			t.Fatalf("%s: expected %s, got %s", c.name, c.kind, e.Kind)
		}
		if dec.Trigger != c.trigger || e.Trigger != c.trigger {
			t.Fatalf("%s: expected trigger %s, got %s/%s", c.name, c.trigger, dec.Trigger, e.Trigger)
		}
		if diff := cmp.Diff(c.choices, e.Choices); diff != "" {
			t.Fatalf("%s: choices (-want +got):\n%s", c.name, diff)
		}
	}
}

func TestUnknownTypeWarnsAndFallsBack(t *testing.T) {
	logx.Reset()
	o := &model.Option{Name: "custom", RawType: "color"}
	if err := o.Resolve(); err == nil {
		t.Fatalf("expected unknown type error")
	}
	e := NewRegistry().Resolve(o, nil, nil, nil, nil)
	if e.Kind != KindInput {
		t.Fatalf("expected text input fallback, got %s", e.Kind)
	}
	if !strings.Contains(logx.Dump(), `unknown type "color"`) {
		t.Fatalf("expected a warning, got logs:\n%s", logx.Dump())
	}
}

func TestResolveAllSeedsValues(t *testing.T) {
	schema := []model.Option{
		*opt("monitor_speed", model.OptionInteger),
		{Name: "debug", Type: model.OptionBoolean, Default: false},
	}
	schema[0].Default = 9600
	editors := NewRegistry().ResolveAll(schema, map[string]any{"monitor_speed": 115200}, nil)
	if editors[0].Value != 115200 {
		t.Fatalf("configured value should win, got %v", editors[0].Value)
	}
	if editors[1].Value != false {
		t.Fatalf("default should be used, got %v", editors[1].Value)
	}
}
