package editor

import (
	"devhome/internal/model"
	"devhome/internal/util/logx"
)

// Default is the built-in strategy used when no registered rule accepts an
// option. Custom factories may delegate to it and adjust the result.
func Default(opt *model.Option, in *InputProps, item *ItemProps, dec *DecoratorOptions, _ *model.Project) Editor {
	s := defaultStrategy{in: in, item: item, dec: dec}
	if e, ok := Visit[Editor](opt, s); ok {
		return e
	}
	logx.Warnf("editor: option %q has unknown type %q, using text input", opt.Name, opt.RawType)
	return s.Text(opt)
}

type defaultStrategy struct {
	in   *InputProps
	item *ItemProps
	dec  *DecoratorOptions
}

func (s defaultStrategy) Text(opt *model.Option) Editor {
	s.dec.Trigger = TriggerBlur
	kind := KindInput
	if opt == nil || opt.Multiple {
		kind = KindTextArea
	}
	return describe(kind, opt, s.in, s.item, s.dec)
}

func (s defaultStrategy) File(opt *model.Option) Editor         { return s.Text(opt) }
func (s defaultStrategy) Integer(opt *model.Option) Editor      { return s.Text(opt) }
func (s defaultStrategy) IntegerRange(opt *model.Option) Editor { return s.Text(opt) }

func (s defaultStrategy) Boolean(opt *model.Option) Editor {
	s.dec.ValueProp = "checked"
	s.dec.Trigger = TriggerChange
	s.item.HideHelp = true
	return describe(KindCheckbox, opt, s.in, s.item, s.dec)
}

func (s defaultStrategy) Choice(opt *model.Option) Editor {
	s.dec.Trigger = TriggerChange
	kind := KindSelect
	if opt.Multiple {
		kind = KindMultiSelect
	}
	e := describe(kind, opt, s.in, s.item, s.dec)
	e.Choices = append([]string(nil), opt.Choices...)
	return e
}
