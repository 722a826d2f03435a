package editor

import "devhome/internal/model"

// TypeVisitor has one method per declared option type, so adding a type to
// the model breaks every implementation until it handles the new case.
type TypeVisitor[T any] interface {
	Text(opt *model.Option) T
	Choice(opt *model.Option) T
	Integer(opt *model.Option) T
	IntegerRange(opt *model.Option) T
	Boolean(opt *model.Option) T
	File(opt *model.Option) T
}

// Visit dispatches on the option type. A nil option is an untyped custom
// field and visits Text. ok is false for types outside the closed set.
func Visit[T any](opt *model.Option, v TypeVisitor[T]) (out T, ok bool) {
	if opt == nil {
		return v.Text(nil), true
	}
	switch opt.Type {
	case model.OptionText:
		return v.Text(opt), true
	case model.OptionChoice:
		return v.Choice(opt), true
	case model.OptionInteger:
		return v.Integer(opt), true
	case model.OptionIntegerRange:
		return v.IntegerRange(opt), true
	case model.OptionBoolean:
		return v.Boolean(opt), true
	case model.OptionFile:
		return v.File(opt), true
	}
	return out, false
}
