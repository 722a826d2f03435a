// Package editor maps configuration option schema entries to editor
// descriptions. A Registry holds named matcher/factory rules tried in
// registration order; options no rule accepts fall back to the default
// strategy keyed by the declared option type.
//
// The default strategy writes control wiring back into the caller's
// ItemProps and DecoratorOptions (value property, change trigger, help
// suppression). Callers read those structs after Resolve returns.
package editor
