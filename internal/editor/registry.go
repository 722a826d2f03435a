package editor

import (
	"strings"
	"sync"

	"devhome/internal/model"
)

// Matcher decides whether a rule handles the option. opt may be nil.
type Matcher func(opt *model.Option) bool

// Factory builds the editor for an accepted option. It may mutate the props
// the same way the default strategy does.
type Factory func(opt *model.Option, in *InputProps, item *ItemProps, dec *DecoratorOptions, project *model.Project) Editor

type rule struct {
	name  string
	match Matcher
	build Factory
}

// Registry selects editors for options. Rules are tried in registration
// order and the first accepting rule wins. It is built once at startup and
// handed to every consumer.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
	names map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// Register appends a rule. Registering a name twice keeps the first rule and
// reports false.
func (r *Registry) Register(name string, match Matcher, build Factory) bool {
	if r == nil || match == nil || build == nil {
		return false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.names[name]; ok {
		return false
	}
	r.names[name] = struct{}{}
	r.rules = append(r.rules, rule{name: name, match: match, build: build})
	return true
}

func (r *Registry) lookup(opt *model.Option) (rule, bool) {
	if r == nil {
		return rule{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.rules {
		if entry.match(opt) {
			return entry, true
		}
	}
	return rule{}, false
}

// IsCustomized reports whether a registered rule accepts the option.
func (r *Registry) IsCustomized(opt *model.Option) bool {
	_, ok := r.lookup(opt)
	return ok
}

// Resolve builds the editor for opt. Nil props are allocated so factories can
// always write through them.
func (r *Registry) Resolve(opt *model.Option, in *InputProps, item *ItemProps, dec *DecoratorOptions, project *model.Project) Editor {
	if in == nil {
		in = &InputProps{}
	}
	if item == nil {
		item = &ItemProps{}
	}
	if dec == nil {
		dec = &DecoratorOptions{}
	}
	if entry, ok := r.lookup(opt); ok {
		return entry.build(opt, in, item, dec, project)
	}
	return Default(opt, in, item, dec, project)
}

// ResolveAll builds editors for a schema, seeding each with the current value.
func (r *Registry) ResolveAll(schema []model.Option, values map[string]any, project *model.Project) []Editor {
	out := make([]Editor, 0, len(schema))
	for i := range schema {
		opt := &schema[i]
		dec := &DecoratorOptions{}
		if v, ok := values[opt.Name]; ok {
			dec.Initial = v
		}
		out = append(out, r.Resolve(opt, &InputProps{}, &ItemProps{}, dec, project))
	}
	return out
}
