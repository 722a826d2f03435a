package editor

import "devhome/internal/model"

var (
	portOptions = map[string]bool{"upload_port": true, "monitor_port": true, "test_port": true}
	listOptions = map[string]bool{"lib_deps": true, "build_flags": true, "build_unflags": true, "build_src_filter": true, "lib_ignore": true}
)

// RegisterProjectEditors installs the editors for well-known project options.
func RegisterProjectEditors(reg *Registry) {
	reg.Register("serial-port", func(opt *model.Option) bool {
		return opt != nil && portOptions[opt.Name]
	}, func(opt *model.Option, in *InputProps, item *ItemProps, dec *DecoratorOptions, project *model.Project) Editor {
		var ports []string
		if project != nil {
			ports = project.Ports
		}
		return selectFrom(opt, in, item, dec, ports, "auto-detect")
	})

	reg.Register("board", func(opt *model.Option) bool {
		return opt != nil && opt.Name == "board"
	}, func(opt *model.Option, in *InputProps, item *ItemProps, dec *DecoratorOptions, project *model.Project) Editor {
		var boards []string
		if project != nil {
			boards = project.Boards
		}
		if len(boards) == 0 {
			return Default(opt, in, item, dec, project)
		}
		return selectFrom(opt, in, item, dec, boards, "")
	})

	reg.Register("list-option", func(opt *model.Option) bool {
		return opt != nil && listOptions[opt.Name]
	}, func(opt *model.Option, in *InputProps, item *ItemProps, dec *DecoratorOptions, _ *model.Project) Editor {
		dec.Trigger = TriggerBlur
		in.Placeholder = "one entry per line"
		return describe(KindTextArea, opt, in, item, dec)
	})
}

// selectFrom builds a select over choices, keeping the current value listed
// even when it is not among them.
func selectFrom(opt *model.Option, in *InputProps, item *ItemProps, dec *DecoratorOptions, choices []string, placeholder string) Editor {
	dec.Trigger = TriggerChange
	in.Placeholder = placeholder
	e := describe(KindSelect, opt, in, item, dec)
	e.Choices = append([]string(nil), choices...)
	if s, ok := e.Value.(string); ok && s != "" && !contains(e.Choices, s) {
		e.Choices = append(e.Choices, s)
	}
	return e
}
