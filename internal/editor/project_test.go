package editor

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"devhome/internal/model"
)

func TestProjectEditors(t *testing.T) {
	reg := NewRegistry()
	RegisterProjectEditors(reg)
	project := &model.Project{Ports: []string{"/dev/ttyUSB0", "/dev/ttyACM0"}, Boards: []string{"uno", "esp32dev"}}

	port := reg.Resolve(opt("upload_port", model.OptionText), nil, nil, &DecoratorOptions{Initial: "COM3"}, project)
	if port.Kind != KindSelect {
		t.Fatalf("expected select for ports, got %s", port.Kind)
	}
	if diff := cmp.Diff([]string{"/dev/ttyUSB0", "/dev/ttyACM0", "COM3"}, port.Choices); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	board := reg.Resolve(opt("board", model.OptionText), nil, nil, nil, project)
	if board.Kind != KindSelect || len(board.Choices) != 2 {
		t.Fatalf("expected board select, got %+v", board)
	}
	if bare := reg.Resolve(opt("board", model.OptionText), nil, nil, nil, &model.Project{}); bare.Kind != KindInput {
		t.Fatalf("board without known boards should be a text input, got %s", bare.Kind)
	}

	in := &InputProps{}
	deps := reg.Resolve(opt("lib_deps", model.OptionText), in, nil, nil, project)
	if deps.Kind != KindTextArea || in.Placeholder == "" {
		t.Fatalf("expected textarea with placeholder, got %+v", deps)
	}
	if reg.IsCustomized(opt("monitor_speed", model.OptionInteger)) {
		t.Fatalf("monitor_speed should use the default strategy")
	}
}
