package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Base        lipgloss.Style
	Status      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Help        lipgloss.Style
	Title       lipgloss.Style
	Error       lipgloss.Style
	Warn        lipgloss.Style
	Success     lipgloss.Style
	Selected    lipgloss.Style
	Group       lipgloss.Style
	Severity    map[string]lipgloss.Style
	TableStyles TableStyles
	PopupBox    lipgloss.Style
	PopupTitle  lipgloss.Style

	JSONKey    lipgloss.Style
	JSONString lipgloss.Style
	JSONNumber lipgloss.Style
	JSONBool   lipgloss.Style
	JSONNull   lipgloss.Style
	JSONPunct  lipgloss.Style

	// hex colors handed to the progress bars
	BarActive  string
	BarSuccess string
}

type TableStyles struct {
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Selected lipgloss.Style
}

func NewStyles(dark bool) Styles {
	s := Styles{}
	if dark {
		s.Base = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
		s.Status = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		s.TabActive = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")).Underline(true)
		s.TabInactive = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		s.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
		s.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
		s.Group = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("110"))
		s.PopupBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("60")).Padding(1, 2)
		s.PopupTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
		s.JSONKey = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
		s.JSONString = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
		s.BarActive, s.BarSuccess = "#5A9BD5", "#4CAF50"
	} else {
		s.Base = lipgloss.NewStyle()
		s.Status = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.TabActive = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27")).Underline(true)
		s.TabInactive = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27"))
		s.Group = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("24"))
		s.PopupBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(1, 2)
		s.PopupTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27"))
		s.JSONKey = lipgloss.NewStyle().Foreground(lipgloss.Color("25"))
		s.JSONString = lipgloss.NewStyle().Foreground(lipgloss.Color("28"))
		s.BarActive, s.BarSuccess = "#1F6FB2", "#2E7D32"
	}
	s.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	s.Warn = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	s.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("70"))
	s.Selected = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220"))
	s.Severity = map[string]lipgloss.Style{
		"high":   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
	}
	s.JSONNumber = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	s.JSONBool = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	s.JSONNull = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	s.JSONPunct = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	s.TableStyles = TableStyles{
		Header:   lipgloss.NewStyle().Bold(true).PaddingRight(1),
		Cell:     lipgloss.NewStyle().PaddingRight(1),
		Selected: s.Selected,
	}
	return s
}
