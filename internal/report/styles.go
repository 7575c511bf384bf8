package report

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent = "39"  // headings
	colorLabel  = "245" // field labels
	colorWarn   = "220" // notices about missing data
	colorBorder = "238"
)

// styles used by the report.
type styles struct {
	Heading lipgloss.Style
	Label   lipgloss.Style
	Notice  lipgloss.Style
	Border  lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
}

func colorStyles(r *lipgloss.Renderer) styles {
	return styles{
		Heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAccent)),
		Label:   r.NewStyle().Foreground(lipgloss.Color(colorLabel)),
		Notice:  r.NewStyle().Foreground(lipgloss.Color(colorWarn)),
		Border:  r.NewStyle().Foreground(lipgloss.Color(colorBorder)),
		Header:  r.NewStyle().Bold(true).Padding(0, 1),
		Cell:    r.NewStyle().Padding(0, 1),
	}
}

// plainStyles keep the table cell padding but add no color or weight.
func plainStyles(r *lipgloss.Renderer) styles {
	return styles{
		Heading: r.NewStyle(),
		Label:   r.NewStyle(),
		Notice:  r.NewStyle(),
		Border:  r.NewStyle(),
		Header:  r.NewStyle().Padding(0, 1),
		Cell:    r.NewStyle().Padding(0, 1),
	}
}
