package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the text styles used by the renderer.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style

	// Roles in the registry listing
	View  lipgloss.Style
	Model lipgloss.Style
	Path  lipgloss.Style
}

// NewStyles creates styles bound to lr's color profile.
func NewStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1: lr.NewStyle().Bold(true).Underline(true),
		Header2: lr.NewStyle().Bold(true),
		Bold:    lr.NewStyle().Bold(true),
		Muted:   lr.NewStyle().Foreground(lipgloss.Color("245")),

		Success: lr.NewStyle().Foreground(lipgloss.Color("42")),
		Warning: lr.NewStyle().Foreground(lipgloss.Color("214")),
		Error:   lr.NewStyle().Foreground(lipgloss.Color("196")),
		Info:    lr.NewStyle().Foreground(lipgloss.Color("39")),

		StatusSuccess: lr.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		StatusFailed:  lr.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),

		View:  lr.NewStyle().Foreground(lipgloss.Color("75")),
		Model: lr.NewStyle().Foreground(lipgloss.Color("176")),
		Path:  lr.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
	}
}
