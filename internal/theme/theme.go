package theme

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Label  *lipgloss.Style
	Error  *lipgloss.Style
	Detail *lipgloss.Style
}

// New builds the style set against r, which decides the colour profile.
func New(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Label: ptr(
			r.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")),
		),
		Error: ptr(
			r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		),
		Detail: ptr(
			r.NewStyle().Foreground(lipgloss.Color("245")),
		),
	}
}

// ForWriter returns styles whose colour profile is detected from w.
func ForWriter(w io.Writer) *Styles {
	return New(lipgloss.NewRenderer(w))
}

// Plain returns styles that never emit colour sequences.
func Plain() *Styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return New(r)
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
