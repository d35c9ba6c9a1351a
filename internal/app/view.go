package app

import (
	"github.com/atomicstack/reqline/internal/loop"
	"github.com/atomicstack/reqline/internal/terminal"
	"github.com/atomicstack/reqline/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

// View paints every row in the label style with label on the first row.
func View(label string, styles *theme.Styles) loop.DrawFunc {
	return func(frame *terminal.Frame) {
		width := frame.Width()
		if width == 0 {
			return
		}
		row := styles.Label.Width(width)
		for y := 0; y < frame.Height(); y++ {
			text := ""
			if y == 0 {
				text = ansi.Truncate(label, width, "…")
			}
			frame.SetRow(y, row.Render(text))
		}
	}
}
