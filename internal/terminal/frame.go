package terminal

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "…"

// Frame is the drawing surface for one render: one string per visible row.
// Rows may contain ANSI styling; widths are measured in cells.
type Frame struct {
	width  int
	height int
	rows   []string
}

// NewFrame allocates an empty frame. Negative dimensions are treated as zero.
func NewFrame(width, height int) *Frame {
	width = max(width, 0)
	height = max(height, 0)
	return &Frame{width: width, height: height, rows: make([]string, height)}
}

func (f *Frame) Width() int { return f.width }
func (f *Frame) Height() int { return f.height }

// SetRow replaces row y, truncating s to the frame width. Rows outside the
// frame are ignored.
func (f *Frame) SetRow(y int, s string) {
	if y < 0 || y >= f.height {
		return
	}
	if ansi.StringWidth(s) > f.width {
		s = ansi.Truncate(s, f.width, ellipsis)
	}
	f.rows[y] = s
}

// Row returns row y, or "" outside the frame.
func (f *Frame) Row(y int) string {
	if y < 0 || y >= f.height {
		return ""
	}
	return f.rows[y]
}

// Rows returns a copy of every row.
func (f *Frame) Rows() []string {
	return append([]string(nil), f.rows...)
}

// encode renders the frame from the home position. Rows are padded to the full
// width and joined with CRLF; the last row has no line break so a full-height
// frame never scrolls the screen.
func (f *Frame) encode() []byte {
	var b strings.Builder
	b.WriteString(ansi.CursorHomePosition)
	for y, row := range f.rows {
		if y > 0 {
			b.WriteString("\r\n")
		}
		b.WriteString(row)
		if pad := f.width - ansi.StringWidth(row); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	return []byte(b.String())
}
