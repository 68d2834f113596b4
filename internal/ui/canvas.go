// ABOUTME: Terminal waveform canvas
// ABOUTME: Folds plot points into character columns and draws the playback cursor
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/melody-observer/melody/pkg/melody"
	"github.com/melody-observer/melody/pkg/waveform"
)

var (
	waveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

const (
	waveRune   = '█'
	emptyRune  = ' '
	cursorRune = "┃"
)

// span is the covered height range of one column
type span struct {
	lo, hi float64
	set    bool
}

// columnSpans maps every plot point to its column. Each column is drawn
// from the silence line to its furthest point, and columns falling
// between two points repeat the previous one.
func columnSpans(f melody.Frame) []span {
	if f.Width <= 0 {
		return nil
	}

	center := float64(f.Height) / 2
	spans := make([]span, f.Width)
	for _, pt := range f.Points {
		c := waveform.PixelX(pt.X, f.Range, f.Width)
		if c >= f.Width {
			c = f.Width - 1
		}

		s := &spans[c]
		if !s.set {
			*s = span{lo: center, hi: center, set: true}
		}
		s.lo = min(s.lo, pt.Y)
		s.hi = max(s.hi, pt.Y)
	}

	for c := 1; c < len(spans); c++ {
		if !spans[c].set && spans[c-1].set {
			spans[c] = spans[c-1]
		}
	}
	return spans
}

// canvasCells returns the filled cells, row 0 at the top
func canvasCells(f melody.Frame) [][]bool {
	spans := columnSpans(f)
	cells := make([][]bool, f.Height)
	for r := range cells {
		cells[r] = make([]bool, f.Width)

		// Row r covers heights [h-r-1, h-r]
		top := float64(f.Height - r)
		bottom := top - 1
		for c, s := range spans {
			cells[r][c] = s.set && s.hi >= bottom && s.lo <= top
		}
	}
	return cells
}

// renderCanvas draws the frame with its cursor column, if visible
func renderCanvas(f melody.Frame, cursor int, cursorVisible bool) string {
	if f.Width <= 0 || f.Height <= 0 {
		return ""
	}
	if cursor >= f.Width {
		cursor = f.Width - 1
	}

	cells := canvasCells(f)
	var b strings.Builder
	for r, row := range cells {
		line := make([]rune, len(row))
		for c, filled := range row {
			if filled {
				line[c] = waveRune
			} else {
				line[c] = emptyRune
			}
		}

		if cursorVisible && cursor >= 0 {
			b.WriteString(waveStyle.Render(string(line[:cursor])))
			b.WriteString(cursorStyle.Render(cursorRune))
			b.WriteString(waveStyle.Render(string(line[cursor+1:])))
		} else {
			b.WriteString(waveStyle.Render(string(line)))
		}

		if r < len(cells)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
