package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/mandel/internal/frame"
)

// densityRamp runs from fast escape to slow escape. Interior points are
// drawn with interiorRune.
const (
	densityRamp  = " .:-=+*#%"
	interiorRune = '@'
)

// ASCII renders f as cols x rows characters. Each character samples the
// pixel at the center of its cell.
func ASCII(f *frame.Frame, maxIter, cols, rows int) string {
	if cols <= 0 || rows <= 0 || f.Width == 0 || f.Height == 0 {
		return ""
	}
	ramp := []rune(densityRamp)

	var b strings.Builder
	for r := 0; r < rows; r++ {
		y := min((2*r+1)*f.Height/(2*rows), f.Height-1)
		for c := 0; c < cols; c++ {
			x := min((2*c+1)*f.Width/(2*cols), f.Width-1)
			n := f.Count(x, y)
			if n >= maxIter {
				b.WriteRune(interiorRune)
				continue
			}
			b.WriteRune(ramp[n*len(ramp)/maxIter])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func hex(r, g, b byte) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

// HalfBlocks renders f with one character per two vertically stacked
// pixels: the upper pixel is the foreground of '▀', the lower one the
// background.
func HalfBlocks(f *frame.Frame) string {
	var b strings.Builder
	for y := 0; y < f.Height; y += 2 {
		for x := 0; x < f.Width; x++ {
			style := lipgloss.NewStyle().Foreground(hex(f.RGB(x, y)))
			if y+1 < f.Height {
				style = style.Background(hex(f.RGB(x, y+1)))
			}
			b.WriteString(style.Render("▀"))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
