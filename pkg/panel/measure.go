package panel

import (
	"strings"
	"unicode/utf8"

	"github.com/vango-dev/quicktip/pkg/geom"
)

// Measurer estimates the box a hint panel needs for its content. The server
// has no layout engine, so panel sizes are estimates that the client may
// refine.
type Measurer interface {
	// Measure returns the panel size. A positive width is used as is;
	// otherwise the natural width is clamped to [minWidth, maxWidth].
	Measure(text, title string, width, minWidth, maxWidth int) geom.Size
}

// CharMetrics measures text as a monospace grid of cells.
type CharMetrics struct {
	CharWidth    int
	LineHeight   int
	PaddingX     int
	PaddingY     int
	HeaderHeight int
}

// DefaultMetrics approximates a 12px sans-serif tooltip.
var DefaultMetrics = CharMetrics{
	CharWidth:    7,
	LineHeight:   16,
	PaddingX:     12,
	PaddingY:     8,
	HeaderHeight: 20,
}

// Measure implements Measurer.
func (m CharMetrics) Measure(text, title string, width, minWidth, maxWidth int) geom.Size {
	if width <= 0 {
		natural := max(longestLine(text), longestLine(title))*m.CharWidth + m.PaddingX
		width = geom.Clamp(natural, minWidth, maxWidth)
	}

	cols := 1
	if m.CharWidth > 0 {
		cols = max(1, (width-m.PaddingX)/m.CharWidth)
	}
	h := wrappedLines(text, cols)*m.LineHeight + m.PaddingY
	if title != "" {
		h += m.HeaderHeight
	}
	return geom.Size{W: width, H: h}
}

// longestLine returns the rune count of the longest line in s.
func longestLine(s string) int {
	longest := 0
	for _, line := range strings.Split(s, "\n") {
		longest = max(longest, utf8.RuneCountInString(line))
	}
	return longest
}

// wrappedLines returns how many lines s occupies when greedily word-wrapped
// at cols columns. Words longer than a line are broken.
func wrappedLines(s string, cols int) int {
	total := 0
	for _, para := range strings.Split(s, "\n") {
		lines, used := 1, 0
		for _, word := range strings.Fields(para) {
			n := utf8.RuneCountInString(word)
			switch {
			case used == 0:
				used = n
			case used+1+n <= cols:
				used += 1 + n
			default:
				lines++
				used = n
			}
			for used > cols {
				lines++
				used -= cols
			}
		}
		total += lines
	}
	return total
}
