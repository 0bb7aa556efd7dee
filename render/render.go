// Package render provides the terminal drawing layer: a cell canvas,
// raw-mode control and text measurement helpers.
package render

// Cell is a single character cell in the terminal.
type Cell struct {
	Rune  rune
	Style Style
}

// Style represents text styling for a cell.
type Style struct {
	Bold      bool
	Dim       bool
	Underline bool
	Reverse   bool
	FgColor   int // ANSI foreground color code (0 = default)
}

// BoxStyle defines the characters used for drawing boxes.
type BoxStyle struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
}

var (
	SingleBox = BoxStyle{
		TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
		Horizontal: '─', Vertical: '│',
	}

	RoundedBox = BoxStyle{
		TopLeft: '╭', TopRight: '╮', BottomLeft: '╰', BottomRight: '╯',
		Horizontal: '─', Vertical: '│',
	}

	DoubleBox = BoxStyle{
		TopLeft: '╔', TopRight: '╗', BottomLeft: '╚', BottomRight: '╝',
		Horizontal: '═', Vertical: '║',
	}
)

// UnicodeWidth returns the display width of a rune in terminal cells.
func UnicodeWidth(r rune) int {
	if r < 0x80 {
		if r < 0x20 || r == 0x7F {
			return 0
		}
		return 1
	}
	if isZeroWidth(r) {
		return 0
	}
	if isWideChar(r) {
		return 2
	}
	return 1
}

// StringWidth returns the display width of a string in terminal cells.
func StringWidth(s string) int {
	width := 0
	for _, r := range s {
		width += UnicodeWidth(r)
	}
	return width
}

func isZeroWidth(r rune) bool {
	// Combining marks (Latin and Hebrew niqqud included).
	return (r >= 0x0300 && r <= 0x036F) ||
		(r >= 0x0591 && r <= 0x05C7) ||
		(r >= 0x200B && r <= 0x200F) ||
		(r >= 0xFE00 && r <= 0xFE0F)
}

func isWideChar(r rune) bool {
	// East Asian wide and fullwidth ranges.
	return (r >= 0x1100 && r <= 0x115F) ||
		(r >= 0x2E80 && r <= 0x303E) ||
		(r >= 0x3041 && r <= 0x33FF) ||
		(r >= 0x3400 && r <= 0x4DBF) ||
		(r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0xA000 && r <= 0xA4CF) ||
		(r >= 0xAC00 && r <= 0xD7A3) ||
		(r >= 0xF900 && r <= 0xFAFF) ||
		(r >= 0xFE30 && r <= 0xFE4F) ||
		(r >= 0xFF00 && r <= 0xFF60) ||
		(r >= 0xFFE0 && r <= 0xFFE6) ||
		(r >= 0x20000 && r <= 0x2FFFD)
}

// Truncate cuts a string to at most maxWidth terminal cells, appending an
// ellipsis when anything was removed.
func Truncate(s string, maxWidth int) string {
	if StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 1 {
		return "…"
	}
	out := ""
	w := 0
	for _, r := range s {
		rw := UnicodeWidth(r)
		if w+rw > maxWidth-1 {
			break
		}
		out += string(r)
		w += rw
	}
	return out + "…"
}

// WrapText wraps text at word boundaries to the given display width.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	var line string
	lineWidth := 0

	flush := func() {
		lines = append(lines, line)
		line = ""
		lineWidth = 0
	}

	for _, word := range splitWords(text) {
		ww := StringWidth(word)
		if lineWidth > 0 && lineWidth+1+ww > width {
			flush()
		}
		// A word longer than the whole line is broken hard.
		for ww > width {
			cut := ""
			w := 0
			for _, r := range word {
				rw := UnicodeWidth(r)
				if w+rw > width {
					break
				}
				cut += string(r)
				w += rw
			}
			if lineWidth > 0 {
				flush()
			}
			line = cut
			lineWidth = w
			flush()
			word = word[len(cut):]
			ww = StringWidth(word)
		}
		if ww == 0 {
			continue
		}
		if lineWidth > 0 {
			line += " "
			lineWidth++
		}
		line += word
		lineWidth += ww
	}
	if lineWidth > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}

func splitWords(text string) []string {
	var words []string
	start := -1
	for i, r := range text {
		if r == ' ' || r == '\t' || r == '\n' {
			if start >= 0 {
				words = append(words, text[start:i])
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, text[start:])
	}
	return words
}
