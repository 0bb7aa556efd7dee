package render

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// Canvas is a drawable cell buffer rendered to the terminal in one write.
type Canvas struct {
	width  int
	height int
	cells  [][]Cell
}

// NewCanvas creates a canvas with the given dimensions.
func NewCanvas(width, height int) *Canvas {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
		for x := range cells[y] {
			cells[y][x] = Cell{Rune: ' '}
		}
	}
	return &Canvas{width: width, height: height, cells: cells}
}

// TerminalSize returns the current terminal dimensions.
func TerminalSize() (width, height int, err error) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return int(ws.Col), int(ws.Row), nil
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Clear fills the entire canvas with spaces.
func (c *Canvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = Cell{Rune: ' '}
		}
	}
}

// DimAll greys out everything drawn so far. Used under modal dialogs.
func (c *Canvas) DimAll() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x].Style.Dim = true
			c.cells[y][x].Style.Bold = false
			c.cells[y][x].Style.Reverse = false
		}
	}
}

// Set places a rune at the given position. Out-of-bounds writes are dropped.
func (c *Canvas) Set(x, y int, r rune, style Style) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = Cell{Rune: r, Style: style}
}

// WriteString writes a string starting at the given position, clipping at
// the right edge. Returns the number of cells used.
func (c *Canvas) WriteString(x, y int, s string, style Style) int {
	pos := 0
	for _, r := range s {
		w := UnicodeWidth(r)
		if w == 0 {
			continue
		}
		if x+pos+w > c.width {
			break
		}
		c.Set(x+pos, y, r, style)
		pos += w
	}
	return pos
}

// FillRow fills a horizontal run of cells with the given rune.
func (c *Canvas) FillRow(x, y, length int, r rune, style Style) {
	for i := 0; i < length; i++ {
		c.Set(x+i, y, r, style)
	}
}

// DrawVLine draws a vertical line.
func (c *Canvas) DrawVLine(x, y, length int, r rune, style Style) {
	for i := 0; i < length; i++ {
		c.Set(x, y+i, r, style)
	}
}

// DrawBox draws a box outline and blanks its interior.
func (c *Canvas) DrawBox(x, y, width, height int, box BoxStyle, style Style) {
	if width < 2 || height < 2 {
		return
	}

	for iy := 1; iy < height-1; iy++ {
		c.FillRow(x+1, y+iy, width-2, ' ', Style{})
	}

	c.Set(x, y, box.TopLeft, style)
	c.Set(x+width-1, y, box.TopRight, style)
	c.Set(x, y+height-1, box.BottomLeft, style)
	c.Set(x+width-1, y+height-1, box.BottomRight, style)
	c.FillRow(x+1, y, width-2, box.Horizontal, style)
	c.FillRow(x+1, y+height-1, width-2, box.Horizontal, style)
	c.DrawVLine(x, y+1, height-2, box.Vertical, style)
	c.DrawVLine(x+width-1, y+1, height-2, box.Vertical, style)
}

// DrawBoxWithTitle draws a box with a title set into the top border.
func (c *Canvas) DrawBoxWithTitle(x, y, width, height int, title string, box BoxStyle, style, titleStyle Style) {
	c.DrawBox(x, y, width, height, box, style)
	if title == "" || width <= 4 {
		return
	}
	title = Truncate(title, width-4)
	c.Set(x+1, y, ' ', style)
	used := c.WriteString(x+2, y, title, titleStyle)
	c.Set(x+2+used, y, ' ', style)
}

// Render outputs the canvas as a string with ANSI escape codes.
func (c *Canvas) Render() string {
	var sb strings.Builder
	sb.WriteString(CursorHome)

	var current Style
	sb.WriteString(styleSequence(current))

	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			cell := c.cells[y][x]
			if cell.Style != current {
				sb.WriteString(styleSequence(cell.Style))
				current = cell.Style
			}
			sb.WriteRune(cell.Rune)
			// Wide runes occupy the following cell too.
			if UnicodeWidth(cell.Rune) == 2 {
				x++
			}
		}
		if y < c.height-1 {
			sb.WriteString("\r\n")
		}
	}

	sb.WriteString("\033[0m")
	return sb.String()
}

// RenderTo writes the rendered canvas to the given file.
func (c *Canvas) RenderTo(w *os.File) error {
	_, err := w.WriteString(c.Render())
	return err
}

func styleSequence(s Style) string {
	codes := []string{"0"}
	if s.Bold {
		codes = append(codes, "1")
	}
	if s.Dim {
		codes = append(codes, "2")
	}
	if s.Underline {
		codes = append(codes, "4")
	}
	if s.Reverse {
		codes = append(codes, "7")
	}
	if s.FgColor > 0 {
		codes = append(codes, fmt.Sprintf("%d", s.FgColor))
	}
	return fmt.Sprintf("\033[%sm", strings.Join(codes, ";"))
}
