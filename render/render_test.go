package render

import (
	"strings"
	"testing"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected []string
	}{
		{"no wrap needed", "hello world", 20, []string{"hello world"}},
		{"simple wrap", "hello world foo bar", 11, []string{"hello world", "foo bar"}},
		{"multiple lines", "one two three four five six", 10, []string{"one two", "three four", "five six"}},
		{"hebrew", "חדשות כלכלה ספורט", 12, []string{"חדשות כלכלה", "ספורט"}},
		{"long word breaks", "supercalifragilisticexpialidocious", 10, []string{"supercalif", "ragilistic", "expialidoc", "ious"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WrapText(tt.text, tt.width)
			if len(result) != len(tt.expected) {
				t.Fatalf("got %d lines, expected %d\ngot: %v\nexpected: %v",
					len(result), len(tt.expected), result, tt.expected)
			}
			for i, line := range result {
				if line != tt.expected[i] {
					t.Errorf("line %d: got %q, expected %q", i, line, tt.expected[i])
				}
			}
		})
	}
}

func TestStringWidth(t *testing.T) {
	tests := []struct {
		s        string
		expected int
	}{
		{"hello", 5},
		{"שלום", 4},
		{"שָׁלוֹם", 4}, // niqqud marks are zero-width
		{"日本語", 6},  // east asian wide
		{"", 0},
	}
	for _, tt := range tests {
		if got := StringWidth(tt.s); got != tt.expected {
			t.Errorf("StringWidth(%q) = %d, expected %d", tt.s, got, tt.expected)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s        string
		width    int
		expected string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello w…"},
		{"שלום עולם", 6, "שלום …"},
		{"x", 1, "x"},
		{"xy", 1, "…"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.s, tt.width); got != tt.expected {
			t.Errorf("Truncate(%q, %d) = %q, expected %q", tt.s, tt.width, got, tt.expected)
		}
	}
}

func TestCanvasWriteString(t *testing.T) {
	c := NewCanvas(10, 2)
	used := c.WriteString(0, 0, "שלום", Style{Bold: true})
	if used != 4 {
		t.Errorf("used %d cells, expected 4", used)
	}
	if c.cells[0][0].Rune != 'ש' || !c.cells[0][0].Style.Bold {
		t.Errorf("cell [0][0] = %+v", c.cells[0][0])
	}

	// Clipping at the right edge
	used = c.WriteString(8, 1, "abcdef", Style{})
	if used != 2 {
		t.Errorf("clipped write used %d cells, expected 2", used)
	}
}

func TestCanvasDrawBox(t *testing.T) {
	c := NewCanvas(10, 5)
	c.WriteString(3, 2, "xx", Style{})
	c.DrawBox(1, 1, 8, 3, SingleBox, Style{})

	if c.cells[1][1].Rune != '┌' || c.cells[3][8].Rune != '┘' {
		t.Error("box corners not drawn")
	}
	// Interior is blanked
	if c.cells[2][3].Rune != ' ' {
		t.Errorf("interior not cleared: %q", c.cells[2][3].Rune)
	}
}

func TestCanvasRenderStyles(t *testing.T) {
	c := NewCanvas(3, 1)
	c.WriteString(0, 0, "a", Style{Bold: true})

	out := c.Render()
	if !strings.Contains(out, "\033[0;1m") {
		t.Errorf("bold style sequence missing from %q", out)
	}
	if !strings.HasSuffix(out, "\033[0m") {
		t.Error("render must end with a style reset")
	}
}
