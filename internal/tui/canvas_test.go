package tui

import "testing"

func TestBrailleCanvasSet(t *testing.T) {
	c := newBrailleCanvas(2, 1)
	c.set(0, 0)
	c.set(3, 3)
	c.set(-1, 0)
	c.set(4, 0)

	lines := c.lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	want := string([]rune{0x2801, 0x2880})
	if lines[0] != want {
		t.Fatalf("expected %q, got %q", want, lines[0])
	}
}

func TestBrailleCanvasBlankCellsAreSpaces(t *testing.T) {
	c := newBrailleCanvas(3, 2)
	for _, line := range c.lines() {
		if line != "   " {
			t.Fatalf("expected blank line, got %q", line)
		}
	}
}

func TestBrailleCanvasLine(t *testing.T) {
	c := newBrailleCanvas(4, 1)
	w, _ := c.dotSize()
	c.line(0, 0, w-1, 0)

	// Top row of every cell lit: left dot 0x01, right dot 0x08.
	want := string([]rune{0x2809, 0x2809, 0x2809, 0x2809})
	if got := c.lines()[0]; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBrailleCanvasVerticalLine(t *testing.T) {
	c := newBrailleCanvas(1, 2)
	c.line(0, 7, 0, 0)

	// Left column of both cells: 0x01|0x02|0x04|0x40.
	for i, got := range c.lines() {
		if got != string(rune(0x2847)) {
			t.Fatalf("row %d: expected %q, got %q", i, string(rune(0x2847)), got)
		}
	}
}
