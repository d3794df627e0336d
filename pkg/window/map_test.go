package window

import (
	"testing"

	"github.com/crossplay/fillengine/pkg/grid"
)

// A 3x3 grid with the center cell black:
//
//	. . .
//	. # .
//	. . .
func centerBlackMask(x, y int) bool {
	return !(x == 1 && y == 1)
}

func TestFromWhiteMaskMaximalRuns(t *testing.T) {
	m := FromWhiteMask(3, 3, centerBlackMask)

	// The middle row and the middle column are each split into two runs
	// of length 1 around the black center, so only the rows/cols not
	// touching the center survive as single length-3 windows: row 0,
	// row 2, col 0, col 2.
	if m.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", m.Len())
	}
	for _, win := range m.Windows() {
		if win.Length < 2 {
			t.Fatalf("window %v shorter than minimum length 2", win)
		}
	}
}

func TestFromWhiteMaskAllWhite2x2(t *testing.T) {
	m := FromWhiteMask(2, 2, func(x, y int) bool { return true })
	// 2 across windows + 2 down windows, all length 2.
	if m.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", m.Len())
	}
}

func TestWindowAtAndReverseConsistency(t *testing.T) {
	m := FromWhiteMask(3, 1, func(x, y int) bool { return true })
	win, ok := m.WindowAt(grid.Position{X: 1, Y: 0}, grid.Across)
	if !ok {
		t.Fatalf("expected an across window through (1,0)")
	}
	if win.Length != 3 {
		t.Fatalf("Length = %d, want 3", win.Length)
	}
	if _, ok := m.WindowAt(grid.Position{X: 1, Y: 0}, grid.Down); ok {
		t.Fatalf("did not expect a down window in a single row")
	}
}

func TestNextPreviousWindowWrap(t *testing.T) {
	m := FromWhiteMask(2, 2, func(x, y int) bool { return true })
	windows := m.Windows()
	first := windows[0]
	last := windows[len(windows)-1]

	if m.PreviousWindow(first) != last {
		t.Fatalf("PreviousWindow(first) should wrap to last")
	}
	if m.NextWindow(last) != first {
		t.Fatalf("NextWindow(last) should wrap to first")
	}
	for i := 0; i < len(windows)-1; i++ {
		if m.NextWindow(windows[i]) != windows[i+1] {
			t.Fatalf("NextWindow(%v) should be %v", windows[i], windows[i+1])
		}
	}
}

func TestCloneIndependence(t *testing.T) {
	entries := map[Window]int{
		New(grid.Position{X: 0, Y: 0}, 2, grid.Across): 1,
	}
	m := NewMap(entries, 2, 1)
	clone := m.Clone(func(v int) int { return v })
	win := m.Windows()[0]
	clone.Set(win, 99)

	got, _ := m.Get(win)
	if got != 1 {
		t.Fatalf("mutating clone affected original: got %d, want 1", got)
	}
	gotClone, _ := clone.Get(win)
	if gotClone != 99 {
		t.Fatalf("clone value = %d, want 99", gotClone)
	}
}
