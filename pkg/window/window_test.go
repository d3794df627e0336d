package window

import (
	"testing"

	"github.com/crossplay/fillengine/pkg/grid"
)

func TestPositionsAndOffset(t *testing.T) {
	win := New(grid.Position{X: 1, Y: 2}, 4, grid.Across)
	positions := win.Positions()
	want := []grid.Position{{X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}, {X: 4, Y: 2}}
	for i, p := range want {
		if positions[i] != p {
			t.Fatalf("Positions()[%d] = %v, want %v", i, positions[i], p)
		}
		if win.Offset(p) != i {
			t.Fatalf("Offset(%v) = %d, want %d", p, win.Offset(p), i)
		}
	}
}

func TestOffsetPanicsOffWindow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for off-window position")
		}
	}()
	win := New(grid.Position{X: 0, Y: 0}, 3, grid.Down)
	win.Offset(grid.Position{X: 5, Y: 5})
}

func TestCanonicalOrder(t *testing.T) {
	a := New(grid.Position{X: 5, Y: 0}, 3, grid.Across)
	b := New(grid.Position{X: 0, Y: 1}, 3, grid.Across)
	c := New(grid.Position{X: 0, Y: 0}, 3, grid.Down)

	if !a.Less(b) {
		t.Fatalf("window on earlier row should sort first")
	}
	if !a.Less(c) {
		t.Fatalf("Across should sort before Down")
	}
}
