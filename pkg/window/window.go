// Package window identifies and indexes word slots ("windows") in a
// crossword grid: maximal runs of white cells of length ≥ 2, running
// either across or down.
package window

import (
	"fmt"

	"github.com/crossplay/fillengine/pkg/grid"
)

// Window is a single word slot: a starting position, a length, and a
// direction. All Length cells starting at Position and stepping by one
// along Direction's axis are white; the cell just before (if any) and
// just after (if any) are black or off-grid.
type Window struct {
	Position  grid.Position
	Length    int
	Direction grid.Direction
}

// New builds a Window. It does not itself validate the invariant above
// — that is the responsibility of the constructor that scans the grid
// (FromWhiteMask).
func New(pos grid.Position, length int, dir grid.Direction) Window {
	return Window{Position: pos, Length: length, Direction: dir}
}

// PositionAt returns the grid position of the cell at the given offset
// into the window.
func (win Window) PositionAt(offset int) grid.Position {
	if win.Direction == grid.Across {
		return grid.Position{X: win.Position.X + offset, Y: win.Position.Y}
	}
	return grid.Position{X: win.Position.X, Y: win.Position.Y + offset}
}

// Positions returns every cell of the window in offset order.
func (win Window) Positions() []grid.Position {
	out := make([]grid.Position, win.Length)
	for i := range out {
		out[i] = win.PositionAt(i)
	}
	return out
}

// Offset returns the offset of pos within the window. It panics if pos
// does not lie on the window — callers are expected to know a position
// lies on a window before asking for its offset.
func (win Window) Offset(pos grid.Position) int {
	switch win.Direction {
	case grid.Across:
		if pos.Y != win.Position.Y || pos.X < win.Position.X || pos.X >= win.Position.X+win.Length {
			panic(fmt.Sprintf("window: %v does not lie on %v", pos, win))
		}
		return pos.X - win.Position.X
	default:
		if pos.X != win.Position.X || pos.Y < win.Position.Y || pos.Y >= win.Position.Y+win.Length {
			panic(fmt.Sprintf("window: %v does not lie on %v", pos, win))
		}
		return pos.Y - win.Position.Y
	}
}

// Less implements the canonical total order over windows: lexicographic
// on (direction, y, x, length).
func (win Window) Less(other Window) bool {
	if win.Direction != other.Direction {
		return win.Direction < other.Direction
	}
	if win.Position.Y != other.Position.Y {
		return win.Position.Y < other.Position.Y
	}
	if win.Position.X != other.Position.X {
		return win.Position.X < other.Position.X
	}
	return win.Length < other.Length
}
