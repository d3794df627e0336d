package search

import (
	"github.com/crossplay/fillengine/pkg/grid"
	"github.com/crossplay/fillengine/pkg/letter"
	"github.com/crossplay/fillengine/pkg/word"
)

// LetterSetForDirection returns the set of letters still possible at
// pos from the window running in dir, if any window does.
func (s *Search) LetterSetForDirection(pos grid.Position, dir grid.Direction) (letter.Set, bool) {
	win, ok := s.sets.WindowAt(pos, dir)
	if !ok {
		return letter.EmptySet(), false
	}
	ws, _ := s.sets.Get(win)
	return ws.Letters(win.Offset(pos)), true
}

// LetterSet returns the set of letters still possible at pos,
// intersecting across and down when both cover it.
func (s *Search) LetterSet(pos grid.Position) (letter.Set, bool) {
	across, okA := s.LetterSetForDirection(pos, grid.Across)
	down, okD := s.LetterSetForDirection(pos, grid.Down)
	switch {
	case okA && okD:
		return across.Intersection(down), true
	case okA:
		return across, true
	case okD:
		return down, true
	default:
		return letter.EmptySet(), false
	}
}

// RetainLetterSet removes from every window covering pos any candidate
// whose letter at pos is not in set.
func (s *Search) RetainLetterSet(pos grid.Position, set letter.Set) {
	for _, dir := range [2]grid.Direction{grid.Across, grid.Down} {
		win, ok := s.sets.WindowAt(pos, dir)
		if !ok {
			continue
		}
		ws, _ := s.sets.Get(win)
		offset := win.Offset(pos)
		ws.Retain(func(w word.Word) bool { return set.Contains(w.At(offset)) })
	}
}
