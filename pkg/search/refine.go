package search

import (
	"github.com/crossplay/fillengine/pkg/window"
	"github.com/crossplay/fillengine/pkg/word"
)

// RefineAll propagates every window's constraints to its crossings
// until a fixed point is reached.
func (s *Search) RefineAll() {
	dirty := make(map[window.Window]struct{}, s.sets.Len())
	for _, win := range s.sets.Windows() {
		dirty[win] = struct{}{}
	}
	s.refine(dirty)
}

// RefineOne propagates win's current constraints to its crossings
// (and transitively, theirs) until a fixed point is reached.
func (s *Search) RefineOne(win window.Window) {
	s.refine(map[window.Window]struct{}{win: {}})
}

// refine drains a worklist of dirty windows, removing from each
// crossing window's candidates any word whose letter at the crossing
// cell is impossible given the dirty window's remaining candidates. A
// crossing window whose candidates actually shrink is itself marked
// dirty, so the effect can keep propagating.
func (s *Search) refine(dirty map[window.Window]struct{}) {
	for len(dirty) > 0 {
		var win window.Window
		for w := range dirty {
			win = w
			break
		}
		delete(dirty, win)

		ws, ok := s.sets.Get(win)
		if !ok {
			continue
		}
		for i, pos := range win.Positions() {
			perp, ok := s.sets.WindowAt(pos, win.Direction.Perpendicular())
			if !ok {
				continue
			}
			perpSet, _ := s.sets.Get(perp)
			j := perp.Offset(pos)
			allowed := ws.Letters(i)
			if perpSet.Letters(j).IsSubset(allowed) {
				continue
			}
			perpSet.Retain(func(w word.Word) bool { return allowed.Contains(w.At(j)) })
			dirty[perp] = struct{}{}
		}
	}
}
