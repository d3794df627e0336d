package search

import (
	"github.com/crossplay/fillengine/pkg/grid"
	"github.com/crossplay/fillengine/pkg/window"
	"github.com/crossplay/fillengine/pkg/wordset"
	"github.com/crossplay/fillengine/pkg/xgraph"
)

// Split is a candidate decomposition of a Search into two
// independently solvable pieces, joined only at Overlap.
type Split struct {
	Overlap  []grid.Position
	Children [2]*Search
}

// SplitCells looks for a way to cut the still-ambiguous windows into
// two groups connected by as few shared cells as possible, by building
// a graph of ambiguous windows (edges are shared cells with a
// crossing, also-ambiguous window) and running a global minimum cut
// over it. Windows already resolved to a single candidate ride along
// with whichever side did not win the cut. Reports false if there
// aren't at least two ambiguous windows to split.
func (s *Search) SplitCells() (*Split, bool) {
	g := xgraph.New[window.Window, struct{}]()
	vertices := make(map[window.Window]xgraph.VertexID)
	for _, win := range s.sets.Windows() {
		ws, _ := s.sets.Get(win)
		if ws.Size() > 1 {
			vertices[win] = g.AddVertex(win)
		}
	}
	if len(vertices) < 2 {
		return nil, false
	}

	for win, v1 := range vertices {
		for _, pos := range win.Positions() {
			perp, ok := s.sets.WindowAt(pos, win.Direction.Perpendicular())
			if !ok {
				continue
			}
			v2, ok := vertices[perp]
			if !ok {
				continue
			}
			g.AddEdge(v1, v2, struct{}{})
		}
	}

	cutWeight, side := xgraph.StoerWagner[window.Window, struct{}](g)
	inCut := make(map[window.Window]bool, len(side))
	for _, win := range side {
		inCut[win] = true
	}

	w, h := s.sets.GridSize()
	var overlap []grid.Position
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pos := grid.Position{X: x, Y: y}
			across, okA := s.sets.WindowAt(pos, grid.Across)
			down, okD := s.sets.WindowAt(pos, grid.Down)
			if !okA || !okD {
				continue
			}
			_, inA := vertices[across]
			_, inD := vertices[down]
			if inA && inD && inCut[across] != inCut[down] {
				overlap = append(overlap, pos)
			}
		}
	}
	if cutWeight != len(overlap) {
		panic("search: split cut weight disagrees with recomputed overlap")
	}

	return &Split{Overlap: overlap, Children: [2]*Search{
		s.filterWindows(func(win window.Window) bool { return inCut[win] }),
		s.filterWindows(func(win window.Window) bool { return !inCut[win] }),
	}}, true
}

// filterWindows builds a new Search containing every window of s for
// which keep reports true, with independently cloned candidate sets.
func (s *Search) filterWindows(keep func(window.Window) bool) *Search {
	w, h := s.sets.GridSize()
	entries := make(map[window.Window]*wordset.WordSet)
	s.sets.Each(func(win window.Window, ws *wordset.WordSet) {
		if keep(win) {
			entries[win] = ws.Clone()
		}
	})
	return &Search{sets: window.NewMap(entries, w, h), cfg: s.cfg}
}
