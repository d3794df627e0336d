package search

import (
	"github.com/crossplay/fillengine/pkg/grid"
	"github.com/crossplay/fillengine/pkg/letter"
	"github.com/crossplay/fillengine/pkg/product"
	"github.com/crossplay/fillengine/pkg/word"
)

// Signal is returned by a Callback to say whether Solve should keep
// looking for further solutions.
type Signal int

const (
	// Continue tells Solve to keep searching for more solutions.
	Continue Signal = iota
	// Cancel tells Solve to stop immediately.
	Cancel
)

// Callback is invoked once per solution Solve finds, in the order it
// finds them. The Search it receives is finished (every window
// resolved to a single candidate); it is independent of the Search
// that produced it and safe to keep around.
type Callback func(*Search) Signal

// TakeOne returns a Callback that records the first solution found
// into *dest and cancels the search. *dest is left nil if no solution
// is found.
func TakeOne(dest **Search) Callback {
	return func(found *Search) Signal {
		*dest = found
		return Cancel
	}
}

// TakeAll returns a Callback that appends every solution found to
// *dest and keeps searching until the search space is exhausted.
func TakeAll(dest *[]*Search) Callback {
	return func(found *Search) Signal {
		*dest = append(*dest, found)
		return Continue
	}
}

// Solve enumerates complete, consistent fills, invoking cb for each
// one, until either the search space is exhausted or cb returns
// Cancel. It returns the Signal cb last returned (or Continue if cb
// was never called).
func (s *Search) Solve(cb Callback) Signal {
	if s.infeasible() {
		return Continue
	}
	if s.countAmbiguous() > s.cfg.SplitThreshold {
		if split, ok := s.SplitCells(); ok {
			total := s.sets.Len()
			a, b := split.Children[0].sets.Len(), split.Children[1].sets.Len()
			if a < total-s.cfg.MinShrink && b < total-s.cfg.MinShrink && len(split.Overlap) <= s.cfg.MaxOverlap {
				return s.solveSplit(split.Overlap, split.Children, cb)
			}
		}
	}
	return s.solveDirect(cb)
}

// solveDirect branches on the smallest still-ambiguous window, trying
// each of its candidates in turn: fix it, remove it from every other
// window (no solution repeats a word), propagate, and recurse.
func (s *Search) solveDirect(cb Callback) Signal {
	win, ws, found := s.smallestAmbiguous()
	if !found {
		return cb(s.Clone())
	}
	for _, chosen := range ws.Words() {
		child := s.Clone()
		childSet, _ := child.sets.Get(win)
		childSet.Retain(func(w word.Word) bool { return w == chosen })

		for _, other := range child.sets.Windows() {
			if other == win {
				continue
			}
			os, _ := child.sets.Get(other)
			os.Retain(func(w word.Word) bool { return w != chosen })
		}

		child.RefineOne(win)
		if sig := child.Solve(cb); sig == Cancel {
			return Cancel
		}
	}
	return Continue
}

// solveSplit enumerates every letter assignment to the overlap cells,
// solves each child under the corresponding restriction, and combines
// the two children's first solution into one for each assignment that
// both children can satisfy.
func (s *Search) solveSplit(overlap []grid.Position, children [2]*Search, cb Callback) Signal {
	sources := make([][]letter.Letter, len(overlap))
	for i, pos := range overlap {
		set, ok := s.LetterSet(pos)
		if !ok {
			panic("search: overlap cell has no candidate letters")
		}
		sources[i] = set.Letters()
	}

	p := product.New(sources)
	for p.Next() {
		assignment := p.Values()
		var solved [2]*Search
		for idx, child := range children {
			attempt := child.Clone()
			for i, pos := range overlap {
				attempt.RetainLetterSet(pos, letter.Of(assignment[i]))
			}
			attempt.RefineAll()
			var found *Search
			attempt.Solve(TakeOne(&found))
			solved[idx] = found
		}
		if solved[0] == nil || solved[1] == nil {
			continue
		}

		combined := s.Clone()
		for _, piece := range solved {
			for _, win := range piece.sets.Windows() {
				ws, _ := piece.sets.Get(win)
				combined.sets.Set(win, ws.Clone())
			}
		}
		if sig := cb(combined); sig == Cancel {
			return Cancel
		}
	}
	return Continue
}
