// Package search implements the constraint search over a crossword
// grid's windows: propagation, problem splitting, and the branching
// orchestration that finds complete, consistent letter assignments.
package search

import (
	"github.com/crossplay/fillengine/pkg/grid"
	"github.com/crossplay/fillengine/pkg/letter"
	"github.com/crossplay/fillengine/pkg/window"
	"github.com/crossplay/fillengine/pkg/word"
	"github.com/crossplay/fillengine/pkg/wordset"
)

// Config tunes the heuristic that decides whether to split a problem
// into independent pieces before branching on it directly. The
// defaults come from the splitting strategy's own worked example; they
// are exposed because the right balance depends on dictionary size and
// grid shape, which a caller may know better than this package does.
type Config struct {
	// SplitThreshold is the number of still-ambiguous windows beyond
	// which Solve attempts a split before falling back to direct search.
	SplitThreshold int
	// MinShrink is the margin, in total window count, by which each split
	// child must be strictly smaller than the parent for the split to be
	// worth taking.
	MinShrink int
	// MaxOverlap is the largest accepted overlap cell count for a split.
	MaxOverlap int
}

// DefaultConfig returns the tuning used when a caller doesn't supply
// its own.
func DefaultConfig() Config {
	return Config{SplitThreshold: 15, MinShrink: 2, MaxOverlap: 2}
}

// Search holds one candidate-word set per window of a grid. A Search
// with every set reduced to size 1 denotes a complete, consistent
// fill. Clones of Search are deep: mutating a clone's word sets never
// affects the original.
type Search struct {
	sets *window.Map[*wordset.WordSet]
	cfg  Config
}

// New builds a Search over the given windows, with each window's
// candidate set containing every dictionary word of matching length.
func New(windows *window.Map[struct{}], dict []word.Word) *Search {
	return NewWithConfig(windows, dict, DefaultConfig())
}

// NewWithConfig is New with explicit splitting tuning.
func NewWithConfig(windows *window.Map[struct{}], dict []word.Word, cfg Config) *Search {
	w, h := windows.GridSize()
	entries := make(map[window.Window]*wordset.WordSet)
	windows.Each(func(win window.Window, _ struct{}) {
		entries[win] = wordset.FromWords(dict, win.Length)
	})
	return &Search{sets: window.NewMap(entries, w, h), cfg: cfg}
}

// Windows returns every window in canonical order.
func (s *Search) Windows() []window.Window {
	return s.sets.Windows()
}

// WordSet returns the candidate set attached to win.
func (s *Search) WordSet(win window.Window) (*wordset.WordSet, bool) {
	return s.sets.Get(win)
}

// GridSize returns the (width, height) of the grid this search covers.
func (s *Search) GridSize() (int, int) {
	return s.sets.GridSize()
}

// Clone returns a deep copy: every window's WordSet is independently
// cloned, so mutating one Search never affects the other.
func (s *Search) Clone() *Search {
	return &Search{
		sets: s.sets.Clone(func(ws *wordset.WordSet) *wordset.WordSet { return ws.Clone() }),
		cfg:  s.cfg,
	}
}

// Filter removes every candidate word from every window for which
// keep reports false.
func (s *Search) Filter(keep func(win window.Window, w word.Word) bool) {
	s.sets.Each(func(win window.Window, ws *wordset.WordSet) {
		ws.Retain(func(w word.Word) bool { return keep(win, w) })
	})
}

// Retain restricts every window's candidates to those consistent with
// the letters already fixed in pregrid; cells left blank impose no
// constraint.
func (s *Search) Retain(pregrid *grid.Grid[grid.Cell]) {
	s.sets.Each(func(win window.Window, ws *wordset.WordSet) {
		positions := win.Positions()
		ws.Retain(func(w word.Word) bool {
			for i, pos := range positions {
				cell := pregrid.At(pos.X, pos.Y)
				if cell.Letter == nil {
					continue
				}
				wanted, ok := letter.FromRune(*cell.Letter)
				if ok && w.At(i) != wanted {
					return false
				}
			}
			return true
		})
	})
}

// Finish renders the current state as a grid: a cell is black unless
// some window covers it, and holds a letter once the window(s)
// covering it have narrowed to that single letter. A cell already
// resolved by one direction is never overwritten by a still-ambiguous
// crossing window.
func (s *Search) Finish() *grid.Grid[grid.Cell] {
	w, h := s.sets.GridSize()
	result := grid.Fill(w, h, grid.BlackCell())
	s.sets.Each(func(win window.Window, ws *wordset.WordSet) {
		for i, pos := range win.Positions() {
			letters := ws.Letters(i)
			cur := result.At(pos.X, pos.Y)
			if cur.Black || cur.Letter == nil {
				result.Set(pos.X, pos.Y, grid.WhiteCell(uniqueRune(letters)))
			}
		}
	})
	return result
}

func uniqueRune(s letter.Set) *rune {
	l, ok := s.Unique()
	if !ok {
		return nil
	}
	r := l.Rune()
	return &r
}

func (s *Search) infeasible() bool {
	for _, ws := range s.sets.Values() {
		if ws.Size() == 0 {
			return true
		}
	}
	return false
}

func (s *Search) countAmbiguous() int {
	n := 0
	for _, ws := range s.sets.Values() {
		if ws.Size() > 1 {
			n++
		}
	}
	return n
}

// smallestAmbiguous returns the window with the fewest (but more than
// one) remaining candidates, ties broken by canonical window order.
func (s *Search) smallestAmbiguous() (window.Window, *wordset.WordSet, bool) {
	var best window.Window
	var bestSet *wordset.WordSet
	found := false
	for _, win := range s.sets.Windows() {
		ws, _ := s.sets.Get(win)
		if ws.Size() <= 1 {
			continue
		}
		if !found || ws.Size() < bestSet.Size() {
			best, bestSet, found = win, ws, true
		}
	}
	return best, bestSet, found
}
