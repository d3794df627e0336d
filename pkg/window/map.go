package window

import (
	"sort"

	"github.com/crossplay/fillengine/pkg/grid"
)

type reverseEntry struct {
	across *Window
	down   *Window
}

// Map is a bidirectional index over the windows of a fixed grid size:
// an ordered mapping from window to an attached value of type T, plus
// for every cell and direction, the unique window (if any) passing
// through that cell in that direction. The two halves are built
// together by NewMap and can never drift apart because nothing besides
// NewMap mutates them.
type Map[T any] struct {
	w, h    int
	order   []Window // canonical order, see Window.Less
	index   map[Window]int
	values  []T
	reverse *grid.Grid[reverseEntry]
}

// NewMap builds a Map from an explicit set of windows and their values. It
// is the general constructor; FromWhiteMask is the usual way to build
// one from a grid's black/white layout.
func NewMap[T any](entries map[Window]T, w, h int) *Map[T] {
	order := make([]Window, 0, len(entries))
	for win := range entries {
		order = append(order, win)
	}
	sort.Slice(order, func(i, j int) bool { return order[i].Less(order[j]) })

	values := make([]T, len(order))
	index := make(map[Window]int, len(order))
	for i, win := range order {
		values[i] = entries[win]
		index[win] = i
	}

	reverse := grid.New(w, h, func(x, y int) reverseEntry { return reverseEntry{} })
	for i := range order {
		win := order[i]
		for _, pos := range win.Positions() {
			entry := reverse.At(pos.X, pos.Y)
			winCopy := order[i]
			if win.Direction == grid.Across {
				entry.across = &winCopy
			} else {
				entry.down = &winCopy
			}
			reverse.Set(pos.X, pos.Y, entry)
		}
	}

	return &Map[T]{w: w, h: h, order: order, index: index, values: values, reverse: reverse}
}

// FromWhiteMask builds a Map[struct{}] from a predicate reporting
// whether a cell is white. Per row, maximal runs of white cells of
// length ≥ 2 become Across windows; per column, the same becomes Down
// windows.
func FromWhiteMask(w, h int, white func(x, y int) bool) *Map[struct{}] {
	entries := make(map[Window]struct{})

	for y := 0; y < h; y++ {
		x := 0
		for x < w {
			if !white(x, y) {
				x++
				continue
			}
			start := x
			for x < w && white(x, y) {
				x++
			}
			if length := x - start; length >= 2 {
				entries[New(grid.Position{X: start, Y: y}, length, grid.Across)] = struct{}{}
			}
		}
	}

	for x := 0; x < w; x++ {
		y := 0
		for y < h {
			if !white(x, y) {
				y++
				continue
			}
			start := y
			for y < h && white(x, y) {
				y++
			}
			if length := y - start; length >= 2 {
				entries[New(grid.Position{X: x, Y: start}, length, grid.Down)] = struct{}{}
			}
		}
	}

	return NewMap(entries, w, h)
}

// GridSize returns the (width, height) this map was built for.
func (m *Map[T]) GridSize() (int, int) {
	return m.w, m.h
}

// Len returns the number of windows.
func (m *Map[T]) Len() int {
	return len(m.order)
}

// Windows returns every window in canonical order.
func (m *Map[T]) Windows() []Window {
	out := make([]Window, len(m.order))
	copy(out, m.order)
	return out
}

// Get returns the value attached to win, and whether win is present.
func (m *Map[T]) Get(win Window) (T, bool) {
	i, ok := m.index[win]
	if !ok {
		var zero T
		return zero, false
	}
	return m.values[i], true
}

// Set overwrites the value attached to win. It panics if win is not
// present — Map's window set is fixed at construction.
func (m *Map[T]) Set(win Window, value T) {
	i, ok := m.index[win]
	if !ok {
		panic("window: Set on a window not in the map")
	}
	m.values[i] = value
}

// Values returns every attached value, in canonical window order.
func (m *Map[T]) Values() []T {
	out := make([]T, len(m.values))
	copy(out, m.values)
	return out
}

// Each calls fn(window, value) for every window in canonical order.
func (m *Map[T]) Each(fn func(win Window, value T)) {
	for i, win := range m.order {
		fn(win, m.values[i])
	}
}

// WindowAt returns the window passing through pos in the given
// direction, if any.
func (m *Map[T]) WindowAt(pos grid.Position, dir grid.Direction) (Window, bool) {
	if !m.reverse.InBounds(pos.X, pos.Y) {
		return Window{}, false
	}
	entry := m.reverse.At(pos.X, pos.Y)
	var win *Window
	if dir == grid.Across {
		win = entry.across
	} else {
		win = entry.down
	}
	if win == nil {
		return Window{}, false
	}
	return *win, true
}

// NextWindow returns the window that follows win in canonical order,
// wrapping around to the first window after the last.
func (m *Map[T]) NextWindow(win Window) Window {
	i := m.index[win]
	return m.order[(i+1)%len(m.order)]
}

// PreviousWindow returns the window that precedes win in canonical
// order, wrapping around to the last window before the first.
func (m *Map[T]) PreviousWindow(win Window) Window {
	i := m.index[win]
	return m.order[(i-1+len(m.order))%len(m.order)]
}

// Clone returns a deep copy whose values are independent of m's. T must
// itself be safely copyable by cloneValue; Map does not know how to
// deep-copy an arbitrary T, so the caller supplies that logic.
func (m *Map[T]) Clone(cloneValue func(T) T) *Map[T] {
	values := make([]T, len(m.values))
	for i, v := range m.values {
		values[i] = cloneValue(v)
	}
	order := make([]Window, len(m.order))
	copy(order, m.order)
	index := make(map[Window]int, len(m.index))
	for k, v := range m.index {
		index[k] = v
	}
	return &Map[T]{
		w: m.w, h: m.h,
		order: order, index: index, values: values,
		reverse: m.reverse, // reverse index is immutable after construction, safe to share
	}
}
