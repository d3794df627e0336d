// Package product implements a lazy Cartesian product iterator over a
// fixed number of finite value sequences, used by the search package to
// enumerate letter assignments to a small set of overlap cells.
package product

// Product enumerates every tuple in sources[0] x sources[1] x ... x
// sources[k-1], in lexicographic order, without materializing the full
// product up front. An empty product (any source empty) yields zero
// tuples; the product of zero sources yields exactly one empty tuple.
//
// Usage is pull-based: call Next until it returns false, reading
// Values in between. The slice Values returns is owned by the Product
// and is only valid until the next call to Next.
type Product[T any] struct {
	sources [][]T
	indices []int
	started bool
	done    bool
	current []T
}

// New builds a Product over the given sources.
func New[T any](sources [][]T) *Product[T] {
	for _, s := range sources {
		if len(s) == 0 {
			return &Product[T]{done: true}
		}
	}
	return &Product[T]{
		sources: sources,
		indices: make([]int, len(sources)),
		current: make([]T, len(sources)),
	}
}

// Next advances to the next tuple and reports whether one exists.
func (p *Product[T]) Next() bool {
	if p.done {
		return false
	}
	if !p.started {
		p.started = true
	} else if !p.advance() {
		p.done = true
		return false
	}
	for i, idx := range p.indices {
		p.current[i] = p.sources[i][idx]
	}
	return true
}

// advance increments the odometer from the rightmost position,
// reporting false once it wraps all the way around (exhausted).
func (p *Product[T]) advance() bool {
	for i := len(p.indices) - 1; i >= 0; i-- {
		p.indices[i]++
		if p.indices[i] < len(p.sources[i]) {
			return true
		}
		p.indices[i] = 0
	}
	return false
}

// Values returns the current tuple. Valid only after Next has returned
// true and before the next call to Next.
func (p *Product[T]) Values() []T {
	return p.current
}
