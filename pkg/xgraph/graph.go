// Package xgraph implements a small undirected labeled multigraph and
// the Stoer-Wagner global minimum cut algorithm over it, used by the
// search package to decompose a large fill problem into independently
// solvable pieces.
package xgraph

// VertexID identifies a vertex within a single Graph. IDs are never
// reused within a graph's lifetime, including after RemoveVertex.
type VertexID int

type vertexEntry[VL any, EL any] struct {
	label     VL
	neighbors map[VertexID]EL
}

// Graph is an undirected labeled multigraph: vertices carry a label of
// type VL, edges of type EL. There is at most one edge stored between
// any ordered pair internally, but AddEdge on an existing pair does not
// merge — callers that want parallel edges coalesced (as Merge does)
// must supply a combiner.
type Graph[VL any, EL any] struct {
	vertices map[VertexID]*vertexEntry[VL, EL]
	next     VertexID
}

// New returns an empty graph.
func New[VL any, EL any]() *Graph[VL, EL] {
	return &Graph[VL, EL]{vertices: make(map[VertexID]*vertexEntry[VL, EL])}
}

// AddVertex adds a new vertex with the given label and returns its id.
func (g *Graph[VL, EL]) AddVertex(label VL) VertexID {
	id := g.next
	g.next++
	g.vertices[id] = &vertexEntry[VL, EL]{label: label, neighbors: make(map[VertexID]EL)}
	return id
}

// RemoveVertex removes v and every edge incident to it.
func (g *Graph[VL, EL]) RemoveVertex(v VertexID) {
	entry := g.vertices[v]
	for n := range entry.neighbors {
		delete(g.vertices[n].neighbors, v)
	}
	delete(g.vertices, v)
}

// AddEdge adds an undirected edge between v1 and v2 with the given
// label, overwriting any existing edge between them.
func (g *Graph[VL, EL]) AddEdge(v1, v2 VertexID, label EL) {
	g.vertices[v1].neighbors[v2] = label
	g.vertices[v2].neighbors[v1] = label
}

// RemoveEdge removes the edge between v1 and v2, if any, and returns
// its label.
func (g *Graph[VL, EL]) RemoveEdge(v1, v2 VertexID) (EL, bool) {
	label, ok := g.vertices[v1].neighbors[v2]
	if ok {
		delete(g.vertices[v1].neighbors, v2)
		delete(g.vertices[v2].neighbors, v1)
	}
	return label, ok
}

// Label returns the label of vertex v.
func (g *Graph[VL, EL]) Label(v VertexID) VL {
	return g.vertices[v].label
}

// NumVertices returns the number of vertices currently in the graph.
func (g *Graph[VL, EL]) NumVertices() int {
	return len(g.vertices)
}

// Vertices returns every vertex id currently in the graph, in
// unspecified order.
func (g *Graph[VL, EL]) Vertices() []VertexID {
	out := make([]VertexID, 0, len(g.vertices))
	for v := range g.vertices {
		out = append(out, v)
	}
	return out
}

// Neighbors returns the neighbors of v and the label of each incident
// edge, in unspecified order.
func (g *Graph[VL, EL]) Neighbors(v VertexID) map[VertexID]EL {
	return g.vertices[v].neighbors
}

// Merge combines v1 and v2 into a single new vertex and returns its id.
// combineVertex computes the merged label from v1's label, v2's label,
// and the label of the edge between them (nil-able via the ok flag
// pattern is avoided here — callers that never connect v1,v2 directly
// still get called with their zero-value EL and hadEdge=false).
// combineEdge coalesces the labels of parallel edges that result from
// v1 and v2 sharing a neighbor — every Stoer-Wagner correctness
// argument for this graph depends on that coalescing actually
// happening, so Merge insists on an explicit combiner rather than
// silently dropping one of the two edges.
func (g *Graph[VL, EL]) Merge(
	v1, v2 VertexID,
	combineVertex func(l1, l2 VL, edge EL, hadEdge bool) VL,
	combineEdge func(e1, e2 EL) EL,
) VertexID {
	edgeLabel, hadEdge := g.RemoveEdge(v1, v2)

	e1 := g.vertices[v1]
	e2 := g.vertices[v2]
	g.RemoveVertex(v1)
	g.RemoveVertex(v2)

	merged := g.AddVertex(combineVertex(e1.label, e2.label, edgeLabel, hadEdge))

	union := make(map[VertexID]EL, len(e1.neighbors)+len(e2.neighbors))
	for n, l := range e1.neighbors {
		union[n] = l
	}
	for n, l2 := range e2.neighbors {
		if l1, ok := union[n]; ok {
			union[n] = combineEdge(l1, l2)
		} else {
			union[n] = l2
		}
	}
	for n, l := range union {
		g.AddEdge(merged, n, l)
	}
	return merged
}
