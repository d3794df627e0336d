package xgraph

// StoerWagner computes a global minimum cut of g (treating every edge
// as weight 1) using the Stoer-Wagner algorithm. It returns the cut's
// weight and the original vertex labels making up one side of the cut.
//
// Requires at least 2 vertices; panics otherwise, matching the
// precondition the caller (SplitCells) already checks.
func StoerWagner[VL any, EL any](g *Graph[VL, EL]) (int, []VL) {
	if g.NumVertices() < 2 {
		panic("xgraph: StoerWagner requires at least 2 vertices")
	}

	work := New[*TreeSeq[VL], int]()
	toWork := make(map[VertexID]VertexID, g.NumVertices())
	for _, v := range g.Vertices() {
		toWork[v] = work.AddVertex(Leaf(g.Label(v)))
	}
	seen := make(map[[2]VertexID]bool)
	for _, v := range g.Vertices() {
		for n := range g.Neighbors(v) {
			key := edgeKey(v, n)
			if seen[key] {
				continue
			}
			seen[key] = true
			work.AddEdge(toWork[v], toWork[n], 1)
		}
	}

	bestWeight := -1
	var bestPartition []VL

	for work.NumVertices() > 1 {
		s, t, weight := minimumCutPhase(work)
		if bestWeight == -1 || weight <= bestWeight {
			bestWeight = weight
			bestPartition = work.Label(t).Values()
		}
		work.Merge(s, t,
			func(l1, l2 *TreeSeq[VL], _ int, _ bool) *TreeSeq[VL] {
				return l1.Concat(l2)
			},
			func(e1, e2 int) int {
				return e1 + e2
			},
		)
	}

	return bestWeight, bestPartition
}

func edgeKey(a, b VertexID) [2]VertexID {
	if a < b {
		return [2]VertexID{a, b}
	}
	return [2]VertexID{b, a}
}

// minimumCutPhase runs one maximum-adjacency-search phase: starting
// from an arbitrary vertex, repeatedly add the vertex most tightly
// connected to the set added so far. Returns the last two vertices
// added (s, t) and the weight of the cut that isolates t from the rest.
func minimumCutPhase[VL any](g *Graph[*TreeSeq[VL], int]) (s, t VertexID, cutWeight int) {
	vertices := g.Vertices()
	inSet := make(map[VertexID]bool, len(vertices))
	weight := make(map[VertexID]int, len(vertices))

	start := vertices[0]
	inSet[start] = true
	order := []VertexID{start}
	for n, w := range g.Neighbors(start) {
		weight[n] += w
	}

	for len(order) < len(vertices) {
		var next VertexID
		bestWeight := -1
		for _, v := range vertices {
			if inSet[v] {
				continue
			}
			if bestWeight == -1 || weight[v] > bestWeight {
				bestWeight = weight[v]
				next = v
			}
		}
		inSet[next] = true
		order = append(order, next)
		cutWeight = bestWeight
		for n, w := range g.Neighbors(next) {
			if !inSet[n] {
				weight[n] += w
			}
		}
	}

	t = order[len(order)-1]
	s = order[len(order)-2]
	return s, t, cutWeight
}
