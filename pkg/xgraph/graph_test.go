package xgraph

import (
	"sort"
	"testing"
)

func TestAddEdgeAndNeighbors(t *testing.T) {
	g := New[string, string]()
	a := g.AddVertex("a")
	b := g.AddVertex("b")
	g.AddEdge(a, b, "ab")

	if len(g.Neighbors(a)) != 1 || g.Neighbors(a)[b] != "ab" {
		t.Fatalf("expected a-b edge labeled ab")
	}
	if len(g.Neighbors(b)) != 1 || g.Neighbors(b)[a] != "ab" {
		t.Fatalf("edge should be undirected")
	}
}

func TestRemoveVertexClearsIncidentEdges(t *testing.T) {
	g := New[string, string]()
	a := g.AddVertex("a")
	b := g.AddVertex("b")
	g.AddEdge(a, b, "ab")
	g.RemoveVertex(a)

	if _, ok := g.Neighbors(b)[a]; ok {
		t.Fatalf("removing a should clear b's edge to it")
	}
	if g.NumVertices() != 1 {
		t.Fatalf("NumVertices() = %d, want 1", g.NumVertices())
	}
}

func TestMergeNoEdge(t *testing.T) {
	g := New[string, string]()
	a := g.AddVertex("a")
	b := g.AddVertex("b")
	c := g.Merge(a, b,
		func(l1, l2 string, edge string, hadEdge bool) string {
			if hadEdge {
				t.Fatalf("should not have had an edge")
			}
			return l1 + l2
		},
		func(e1, e2 string) string { t.Fatalf("no parallel edges expected"); return "" },
	)
	if g.Label(c) != "ab" {
		t.Fatalf("Label(merged) = %q, want ab", g.Label(c))
	}
	if g.NumVertices() != 1 {
		t.Fatalf("NumVertices() = %d, want 1", g.NumVertices())
	}
}

func TestMergeCoalescesParallelEdges(t *testing.T) {
	g := New[string, string]()
	a := g.AddVertex("a")
	b := g.AddVertex("b")
	c := g.AddVertex("c")
	d := g.AddVertex("d")
	e := g.AddVertex("e")
	g.AddEdge(a, b, "ab")
	g.AddEdge(a, c, "ac")
	g.AddEdge(a, d, "ad")
	g.AddEdge(b, d, "bd")
	g.AddEdge(b, e, "be")

	merged := g.Merge(a, b,
		func(l1, l2 string, edge string, hadEdge bool) string {
			if !hadEdge || edge != "ab" {
				t.Fatalf("expected edge 'ab' between merged vertices")
			}
			return l1 + "+" + l2
		},
		func(e1, e2 string) string {
			// Exactly d should have two edges coalesced (ad, bd).
			combined := e1 + e2
			if combined != "adbd" && combined != "bdad" {
				t.Fatalf("unexpected coalesced edge: %q", combined)
			}
			return combined
		},
	)

	if g.Label(merged) != "a+b" {
		t.Fatalf("Label(merged) = %q, want a+b", g.Label(merged))
	}
	if _, ok := g.Neighbors(merged)[c]; !ok {
		t.Fatalf("merged vertex should still be adjacent to c")
	}
	if _, ok := g.Neighbors(merged)[d]; !ok {
		t.Fatalf("merged vertex should still be adjacent to d (coalesced)")
	}
	if _, ok := g.Neighbors(merged)[e]; !ok {
		t.Fatalf("merged vertex should still be adjacent to e")
	}
}

func TestStoerWagnerSimpleCut(t *testing.T) {
	// Two triangles joined by a single bridge edge: min cut is 1.
	g := New[int, struct{}]()
	vs := make([]VertexID, 6)
	for i := range vs {
		vs[i] = g.AddVertex(i)
	}
	edges := [][2]int{{0, 1}, {1, 2}, {2, 0}, {3, 4}, {4, 5}, {5, 3}, {2, 3}}
	for _, e := range edges {
		g.AddEdge(vs[e[0]], vs[e[1]], struct{}{})
	}

	weight, partition := StoerWagner[int, struct{}](g)
	if weight != 1 {
		t.Fatalf("weight = %d, want 1", weight)
	}
	sort.Ints(partition)
	// One side must be exactly {0,1,2} or {3,4,5}.
	side012 := []int{0, 1, 2}
	side345 := []int{3, 4, 5}
	if !(equalInts(partition, side012) || equalInts(partition, side345)) {
		t.Fatalf("partition = %v, want {0,1,2} or {3,4,5}", partition)
	}
}

func TestStoerWagnerTwoVertices(t *testing.T) {
	g := New[int, struct{}]()
	a := g.AddVertex(1)
	b := g.AddVertex(2)
	g.AddEdge(a, b, struct{}{})

	weight, partition := StoerWagner[int, struct{}](g)
	if weight != 1 {
		t.Fatalf("weight = %d, want 1", weight)
	}
	if len(partition) != 1 {
		t.Fatalf("partition = %v, want one vertex", partition)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTreeSeqValues(t *testing.T) {
	seq := Leaf(0).Concat(Leaf(1).Concat(Leaf(2)))
	got := seq.Values()
	want := []int{0, 1, 2}
	if !equalInts(got, want) {
		t.Fatalf("Values() = %v, want %v", got, want)
	}
}
