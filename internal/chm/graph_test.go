package chm

import "testing"

func TestUnionFindBasic(t *testing.T) {
	uf := newUnionFind(10)
	for v := uint32(0); v < 10; v++ {
		if root := uf.find(v); root != v {
			t.Errorf("fresh find(%d) = %d, want itself", v, root)
		}
	}

	if !uf.union(1, 2) {
		t.Fatal("union(1, 2) reported a cycle on disjoint sets")
	}
	if !uf.union(2, 3) {
		t.Fatal("union(2, 3) reported a cycle on disjoint sets")
	}
	if uf.find(1) != uf.find(3) {
		t.Error("1 and 3 should share a root after unions")
	}
	if uf.find(1) == uf.find(4) {
		t.Error("1 and 4 should not share a root")
	}

	// Closing edge within {1,2,3} is the first cycle.
	if uf.union(1, 3) {
		t.Error("union(1, 3) should report a cycle")
	}
}

func TestUnionFindSizes(t *testing.T) {
	uf := newUnionFind(8)
	uf.union(0, 1)
	uf.union(2, 3)
	uf.union(0, 2)
	if got := uf.size[uf.find(0)]; got != 4 {
		t.Errorf("component size = %d, want 4", got)
	}
	if got := uf.size[uf.find(5)]; got != 1 {
		t.Errorf("singleton size = %d, want 1", got)
	}
}

// fixedPair returns a PairFunc that replays a fixed edge list, ignoring
// the seed. Used to force specific graph shapes.
func fixedPair(edges [][2]uint32) PairFunc {
	return func(i int, _ uint64, _ uint32) (uint32, uint32) {
		return edges[i][0], edges[i][1]
	}
}

func TestBuildGraphRejectsSelfLoop(t *testing.T) {
	if _, ok := buildGraph(1, 4, 0, fixedPair([][2]uint32{{2, 2}})); ok {
		t.Error("self-loop accepted")
	}
}

func TestBuildGraphRejectsDuplicateEdge(t *testing.T) {
	// Same unordered pair in both orientations.
	if _, ok := buildGraph(2, 4, 0, fixedPair([][2]uint32{{0, 1}, {1, 0}})); ok {
		t.Error("duplicate unordered edge accepted")
	}
}

func TestBuildGraphRejectsCycle(t *testing.T) {
	edges := [][2]uint32{{0, 1}, {1, 2}, {2, 0}}
	if _, ok := buildGraph(3, 4, 0, fixedPair(edges)); ok {
		t.Error("triangle accepted")
	}
}

func TestBuildGraphAcceptsForest(t *testing.T) {
	// Two trees: {0,1,2} and {4,5}, vertex 3 isolated.
	edges := [][2]uint32{{0, 1}, {1, 2}, {4, 5}}
	g, ok := buildGraph(3, 6, 0, fixedPair(edges))
	if !ok {
		t.Fatal("forest rejected")
	}

	wantDegree := []uint32{1, 2, 1, 0, 1, 1}
	for v, want := range wantDegree {
		if got := g.degree(uint32(v)); got != want {
			t.Errorf("degree(%d) = %d, want %d", v, got, want)
		}
	}

	comps := g.components()
	if len(comps) != 2 {
		t.Fatalf("got %d components, want 2", len(comps))
	}
	if comps[0].root != 0 || comps[0].base != 0 || comps[0].edges != 2 {
		t.Errorf("component 0 = %+v, want root=0 base=0 edges=2", comps[0])
	}
	if comps[1].root != 4 || comps[1].base != 2 || comps[1].edges != 1 {
		t.Errorf("component 1 = %+v, want root=4 base=2 edges=1", comps[1])
	}
}

func TestAdjacencyRoundTrip(t *testing.T) {
	edges := [][2]uint32{{0, 3}, {3, 1}, {3, 2}}
	g, ok := buildGraph(3, 5, 0, fixedPair(edges))
	if !ok {
		t.Fatal("star rejected")
	}

	// Every edge must appear once from each endpoint, carrying its index.
	counts := make(map[uint32]int)
	for v := uint32(0); v < g.numVertices; v++ {
		for idx := g.adjOff[v]; idx < g.adjOff[v+1]; idx++ {
			e := g.adjEdge[idx]
			counts[e]++
			u, w := g.edgeU[e], g.edgeV[e]
			if v != u && v != w {
				t.Errorf("edge %d listed at vertex %d, endpoints are (%d, %d)", e, v, u, w)
			}
		}
	}
	for e := range edges {
		if counts[uint32(e)] != 2 {
			t.Errorf("edge %d appears %d times in adjacency, want 2", e, counts[uint32(e)])
		}
	}
}
