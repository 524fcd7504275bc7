package chm

// This file contains the per-attempt graph construction.
//
// Each key becomes an undirected edge between its two vertex hashes. An
// attempt is rejected as soon as it cannot yield a solvable forest:
// a self-loop (h1 == h2), a duplicate unordered vertex pair, or an edge
// closing a cycle. The acyclicity check and the per-component tree
// invariant (edges == vertices - 1) are the same condition: in a graph
// built edge by edge, the first edge joining two already-connected
// vertices is exactly the first cycle.

// unionFind is a disjoint-set structure with path compression and union
// by size, over the vertex range [0, m).
type unionFind struct {
	parent []int32
	size   []int32
}

func newUnionFind(m uint32) *unionFind {
	parent := make([]int32, m)
	size := make([]int32, m)
	for i := range parent {
		parent[i] = -1 // -1 means "is a root"
		size[i] = 1
	}
	return &unionFind{parent: parent, size: size}
}

// find returns the root of the set containing x, compressing the path.
func (uf *unionFind) find(x uint32) uint32 {
	root := x
	for uf.parent[root] != -1 {
		root = uint32(uf.parent[root])
	}
	for uf.parent[x] != -1 {
		x, uf.parent[x] = uint32(uf.parent[x]), int32(root)
	}
	return root
}

// union merges the sets containing x and y, attaching the smaller tree
// under the larger. Returns false if x and y were already connected,
// which in this graph means the new edge closes a cycle.
func (uf *unionFind) union(x, y uint32) bool {
	rootX := uf.find(x)
	rootY := uf.find(y)
	if rootX == rootY {
		return false
	}
	if uf.size[rootX] < uf.size[rootY] {
		rootX, rootY = rootY, rootX
	}
	uf.parent[rootY] = int32(rootX)
	uf.size[rootX] += uf.size[rootY]
	return true
}

// graph is the transient construction graph for one seed attempt.
// Adjacency is a CSR layout over flat integer arrays indexed by vertex id;
// the whole structure is discarded once the label table is produced.
type graph struct {
	numVertices uint32

	// Edge i corresponds to key i.
	edgeU []uint32
	edgeV []uint32

	// CSR adjacency: half-edges for vertex v live at
	// adjVert/adjEdge[adjOff[v]:adjOff[v+1]].
	adjOff  []uint32
	adjVert []uint32
	adjEdge []uint32

	uf *unionFind
}

// buildGraph hashes all n keys under seed and assembles the acyclic
// multigraph, or reports failure if this seed cannot produce one.
func buildGraph(n int, m uint32, seed uint64, pair PairFunc) (*graph, bool) {
	g := &graph{
		numVertices: m,
		edgeU:       make([]uint32, n),
		edgeV:       make([]uint32, n),
		uf:          newUnionFind(m),
	}

	seen := make(map[uint64]struct{}, n)
	for i := 0; i < n; i++ {
		u, v := pair(i, seed, m)
		if u == v {
			return nil, false
		}
		lo, hi := u, v
		if lo > hi {
			lo, hi = hi, lo
		}
		packed := uint64(lo)<<32 | uint64(hi)
		if _, dup := seen[packed]; dup {
			return nil, false
		}
		seen[packed] = struct{}{}
		if !g.uf.union(u, v) {
			return nil, false
		}
		g.edgeU[i] = u
		g.edgeV[i] = v
	}

	g.buildAdjacency()
	return g, true
}

// buildAdjacency fills the CSR arrays with both directions of every edge
// using a counting pass followed by a placement pass.
func (g *graph) buildAdjacency() {
	n := len(g.edgeU)
	degree := make([]uint32, g.numVertices)
	for i := 0; i < n; i++ {
		degree[g.edgeU[i]]++
		degree[g.edgeV[i]]++
	}

	g.adjOff = make([]uint32, g.numVertices+1)
	var total uint32
	for v := uint32(0); v < g.numVertices; v++ {
		g.adjOff[v] = total
		total += degree[v]
	}
	g.adjOff[g.numVertices] = total

	g.adjVert = make([]uint32, total)
	g.adjEdge = make([]uint32, total)
	next := make([]uint32, g.numVertices)
	copy(next, g.adjOff[:g.numVertices])
	for i := 0; i < n; i++ {
		u, v := g.edgeU[i], g.edgeV[i]
		g.adjVert[next[u]] = v
		g.adjEdge[next[u]] = uint32(i)
		next[u]++
		g.adjVert[next[v]] = u
		g.adjEdge[next[v]] = uint32(i)
		next[v]++
	}
}

// degree returns the number of half-edges incident to v.
func (g *graph) degree(v uint32) uint32 {
	return g.adjOff[v+1] - g.adjOff[v]
}
