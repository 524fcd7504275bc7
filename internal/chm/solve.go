package chm

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// component describes one tree of the accepted forest.
type component struct {
	root  uint32 // lowest vertex id in the component
	base  uint32 // first rank of this component's slice of [0, n)
	edges uint32 // keys owned by this component
}

// components discovers the forest's components in ascending root-vertex
// order and assigns each a disjoint base in the global rank space. The
// running base partitions [0, n) across components; isolated vertices own
// no keys and are skipped.
//
// The ascending vertex scan guarantees the first vertex seen for any
// union-find set is the smallest id in that set, so the order (and with
// it the whole label table) is reproducible for a fixed seed.
func (g *graph) components() []component {
	compIdx := make(map[uint32]int)
	var comps []component
	var base uint32
	for v := uint32(0); v < g.numVertices; v++ {
		if g.degree(v) == 0 {
			continue
		}
		root := g.uf.find(v)
		if _, ok := compIdx[root]; ok {
			continue
		}
		// Tree invariant: edges == vertices - 1.
		edges := uint32(g.uf.size[root]) - 1
		compIdx[root] = len(comps)
		comps = append(comps, component{root: v, base: base, edges: edges})
		base += edges
	}
	return comps
}

// label walks every component and produces the vertex label table over
// [0, m) together with the rank assigned to each key edge.
//
// Components share no state, so they are labeled concurrently when
// workers > 1; the bases were fixed up front, so the result is identical
// to the sequential one.
func (g *graph) label(n uint32, comps []component, workers int) ([]uint32, []uint32, error) {
	labels := make([]uint32, g.numVertices)
	ranks := make([]uint32, len(g.edgeU))
	visited := make([]bool, g.numVertices)

	if workers <= 1 {
		for _, c := range comps {
			if err := g.labelComponent(n, c, labels, ranks, visited); err != nil {
				return nil, nil, err
			}
		}
		return labels, ranks, nil
	}

	var eg errgroup.Group
	eg.SetLimit(workers)
	for _, c := range comps {
		eg.Go(func() error {
			return g.labelComponent(n, c, labels, ranks, visited)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return labels, ranks, nil
}

// labelComponent breadth-first traverses one tree, assigning each edge
// the next rank in the component's slice and solving
// labels[v] = (rank - labels[u]) mod n for the newly reached endpoint.
//
// By construction (labels[u] + labels[v]) mod n then recovers the rank of
// the edge between u and v, and ranks are consumed densely, which is what
// makes the final function minimal and perfect.
func (g *graph) labelComponent(n uint32, c component, labels, ranks []uint32, visited []bool) error {
	labels[c.root] = 0
	visited[c.root] = true

	queue := make([]uint32, 1, c.edges+1)
	queue[0] = c.root
	var counter uint32
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for idx := g.adjOff[u]; idx < g.adjOff[u+1]; idx++ {
			v := g.adjVert[idx]
			if visited[v] {
				// Either the edge back to the BFS parent, or a cycle,
				// which buildGraph already ruled out.
				continue
			}
			rank := c.base + counter
			counter++
			ranks[g.adjEdge[idx]] = rank
			labels[v] = uint32((uint64(rank) + uint64(n) - uint64(labels[u])) % uint64(n))
			visited[v] = true
			queue = append(queue, v)
		}
	}

	if counter != c.edges {
		return fmt.Errorf("component at vertex %d: labeled %d edges, want %d", c.root, counter, c.edges)
	}
	return nil
}
