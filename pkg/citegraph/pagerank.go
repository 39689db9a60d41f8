package citegraph

const (
	pagerankDamping    = 0.85
	pagerankIterations = 100
)

// PageRank computes PageRank scores over the directed citation edges with
// damping 0.85 and a fixed 100 iterations. Nodes without outgoing edges
// are treated as having out-degree 1, so they hold their distributable
// mass instead of spreading it.
//
// An empty graph yields an empty map.
func PageRank(g *Graph) map[string]float64 {
	n := len(g.Nodes)
	if n == 0 {
		return map[string]float64{}
	}

	ranks := make(map[string]float64, n)
	for _, node := range g.Nodes {
		ranks[node.ID] = 1.0 / float64(n)
	}

	outDegree := make(map[string]int, n)
	for _, edge := range g.Edges {
		outDegree[edge.Source]++
	}

	base := (1 - pagerankDamping) / float64(n)
	for range pagerankIterations {
		next := make(map[string]float64, n)
		for _, node := range g.Nodes {
			next[node.ID] = base
		}
		for _, edge := range g.Edges {
			degree := outDegree[edge.Source]
			if degree == 0 {
				degree = 1
			}
			next[edge.Target] += pagerankDamping * ranks[edge.Source] / float64(degree)
		}
		ranks = next
	}

	return ranks
}
