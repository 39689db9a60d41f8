package citegraph

// DegreeCentrality counts, per node, the edges touching it regardless of
// direction. Every node appears in the result, isolated nodes with 0.
func DegreeCentrality(g *Graph) map[string]int {
	degrees := make(map[string]int, len(g.Nodes))
	for _, node := range g.Nodes {
		degrees[node.ID] = 0
	}
	for _, edge := range g.Edges {
		degrees[edge.Source]++
		degrees[edge.Target]++
	}
	return degrees
}
