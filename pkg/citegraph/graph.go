package citegraph

import (
	"math"

	"github.com/citenav/backend/pkg/papers"
)

// nodePalette is cycled by node insertion index to color nodes. The index
// keeps counting across unfold batches so later additions stay visually
// distinct from the initial result set.
var nodePalette = []string{
	"#F87171", "#FB923C", "#FBBF24", "#A3E635",
	"#34D399", "#22D3EE", "#60A5FA", "#A78BFA",
}

// Node is one paper placed in the citation graph. ID always equals the
// paper's PaperID. Val is a display size weight derived from citation
// impact; Expanded records whether the node's citation neighborhood has
// already been fetched.
type Node struct {
	papers.Paper

	ID       string  `json:"id"`
	Color    string  `json:"color"`
	Val      float64 `json:"val"`
	Expanded bool    `json:"expanded"`
}

// Edge is a directed citation link: Source cites Target.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is an in-memory citation graph. Node IDs are unique and nodes and
// edges are append-only; every edge endpoint always references an existing
// node because nodes and their edges are added together.
//
// A Graph is owned by exactly one controller at a time and is not safe for
// concurrent mutation.
type Graph struct {
	Nodes []*Node `json:"nodes"`
	Edges []Edge  `json:"links"`

	index      map[string]*Node
	colorIndex int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		index: make(map[string]*Node),
	}
}

// BuildFromPapers creates a graph with one node per paper and no edges.
// Duplicate paper IDs are dropped after their first occurrence.
func BuildFromPapers(list []papers.Paper) *Graph {
	g := NewGraph()
	for _, paper := range list {
		g.addPaper(paper)
	}
	return g
}

// Node returns the node with the given ID, or nil.
func (g *Graph) Node(id string) *Node {
	return g.index[id]
}

// HasNode reports whether a node with the given ID exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.Edges)
}

// addPaper appends a node for the paper unless its ID is already present
// or empty. Returns the node, or nil if nothing was added.
func (g *Graph) addPaper(paper papers.Paper) *Node {
	if paper.PaperID == "" || g.HasNode(paper.PaperID) {
		return nil
	}

	node := &Node{
		Paper: paper,
		ID:    paper.PaperID,
		Color: nodePalette[g.colorIndex%len(nodePalette)],
		// log(count+1) keeps the weight monotonic in citation impact
		// while guarding log(0).
		Val: math.Log(float64(paper.CitationCount)+1) * 2,
	}
	g.colorIndex++

	g.Nodes = append(g.Nodes, node)
	g.index[paper.PaperID] = node
	return node
}

// addEdge appends a directed edge. Callers must only pass endpoints that
// already exist as nodes.
func (g *Graph) addEdge(source, target string) {
	g.Edges = append(g.Edges, Edge{Source: source, Target: target})
}
