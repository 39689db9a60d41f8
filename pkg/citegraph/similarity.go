package citegraph

import (
	"math"
	"sort"
)

const defaultTopK = 5

// CosineSimilarity returns the cosine of the angle between two vectors.
// Mismatched dimensions or a zero-magnitude vector yield 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Recommendation pairs a node with its embedding similarity to a target.
type Recommendation struct {
	Node       *Node   `json:"node"`
	Similarity float64 `json:"similarity"`
}

// FindSimilarPapers ranks the other embedded nodes of the graph by cosine
// similarity to the target node's embedding, most similar first, and
// returns at most topK of them (5 when topK <= 0). A target that is
// missing or has no embedding yields an empty slice; nodes without
// embeddings are skipped rather than scored 0.
//
// Ties keep graph insertion order, so the ranking is deterministic.
func FindSimilarPapers(g *Graph, targetID string, topK int) []Recommendation {
	if topK <= 0 {
		topK = defaultTopK
	}

	target := g.Node(targetID)
	if target == nil || target.Embedding == nil {
		return []Recommendation{}
	}

	result := make([]Recommendation, 0, len(g.Nodes))
	for _, node := range g.Nodes {
		if node.ID == targetID || node.Embedding == nil {
			continue
		}
		result = append(result, Recommendation{
			Node:       node,
			Similarity: CosineSimilarity(target.Embedding.Vector, node.Embedding.Vector),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Similarity > result[j].Similarity
	})

	if len(result) > topK {
		result = result[:topK]
	}
	return result
}
