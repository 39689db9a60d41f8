package citegraph

import (
	"context"
	"errors"

	"github.com/citenav/backend/pkg/logger"
	"github.com/citenav/backend/pkg/papers"

	"golang.org/x/sync/errgroup"
)

// ErrNodeNotFound is returned when an unfold targets an ID missing from
// the graph.
var ErrNodeNotFound = errors.New("node not found in graph")

// Builder expands a citation graph one node at a time using a
// citation-data source.
//
// A Builder should be created using NewBuilder.
type Builder struct {
	citations papers.CitationClient
}

// NewBuilder creates a Builder over the given citation-data source.
func NewBuilder(citations papers.CitationClient) *Builder {
	return &Builder{
		citations: citations,
	}
}

// Unfold expands one node: it fetches the papers citing it and the papers
// it cites, merges previously unseen papers into the graph, and links each
// new paper to the unfolded node (citing paper → node for citations,
// node → cited paper for references). Nodes and their edges are added
// together, so no edge is ever dangling.
//
// Unfold is idempotent: a node whose Expanded flag is set is left alone.
// The two sub-fetches run concurrently; a failed sub-fetch degrades to
// zero additions from that side and the flag is still set, so a
// persistently failing node is not retried on every activation.
func (b *Builder) Unfold(ctx context.Context, g *Graph, nodeID string) error {
	node := g.Node(nodeID)
	if node == nil {
		return ErrNodeNotFound
	}
	if node.Expanded {
		return nil
	}

	var citing, cited []papers.Paper

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		result, err := b.citations.CitationsOf(egCtx, nodeID)
		if err != nil {
			logger.Warn("[Graph] Citations fetch failed", "node", nodeID, "err", err)
			return nil
		}
		citing = result
		return nil
	})
	eg.Go(func() error {
		result, err := b.citations.ReferencesOf(egCtx, nodeID)
		if err != nil {
			logger.Warn("[Graph] References fetch failed", "node", nodeID, "err", err)
			return nil
		}
		cited = result
		return nil
	})
	_ = eg.Wait()

	// Citations are merged before references so palette assignment does
	// not depend on which fetch finished first.
	added := 0
	for _, paper := range citing {
		if n := g.addPaper(paper); n != nil {
			g.addEdge(n.ID, nodeID)
			added++
		}
	}
	for _, paper := range cited {
		if n := g.addPaper(paper); n != nil {
			g.addEdge(nodeID, n.ID)
			added++
		}
	}

	node.Expanded = true
	logger.Debug("[Graph] Node unfolded", "node", nodeID, "added", added)
	return nil
}
