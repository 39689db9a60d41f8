package routes

import (
	"net/http"

	"github.com/citenav/backend/pkg/citegraph"

	"github.com/labstack/echo/v4"
)

// GetGraphMetricsHandler computes the analytics bundle for the current
// graph: PageRank, undirected degree centrality and size counts.
func GetGraphMetricsHandler(c echo.Context) error {
	type metricsResponse struct {
		Nodes      int                `json:"nodes"`
		Links      int                `json:"links"`
		PageRank   map[string]float64 `json:"pagerank"`
		Centrality map[string]int     `json:"centrality"`
	}

	sess, ok, err := lookupSession(c)
	if !ok {
		return err
	}

	sess.Lock()
	defer sess.Unlock()

	graph := sess.Agent.Graph()
	if graph == nil {
		return c.JSON(http.StatusNotFound, messageResponse{Message: "Graph not built yet"})
	}

	return c.JSON(http.StatusOK, metricsResponse{
		Nodes:      graph.NodeCount(),
		Links:      graph.EdgeCount(),
		PageRank:   citegraph.PageRank(graph),
		Centrality: citegraph.DegreeCentrality(graph),
	})
}
