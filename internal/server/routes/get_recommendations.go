package routes

import (
	"net/http"

	"github.com/citenav/backend/pkg/citegraph"

	"github.com/labstack/echo/v4"
)

// GetRecommendationsHandler ranks papers similar to one node by embedding
// cosine similarity.
func GetRecommendationsHandler(c echo.Context) error {
	type recommendationsQuery struct {
		Node string `query:"node" validate:"required"`
		TopK int    `query:"top_k"`
	}

	type recommendationsResponse struct {
		Node            string                     `json:"node"`
		Recommendations []citegraph.Recommendation `json:"recommendations"`
	}

	data := new(recommendationsQuery)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request"})
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

	return c.JSON(http.StatusOK, recommendationsResponse{
		Node:            data.Node,
		Recommendations: citegraph.FindSimilarPapers(graph, data.Node, data.TopK),
	})
}
