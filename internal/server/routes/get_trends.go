package routes

import (
	"net/http"

	"github.com/citenav/backend/pkg/citegraph"

	"github.com/labstack/echo/v4"
)

// GetTrendsHandler returns publications per year for the current graph.
func GetTrendsHandler(c echo.Context) error {
	type trendsResponse struct {
		Trend []citegraph.YearCount `json:"trend"`
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

	return c.JSON(http.StatusOK, trendsResponse{Trend: citegraph.PublicationTrend(graph)})
}
