package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetGraphHandler returns the current citation-graph snapshot.
func GetGraphHandler(c echo.Context) error {
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
	return c.JSON(http.StatusOK, graph)
}
