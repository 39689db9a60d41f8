package routes

import (
	"errors"
	"net/http"

	"github.com/citenav/backend/pkg/citegraph"
	"github.com/citenav/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

// UnfoldNodeHandler expands one graph node with its citation neighborhood
// and returns the grown graph.
func UnfoldNodeHandler(c echo.Context) error {
	type unfoldBody struct {
		NodeID string `json:"node_id" validate:"required"`
	}

	data := new(unfoldBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request body"})
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

	if err := sess.Builder.Unfold(c.Request().Context(), graph, data.NodeID); err != nil {
		if errors.Is(err, citegraph.ErrNodeNotFound) {
			return c.JSON(http.StatusNotFound, messageResponse{Message: "Node not found"})
		}
		logger.Error("Failed to unfold node", "node", data.NodeID, "err", err)
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Internal server error"})
	}

	return c.JSON(http.StatusOK, graph)
}
