package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PostMessageHandler runs one conversation turn. When the turn completed a
// paper search the response carries the freshly built graph.
func PostMessageHandler(c echo.Context) error {
	type postMessageBody struct {
		Message string `json:"message" validate:"required"`
	}

	data := new(postMessageBody)
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

	result := sess.Agent.Turn(c.Request().Context(), data.Message)
	return c.JSON(http.StatusOK, result)
}
