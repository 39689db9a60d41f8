package routes

import (
	"net/http"

	"github.com/citenav/backend/internal/server/middleware"
	"github.com/citenav/backend/internal/session"

	"github.com/labstack/echo/v4"
)

type messageResponse struct {
	Message string `json:"message"`
}

// lookupSession resolves the :id path parameter. On failure it writes the
// error response and returns ok=false; the handler just returns.
func lookupSession(c echo.Context) (*session.Session, bool, error) {
	id := c.Param("id")
	if id == "" {
		return nil, false, c.JSON(http.StatusBadRequest, messageResponse{Message: "Missing session id"})
	}

	app := c.(*middleware.AppContext).App
	sess, ok := app.Sessions.Get(id)
	if !ok {
		return nil, false, c.JSON(http.StatusNotFound, messageResponse{Message: "Session not found"})
	}
	return sess, true, nil
}
