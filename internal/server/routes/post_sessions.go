package routes

import (
	"net/http"

	"github.com/citenav/backend/internal/server/middleware"
	"github.com/citenav/backend/pkg/agent"
	"github.com/citenav/backend/pkg/ai"
	"github.com/citenav/backend/pkg/citegraph"
	"github.com/citenav/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CreateSessionHandler starts a new research conversation.
func CreateSessionHandler(c echo.Context) error {
	type createSessionResponse struct {
		Message  string           `json:"message"`
		ID       string           `json:"id,omitempty"`
		State    agent.State      `json:"state,omitempty"`
		Messages []ai.ChatMessage `json:"messages,omitempty"`
	}

	app := c.(*middleware.AppContext).App

	a := agent.New(agent.NewAgentParams{
		Orchestrator: app.Orchestrator,
		Search:       app.Search,
	})

	sess, err := app.Sessions.Create(a, citegraph.NewBuilder(app.Citations))
	if err != nil {
		logger.Error("Failed to create session", "err", err)
		return c.JSON(http.StatusInternalServerError, createSessionResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, createSessionResponse{
		Message:  "Session created successfully",
		ID:       sess.ID,
		State:    a.State(),
		Messages: a.Transcript(),
	})
}
