package routes

import (
	"net/http"

	"github.com/citenav/backend/pkg/agent"
	"github.com/citenav/backend/pkg/ai"

	"github.com/labstack/echo/v4"
)

// GetSessionHandler returns the transcript and progress of one session.
func GetSessionHandler(c echo.Context) error {
	type getSessionResponse struct {
		ID       string           `json:"id"`
		State    agent.State      `json:"state"`
		Messages []ai.ChatMessage `json:"messages"`
	}

	sess, ok, err := lookupSession(c)
	if !ok {
		return err
	}

	sess.Lock()
	defer sess.Unlock()

	return c.JSON(http.StatusOK, getSessionResponse{
		ID:       sess.ID,
		State:    sess.Agent.State(),
		Messages: sess.Agent.Transcript(),
	})
}
