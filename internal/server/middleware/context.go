package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/citenav/backend/internal/session"
	"github.com/citenav/backend/pkg/ai"
	"github.com/citenav/backend/pkg/papers"
)

// App bundles the shared dependencies handlers need: the session registry
// and the collaborators new sessions are wired with. Everything is
// constructed once at startup.
type App struct {
	Sessions     *session.Store
	Orchestrator *ai.Orchestrator
	Search       papers.SearchClient
	Citations    papers.CitationClient
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(&AppContext{c, app})
		}
	}
}
