package server

import (
	"github.com/citenav/backend/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Session routes
	apiRoutes.POST("/sessions", routes.CreateSessionHandler)
	apiRoutes.GET("/sessions/:id", routes.GetSessionHandler)
	apiRoutes.POST("/sessions/:id/messages", routes.PostMessageHandler)

	// Graph routes
	apiRoutes.GET("/sessions/:id/graph", routes.GetGraphHandler)
	apiRoutes.POST("/sessions/:id/graph/unfold", routes.UnfoldNodeHandler)
	apiRoutes.GET("/sessions/:id/graph/metrics", routes.GetGraphMetricsHandler)
	apiRoutes.GET("/sessions/:id/graph/recommendations", routes.GetRecommendationsHandler)
	apiRoutes.GET("/sessions/:id/graph/trends", routes.GetTrendsHandler)
}
