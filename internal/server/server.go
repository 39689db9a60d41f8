package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mid "github.com/citenav/backend/internal/server/middleware"

	"github.com/citenav/backend/internal/config"
	"github.com/citenav/backend/internal/session"
	"github.com/citenav/backend/internal/util"
	"github.com/citenav/backend/pkg/ai/providers"
	"github.com/citenav/backend/pkg/logger"
	"github.com/citenav/backend/pkg/papers/semanticscholar"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orchestrator, err := providers.NewOrchestrator(config.LoadProviders())
	if err != nil {
		logger.Fatal("Failed to build provider set", "err", err)
	}
	logger.Info("Providers configured", "providers", orchestrator.Names())

	searchURL, searchKey := config.LoadSearch()
	scholar := semanticscholar.NewClient(semanticscholar.NewClientParams{
		BaseURL: searchURL,
		APIKey:  searchKey,
	})

	app := &mid.App{
		Sessions:     session.NewStore(),
		Orchestrator: orchestrator,
		Search:       scholar,
		Citations:    scholar,
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("Request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	RegisterRoutes(e)

	go func() {
		port := util.GetEnvString("PORT", "8080")
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
