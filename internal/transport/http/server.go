// Package http provides the HTTP server for the hub.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agenthub/agenthub/internal/service"
	v1 "github.com/agenthub/agenthub/internal/transport/http/v1"
)

// NewServer creates and configures the hub's HTTP server. All collaborator
// processes (dashboards, agent scripts) talk to this single surface.
func NewServer(svc *service.Service) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Handlers
	v1Handler := v1.NewHandler(svc)
	v1Handler.RegisterRoutes(e)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
