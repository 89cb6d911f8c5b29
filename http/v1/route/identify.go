package route

import (
	"github.com/labstack/echo/v4"

	"github.com/carlosabalde/wurfl-go/http/middleware"
	"github.com/carlosabalde/wurfl-go/http/registry"
	"github.com/carlosabalde/wurfl-go/http/v1/handler"
	"github.com/carlosabalde/wurfl-go/pkg/auth"
)

// init registers v1 device-identification routes with the registry.
func init() {
	registry.Register("v1", func(g *echo.Group) {
		protected := g.Group("")
		protected.Use(middleware.MultiAuthMiddleware(auth.ActionRead + ":identify"))
		protected.POST("/identify", handler.Identify)
		protected.GET("/devices/:id", handler.GetDevice)
	})
}
