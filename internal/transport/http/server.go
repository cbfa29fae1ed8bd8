package http

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewServer creates and configures the echo server: request logging,
// recovery, CORS, the API routes, and the pre-built client bundle served
// from staticDir with an HTML5 history fallback.
func NewServer(h *Handler, staticDir string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	if staticDir != "" {
		e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Root:  staticDir,
			Index: "index.html",
			HTML5: true,
			Skipper: func(c echo.Context) bool {
				path := c.Request().URL.Path
				return strings.HasPrefix(path, "/api/") || path == "/metrics"
			},
		}))
	}

	h.RegisterRoutes(e)
	return e
}
