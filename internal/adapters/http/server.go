package http

import (
	"log/slog"

	"github.com/labstack/echo/v4"
)

// NewServer builds the echo instance with middleware and routes installed.
func NewServer(h *Handler, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}

	e.Use(RequestIDMiddleware())
	e.Use(LoggingMiddleware(logger))

	h.Register(e)
	return e
}
