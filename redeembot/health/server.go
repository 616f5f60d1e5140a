// Package health serves the liveness endpoint used by the hosting platform.
package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

const ServiceName = "top-heroes-auto-redeemer"

type Status struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type Server struct {
	echo *echo.Echo
	addr string
}

func NewServer(port int) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/", handleStatus)

	return &Server{echo: e, addr: fmt.Sprintf(":%d", port)}
}

func handleStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, Status{Status: "ok", Service: ServiceName})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) Start() error {
	slog.Info("Health check server running",
		slog.String("type", "sys"),
		slog.String("addr", s.addr),
	)
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
