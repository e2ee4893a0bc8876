// Package fileserver serves a directory over HTTP and logs every exchange.
package fileserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
)

// DefaultAddr is the address cmd/serve binds to unless told otherwise.
const DefaultAddr = "127.0.0.1:1337"

// Server is a static file server rooted at one directory.
type Server struct {
	root string
	echo *echo.Echo
}

// New creates a server for root, which must be an existing directory.
func New(root string) (*Server, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("serve root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("serve root %s: not a directory", root)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(logExchange)
	e.Static("/", root)

	return &Server{root: root, echo: e}, nil
}

// Root returns the served directory.
func (s *Server) Root() string {
	return s.root
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	log.Printf("Serve: http://%s (root %s)", addr, s.root)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// logExchange logs the request and then the response it produced.
func logExchange(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		log.Printf("Serve: %s %s from %s", req.Method, req.URL.Path, req.RemoteAddr)

		if err := next(c); err != nil {
			c.Error(err)
		}

		res := c.Response()
		log.Printf("Serve: %s %s -> %d (%d bytes)", req.Method, req.URL.Path, res.Status, res.Size)
		return nil
	}
}
