// Package server exposes the dashboard over HTTP: the embedded frontend,
// the WebSocket frame stream and a few JSON/PNG endpoints.
package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"

	"github.com/mattcracing/Simmetric/internal/chart"
	"github.com/mattcracing/Simmetric/internal/hub"
	"github.com/mattcracing/Simmetric/internal/telemetry"
)

type Server struct {
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	refresher   hub.Refresher
	session     *telemetry.Session
	renderer    *chart.Renderer
	frontendFS  fs.FS
	addr        string
	index       []byte
	httpServer  *http.Server
}

func New(h *hub.Hub, b *hub.Broadcaster, r hub.Refresher, s *telemetry.Session, c *chart.Renderer, frontendFS fs.FS, addr string) (*Server, error) {
	srv := &Server{
		hub:         h,
		broadcaster: b,
		refresher:   r,
		session:     s,
		renderer:    c,
		frontendFS:  frontendFS,
		addr:        addr,
	}
	if err := srv.prepareIndex(); err != nil {
		return nil, err
	}
	return srv, nil
}

// prepareIndex minifies the embedded dashboard page once at startup.
func (s *Server) prepareIndex() error {
	raw, err := fs.ReadFile(s.frontendFS, "index.html")
	if err != nil {
		return fmt.Errorf("reading embedded index: %w", err)
	}

	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("application/javascript", js.Minify)

	minified, err := m.Bytes("text/html", raw)
	if err != nil {
		return fmt.Errorf("minifying index: %w", err)
	}
	s.index = minified
	return nil
}

func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", handleWebSocket(s.hub, s.broadcaster, s.refresher))
	mux.HandleFunc("/chart.png", s.handleChart)
	mux.HandleFunc("/api/session", s.handleSession)
	mux.HandleFunc("/api/refresh", s.handleRefresh)

	fileServer := http.FileServer(http.FS(s.frontendFS))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(s.index)
			return
		}
		fileServer.ServeHTTP(w, r)
	})

	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	slog.Info("HTTP server listening", "addr", s.addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		slog.Info("shutting down HTTP server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
