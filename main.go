package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/mattcracing/Simmetric/internal/chart"
	"github.com/mattcracing/Simmetric/internal/config"
	"github.com/mattcracing/Simmetric/internal/device"
	"github.com/mattcracing/Simmetric/internal/hub"
	"github.com/mattcracing/Simmetric/internal/server"
	"github.com/mattcracing/Simmetric/internal/telemetry"
	"github.com/mattcracing/Simmetric/internal/tray"
)

// os.Interrupt covers Ctrl+C on every platform; SIGTERM matters on Unix.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, nil)))

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("loading configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	session := telemetry.NewSession(cfg.HistorySize, time.Now())
	locator := device.NewLocator(cfg.MatchTokens, cfg.MatchTimeout)
	sampler := telemetry.NewSampler(device.NewSDLPoller(), locator, session,
		cfg.SampleInterval, cfg.HistoryInterval)

	h := hub.NewHub()
	go h.Run()

	broadcaster := hub.NewBroadcaster(h, sampler.Frames())
	go broadcaster.Run()

	renderer := chart.NewRenderer(cfg.ChartWidth, cfg.ChartHeight, cfg.HistorySize)

	srv, err := server.New(h, broadcaster, sampler, session, renderer, dashboardFS(), cfg.Listen)
	if err != nil {
		slog.Error("building server", "error", err)
		os.Exit(1)
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	url := dashboardURL(cfg.Listen)
	slog.Info("Simmetric started", "url", url)
	if cfg.OpenBrowser {
		tray.OpenBrowser(url)
	}

	// Tray-triggered shutdown (Windows only, like a proper tray app).
	shutdownRequested := make(chan struct{})
	if runtime.GOOS == "windows" {
		go func() {
			t := tray.New(url, sampler, func() {
				close(shutdownRequested)
			})
			t.Run(tray.GetIcon())
		}()
	} else {
		slog.Info("press Ctrl+C to exit")
	}

	// The sampler owns the SDL polling thread; it must run on a locked
	// goroutine and is the only thing mutating the session.
	samplerDone := make(chan struct{})
	go func() {
		if err := sampler.Run(ctx); err != nil {
			slog.Error("sampler failed", "error", err)
		}
		close(samplerDone)
	}()

	select {
	case <-sigCh:
		slog.Info("shutting down")
	case <-shutdownRequested:
		slog.Info("shutdown requested from tray")
	case err := <-serverErrCh:
		slog.Error("HTTP server error", "error", err)
	case <-samplerDone:
		slog.Error("sampler exited unexpectedly")
	}
	cancel()

	<-samplerDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Simmetric stopped")
}

// dashboardURL turns a listen address into something a browser can open.
func dashboardURL(listen string) string {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return "http://localhost:8080"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
