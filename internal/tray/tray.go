// Package tray runs the system tray icon with the dashboard shortcuts.
package tray

import (
	"log/slog"
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"

	"fyne.io/systray"
)

// Refresher restarts device detection when "Reconnect device" is clicked.
type Refresher interface {
	Refresh()
}

// ShutdownFunc is called when "Exit" is clicked.
type ShutdownFunc func()

// Tray manages the system tray icon and menu.
type Tray struct {
	url           string
	refresher     Refresher
	shutdownFunc  ShutdownFunc
	once          sync.Once
	shuttingDown  atomic.Bool
	menuOpen      *systray.MenuItem
	menuReconnect *systray.MenuItem
	menuExit      *systray.MenuItem
}

// New creates a new Tray instance for the dashboard at url.
func New(url string, refresher Refresher, shutdownFn ShutdownFunc) *Tray {
	return &Tray{
		url:          url,
		refresher:    refresher,
		shutdownFunc: shutdownFn,
	}
}

// Run initializes and runs the system tray (blocks until Quit()).
func (t *Tray) Run(iconData []byte) {
	systray.Run(func() {
		t.onReady(iconData)
	}, func() {
		t.onExit()
	})
}

func (t *Tray) onReady(iconData []byte) {
	if iconData != nil {
		systray.SetIcon(iconData)
	}
	systray.SetTitle("Simmetric")
	systray.SetTooltip("Simmetric - " + t.url)

	t.menuOpen = systray.AddMenuItem("Open Dashboard", "Open the dashboard in a browser")
	t.menuReconnect = systray.AddMenuItem("Reconnect Device", "Restart wheel/pedal detection")
	t.menuExit = systray.AddMenuItem("Exit", "Quit application")

	go t.handleMenuClicks()

	slog.Info("system tray initialized")
}

func (t *Tray) handleMenuClicks() {
	for {
		select {
		case <-t.menuOpen.ClickedCh:
			if !t.shuttingDown.Load() {
				OpenBrowser(t.url)
			}
		case <-t.menuReconnect.ClickedCh:
			if !t.shuttingDown.Load() {
				t.refresher.Refresh()
			}
		case <-t.menuExit.ClickedCh:
			if t.shuttingDown.CompareAndSwap(false, true) {
				t.once.Do(t.shutdownFunc)
				systray.Quit()
				return
			}
		}
	}
}

func (t *Tray) onExit() {
	t.shuttingDown.Store(true)
	slog.Info("system tray exiting")
}

// OpenBrowser opens url in the default web browser.
func OpenBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		slog.Warn("failed to open browser", "error", err)
	}
}
