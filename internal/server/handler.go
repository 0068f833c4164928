package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mattcracing/Simmetric/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // single-user local tool
	},
}

func handleWebSocket(h *hub.Hub, b *hub.Broadcaster, refresher hub.Refresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("websocket upgrade failed", "error", err)
			return
		}

		client := hub.NewClient(h, conn)
		h.Register(client)

		// New clients get the current state immediately.
		b.SendInitialState(client)

		go client.WritePump()
		go client.ReadPump(refresher)
	}
}

// handleChart renders the current history window to a PNG.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	data, err := s.renderer.RenderPNG(s.session.HistorySnapshot())
	if err != nil {
		slog.Error("rendering chart", "error", err)
		http.Error(w, "chart render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(data)
}

// handleSession returns the full current frame as JSON.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.session.Frame(time.Now()))
}

// handleRefresh triggers the manual device-detection refresh.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	s.refresher.Refresh()
	w.WriteHeader(http.StatusNoContent)
}
