package api

import (
	"net/http"

	"watchrun/internal/logging"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// LogsHandler upgrades to a websocket, replays the retained log history and
// then streams new entries as JSON. An optional ?level= query narrows the
// stream to entries at or above that level.
type LogsHandler struct {
	Logger *logging.Logger
}

func (h *LogsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Logger == nil {
		http.Error(w, "log stream unavailable", http.StatusServiceUnavailable)
		return
	}

	var minLevel logging.Level
	if raw := r.URL.Query().Get("level"); raw != "" {
		if level, ok := logging.ParseLevel(raw); ok {
			minLevel = level
		}
	}

	entries, cancel := h.Logger.Subscribe()
	if entries == nil {
		http.Error(w, "log stream unavailable", http.StatusServiceUnavailable)
		return
	}
	defer cancel()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for _, entry := range h.Logger.History().List() {
		if !logging.LevelAtLeast(entry.Level, minLevel) {
			continue
		}
		if err := conn.WriteJSON(entry); err != nil {
			return
		}
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				return
			}
			if !logging.LevelAtLeast(entry.Level, minLevel) {
				continue
			}
			if err := conn.WriteJSON(entry); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}
