package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// Events upgrades to a websocket and pushes the session view after every
// state transition, starting with the current state. Clients send nothing;
// inbound messages are read only to notice when the peer goes away.
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)

	// Upgrade writes its own response; carry over a freshly set cookie.
	var hdr http.Header
	if c := w.Header().Values("Set-Cookie"); len(c) > 0 {
		hdr = http.Header{"Set-Cookie": c}
	}

	conn, err := upgrader.Upgrade(w, r, hdr)
	if err != nil {
		// Upgrade has already written an HTTP error.
		log.Printf("websocket upgrade failed: session=%s err=%v", s.ID(), err)
		return
	}
	defer conn.Close()

	updates, unsubscribe := s.Subscribe()
	defer unsubscribe()

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-gone:
			return
		case st, ok := <-updates:
			if !ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed"))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(SessionView(st)); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
