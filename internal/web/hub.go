// Package web serves a browser view of a running simulation: an
// embedded page that renders lattice frames pushed over a WebSocket,
// with controls sent back on the same connection.
package web

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

type hub struct {
	upgrader  websocket.Upgrader
	clients   map[*websocket.Conn]bool
	register  chan *websocket.Conn
	remove    chan *websocket.Conn
	broadcast chan []byte
	logger    *log.Logger
}

func newHub(logger *log.Logger) *hub {
	h := &hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients:   make(map[*websocket.Conn]bool),
		register:  make(chan *websocket.Conn),
		remove:    make(chan *websocket.Conn),
		broadcast: make(chan []byte, 16),
		logger:    logger,
	}
	return h
}

func (h *hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.clients[conn] = true
		case conn := <-h.remove:
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
		case msg := <-h.broadcast:
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					h.logger.Warn("failed to send frame", "err", err)
					delete(h.clients, conn)
					conn.Close()
				}
			}
		}
	}
}

// handle upgrades the request and reads control messages until the
// client goes away. onControl runs on every parsed message; latest
// provides the most recent frame so new clients render immediately.
func (h *hub) handle(w http.ResponseWriter, r *http.Request, onControl func(controlRequest), latest func() []byte) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "err", err)
		return
	}

	if frame := latest(); frame != nil {
		conn.WriteMessage(websocket.TextMessage, frame)
	}
	h.register <- conn

	go func() {
		defer func() { h.remove <- conn }()
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					h.logger.Warn("websocket error", "err", err)
				}
				break
			}

			if req, err := parseControl(message); err == nil {
				onControl(req)
			}
		}
	}()
}
