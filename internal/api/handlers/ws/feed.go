// Package ws streams incident lifecycle events to websocket clients.
package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"highwayMonitor/internal/feed"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type Subscriber interface {
	Subscribe() *feed.Subscription
}

type Handler struct {
	logger   *slog.Logger
	hub      Subscriber
	upgrader websocket.Upgrader
}

func NewHandler(logger *slog.Logger, hub Subscriber) *Handler {
	return &Handler{
		logger: logger,
		hub:    hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Feed upgrades the connection and pushes every event published after the
// subscription was taken. Clients only receive; inbound frames are ignored.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("remote", r.RemoteAddr))
	if reqID := chimw.GetReqID(r.Context()); reqID != "" {
		l = l.With(slog.String("request_id", reqID))
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	sub := h.hub.Subscribe()
	l.Info("feed client connected")

	done := make(chan struct{})
	go h.readPump(conn, sub, done, l)
	h.writePump(conn, sub, done, l)

	l.Info("feed client disconnected", slog.Int64("dropped", sub.Dropped()))
}

// readPump drains client frames so control messages are processed, and
// closes the subscription when the peer goes away.
func (h *Handler) readPump(conn *websocket.Conn, sub *feed.Subscription, done chan<- struct{}, l *slog.Logger) {
	defer func() {
		sub.Close()
		close(done)
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				l.Warn("feed client read error", slog.Any("error", err))
			}
			return
		}
	}
}

func (h *Handler) writePump(conn *websocket.Conn, sub *feed.Subscription, done <-chan struct{}, l *slog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case evt, ok := <-sub.Events():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "feed closed"))
				return
			}

			wr, err := conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			if err := json.NewEncoder(wr).Encode(evt); err != nil {
				l.Error("feed frame encode failed", slog.Any("error", err))
				wr.Close()
				return
			}
			if err := wr.Close(); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-done:
			return
		}
	}
}
