package transport

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"tesoro/protocol"
	"tesoro/session"
)

const (
	readLimit    = 1 << 20 // 1MB
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingPeriod   = 25 * time.Second
)

var upgrader = websocket.Upgrader{
	// For dev, allow all origins. Lock this down in prod.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsConn adapts a gorilla connection to session.Conn. Writes come from
// the hub goroutine and the ping loop, so they are serialized here.
type wsConn struct {
	mu sync.Mutex
	c  *websocket.Conn
}

func (w *wsConn) Send(b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.c.SetWriteDeadline(time.Now().Add(writeTimeout))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

func (w *wsConn) Close() error {
	return w.c.Close()
}

func (w *wsConn) ping() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.c.SetWriteDeadline(time.Now().Add(writeTimeout))
	return w.c.WriteMessage(websocket.PingMessage, nil)
}

// Serve upgrades the request and pumps envelopes into the hub until the
// client goes away. Blocks for the life of the connection.
func Serve(hub *session.Hub, w http.ResponseWriter, r *http.Request) {
	raw, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("upgrade failed", "err", err)
		return
	}
	conn := &wsConn{c: raw}
	connID := uuid.New().String()

	raw.SetReadLimit(readLimit)
	_ = raw.SetReadDeadline(time.Now().Add(readTimeout))
	raw.SetPongHandler(func(string) error {
		_ = raw.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	hub.Inbox <- session.Connect{ID: connID, Conn: conn}
	defer func() {
		hub.Inbox <- session.Disconnect{ID: connID}
		_ = conn.Close()
	}()

	// Keep the connection healthy; a dead peer fails the ping and we bail.
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.ping(); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		_, msg, err := raw.ReadMessage()
		if err != nil {
			slog.Debug("read loop done", "connId", connID, "err", err)
			return
		}
		env, err := protocol.DecodeEnvelope(msg)
		if err != nil {
			slog.Warn("dropping undecodable frame", "connId", connID, "err", err)
			continue
		}
		hub.Inbox <- session.ClientEvent{ConnID: connID, Name: env.T, Payload: env.P}
	}
}
