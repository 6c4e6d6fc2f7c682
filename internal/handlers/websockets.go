package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000 // 10s in ms
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Upgrader for HTTP -> WebSocket.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origins for production
}

// wsSession owns one upgraded connection and streams live snapshots over it
// until the peer disconnects or the request context ends.
type wsSession struct {
	h        *Handler
	conn     *websocket.Conn
	interval time.Duration
}

func (h *Handler) wsConnect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}

	s := &wsSession{h: h, conn: conn, interval: h.parseInterval(c)}
	s.run(c.Request.Context())
}

func (s *wsSession) run(ctx context.Context) {
	defer func() { _ = s.conn.Close() }()

	// Read limits plus a pong handler that keeps extending the deadline.
	s.conn.SetReadLimit(maxMsgSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine handles control frames and detects disconnects.
	done := make(chan struct{})
	go s.drainReads(done)

	// First snapshot goes out immediately; a failed first write ends the session.
	if err := s.push(ctx); err != nil {
		if s.h.log != nil {
			s.h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	snapshots := time.NewTicker(s.interval)
	defer snapshots.Stop()
	pings := time.NewTicker(pingPeriod)
	defer pings.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-pings.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if s.h.log != nil {
					s.h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-snapshots.C:
			if err := s.push(ctx); err != nil {
				if s.h.log != nil {
					s.h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

// drainReads consumes incoming frames until the connection dies.
func (s *wsSession) drainReads(done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if s.h.log != nil {
				s.h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// push fetches the current live snapshot and writes it with a deadline.
func (s *wsSession) push(ctx context.Context) error {
	snap, err := s.h.services.Live.Snapshot(ctx)
	if err != nil {
		if s.h.log != nil {
			s.h.log.Errorw("ws_snapshot_failed", "err", err)
		}
		return err
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(wsEnvelope{Type: "snapshot", Data: snap})
}

// parseInterval reads ?interval=2s or ?interval_ms=2000, bounded to (0, 10s].
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}
	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}
	return defaultInterval
}
