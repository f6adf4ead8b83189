package page

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WSSink pushes messages as binary WebSocket frames.
type WSSink struct {
	mu      sync.Mutex // one writer at a time
	conn    *websocket.Conn
	timeout time.Duration
}

// NewWSSink wraps conn. A positive timeout bounds every write.
func NewWSSink(conn *websocket.Conn, timeout time.Duration) *WSSink {
	return &WSSink{conn: conn, timeout: timeout}
}

// Push writes msg as one binary frame.
func (s *WSSink) Push(msg []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timeout > 0 {
		if err := s.conn.SetWriteDeadline(time.Now().Add(s.timeout)); err != nil {
			return err
		}
	}
	return s.conn.WriteMessage(websocket.BinaryMessage, msg)
}

// Close closes the connection.
func (s *WSSink) Close() error {
	return s.conn.Close()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// Handler serves the WebSocket connections of the pages in ctx. The page is
// selected by query parameter wffInstanceId. Binary frames are dispatched to
// the page, everything else is ignored.
func Handler(ctx *Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get(InstanceParam)
		p, ok := ctx.Page(id)
		if !ok {
			tracer().Errorf("websocket for unknown page %q", id)
			http.Error(w, "unknown page instance", http.StatusNotFound)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			tracer().Errorf("page %s: upgrade failed: %v", id, err)
			return
		}
		sink := NewWSSink(conn, p.settings.WriteTimeout)
		p.SetPushSink(sink)
		tracer().Debugf("page %s: websocket connected", id)
		defer func() {
			p.RemovePushSink(sink)
			conn.Close()
			tracer().Debugf("page %s: websocket closed", id)
		}()
		for {
			mt, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					tracer().Errorf("page %s: %v", id, err)
				}
				return
			}
			if mt == websocket.BinaryMessage {
				p.WebsocketMessaged(msg)
			}
		}
	}
}
