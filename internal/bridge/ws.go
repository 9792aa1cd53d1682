package bridge

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/petervdpas/tabshell/internal/proto"
	"github.com/petervdpas/tabshell/internal/shell"
	"github.com/petervdpas/tabshell/internal/util"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxFrameSize = 64 << 10
	sendBuffer   = 128
)

var wsUpgrader = websocket.Upgrader{
	HandshakeTimeout: util.DefaultConnectTimeout,
	ReadBufferSize:   4096,
	WriteBufferSize:  16384,
	// The shell is loaded from the Wails asset origin or from the bridge itself.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// shellConn is one connected shell: its websocket, its outgoing queue and
// the presenter that renders for it.
type shellConn struct {
	id        string
	ws        *websocket.Conn
	presenter *shell.Presenter

	send chan proto.Frame
	seq  atomic.Int64

	done      chan struct{}
	closeOnce sync.Once
}

func newShellConn(ws *websocket.Conn) *shellConn {
	return &shellConn{
		id:   uuid.NewString()[:8],
		ws:   ws,
		send: make(chan proto.Frame, sendBuffer),
		done: make(chan struct{}),
	}
}

// deliver sends the raw state frame and lets the presenter render the view.
func (c *shellConn) deliver(s proto.TabState) {
	c.enqueue(proto.Frame{Type: proto.FrameTabState, State: &s})
	c.presenter.Receive(s)
}

// enqueue never blocks. A shell that cannot keep up is disconnected; it
// gets the full state again when it reconnects.
func (c *shellConn) enqueue(f proto.Frame) {
	f.ID = uuid.NewString()
	f.Seq = c.seq.Add(1)
	select {
	case <-c.done:
	case c.send <- f:
	default:
		log.Printf("BRIDGE: shell %s send queue full, disconnecting", c.id)
		c.close()
	}
}

// close may run under the hub or presenter lock, so it only signals; the
// write pump tears the socket down.
func (c *shellConn) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// GET /ws/shell
func (s *Server) serveShell(w http.ResponseWriter, r *http.Request) {
	ws, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("BRIDGE: websocket upgrade: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	c := newShellConn(ws)
	c.presenter = shell.New(
		func(v proto.View) { c.enqueue(proto.Frame{Type: proto.FrameView, View: &v}) },
		func(act proto.TabAction) { s.submit(ctx, c, act) },
		shell.Options{
			UnmountDelay: s.opt.UnmountDelay,
			Clock:        s.opt.Clock,
			SurfaceURL:   s.surfaceURL,
		},
	)

	go c.writePump()
	s.hub.attach(c)

	c.readPump(ctx, s)

	s.hub.detach(c)
	c.close()
	c.presenter.Close()
}

func (s *Server) submit(ctx context.Context, c *shellConn, act proto.TabAction) {
	if err := s.dispatcher.Submit(ctx, act); err != nil {
		log.Printf("BRIDGE: shell %s: submit %s: %v", c.id, act, err)
	}
}

func (c *shellConn) readPump(ctx context.Context, s *Server) {
	c.ws.SetReadLimit(maxFrameSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("BRIDGE: shell %s read: %v", c.id, err)
			}
			return
		}

		var f proto.Frame
		if err := json.Unmarshal(data, &f); err != nil {
			log.Printf("BRIDGE: shell %s sent a bad frame: %v", c.id, err)
			continue
		}

		switch f.Type {
		case proto.FrameTabAction:
			if f.Action == nil {
				log.Printf("BRIDGE: shell %s: tabAction without action", c.id)
				continue
			}
			s.submit(ctx, c, *f.Action)
		case proto.FrameGesture:
			if f.Gesture == nil {
				log.Printf("BRIDGE: shell %s: gesture without payload", c.id)
				continue
			}
			c.presenter.HandleGesture(*f.Gesture)
		default:
			log.Printf("BRIDGE: shell %s: ignoring frame type %q", c.id, f.Type)
		}
	}
}

func (c *shellConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
		_ = c.ws.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			return
		case f := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteJSON(f); err != nil {
				log.Printf("BRIDGE: shell %s write: %v", c.id, err)
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
