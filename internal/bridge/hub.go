package bridge

import (
	"log"
	"sync"

	"github.com/petervdpas/tabshell/internal/host"
	"github.com/petervdpas/tabshell/internal/proto"
)

// Hub is the authority's sink. It remembers the last published state,
// forwards every publication to the connected shells (and to the Wails
// window through the host) and replays the last state to shells that
// connect later.
type Hub struct {
	host host.Host

	mu       sync.Mutex
	last     proto.TabState
	hasState bool
	theme    string
	shells   map[*shellConn]struct{}
}

func NewHub(h host.Host) *Hub {
	return &Hub{
		host:   h,
		shells: make(map[*shellConn]struct{}),
	}
}

// PublishState runs under the authority lock; nothing here blocks.
func (h *Hub) PublishState(s proto.TabState) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = s.Clone()
	h.hasState = true
	for c := range h.shells {
		c.deliver(h.last)
	}
	h.host.Emit(proto.EventTabState, h.last)
}

func (h *Hub) Quit() {
	h.host.Quit()
}

// State returns the last published state.
func (h *Hub) State() (proto.TabState, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last.Clone(), h.hasState
}

// SetTheme forwards a theme change to every shell.
func (h *Hub) SetTheme(theme string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.theme = theme
	for c := range h.shells {
		c.enqueue(proto.Frame{Type: proto.FrameTheme, Theme: theme})
	}
	h.host.Emit(proto.EventTheme, theme)
}

// KnownSurface reports whether any connected shell has mounted handle.
func (h *Hub) KnownSurface(handle string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.shells {
		if c.presenter.Owns(handle) {
			return true
		}
	}
	return false
}

// Shells returns the number of connected shells.
func (h *Hub) Shells() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.shells)
}

func (h *Hub) attach(c *shellConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.shells[c] = struct{}{}
	if h.theme != "" {
		c.enqueue(proto.Frame{Type: proto.FrameTheme, Theme: h.theme})
	}
	if h.hasState {
		c.deliver(h.last)
	}
	log.Printf("BRIDGE: shell %s connected (%d open)", c.id, len(h.shells))
}

func (h *Hub) detach(c *shellConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.shells[c]; !ok {
		return
	}
	delete(h.shells, c)
	log.Printf("BRIDGE: shell %s disconnected (%d open)", c.id, len(h.shells))
}

// closeShells disconnects every shell; used on shutdown since hijacked
// websocket connections outlive http.Server.Shutdown.
func (h *Hub) closeShells() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.shells {
		c.close()
	}
}
