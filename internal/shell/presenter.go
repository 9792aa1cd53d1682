// Package shell projects the authority's broadcast state onto one shell
// surface: the tab strip plus a stack of mounted content surfaces. A
// Presenter never changes tab state itself; user gestures are turned into
// tab actions and handed to the submit callback.
package shell

import (
	"log"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/petervdpas/tabshell/internal/proto"
)

type Options struct {
	// How long a surface stays mounted after its tab left the collection.
	UnmountDelay time.Duration

	// Clock drives the unmount timers. Nil means wall clock.
	Clock clock.Clock

	// SurfaceURL builds the content URL for a mounted surface.
	SurfaceURL func(tabID, handle string) string
}

type Presenter struct {
	mu sync.Mutex

	clk        clock.Clock
	delay      time.Duration
	surfaceURL func(tabID, handle string) string

	render func(proto.View)
	submit func(proto.TabAction)

	state    proto.TabState
	incoming map[string]bool

	// mounted maps tab id to surface handle; order keeps mount order.
	mounted map[string]string
	order   []string
	pending map[string]*clock.Timer

	closed bool
}

// New returns a presenter that calls render with every new view and submit
// with every tab action derived from a gesture. render runs while the
// presenter lock is held and must not block.
func New(render func(proto.View), submit func(proto.TabAction), opt Options) *Presenter {
	clk := opt.Clock
	if clk == nil {
		clk = clock.New()
	}
	surfaceURL := opt.SurfaceURL
	if surfaceURL == nil {
		surfaceURL = func(string, string) string { return "" }
	}
	return &Presenter{
		clk:        clk,
		delay:      opt.UnmountDelay,
		surfaceURL: surfaceURL,
		render:     render,
		submit:     submit,
		incoming:   make(map[string]bool),
		mounted:    make(map[string]string),
		pending:    make(map[string]*clock.Timer),
	}
}

// Receive reconciles the mounted set with a broadcast and re-renders.
func (p *Presenter) Receive(state proto.TabState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	prevActive := p.state.ActiveTabID
	p.state = state.Clone()

	p.incoming = make(map[string]bool, len(state.Tabs))
	for _, t := range state.Tabs {
		p.incoming[t.ID] = true
	}

	for _, t := range state.Tabs {
		// A returning id gets a full grace period the next time it leaves.
		if timer, ok := p.pending[t.ID]; ok {
			timer.Stop()
			delete(p.pending, t.ID)
		}
		if _, ok := p.mounted[t.ID]; ok {
			continue
		}
		p.mounted[t.ID] = uuid.NewString()
		p.order = append(p.order, t.ID)
	}

	for _, id := range p.order {
		if p.incoming[id] {
			continue
		}
		if _, scheduled := p.pending[id]; scheduled {
			continue
		}
		p.scheduleUnmountLocked(id)
	}

	p.renderLocked(state.ActiveTabID != prevActive)
}

func (p *Presenter) scheduleUnmountLocked(id string) {
	var timer *clock.Timer
	timer = p.clk.AfterFunc(p.delay, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.pending[id] != timer {
			return // superseded
		}
		delete(p.pending, id)
		if p.closed || p.incoming[id] {
			return
		}
		p.unmountLocked(id)
		p.renderLocked(false)
	})
	p.pending[id] = timer
}

func (p *Presenter) unmountLocked(id string) {
	delete(p.mounted, id)
	for i, m := range p.order {
		if m == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

func (p *Presenter) renderLocked(syncActive bool) {
	p.render(p.viewLocked(syncActive))
}

func (p *Presenter) viewLocked(syncActive bool) proto.View {
	active := p.state.ActiveTabID
	v := proto.View{
		ActiveTabID: active,
		Strip:       make([]proto.StripItem, 0, len(p.state.Tabs)),
		Surfaces:    make([]proto.Surface, 0, len(p.order)),
	}
	for _, t := range p.state.Tabs {
		v.Strip = append(v.Strip, proto.StripItem{ID: t.ID, Label: t.Label, Active: t.ID == active})
	}

	surface := func(id string, leaving bool) proto.Surface {
		handle := p.mounted[id]
		on := id == active
		return proto.Surface{
			TabID:          id,
			Handle:         handle,
			URL:            p.surfaceURL(id, handle),
			Interactive:    on,
			Transparent:    !on,
			Passthrough:    !on,
			SyncDimensions: on && syncActive,
			Leaving:        leaving,
		}
	}
	for _, t := range p.state.Tabs {
		if _, ok := p.mounted[t.ID]; ok {
			v.Surfaces = append(v.Surfaces, surface(t.ID, false))
		}
	}
	for _, id := range p.order {
		if !p.incoming[id] {
			v.Surfaces = append(v.Surfaces, surface(id, true))
		}
	}
	return v
}

// HandleGesture turns a shell gesture into a tab action and submits it.
// It reports whether an action was produced. submit runs without the
// presenter lock held, so it may block.
func (p *Presenter) HandleGesture(g proto.Gesture) bool {
	p.mu.Lock()
	closed, active := p.closed, p.state.ActiveTabID
	p.mu.Unlock()
	if closed {
		return false
	}

	var act proto.TabAction
	switch g.Kind {
	case proto.GestureNewTab:
		act = proto.Add()
	case proto.GestureActivate:
		act = proto.Activate(g.TabID)
	case proto.GestureClose, proto.GestureMiddleClick:
		act = proto.Close(g.TabID)
	case proto.GestureKey:
		var ok bool
		act, ok = KeyAction(g.Key, g.Meta, g.Ctrl, g.Shift, active)
		if !ok {
			return false
		}
	default:
		log.Printf("SHELL: unknown gesture %q", g.Kind)
		return false
	}

	if err := act.Validate(); err != nil {
		log.Printf("SHELL: dropping gesture %q: %v", g.Kind, err)
		return false
	}
	p.submit(act)
	return true
}

// Mounted lists mounted tab ids in mount order.
func (p *Presenter) Mounted() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Handle returns the surface handle mounted for a tab.
func (p *Presenter) Handle(tabID string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	h, ok := p.mounted[tabID]
	return h, ok
}

// Owns reports whether handle names one of this presenter's surfaces.
func (p *Presenter) Owns(handle string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, h := range p.mounted {
		if h == handle {
			return true
		}
	}
	return false
}

// Close stops all pending unmount timers. The presenter ignores further input.
func (p *Presenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	for id, t := range p.pending {
		t.Stop()
		delete(p.pending, id)
	}
}
