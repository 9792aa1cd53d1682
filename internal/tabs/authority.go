// Package tabs owns the canonical tab list. The Authority is the single writer
// of tab state: it applies TabActions, keeps the recently-closed stack and
// publishes the full state to its Sink after every accepted mutation.
package tabs

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"golang.org/x/time/rate"

	"github.com/petervdpas/tabshell/internal/config"
	"github.com/petervdpas/tabshell/internal/proto"
)

// lastTabShortcut is the byIndex value that always means "last tab" (Cmd+9).
const lastTabShortcut = 8

// Sink receives everything the authority emits. Calls are made while the
// authority holds its lock, so a Sink must not call back into the Authority
// synchronously.
type Sink interface {
	PublishState(proto.TabState)
	Quit()
}

type Options struct {
	DefaultLabel string

	// Shared window for add/close/reopen. Zero disables throttling.
	Throttle time.Duration

	// Delay of the redundant publish that follows a close.
	RepublishDelay time.Duration

	ClosedMax int

	// Clock drives the throttle and the republish timer. Nil means wall clock.
	Clock clock.Clock

	// Debug logs dropped and no-op actions.
	Debug bool
}

// OptionsFromConfig maps the tabs config section onto Options.
func OptionsFromConfig(c config.Tabs) Options {
	return Options{
		DefaultLabel:   c.DefaultLabel,
		Throttle:       c.Throttle(),
		RepublishDelay: c.UnmountDelay(),
		ClosedMax:      c.ClosedStackMax,
	}
}

type Authority struct {
	mu sync.Mutex

	opt     Options
	clk     clock.Clock
	sink    Sink
	limiter *rate.Limiter

	nextID int
	tabs   []proto.Tab
	active string
	closed *closedStack

	// Pending redundant publishes, keyed by sequence so the timer callback
	// can find its own entry.
	timers   map[int]*clock.Timer
	timerSeq int

	quitting bool
	stopped  bool
}

// New creates an authority holding one fresh tab. Nothing is published
// until Start.
func New(sink Sink, opt Options) *Authority {
	if opt.DefaultLabel == "" {
		opt.DefaultLabel = "New Tab"
	}
	if opt.ClosedMax <= 0 {
		opt.ClosedMax = 25
	}
	clk := opt.Clock
	if clk == nil {
		clk = clock.New()
	}

	limit := rate.Inf
	if opt.Throttle > 0 {
		limit = rate.Every(opt.Throttle)
	}

	a := &Authority{
		opt:     opt,
		clk:     clk,
		sink:    sink,
		limiter: rate.NewLimiter(limit, 1),
		nextID:  1,
		closed:  newClosedStack(opt.ClosedMax),
		timers:  make(map[int]*clock.Timer),
	}
	first := a.makeTab(opt.DefaultLabel)
	a.tabs = []proto.Tab{first}
	a.active = first.ID
	return a
}

// Start publishes the initial state.
func (a *Authority) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.publishLocked()
}

// Close stops pending republish timers. Later Apply calls are ignored.
func (a *Authority) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopped = true
	for id, t := range a.timers {
		t.Stop()
		delete(a.timers, id)
	}
}

// Snapshot returns a copy of the current state.
func (a *Authority) Snapshot() proto.TabState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

// ActiveID returns the id of the active tab.
func (a *Authority) ActiveID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

// Closed lists the recently-closed stack, oldest first.
func (a *Authority) Closed() []proto.Tab {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed.snapshot()
}

// Apply runs one action. It reports whether state was published (or the
// application was told to quit); false means the action was dropped by the
// throttle or was a no-op.
func (a *Authority) Apply(act proto.TabAction) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped || a.quitting {
		return false
	}

	if act.Throttled() && !a.limiter.AllowN(a.clk.Now(), 1) {
		a.debugf("throttled %s", act)
		return false
	}

	switch act.Type {
	case proto.ActionAdd:
		return a.addLocked()
	case proto.ActionClose:
		return a.closeLocked(act.ID)
	case proto.ActionReopen:
		return a.reopenLocked()
	case proto.ActionActivate:
		return a.activateLocked(act.ID)
	case proto.ActionPrev:
		return a.stepLocked(-1)
	case proto.ActionNext:
		return a.stepLocked(1)
	case proto.ActionByIndex:
		return a.byIndexLocked(act.Index)
	}

	log.Printf("TABS: ignoring unknown action %q", act.Type)
	return false
}

func (a *Authority) addLocked() bool {
	t := a.makeTab(a.opt.DefaultLabel)
	a.tabs = append(a.tabs, t)
	a.active = t.ID
	log.Printf("TABS: added %s", t.ID)
	a.publishLocked()
	return true
}

func (a *Authority) closeLocked(id string) bool {
	idx := a.indexLocked(id)
	if idx < 0 {
		a.debugf("close: no tab %s", id)
		return false
	}

	if !a.closed.push(a.tabs[idx]) {
		a.debugf("close: %s already on the closed stack", id)
	}

	if len(a.tabs) == 1 {
		log.Printf("TABS: closed last tab %s, quitting", id)
		a.quitting = true
		a.sink.Quit()
		return true
	}

	next := make([]proto.Tab, 0, len(a.tabs)-1)
	next = append(next, a.tabs[:idx]...)
	next = append(next, a.tabs[idx+1:]...)
	a.tabs = next

	if a.active == id {
		a.active = a.tabs[min(idx, len(a.tabs)-1)].ID
	}
	log.Printf("TABS: closed %s (active %s, %d closed)", id, a.active, a.closed.len())

	// Publish now so the strip updates, then once more after the exit
	// animation so the shell knows it may tear the surface down.
	a.publishLocked()
	a.scheduleRepublishLocked()
	return true
}

func (a *Authority) reopenLocked() bool {
	t, ok := a.closed.pop()
	if !ok {
		a.debugf("reopen: closed stack empty")
		return false
	}
	revived := a.makeTab(t.Label)
	a.tabs = append(a.tabs, revived)
	a.active = revived.ID
	log.Printf("TABS: reopened %s as %s", t.ID, revived.ID)
	a.publishLocked()
	return true
}

func (a *Authority) activateLocked(id string) bool {
	if a.indexLocked(id) < 0 {
		a.debugf("activate: no tab %s", id)
		return false
	}
	a.active = id
	a.publishLocked()
	return true
}

// stepLocked moves the active pointer by delta, wrapping around.
func (a *Authority) stepLocked(delta int) bool {
	n := len(a.tabs)
	cur := a.indexLocked(a.active)
	if cur < 0 {
		cur = 0
	}
	a.active = a.tabs[((cur+delta)%n+n)%n].ID
	a.publishLocked()
	return true
}

func (a *Authority) byIndexLocked(index int) bool {
	if index < 0 {
		a.debugf("byIndex: negative index %d", index)
		return false
	}
	last := len(a.tabs) - 1
	idx := min(index, last)
	if index == lastTabShortcut {
		idx = last
	}
	a.active = a.tabs[idx].ID
	a.publishLocked()
	return true
}

func (a *Authority) scheduleRepublishLocked() {
	a.timerSeq++
	seq := a.timerSeq
	a.timers[seq] = a.clk.AfterFunc(a.opt.RepublishDelay, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		delete(a.timers, seq)
		if a.stopped || a.quitting {
			return
		}
		a.publishLocked()
	})
}

func (a *Authority) publishLocked() {
	a.sink.PublishState(a.snapshotLocked())
}

func (a *Authority) snapshotLocked() proto.TabState {
	return proto.TabState{Tabs: a.tabs, ActiveTabID: a.active}.Clone()
}

func (a *Authority) indexLocked(id string) int {
	return proto.TabState{Tabs: a.tabs}.IndexOf(id)
}

func (a *Authority) makeTab(label string) proto.Tab {
	t := proto.Tab{ID: fmt.Sprintf("tab-%d", a.nextID), Label: label}
	a.nextID++
	return t
}

func (a *Authority) debugf(format string, args ...any) {
	if a.opt.Debug {
		log.Printf("TABS: "+format, args...)
	}
}
