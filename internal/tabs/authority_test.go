package tabs

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/petervdpas/tabshell/internal/proto"
)

// recorder is a Sink that keeps every publication.
type recorder struct {
	mu     sync.Mutex
	states []proto.TabState
	quits  int
}

func (r *recorder) PublishState(s proto.TabState) {
	r.mu.Lock()
	r.states = append(r.states, s)
	r.mu.Unlock()
}

func (r *recorder) Quit() {
	r.mu.Lock()
	r.quits++
	r.mu.Unlock()
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

func (r *recorder) quitCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.quits
}

func (r *recorder) last() proto.TabState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.states) == 0 {
		return proto.TabState{}
	}
	return r.states[len(r.states)-1]
}

func newTestAuthority(t *testing.T) (*Authority, *recorder, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock()
	rec := &recorder{}
	a := New(rec, Options{
		DefaultLabel:   "New Tab",
		Throttle:       150 * time.Millisecond,
		RepublishDelay: 300 * time.Millisecond,
		ClosedMax:      25,
		Clock:          mock,
	})
	t.Cleanup(a.Close)
	return a, rec, mock
}

// throttled applies a throttled action after moving past the window.
func throttled(a *Authority, mock *clock.Mock, act proto.TabAction) bool {
	mock.Add(200 * time.Millisecond)
	return a.Apply(act)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func ids(s proto.TabState) string {
	return fmt.Sprint(s.IDs())
}

func TestStartPublishesInitialTab(t *testing.T) {
	a, rec, _ := newTestAuthority(t)
	a.Start()

	if rec.count() != 1 {
		t.Fatalf("publications = %d, want 1", rec.count())
	}
	got := rec.last()
	if ids(got) != "[tab-1]" || got.ActiveTabID != "tab-1" {
		t.Fatalf("initial state = %+v", got)
	}
	if got.Tabs[0].Label != "New Tab" {
		t.Fatalf("label = %q", got.Tabs[0].Label)
	}
}

func TestSpacedAddsAreAllAccepted(t *testing.T) {
	a, rec, mock := newTestAuthority(t)

	const calls = 12
	for i := 0; i < calls; i++ {
		if !throttled(a, mock, proto.Add()) {
			t.Fatalf("add %d was dropped", i)
		}
	}

	s := a.Snapshot()
	if len(s.Tabs) != calls+1 {
		t.Fatalf("tabs = %d, want %d", len(s.Tabs), calls+1)
	}
	seen := map[string]bool{}
	for _, tab := range s.Tabs {
		if seen[tab.ID] {
			t.Fatalf("duplicate id %s", tab.ID)
		}
		seen[tab.ID] = true
	}
	if s.ActiveTabID != s.Tabs[len(s.Tabs)-1].ID {
		t.Fatalf("active = %s, want newest tab", s.ActiveTabID)
	}
	if rec.count() != calls {
		t.Fatalf("publications = %d, want %d", rec.count(), calls)
	}
}

func TestAddsInsideWindowAreDropped(t *testing.T) {
	a, rec, mock := newTestAuthority(t)

	if !a.Apply(proto.Add()) {
		t.Fatal("first add dropped")
	}
	mock.Add(100 * time.Millisecond)
	if a.Apply(proto.Add()) {
		t.Fatal("second add inside the window was accepted")
	}

	if n := len(a.Snapshot().Tabs); n != 2 {
		t.Fatalf("tabs = %d, want 2", n)
	}
	if rec.count() != 1 {
		t.Fatalf("publications = %d, want 1", rec.count())
	}
}

func TestThrottleWindowIsSharedAcrossKinds(t *testing.T) {
	a, _, mock := newTestAuthority(t)

	throttled(a, mock, proto.Add()) // tab-2
	mock.Add(200 * time.Millisecond)

	if !a.Apply(proto.Close("tab-2")) {
		t.Fatal("close dropped")
	}
	mock.Add(50 * time.Millisecond)
	if a.Apply(proto.Reopen()) {
		t.Fatal("reopen inside the window opened by close was accepted")
	}
	if a.Apply(proto.Add()) {
		t.Fatal("add inside the window opened by close was accepted")
	}
}

func TestUnthrottledActionsIgnoreWindow(t *testing.T) {
	a, rec, _ := newTestAuthority(t)

	a.Apply(proto.Add()) // tab-2, opens the window
	if !a.Apply(proto.Activate("tab-1")) {
		t.Fatal("activate dropped inside throttle window")
	}
	if !a.Apply(proto.Next()) || !a.Apply(proto.Prev()) || !a.Apply(proto.ByIndex(1)) {
		t.Fatal("navigation dropped inside throttle window")
	}
	if rec.count() != 5 {
		t.Fatalf("publications = %d, want 5", rec.count())
	}
}

func TestClosingOnlyTabQuits(t *testing.T) {
	a, rec, _ := newTestAuthority(t)

	if !a.Apply(proto.Close("tab-1")) {
		t.Fatal("close of the last tab reported no effect")
	}
	if rec.quitCount() != 1 {
		t.Fatalf("quits = %d, want 1", rec.quitCount())
	}
	if rec.count() != 0 {
		t.Fatalf("published %d states, want none", rec.count())
	}
	if len(a.Snapshot().Tabs) == 0 {
		t.Fatal("collection became empty")
	}

	// Once quitting, nothing else is applied or published.
	if a.Apply(proto.Activate("tab-1")) {
		t.Fatal("action applied after quit")
	}
	if rec.count() != 0 {
		t.Fatal("state published after quit")
	}
}

func TestClosingNonActiveKeepsActive(t *testing.T) {
	a, _, mock := newTestAuthority(t)
	throttled(a, mock, proto.Add()) // tab-2
	throttled(a, mock, proto.Add()) // tab-3, active

	throttled(a, mock, proto.Close("tab-1"))

	s := a.Snapshot()
	if s.ActiveTabID != "tab-3" {
		t.Fatalf("active = %s, want tab-3", s.ActiveTabID)
	}
	if ids(s) != "[tab-2 tab-3]" {
		t.Fatalf("tabs = %s", ids(s))
	}
}

func TestClosingActiveSelectsNeighbour(t *testing.T) {
	t.Run("middle tab slides into focus", func(t *testing.T) {
		a, _, mock := newTestAuthority(t)
		throttled(a, mock, proto.Add())
		throttled(a, mock, proto.Add())
		a.Apply(proto.Activate("tab-2"))

		throttled(a, mock, proto.Close("tab-2"))

		if got := a.ActiveID(); got != "tab-3" {
			t.Fatalf("active = %s, want tab-3", got)
		}
	})

	t.Run("last tab falls back to new last", func(t *testing.T) {
		a, _, mock := newTestAuthority(t)
		throttled(a, mock, proto.Add())
		throttled(a, mock, proto.Add()) // tab-3 active, last

		throttled(a, mock, proto.Close("tab-3"))

		if got := a.ActiveID(); got != "tab-2" {
			t.Fatalf("active = %s, want tab-2", got)
		}
	})

	t.Run("first tab hands focus to second", func(t *testing.T) {
		a, _, mock := newTestAuthority(t)
		throttled(a, mock, proto.Add())
		a.Apply(proto.Activate("tab-1"))

		throttled(a, mock, proto.Close("tab-1"))

		if got := a.ActiveID(); got != "tab-2" {
			t.Fatalf("active = %s, want tab-2", got)
		}
	})
}

func TestCloseUnknownIsNoop(t *testing.T) {
	a, rec, mock := newTestAuthority(t)
	if throttled(a, mock, proto.Close("tab-99")) {
		t.Fatal("close of unknown id reported an effect")
	}
	if rec.count() != 0 || len(a.Closed()) != 0 {
		t.Fatal("close of unknown id changed state")
	}
}

func TestClosePublishesAgainAfterDelay(t *testing.T) {
	a, rec, mock := newTestAuthority(t)
	throttled(a, mock, proto.Add())
	before := rec.count()

	throttled(a, mock, proto.Close("tab-1"))
	if rec.count() != before+1 {
		t.Fatalf("publications = %d, want immediate publish", rec.count()-before)
	}
	immediate := rec.last()

	mock.Add(299 * time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	if rec.count() != before+1 {
		t.Fatal("redundant publish fired early")
	}

	mock.Add(time.Millisecond)
	waitFor(t, func() bool { return rec.count() == before+2 })

	delayed := rec.last()
	if ids(delayed) != ids(immediate) || delayed.ActiveTabID != immediate.ActiveTabID {
		t.Fatalf("delayed publish %+v differs from immediate %+v", delayed, immediate)
	}
}

func TestCloseRepublishCarriesLatestState(t *testing.T) {
	a, rec, mock := newTestAuthority(t)
	throttled(a, mock, proto.Add())
	throttled(a, mock, proto.Add())
	throttled(a, mock, proto.Close("tab-3"))

	// A navigation between the close and its redundant publish must not be undone.
	a.Apply(proto.Activate("tab-1"))
	n := rec.count()

	mock.Add(300 * time.Millisecond)
	waitFor(t, func() bool { return rec.count() == n+1 })

	if got := rec.last().ActiveTabID; got != "tab-1" {
		t.Fatalf("redundant publish active = %s, want tab-1", got)
	}
}

func TestAuthorityCloseStopsTimers(t *testing.T) {
	a, rec, mock := newTestAuthority(t)
	throttled(a, mock, proto.Add())
	throttled(a, mock, proto.Close("tab-2"))
	n := rec.count()

	a.Close()
	mock.Add(time.Second)
	time.Sleep(10 * time.Millisecond)

	if rec.count() != n {
		t.Fatal("timer published after Close")
	}
	if a.Apply(proto.Next()) {
		t.Fatal("Apply accepted after Close")
	}
}

func TestClosedStackIsBounded(t *testing.T) {
	a, _, mock := newTestAuthority(t)
	for i := 0; i < 26; i++ {
		throttled(a, mock, proto.Add())
	}
	// tab-1 .. tab-27; close tab-1 .. tab-26.
	for i := 1; i <= 26; i++ {
		if !throttled(a, mock, proto.Close(fmt.Sprintf("tab-%d", i))) {
			t.Fatalf("close tab-%d dropped", i)
		}
	}

	closed := a.Closed()
	if len(closed) != 25 {
		t.Fatalf("closed stack = %d, want 25", len(closed))
	}
	if closed[0].ID != "tab-2" {
		t.Fatalf("oldest entry = %s, want tab-2 (tab-1 evicted)", closed[0].ID)
	}
	if closed[24].ID != "tab-26" {
		t.Fatalf("newest entry = %s, want tab-26", closed[24].ID)
	}
}

func TestClosedStackRefusesDuplicates(t *testing.T) {
	s := newClosedStack(3)
	if !s.push(proto.Tab{ID: "tab-1"}) {
		t.Fatal("first push refused")
	}
	if s.push(proto.Tab{ID: "tab-1", Label: "again"}) {
		t.Fatal("duplicate id stacked")
	}
	if s.len() != 1 {
		t.Fatalf("len = %d, want 1", s.len())
	}
}

func TestReopenEmptyStackIsNoop(t *testing.T) {
	a, rec, mock := newTestAuthority(t)
	if throttled(a, mock, proto.Reopen()) {
		t.Fatal("reopen with empty stack reported an effect")
	}
	if rec.count() != 0 {
		t.Fatal("reopen with empty stack published")
	}
	if len(a.Snapshot().Tabs) != 1 {
		t.Fatal("reopen with empty stack added a tab")
	}
}

func TestReopenAssignsFreshIDAndKeepsLabel(t *testing.T) {
	a, _, mock := newTestAuthority(t)
	throttled(a, mock, proto.Add())
	a.tabs[1].Label = "Docs"

	throttled(a, mock, proto.Close("tab-2"))
	throttled(a, mock, proto.Reopen())

	s := a.Snapshot()
	revived := s.Tabs[len(s.Tabs)-1]
	if revived.ID == "tab-2" {
		t.Fatal("reopen reused the closed id")
	}
	if revived.ID != "tab-3" {
		t.Fatalf("revived id = %s, want tab-3", revived.ID)
	}
	if revived.Label != "Docs" {
		t.Fatalf("revived label = %q, want Docs", revived.Label)
	}
	if s.ActiveTabID != revived.ID {
		t.Fatalf("active = %s, want %s", s.ActiveTabID, revived.ID)
	}
	if len(a.Closed()) != 0 {
		t.Fatal("reopen did not pop the closed stack")
	}
}

func TestPrevNextWrap(t *testing.T) {
	a, _, mock := newTestAuthority(t)
	throttled(a, mock, proto.Add())
	throttled(a, mock, proto.Add())

	a.Apply(proto.ByIndex(0))
	a.Apply(proto.Prev())
	if got := a.ActiveID(); got != "tab-3" {
		t.Fatalf("prev from index 0 = %s, want tab-3", got)
	}
	a.Apply(proto.Next())
	if got := a.ActiveID(); got != "tab-1" {
		t.Fatalf("next from index 2 = %s, want tab-1", got)
	}
	a.Apply(proto.Next())
	if got := a.ActiveID(); got != "tab-2" {
		t.Fatalf("next from index 0 = %s, want tab-2", got)
	}
}

func TestByIndexEightIsAlwaysLast(t *testing.T) {
	a, _, mock := newTestAuthority(t)
	for n := 1; n <= 12; n++ {
		a.Apply(proto.ByIndex(0))
		a.Apply(proto.ByIndex(8))
		s := a.Snapshot()
		if want := s.Tabs[len(s.Tabs)-1].ID; s.ActiveTabID != want {
			t.Fatalf("%d tabs: byIndex(8) = %s, want %s", n, s.ActiveTabID, want)
		}
		throttled(a, mock, proto.Add())
	}
}

func TestByIndexClamps(t *testing.T) {
	a, _, mock := newTestAuthority(t)
	throttled(a, mock, proto.Add())
	throttled(a, mock, proto.Add())

	a.Apply(proto.ByIndex(1))
	if got := a.ActiveID(); got != "tab-2" {
		t.Fatalf("byIndex(1) = %s", got)
	}
	a.Apply(proto.ByIndex(5))
	if got := a.ActiveID(); got != "tab-3" {
		t.Fatalf("byIndex(5) = %s, want clamped tab-3", got)
	}
	if a.Apply(proto.TabAction{Type: proto.ActionByIndex, Index: -1}) {
		t.Fatal("negative index accepted")
	}
}

func TestActivateUnknownIsNoop(t *testing.T) {
	a, rec, _ := newTestAuthority(t)
	if a.Apply(proto.Activate("tab-7")) {
		t.Fatal("activate of unknown id reported an effect")
	}
	if rec.count() != 0 {
		t.Fatal("activate of unknown id published")
	}
}

func TestAddCloseReopenScenario(t *testing.T) {
	a, _, mock := newTestAuthority(t)

	throttled(a, mock, proto.Add())
	s := a.Snapshot()
	if ids(s) != "[tab-1 tab-2]" || s.ActiveTabID != "tab-2" {
		t.Fatalf("after add: %+v", s)
	}

	throttled(a, mock, proto.Close("tab-1"))
	s = a.Snapshot()
	if ids(s) != "[tab-2]" || s.ActiveTabID != "tab-2" {
		t.Fatalf("after close: %+v", s)
	}
	closed := a.Closed()
	if len(closed) != 1 || closed[0].ID != "tab-1" || closed[0].Label != "New Tab" {
		t.Fatalf("closed stack = %+v", closed)
	}

	throttled(a, mock, proto.Reopen())
	s = a.Snapshot()
	if len(s.Tabs) != 2 {
		t.Fatalf("after reopen: %+v", s)
	}
	revived := s.Tabs[1]
	if revived.ID == "tab-1" || revived.ID == "tab-2" {
		t.Fatalf("revived id %s is not fresh", revived.ID)
	}
	if revived.Label != "New Tab" || s.ActiveTabID != revived.ID {
		t.Fatalf("revived tab %+v, active %s", revived, s.ActiveTabID)
	}
}

func TestPublishedStateIsACopy(t *testing.T) {
	a, rec, mock := newTestAuthority(t)
	throttled(a, mock, proto.Add())

	got := rec.last()
	got.Tabs[0].Label = "mutated"

	if a.Snapshot().Tabs[0].Label != "New Tab" {
		t.Fatal("published state aliases authority state")
	}
}
