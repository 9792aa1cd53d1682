package tabs

import (
	"github.com/petervdpas/tabshell/internal/proto"
	"github.com/petervdpas/tabshell/internal/util"
)

// closedStack is the bounded undo stack behind reopen. Push evicts the
// oldest entry when full and refuses ids that are already stacked.
type closedStack struct {
	buf *util.RingBuffer[proto.Tab]
}

func newClosedStack(max int) *closedStack {
	return &closedStack{buf: util.NewRingBuffer[proto.Tab](max)}
}

func (s *closedStack) contains(id string) bool {
	return s.buf.Any(func(t proto.Tab) bool { return t.ID == id })
}

// push reports whether the tab was stacked.
func (s *closedStack) push(t proto.Tab) bool {
	if s.contains(t.ID) {
		return false
	}
	s.buf.Push(t)
	return true
}

func (s *closedStack) pop() (proto.Tab, bool) {
	return s.buf.Pop()
}

// snapshot lists entries oldest first.
func (s *closedStack) snapshot() []proto.Tab {
	return s.buf.Snapshot()
}

func (s *closedStack) len() int {
	return s.buf.Len()
}
