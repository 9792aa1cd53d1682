package tabs

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/petervdpas/tabshell/internal/proto"
)

// ErrStopped is returned by Submit once the dispatcher loop has exited.
var ErrStopped = errors.New("tabs: dispatcher stopped")

// Applier is the part of the Authority the dispatcher drives.
type Applier interface {
	Apply(proto.TabAction) bool
}

// Dispatcher serializes mutation requests coming from websocket readers,
// menu callbacks and runtime events. Actions are applied one at a time in
// the order they were submitted; nothing is reordered or coalesced.
type Dispatcher struct {
	target Applier
	inbox  chan proto.TabAction

	done     chan struct{}
	stopOnce sync.Once
}

func NewDispatcher(target Applier, buffer int) *Dispatcher {
	if buffer < 0 {
		buffer = 0
	}
	return &Dispatcher{
		target: target,
		inbox:  make(chan proto.TabAction, buffer),
		done:   make(chan struct{}),
	}
}

// Submit enqueues an action, blocking while the inbox is full.
func (d *Dispatcher) Submit(ctx context.Context, act proto.TabAction) error {
	if err := act.Validate(); err != nil {
		return err
	}
	select {
	case <-d.done:
		return ErrStopped
	default:
	}
	select {
	case d.inbox <- act:
		return nil
	case <-d.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run applies queued actions until ctx is cancelled. Actions still queued
// at that point are discarded.
func (d *Dispatcher) Run(ctx context.Context) error {
	defer d.stopOnce.Do(func() { close(d.done) })
	for {
		select {
		case <-ctx.Done():
			if n := len(d.inbox); n > 0 {
				log.Printf("TABS: dispatcher stopping with %d queued actions", n)
			}
			return ctx.Err()
		case act := <-d.inbox:
			d.target.Apply(act)
		}
	}
}

// Done is closed when Run returns.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}
