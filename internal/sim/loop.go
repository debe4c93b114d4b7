package sim

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/san-kum/plexus/internal/dynamo"
)

// Loop is a host with its own goroutine. Dispatch and Post may be called
// from anywhere; listeners, posted funcs and frame callbacks all run on the
// goroutine executing Run, one at a time.
type Loop struct {
	callbacks
	interval time.Duration
	events   chan Event
	posts    chan func()
	done     chan struct{}
	started  atomic.Bool
}

func NewLoop(frameRate int) *Loop {
	if frameRate <= 0 {
		frameRate = 60
	}
	return &Loop{
		interval: time.Second / time.Duration(frameRate),
		events:   make(chan Event, 256),
		posts:    make(chan func(), 16),
		done:     make(chan struct{}),
	}
}

// Dispatch queues e for delivery on the loop goroutine. Events queued
// before Run are buffered; once the buffer is full Dispatch blocks until
// Run starts draining it, so feed a loop that is about to run.
func (l *Loop) Dispatch(e Event) {
	select {
	case l.events <- e:
	case <-l.done:
	}
}

// Post runs fn on the loop goroutine. Use it to start or stop drivers
// while the loop is running.
func (l *Loop) Post(fn func()) {
	select {
	case l.posts <- fn:
	case <-l.done:
	}
}

// Run processes events and fires frames until ctx is cancelled. A loop
// runs once; later calls return dynamo.ErrAlreadyRunning.
func (l *Loop) Run(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return dynamo.ErrAlreadyRunning
	}
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e := <-l.events:
			l.deliver(e)
		case fn := <-l.posts:
			fn()
		case now := <-ticker.C:
			l.fire(now.Sub(start))
		}
	}
}
