package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/san-kum/plexus/internal/dynamo"
)

func TestEventKindString(t *testing.T) {
	tests := []struct {
		kind EventKind
		want string
	}{
		{PointerMove, "pointermove"},
		{Resize, "resize"},
		{Scroll, "scroll"},
		{EventKind(9), "event(9)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestManual_FramesRunOnNextStep(t *testing.T) {
	m := NewManual()
	var order []string

	m.RequestFrame(func(ts time.Duration) {
		order = append(order, "a")
		m.RequestFrame(func(time.Duration) { order = append(order, "c") })
	})
	m.RequestFrame(func(time.Duration) { order = append(order, "b") })

	if n := m.Step(0); n != 2 {
		t.Fatalf("expected 2 callbacks, got %d", n)
	}
	if len(order) != 2 {
		t.Fatalf("callback requested mid-step ran early: %v", order)
	}
	m.Step(1)
	if len(order) != 3 || order[2] != "c" {
		t.Errorf("unexpected order %v", order)
	}
}

func TestManual_CancelFrame(t *testing.T) {
	m := NewManual()
	ran := false
	id := m.RequestFrame(func(time.Duration) { ran = true })
	m.CancelFrame(id)
	m.CancelFrame(id)

	if m.Step(0) != 0 || ran {
		t.Error("cancelled frame ran")
	}
}

func TestManual_Listeners(t *testing.T) {
	m := NewManual()
	var got []Event

	remove := m.AddListener(PointerMove, func(e Event) { got = append(got, e) })
	m.AddListener(Resize, func(e Event) { t.Error("resize listener got pointer event") })

	m.Dispatch(Event{Kind: PointerMove, X: 1, Y: 2})
	remove()
	remove()
	m.Dispatch(Event{Kind: PointerMove, X: 3, Y: 4})

	if len(got) != 1 || got[0].X != 1 {
		t.Errorf("unexpected events %v", got)
	}
	if m.Listeners(PointerMove) != 0 || m.Listeners(Resize) != 1 {
		t.Error("listener bookkeeping is off")
	}
}

func TestManual_ListenerRemovesItself(t *testing.T) {
	m := NewManual()
	calls := 0
	var remove func()
	remove = m.AddListener(Scroll, func(Event) {
		calls++
		remove()
	})
	m.AddListener(Scroll, func(Event) { calls++ })

	m.Dispatch(Event{Kind: Scroll})
	m.Dispatch(Event{Kind: Scroll})

	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestLoop_RunsCallbacksOnOneGoroutine(t *testing.T) {
	l := NewLoop(200)
	ctx, cancel := context.WithCancel(context.Background())

	frames := 0
	var moves []float64
	var reschedule FrameFunc
	reschedule = func(time.Duration) {
		frames++
		if frames >= 3 {
			cancel()
			return
		}
		l.RequestFrame(reschedule)
	}

	l.Post(func() {
		l.AddListener(PointerMove, func(e Event) { moves = append(moves, e.X) })
		l.RequestFrame(reschedule)
	})
	go l.Dispatch(Event{Kind: PointerMove, X: 5})

	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()

	select {
	case err := <-errCh:
		if err != context.Canceled {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop")
	}

	if frames != 3 {
		t.Errorf("expected 3 frames, got %d", frames)
	}

	// Dispatch after the loop ended must not block.
	done := make(chan struct{})
	go func() {
		l.Dispatch(Event{Kind: PointerMove})
		l.Post(func() {})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked after Run returned")
	}
	_ = moves
}

func TestLoop_RunOnlyOnce(t *testing.T) {
	l := NewLoop(100)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()

	// Post only returns once the loop has taken the func, so Run is live.
	ran := make(chan struct{})
	l.Post(func() { close(ran) })
	<-ran

	if err := l.Run(context.Background()); !errors.Is(err, dynamo.ErrAlreadyRunning) {
		t.Errorf("second Run: expected ErrAlreadyRunning, got %v", err)
	}

	cancel()
	if err := <-errCh; err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if err := l.Run(context.Background()); !errors.Is(err, dynamo.ErrAlreadyRunning) {
		t.Errorf("Run after finish: expected ErrAlreadyRunning, got %v", err)
	}
}
