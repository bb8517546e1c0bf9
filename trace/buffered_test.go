package trace

import (
	"sync"
	"testing"
	"time"
)

type recordingEmitter struct {
	mu      sync.Mutex
	events  []Event
	batches int
}

func (r *recordingEmitter) Emit(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingEmitter) EmitBatch(events []Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches++
	r.events = append(r.events, events...)
}

func (r *recordingEmitter) snapshot() (batches, eventCount int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.batches, len(r.events)
}

func TestBufferedEmitterFlushesAtSize(t *testing.T) {
	inner := &recordingEmitter{}
	b := NewBufferedEmitter(inner, 3, 0)
	defer b.Close()

	b.Emit(Event{Kind: EventDfsDiscover})
	b.Emit(Event{Kind: EventDfsFinish})
	if batches, _ := inner.snapshot(); batches != 0 {
		t.Fatalf("flushed before reaching size: batches = %d", batches)
	}

	b.Emit(Event{Kind: EventSolveDone})
	batches, events := inner.snapshot()
	if batches != 1 {
		t.Fatalf("batches = %d, want 1 after reaching size", batches)
	}
	if events != 3 {
		t.Fatalf("inner.events has %d entries, want 3", events)
	}
}

func TestBufferedEmitterExplicitFlush(t *testing.T) {
	inner := &recordingEmitter{}
	b := NewBufferedEmitter(inner, 0, 0) // 0, 0 disables both automatic paths
	defer b.Close()

	b.Emit(Event{Kind: EventDfsDiscover})
	b.Emit(Event{Kind: EventDfsFinish})
	if batches, _ := inner.snapshot(); batches != 0 {
		t.Fatalf("expected no automatic flush with size <= 0 and interval <= 0")
	}

	b.Flush()
	if batches, events := inner.snapshot(); batches != 1 || events != 2 {
		t.Fatalf("batches = %d, events = %d, want 1 batch of 2", batches, events)
	}

	b.Flush() // flushing an empty buffer should be a no-op
	if batches, _ := inner.snapshot(); batches != 1 {
		t.Fatalf("flushing an empty buffer triggered another batch: batches = %d", batches)
	}
}

func TestBufferedEmitterFlushesOnInterval(t *testing.T) {
	inner := &recordingEmitter{}
	b := NewBufferedEmitter(inner, 0, 10*time.Millisecond) // size disabled, ticker drives the flush
	defer b.Close()

	b.Emit(Event{Kind: EventDfsDiscover})

	deadline := time.After(time.Second)
	for {
		if batches, events := inner.snapshot(); batches >= 1 && events == 1 {
			return
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for interval flush")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestBufferedEmitterCloseIsIdempotent(t *testing.T) {
	inner := &recordingEmitter{}
	b := NewBufferedEmitter(inner, 0, 10*time.Millisecond)
	b.Close()
	b.Close() // must not panic
}
