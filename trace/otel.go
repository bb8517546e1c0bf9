package trace

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// OTelEmitter turns solver events into OpenTelemetry spans: each
// accumulator's dfs_discover opens a span, its dfs_finish ends it, and
// accumulator_update/accumulator_suppressed events become span events on
// that accumulator's span while it is open, or on the root span once it
// has ended. Everything else (worklist/solve-level events) is recorded as
// a span event on the root span passed via Start.
//
// Usage:
//
//	tracer := otel.Tracer("flow")
//	emitter, end := trace.NewOTelEmitter(ctx, tracer, "solve")
//	defer end()
//	c := flow.NewContext(flow.WithEmitter(emitter))
type OTelEmitter struct {
	tracer oteltrace.Tracer
	root   oteltrace.Span

	mu    sync.Mutex
	spans map[string]oteltrace.Span // cellName -> open span
}

// NewOTelEmitter opens a root span named label under ctx using tracer, and
// returns an Emitter plus a function that must be called to end the root
// span (and any accumulator spans still open, e.g. because a solve
// panicked).
func NewOTelEmitter(ctx context.Context, tracer oteltrace.Tracer, label string) (*OTelEmitter, func()) {
	_, span := tracer.Start(ctx, label)
	e := &OTelEmitter{tracer: tracer, root: span, spans: make(map[string]oteltrace.Span)}
	return e, func() {
		e.mu.Lock()
		for _, s := range e.spans {
			s.End()
		}
		e.spans = nil
		e.mu.Unlock()
		span.End()
	}
}

func (e *OTelEmitter) Emit(ev Event) {
	switch ev.Kind {
	case EventDfsDiscover:
		_, span := e.tracer.Start(context.Background(), "accumulator:"+ev.CellName)
		span.SetAttributes(attribute.Int("discovery_time", ev.DiscoveryTime))
		e.mu.Lock()
		e.spans[ev.CellName] = span
		e.mu.Unlock()

	case EventDfsFinish:
		e.mu.Lock()
		span, ok := e.spans[ev.CellName]
		delete(e.spans, ev.CellName)
		e.mu.Unlock()
		if ok {
			span.SetAttributes(attribute.Int("finish_time", ev.FinishTime))
			span.End()
		}

	case EventAccumulatorUpdate, EventAccumulatorSuppressed:
		e.mu.Lock()
		span, ok := e.spans[ev.CellName]
		e.mu.Unlock()
		if ok {
			span.AddEvent(string(ev.Kind))
		} else {
			// Worklist-drain updates arrive after the accumulator's
			// discovery→finish span has ended; they land on the root span.
			e.root.AddEvent(string(ev.Kind), oteltrace.WithAttributes(attribute.String("cell", ev.CellName)))
		}

	default:
		e.root.AddEvent(string(ev.Kind), oteltrace.WithAttributes(attribute.String("cell", ev.CellName)))
	}

	if ev.Err != nil {
		e.root.SetStatus(codes.Error, ev.Err.Error())
	}
}

func (e *OTelEmitter) EmitBatch(events []Event) {
	for _, ev := range events {
		e.Emit(ev)
	}
}
