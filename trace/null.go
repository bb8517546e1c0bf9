package trace

// NullEmitter discards every event. It is the default Emitter for a
// Context constructed with no WithEmitter option, so tracing costs
// nothing when unconfigured.
type NullEmitter struct{}

func (NullEmitter) Emit(Event) {}
func (NullEmitter) EmitBatch([]Event) {}
