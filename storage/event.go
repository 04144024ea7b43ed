package storage

import (
	"github.com/google/uuid"
	"github.com/synnergy-labs/resourcevm/core"
)

// NewEventGUID mints a fresh event GUID, mirroring the teacher's
// uuid.New().String()-keyed record IDs (core/storage.go) but kept as raw
// bytes since Event.GUID travels to the host as an opaque identifier.
func NewEventGUID() []byte {
	id := uuid.New()
	return id[:]
}

// Event is `(guid, seq, tag, layout, value)`, living only until committed
// (spec.md §3).
type Event struct {
	GUID   []byte
	Seq    uint64
	Tag    core.TypeTag
	Layout core.Layout
	Value  core.Value
}

// EventWriter is C2: it serializes an emitted value against its layout
// and forwards the result to the host (spec.md §4.2). Ordering of
// emissions within one session is preserved because Session.WriteEvent is
// only ever called from the single-threaded commit path.
type EventWriter struct {
	handler core.EventHandler
}

// NewEventWriter wraps a host EventHandler.
func NewEventWriter(handler core.EventHandler) *EventWriter {
	return &EventWriter{handler: handler}
}

// Write serializes and forwards ev, returning InvariantViolation if
// serialization fails (spec.md §4.2).
func (w *EventWriter) Write(ev Event) error {
	msg, err := core.SerializeValue(ev.Value, ev.Layout)
	if err != nil {
		return err
	}
	if err := w.handler.OnEvent(ev.GUID, ev.Seq, ev.Tag, msg); err != nil {
		return core.WrapHostError(err)
	}
	return nil
}
