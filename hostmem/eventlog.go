package hostmem

import (
	"sync"

	"github.com/synnergy-labs/resourcevm/core"
)

// LoggedEvent is one recorded OnEvent call, kept for inspection by tests.
type LoggedEvent struct {
	GUID    []byte
	Seq     uint64
	Tag     core.TypeTag
	Message []byte
}

// EventLog is an in-memory core.EventHandler, append-only and read back in
// arrival order.
type EventLog struct {
	mu     sync.Mutex
	events []LoggedEvent
}

// NewEventLog builds an empty log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// OnEvent appends the event, implementing core.EventHandler.
func (l *EventLog) OnEvent(guid []byte, seq uint64, tag core.TypeTag, message []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, LoggedEvent{GUID: guid, Seq: seq, Tag: tag, Message: message})
	return nil
}

// Events returns a snapshot of every event recorded so far.
func (l *EventLog) Events() []LoggedEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LoggedEvent, len(l.events))
	copy(out, l.events)
	return out
}
