package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/synnergy-labs/resourcevm/core"
)

func TestEventWriterSerializesAndForwards(t *testing.T) {
	events := &fakeEvents{}
	writer := NewEventWriter(events)

	ev := Event{
		GUID:   NewEventGUID(),
		Seq:    1,
		Tag:    core.U64Tag(),
		Layout: core.Layout{Kind: core.ValU128},
		Value:  core.U128Value(core.U128FromUint64(7)),
	}
	require.NoError(t, writer.Write(ev))
	require.Len(t, events.events, 1)
	require.Len(t, events.events[0].guid, 16)
}

func TestNewEventGUIDIsUnique(t *testing.T) {
	a, b := NewEventGUID(), NewEventGUID()
	require.NotEqual(t, a, b)
	require.Len(t, a, 16)
}
