package hostmem

import (
	"testing"

	"github.com/synnergy-labs/resourcevm/core"
)

func TestEventLogRecordsInArrivalOrder(t *testing.T) {
	log := NewEventLog()
	if err := log.OnEvent([]byte("g1"), 1, core.U64Tag(), []byte("m1")); err != nil {
		t.Fatal(err)
	}
	if err := log.OnEvent([]byte("g2"), 2, core.U64Tag(), []byte("m2")); err != nil {
		t.Fatal(err)
	}

	events := log.Events()
	if len(events) != 2 || events[0].Seq != 1 || events[1].Seq != 2 {
		t.Fatalf("got %+v", events)
	}
}

func TestEventLogSnapshotIsIndependentOfFurtherWrites(t *testing.T) {
	log := NewEventLog()
	log.OnEvent([]byte("g1"), 1, core.U64Tag(), []byte("m1"))

	snapshot := log.Events()
	log.OnEvent([]byte("g2"), 2, core.U64Tag(), []byte("m2"))

	if len(snapshot) != 1 {
		t.Fatalf("expected snapshot to stay at 1 event, got %d", len(snapshot))
	}
}
