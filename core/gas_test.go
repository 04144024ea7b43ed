package core

import "testing"

func TestGasMeterChargeIntrinsicAndRemaining(t *testing.T) {
	table := &CostTable{PerByteCost: 2, Opcodes: map[Opcode]uint64{}}
	meter := NewGasMeter(table, 100)

	if err := meter.ChargeIntrinsic(10); err != nil {
		t.Fatal(err)
	}
	if meter.Used() != 20 {
		t.Fatalf("want 20 used, got %d", meter.Used())
	}
	if meter.Remaining() != 80 {
		t.Fatalf("want 80 remaining, got %d", meter.Remaining())
	}
}

func TestGasMeterOutOfGasReportsPreChargeRemaining(t *testing.T) {
	table := &CostTable{PerByteCost: 1, Opcodes: map[Opcode]uint64{}}
	meter := NewGasMeter(table, 5)

	err := meter.ChargeIntrinsic(10)
	if err == nil {
		t.Fatal("expected out-of-gas error")
	}
	vmErr, ok := err.(*VMError)
	if !ok || vmErr.Status != StatusOutOfGas {
		t.Fatalf("expected StatusOutOfGas, got %v", err)
	}
	if vmErr.Message != "gas exhausted: need 10, have 5" {
		t.Fatalf("expected pre-charge remaining in message, got %q", vmErr.Message)
	}
	if meter.Remaining() != 0 {
		t.Fatalf("expected remaining zeroed after exhaustion, got %d", meter.Remaining())
	}
}

func TestCostTableOpcodeCostFallsBackAndWarnsOnce(t *testing.T) {
	table := DefaultCostTable()
	table.Opcodes = map[Opcode]uint64{}

	var warned int
	warn := func(Opcode) { warned++ }

	if cost := table.OpcodeCost(OpPush, warn); cost != DefaultGasCost {
		t.Fatalf("want default cost, got %d", cost)
	}
	if cost := table.OpcodeCost(OpPush, warn); cost != DefaultGasCost {
		t.Fatalf("want default cost, got %d", cost)
	}
	if warned != 1 {
		t.Fatalf("expected exactly one warning, got %d", warned)
	}
}

func TestCostTableYAMLRoundTrip(t *testing.T) {
	table := DefaultCostTable()
	blob, err := table.Encode()
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeCostTable(blob)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.PerByteCost != table.PerByteCost {
		t.Fatalf("got %d, want %d", decoded.PerByteCost, table.PerByteCost)
	}
	if decoded.OpcodeCost(OpCall, nil) != table.Opcodes[OpCall] {
		t.Fatalf("opcode cost mismatch after round trip")
	}
}
