package core

import (
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// GasScheduleAccessPath is the well-known byte-store location Vm.New reads
// the CostTable from (spec.md §6 "loads a gas schedule from the byte store
// at a well-known path").
var GasScheduleAccessPath = AccessPath{Address: CoreCodeAddress, Path: []byte("sys/gas_schedule/v1")}

// Opcode is a placeholder for the excluded bytecode interpreter's opcode
// set (spec.md §1). A handful of representative opcodes are named so the
// gas schedule has something concrete to price, mirroring the teacher's
// `core/vm_opcodes.go` minimal opcode list.
type Opcode uint16

const (
	OpPush Opcode = iota
	OpPop
	OpCall
	OpReadResource
	OpWriteResource
	OpEmitEvent
)

// DefaultGasCost is charged for any opcode missing from the loaded
// CostTable, mirroring the teacher's gas_table.go fallback.
const DefaultGasCost uint64 = 100_000

// CostTable is the gas-cost table loaded from the byte store. PerByteCost
// prices the intrinsic charge publish_module/execute_script levy
// proportional to blob size (spec.md §6); Opcodes prices individual
// bytecode operations for a host interpreter that wants to consult it.
type CostTable struct {
	PerByteCost uint64          `yaml:"per_byte_cost"`
	Opcodes     map[Opcode]uint64 `yaml:"opcodes"`

	warnedOnce sync.Map
}

// DefaultCostTable is a reasonable fallback schedule, used by hostmem's
// in-memory store seeding and by tests.
func DefaultCostTable() *CostTable {
	return &CostTable{
		PerByteCost: 1,
		Opcodes: map[Opcode]uint64{
			OpPush:          1,
			OpPop:           1,
			OpCall:          50,
			OpReadResource:  200,
			OpWriteResource: 300,
			OpEmitEvent:     150,
		},
	}
}

// DecodeCostTable parses a YAML-encoded gas schedule, the format the
// reference byte-store seeds write at GasScheduleAccessPath.
func DecodeCostTable(blob []byte) (*CostTable, error) {
	var t CostTable
	if err := yaml.Unmarshal(blob, &t); err != nil {
		return nil, fmt.Errorf("core: malformed gas schedule: %w", err)
	}
	if t.Opcodes == nil {
		t.Opcodes = map[Opcode]uint64{}
	}
	return &t, nil
}

// Encode serializes the table back to YAML, the inverse of DecodeCostTable.
func (t *CostTable) Encode() ([]byte, error) {
	return yaml.Marshal(t)
}

// OpcodeCost returns the base gas cost for op, logging (via the supplied
// warn func) only the first time an unpriced opcode is seen.
func (t *CostTable) OpcodeCost(op Opcode, warn func(op Opcode)) uint64 {
	if cost, ok := t.Opcodes[op]; ok {
		return cost
	}
	if _, already := t.warnedOnce.LoadOrStore(op, struct{}{}); !already && warn != nil {
		warn(op)
	}
	return DefaultGasCost
}

// Gas is the caller-supplied gas budget for one transaction.
type Gas struct {
	MaxGasAmount uint64
}

// GasMeter charges gas against a budget and reports exhaustion as
// StatusOutOfGas, never a panic.
type GasMeter struct {
	mu        sync.Mutex
	table     *CostTable
	remaining uint64
	max       uint64
}

// NewGasMeter constructs a meter with budget max gas units, priced by table.
func NewGasMeter(table *CostTable, max uint64) *GasMeter {
	return &GasMeter{table: table, remaining: max, max: max}
}

// ChargeIntrinsic charges PerByteCost*sizeBytes, the proportional charge
// publish_module and execute_script levy up front (spec.md §6).
func (g *GasMeter) ChargeIntrinsic(sizeBytes int) error {
	return g.charge(g.table.PerByteCost * uint64(sizeBytes))
}

// ChargeOpcode charges the schedule's cost for a single opcode.
func (g *GasMeter) ChargeOpcode(op Opcode, warn func(Opcode)) error {
	return g.charge(g.table.OpcodeCost(op, warn))
}

func (g *GasMeter) charge(amount uint64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if amount > g.remaining {
		have := g.remaining
		g.remaining = 0
		return NewVMError(StatusOutOfGas, fmt.Sprintf("gas exhausted: need %d, have %d", amount, have))
	}
	g.remaining -= amount
	return nil
}

// Remaining returns the unspent gas budget.
func (g *GasMeter) Remaining() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.remaining
}

// Used returns how much of the original budget has been spent.
func (g *GasMeter) Used() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.max - g.remaining
}
