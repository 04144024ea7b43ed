package storage

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/synnergy-labs/resourcevm/bank"
	"github.com/synnergy-labs/resourcevm/core"
)

// State is the Session's three-state lifecycle (spec.md §4.5 "State
// machine"): a session is a one-shot object bound to one transaction-like
// invocation.
type State int

const (
	StateOpen State = iota
	StateCommitted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateCommitted:
		return "committed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Session is C5: the unified world view the interpreter reads through,
// and the commit path that splits write-set effects across the byte
// store, the bank, and the event sink (spec.md §2, §4.5).
type Session struct {
	data   *DataAccess
	events *EventWriter
	bank   *bank.Session
	chain  *ExecutionContext
	log    *logrus.Logger

	state State
}

// New builds an Open session bound to one transaction-like invocation.
func New(data *DataAccess, events *EventWriter, bankSession *bank.Session, chain *ExecutionContext, log *logrus.Logger) *Session {
	if log == nil {
		log = logrus.New()
	}
	return &Session{data: data, events: events, bank: bankSession, chain: chain, log: log, state: StateOpen}
}

// State reports the session's current lifecycle state.
func (s *Session) State() State { return s.state }

func (s *Session) requireOpen(op string) error {
	if s.state != StateOpen {
		return fmt.Errorf("storage: session is %s, cannot %s", s.state, op)
	}
	return nil
}

// GetModule delegates directly to the byte store (spec.md §4.5 read API).
func (s *Session) GetModule(id core.ModuleId) ([]byte, error) {
	if err := s.requireOpen("get_module"); err != nil {
		return nil, err
	}
	return s.data.GetModule(id)
}

// GetResource resolves address/tag through the chain: chain context, then
// bank, then byte store — first resolved wins (spec.md §4.5, §5
// "Ordering").
func (s *Session) GetResource(address core.Address, tag core.StructTag) ([]byte, error) {
	if err := s.requireOpen("get_resource"); err != nil {
		return nil, err
	}
	for _, resolver := range []core.Resolver{s.chain, s.bank, s.data} {
		res := resolver.Resolve(address, tag)
		if res.Resolved {
			s.log.WithFields(logrus.Fields{"address": address, "tag": tag.String()}).Trace("session: resource resolved")
			return res.Value, res.Err
		}
	}
	return nil, nil
}

// DeleteResource is spec.md §4.5's write API delete_resource.
func (s *Session) DeleteResource(address core.Address, tag core.StructTag, tp core.Type) error {
	if err := s.requireOpen("delete_resource"); err != nil {
		return err
	}
	handled, err := s.bank.HandleDeleteBalance(address, tag, tp)
	if err != nil {
		return err
	}
	if handled {
		return nil
	}
	return s.data.Delete(core.NewResourceAccessPath(address, tag))
}

// InsertResource is spec.md §4.5's write API insert_resource.
func (s *Session) InsertResource(address core.Address, tag core.StructTag, layout core.Layout, tp core.Type, value core.Value) error {
	if err := s.requireOpen("insert_resource"); err != nil {
		return err
	}
	handled, err := s.bank.HandleInsertBalance(address, tag, tp, value)
	if err != nil {
		return err
	}
	if handled {
		return nil
	}
	blob, err := core.SerializeValue(value, layout)
	if err != nil {
		return err
	}
	return s.data.Insert(core.NewResourceAccessPath(address, tag), blob)
}

// PublishModule is spec.md §4.5's write API publish_module.
func (s *Session) PublishModule(id core.ModuleId, blob []byte) error {
	if err := s.requireOpen("publish_module"); err != nil {
		return err
	}
	return s.data.Insert(core.NewModuleAccessPath(id), blob)
}

// WriteEvent delegates to C2.
func (s *Session) WriteEvent(ev Event) error {
	if err := s.requireOpen("write_event"); err != nil {
		return err
	}
	return s.events.Write(ev)
}

// MarkCommitted transitions an Open session to Committed. Called once the
// interpreter's effects have been fully drained (spec.md §4.5).
func (s *Session) MarkCommitted() {
	if s.state == StateOpen {
		s.state = StateCommitted
	}
}

// MarkFailed transitions an Open session to Failed: no partial effects
// have been applied to the byte store by the Session itself beyond
// whatever commit steps already ran before the error fired (spec.md §4.5
// "Failure semantics").
func (s *Session) MarkFailed() {
	if s.state == StateOpen {
		s.state = StateFailed
	}
}
