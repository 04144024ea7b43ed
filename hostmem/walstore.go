package hostmem

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/synnergy-labs/resourcevm/core"
)

// walRecord is one WAL-appended mutation, mirroring the teacher's
// NewLedger/OpenLedger pattern of replaying JSON-encoded log lines on open
// (core/ledger.go) but shaped for a flat key/value store instead of blocks.
type walRecord struct {
	Op    string `json:"op"` // "insert" or "remove"
	Key   []byte `json:"key"`
	Value []byte `json:"value,omitempty"`
}

// WALStore is a core.ByteStore backed by an append-only WAL file, replayed
// in full on open, grounded on the teacher's NewLedger WAL-replay loop.
type WALStore struct {
	mu   sync.Mutex
	data map[string][]byte
	file *os.File
}

// OpenWALStore opens (creating if absent) the WAL at path and replays it.
func OpenWALStore(path string) (*WALStore, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("hostmem: open WAL: %w", err)
	}
	s := &WALStore{data: make(map[string][]byte), file: f}
	if err := s.replay(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return s, nil
}

func (s *WALStore) replay() error {
	if _, err := s.file.Seek(0, 0); err != nil {
		return fmt.Errorf("hostmem: rewind WAL: %w", err)
	}
	scanner := bufio.NewScanner(s.file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		var rec walRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return fmt.Errorf("hostmem: WAL unmarshal: %w", err)
		}
		switch rec.Op {
		case "insert":
			s.data[string(rec.Key)] = rec.Value
		case "remove":
			delete(s.data, string(rec.Key))
		default:
			return fmt.Errorf("hostmem: WAL record with unknown op %q", rec.Op)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("hostmem: WAL scan: %w", err)
	}
	if _, err := s.file.Seek(0, 2); err != nil {
		return fmt.Errorf("hostmem: seek WAL end: %w", err)
	}
	return nil
}

func (s *WALStore) append(rec walRecord) error {
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("hostmem: marshal WAL record: %w", err)
	}
	line = append(line, '\n')
	if _, err := s.file.Write(line); err != nil {
		return fmt.Errorf("hostmem: append WAL: %w", err)
	}
	return nil
}

// Get returns the stored value, or nil if absent.
func (s *WALStore) Get(key []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[string(key)]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Insert durably records key/value, then applies it in memory.
func (s *WALStore) Insert(key []byte, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.append(walRecord{Op: "insert", Key: key, Value: value}); err != nil {
		return err
	}
	buf := make([]byte, len(value))
	copy(buf, value)
	s.data[string(key)] = buf
	return nil
}

// Remove durably records a deletion, then applies it in memory.
func (s *WALStore) Remove(key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.append(walRecord{Op: "remove", Key: key}); err != nil {
		return err
	}
	delete(s.data, string(key))
	return nil
}

// Close closes the underlying WAL file.
func (s *WALStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// SeedGasSchedule writes table at core.GasScheduleAccessPath.
func (s *WALStore) SeedGasSchedule(table *core.CostTable) error {
	blob, err := table.Encode()
	if err != nil {
		return fmt.Errorf("hostmem: encoding gas schedule: %w", err)
	}
	return s.Insert(core.GasScheduleAccessPath.Key(), blob)
}
