package eventlog

import (
	"context"
	"sync"
)

// MemoryStore keeps records in a slice. It backs tests and throwaway runs;
// nothing survives the process.
type MemoryStore struct {
	mu      sync.Mutex
	records []Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, payload []byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := make([]byte, len(payload))
	copy(p, payload)

	id := int64(len(s.records) + 1)
	s.records = append(s.records, Record{ID: id, Payload: p})
	return id, nil
}

func (s *MemoryStore) Replay(ctx context.Context, fn func(Record) error) error {
	s.mu.Lock()
	snapshot := make([]Record, len(s.records))
	copy(snapshot, s.records)
	s.mu.Unlock()

	for _, rec := range snapshot {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}

// Len reports the number of committed records.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Seed appends a payload without going through the engine, for preparing
// replay fixtures.
func (s *MemoryStore) Seed(payload []byte) int64 {
	id, _ := s.Append(context.Background(), payload)
	return id
}

var _ Store = (*MemoryStore)(nil)
