package eventlog

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/cockroachdb/pebble"
)

// PebbleStore is an embedded log backend for single-node deployments and
// the demo binary. Keys are 8-byte big-endian sequence numbers, so pebble's
// key order is the replay order.
type PebbleStore struct {
	mu     sync.Mutex
	db     *pebble.DB
	lastID int64
}

func NewPebbleStore(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble event log: %w", err)
	}

	s := &PebbleStore{db: db}
	if err := s.loadLastID(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PebbleStore) Close() error { return s.db.Close() }

func (s *PebbleStore) loadLastID() error {
	iter, err := s.db.NewIter(nil)
	if err != nil {
		return fmt.Errorf("open event log iterator: %w", err)
	}
	defer iter.Close()

	if iter.Last() && iter.Valid() {
		s.lastID = int64(binary.BigEndian.Uint64(iter.Key()))
	}
	return nil
}

func recordKey(id int64) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], uint64(id))
	return k[:]
}

func (s *PebbleStore) Append(_ context.Context, payload []byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.lastID + 1
	if err := s.db.Set(recordKey(id), payload, pebble.Sync); err != nil {
		return 0, fmt.Errorf("append event %d: %w", id, err)
	}
	s.lastID = id
	return id, nil
}

func (s *PebbleStore) Replay(ctx context.Context, fn func(Record) error) error {
	iter, err := s.db.NewIter(nil)
	if err != nil {
		return fmt.Errorf("open event log iterator: %w", err)
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload := make([]byte, len(iter.Value()))
		copy(payload, iter.Value())

		rec := Record{
			ID:      int64(binary.BigEndian.Uint64(iter.Key())),
			Payload: payload,
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return iter.Error()
}

var _ Store = (*PebbleStore)(nil)
