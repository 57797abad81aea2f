package eventlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, s Store) []Record {
	t.Helper()
	var recs []Record
	require.NoError(t, s.Replay(context.Background(), func(r Record) error {
		recs = append(recs, r)
		return nil
	}))
	return recs
}

func TestPebbleAppendAssignsAscendingIDs(t *testing.T) {
	s, err := NewPebbleStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	for i, payload := range []string{`{"n":1}`, `{"n":2}`, `{"n":3}`} {
		id, err := s.Append(ctx, []byte(payload))
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), id)
	}

	recs := collect(t, s)
	require.Len(t, recs, 3)
	assert.Equal(t, int64(1), recs[0].ID)
	assert.Equal(t, []byte(`{"n":1}`), recs[0].Payload)
	assert.Equal(t, int64(3), recs[2].ID)
	assert.Equal(t, []byte(`{"n":3}`), recs[2].Payload)
}

func TestPebbleSequenceSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewPebbleStore(dir)
	require.NoError(t, err)
	_, err = s.Append(ctx, []byte(`{"n":1}`))
	require.NoError(t, err)
	_, err = s.Append(ctx, []byte(`{"n":2}`))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewPebbleStore(dir)
	require.NoError(t, err)
	defer s.Close()

	id, err := s.Append(ctx, []byte(`{"n":3}`))
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)

	recs := collect(t, s)
	assert.Len(t, recs, 3)
}

func TestPebbleReplayStopsOnCallbackError(t *testing.T) {
	s, err := NewPebbleStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	_, err = s.Append(ctx, []byte(`a`))
	require.NoError(t, err)
	_, err = s.Append(ctx, []byte(`b`))
	require.NoError(t, err)

	boom := errors.New("boom")
	seen := 0
	err = s.Replay(ctx, func(Record) error {
		seen++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, seen)
}
