package eventlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id, err := s.Append(ctx, []byte(`one`))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	s.Seed([]byte(`two`))
	assert.Equal(t, 2, s.Len())

	recs := collect(t, s)
	require.Len(t, recs, 2)
	assert.Equal(t, []byte(`one`), recs[0].Payload)
	assert.Equal(t, int64(2), recs[1].ID)
}

func TestMemoryStoreCopiesPayload(t *testing.T) {
	s := NewMemoryStore()
	buf := []byte(`abc`)
	_, err := s.Append(context.Background(), buf)
	require.NoError(t, err)

	buf[0] = 'x'
	recs := collect(t, s)
	assert.Equal(t, []byte(`abc`), recs[0].Payload)
}
