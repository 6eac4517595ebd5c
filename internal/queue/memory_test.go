package queue

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPublishFiling(t *testing.T) {
	q := NewMemory()
	require.NoError(t, q.PublishFiling(context.Background(), "filer", 42))

	recs := q.Records("filer")
	require.Len(t, recs, 1)
	assert.Equal(t, "42", string(recs[0].Key))

	var env Envelope
	require.NoError(t, json.Unmarshal(recs[0].Value, &env))
	assert.Equal(t, "1.0", env.SpecVersion)
	assert.Equal(t, FilingEventType, env.Type)
	assert.NotEmpty(t, env.ID)
	assert.Equal(t, int64(42), env.Data.FilingMessage.FilingIdentifier)

	assert.Empty(t, q.Records("colin-filer"))
}
