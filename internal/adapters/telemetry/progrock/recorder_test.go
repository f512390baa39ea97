package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nanoindent/internal/adapters/telemetry/progrock"
)

func TestRecorder_Lifecycle(t *testing.T) {
	t.Parallel()

	recorder := progrock.New()
	require.NotNil(t, recorder)

	_, vertex := recorder.Record(context.Background(), "scan batch 1/2")
	_, err := vertex.Stdout().Write([]byte("50/100 curves\n"))
	require.NoError(t, err)
	vertex.Complete(nil)

	_, cached := recorder.Record(context.Background(), "scan batch 2/2")
	cached.Cached()
	cached.Complete(nil)

	_, failed := recorder.Record(context.Background(), "scan batch 3/3")
	failed.Complete(errors.New("boom"))

	assert.NoError(t, recorder.Close())
}
