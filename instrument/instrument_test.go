package instrument

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvgrad/core"
)

// TestBackward_OK checks gradients, the pass record and the ok counter.
func TestBackward_OK(t *testing.T) {
	before := testutil.ToFloat64(passesTotal.WithLabelValues("ok"))

	x := core.Value(3)
	y := x.Mul(x).Add(core.Value(1))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	pass, err := Backward(context.Background(), y, WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, 6.0, x.Grad())
	assert.Equal(t, 4, pass.Nodes)
	_, err = uuid.Parse(pass.ID)
	assert.NoError(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(passesTotal.WithLabelValues("ok")))
	assert.Contains(t, buf.String(), "backward pass")
	assert.Contains(t, buf.String(), pass.ID)
}

// TestBackward_Error checks a failing pass is counted and logged.
func TestBackward_Error(t *testing.T) {
	before := testutil.ToFloat64(passesTotal.WithLabelValues("error"))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	pass, err := Backward(context.Background(), nil, WithLogger(logger))
	assert.ErrorIs(t, err, core.ErrNilNode)
	require.NotNil(t, pass)
	assert.Zero(t, pass.Nodes)

	assert.Equal(t, before+1, testutil.ToFloat64(passesTotal.WithLabelValues("error")))
	assert.Contains(t, buf.String(), "backward pass failed")
}

// TestBackward_Canceled checks the context reaches the backward pass and
// that a cancelled pass is counted and logged as a failure.
func TestBackward_Canceled(t *testing.T) {
	before := testutil.ToFloat64(passesTotal.WithLabelValues("error"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	x := core.Value(1)
	pass, err := Backward(ctx, x.Tanh(), WithLogger(logger))
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, pass)
	assert.Equal(t, 0.0, x.Grad())

	assert.Equal(t, before+1, testutil.ToFloat64(passesTotal.WithLabelValues("error")))
	assert.Contains(t, buf.String(), "backward pass failed")
	assert.Contains(t, buf.String(), pass.ID)
	assert.Contains(t, buf.String(), context.Canceled.Error())
}

// TestBackward_UniquePassIDs ensures each pass gets its own ID.
func TestBackward_UniquePassIDs(t *testing.T) {
	y := core.Value(2).Neg()
	p1, err := Backward(context.Background(), y, WithLogger(nil))
	require.NoError(t, err)
	p2, err := Backward(context.Background(), y)
	require.NoError(t, err)
	assert.NotEqual(t, p1.ID, p2.ID)
}
