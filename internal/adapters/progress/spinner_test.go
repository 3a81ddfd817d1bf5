package progress

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/tablelandnetwork/tabdeploy/internal/usecase"
)

func TestSpinnerSink_CompletesSpinnerStages(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	sink := newSpinnerSink(&out)
	ctx := context.Background()

	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageResolving, Message: "Loading artifact"})
	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageDeploying, Message: "Deploying TableHolders", Spinner: true})
	assert.Equal(t, "Deploying TableHolders", sink.waiting)

	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageCompleted})
	assert.Empty(t, sink.waiting)
	assert.Contains(t, out.String(), "✓ Deploying TableHolders (")
	assert.NotContains(t, out.String(), "Loading artifact")
}

func TestSpinnerSink_Messages(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	sink := newSpinnerSink(&out)

	sink.Info("connected")
	sink.Error("failed")
	assert.Contains(t, out.String(), "connected\n")
	assert.Contains(t, out.String(), "failed\n")
}

func TestNopSink(t *testing.T) {
	var sink usecase.ProgressSink = NewNopSink()
	sink.OnProgress(context.Background(), usecase.ProgressEvent{Stage: usecase.StageCompleted})
	sink.Info("ignored")
	sink.Error("ignored")
}
