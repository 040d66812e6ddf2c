package workflow

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris-milsted/lkeup/internal/config"
	"github.com/chris-milsted/lkeup/internal/linode"
	"github.com/chris-milsted/lkeup/internal/model"
)

// recordingObserver captures events for assertions.
type recordingObserver struct {
	events []Event
}

func (r *recordingObserver) Event(event Event) {
	r.events = append(r.events, event)
}

func (r *recordingObserver) types() []EventType {
	out := make([]EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

// stageFunc creates a Stage from a function for testing.
type stageFuncImpl struct {
	name string
	fn   func(*Context) error
}

func stageFunc(name string, fn func(*Context) error) Stage {
	return &stageFuncImpl{name: name, fn: fn}
}

func (s *stageFuncImpl) Name() string           { return s.name }
func (s *stageFuncImpl) Run(ctx *Context) error { return s.fn(ctx) }

func newTestContext(observer Observer) *Context {
	cfg, err := config.LoadFromBytes([]byte("cluster:\n  label: demo\napp:\n  image: ghcr.io/example/app:1\n"))
	if err != nil {
		panic(err)
	}
	return NewContext(context.Background(), cfg, &linode.MockClient{}, observer)
}

func TestRunStages_Success(t *testing.T) {
	t.Parallel()
	executed := make([]string, 0)

	observer := &recordingObserver{}
	ctx := newTestContext(observer)

	err := RunStages(ctx,
		stageFunc("cluster", func(_ *Context) error { executed = append(executed, "cluster"); return nil }),
		stageFunc("credentials", func(_ *Context) error { executed = append(executed, "credentials"); return nil }),
		stageFunc("workload", func(_ *Context) error { executed = append(executed, "workload"); return nil }),
	)

	require.NoError(t, err)
	assert.Equal(t, []string{"cluster", "credentials", "workload"}, executed)
}

func TestRunStages_StopsOnError(t *testing.T) {
	t.Parallel()
	executed := make([]string, 0)

	observer := &recordingObserver{}
	ctx := newTestContext(observer)

	err := RunStages(ctx,
		stageFunc("cluster", func(_ *Context) error { executed = append(executed, "cluster"); return nil }),
		stageFunc("credentials", func(_ *Context) error { return fmt.Errorf("disk full") }),
		stageFunc("workload", func(_ *Context) error { executed = append(executed, "workload"); return nil }),
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials stage failed")
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, []string{"cluster"}, executed, "stages after the failure must not run")
	assert.Equal(t, model.PhaseFailed, ctx.State.Phase)
}

func TestRunStages_EmitsLifecycleEvents(t *testing.T) {
	t.Parallel()
	observer := &recordingObserver{}
	ctx := newTestContext(observer)

	err := RunStages(ctx, stageFunc("cluster", func(_ *Context) error { return nil }))

	require.NoError(t, err)
	assert.Contains(t, observer.types(), EventStageStarted)
	assert.Contains(t, observer.types(), EventStageCompleted)
}

func TestRunStages_FailureEmitsFailedEvent(t *testing.T) {
	t.Parallel()
	observer := &recordingObserver{}
	ctx := newTestContext(observer)

	_ = RunStages(ctx, stageFunc("boom", func(_ *Context) error { return fmt.Errorf("out of capacity") }))

	var failed *Event
	for i := range observer.events {
		if observer.events[i].Type == EventStageFailed {
			failed = &observer.events[i]
		}
	}
	require.NotNil(t, failed, "a failing stage must emit stage.failed")
	assert.Equal(t, "boom", failed.Stage)
	assert.ErrorContains(t, failed.Err, "out of capacity")
}

func TestRunStages_Empty(t *testing.T) {
	t.Parallel()
	ctx := newTestContext(&recordingObserver{})

	assert.NoError(t, RunStages(ctx))
}
