package workflow

import (
	"fmt"
	"time"
)

// Stage defines the interface for a workflow stage.
type Stage interface {
	// Name returns the stage name used in events and error messages.
	Name() string

	// Run executes the stage. A stage never recovers from a predecessor's
	// failure; it only runs if everything before it succeeded.
	Run(ctx *Context) error
}

// RunStages executes all stages sequentially, halting on the first error.
// The failing stage's error is returned verbatim, wrapped with the stage
// name; the workflow phase drops to failed.
func RunStages(ctx *Context, stages ...Stage) error {
	start := time.Now()

	for _, stage := range stages {
		stageStart := time.Now()
		ctx.Observer.Event(Event{
			Type:      EventStageStarted,
			Stage:     stage.Name(),
			Message:   fmt.Sprintf("%s starting", stage.Name()),
			Timestamp: stageStart,
		})

		if err := stage.Run(ctx); err != nil {
			ctx.Observer.Event(Event{
				Type:      EventStageFailed,
				Stage:     stage.Name(),
				Err:       err,
				Message:   fmt.Sprintf("%s failed", stage.Name()),
				Timestamp: time.Now(),
			})
			ctx.Fail(err)
			return fmt.Errorf("%s stage failed: %w", stage.Name(), err)
		}

		ctx.Observer.Event(Event{
			Type:      EventStageCompleted,
			Stage:     stage.Name(),
			Message:   fmt.Sprintf("%s completed in %v", stage.Name(), time.Since(stageStart).Round(time.Millisecond)),
			Timestamp: time.Now(),
		})
	}

	ctx.Observer.Event(Event{
		Type:      EventStageCompleted,
		Stage:     "workflow",
		Message:   fmt.Sprintf("all stages completed in %v", time.Since(start).Round(time.Millisecond)),
		Timestamp: time.Now(),
	})
	return nil
}
