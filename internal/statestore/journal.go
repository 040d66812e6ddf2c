package statestore

import (
	"context"

	"github.com/chris-milsted/lkeup/internal/logging"
	"github.com/chris-milsted/lkeup/internal/model"
	"github.com/chris-milsted/lkeup/internal/workflow"
)

// Journal records phase transitions as they happen. It implements the
// workflow observer so the journal stays in sync with the live run without
// the stages knowing about persistence. Write failures are logged and
// swallowed; the journal must never take a provisioning run down with it.
type Journal struct {
	store  *Store
	logger logging.Logger

	runID string
	last  model.Phase
}

var _ workflow.Observer = (*Journal)(nil)

// NewJournal starts a run for the given cluster label and returns the
// observer that records its transitions.
func NewJournal(ctx context.Context, store *Store, clusterLabel string, logger logging.Logger) (*Journal, error) {
	run, err := store.StartRun(ctx, clusterLabel)
	if err != nil {
		return nil, err
	}
	return &Journal{
		store:  store,
		logger: logger,
		runID:  run.ID,
		last:   run.Phase,
	}, nil
}

// RunID identifies the journaled run.
func (j *Journal) RunID() string {
	return j.runID
}

// Event implements workflow.Observer. Only phase changes are persisted.
func (j *Journal) Event(event workflow.Event) {
	if event.Type != workflow.EventPhaseChanged {
		return
	}

	detail := ""
	if event.Err != nil {
		detail = event.Err.Error()
	}

	ctx := context.Background()
	if err := j.store.RecordTransition(ctx, j.runID, j.last, event.Phase, detail); err != nil {
		j.logger.Warn(ctx, "run journal write failed", "run_id", j.runID, "error", err)
	}
	j.last = event.Phase
}
