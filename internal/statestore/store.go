// Package statestore persists the run journal: one record per workflow run
// plus its phase transitions, in a local SQLite database. The journal is
// observational; cluster identity lives at the provider, keyed by label, so
// a lost journal costs history, not correctness.
package statestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/chris-milsted/lkeup/internal/model"
)

// ErrNoRuns reports an empty journal for the requested cluster.
var ErrNoRuns = errors.New("no runs recorded")

// Run is one recorded workflow run.
type Run struct {
	ID           string
	ClusterLabel string
	Phase        model.Phase
	Error        string
	StartedAt    time.Time
	UpdatedAt    time.Time
}

// Transition is one recorded phase change within a run.
type Transition struct {
	RunID  string
	From   model.Phase
	To     model.Phase
	Detail string
	At     time.Time
}

// Store is the journal database handle.
type Store struct {
	db *gorm.DB
}

// Open opens the journal database at path, creating the file and its parent
// directories as needed, and applies schema migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &model.IOError{Op: "create directory", Path: dir, Err: err}
		}
	}

	// The CLI owns stdout; keep gorm's own logger quiet.
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	if err := db.AutoMigrate(&RunRecord{}, &TransitionRecord{}); err != nil {
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

// StartRun records the beginning of a workflow run for a cluster.
func (s *Store) StartRun(ctx context.Context, clusterLabel string) (*Run, error) {
	now := time.Now().UTC()
	rec := &RunRecord{
		ID:           "run-" + uuid.NewString(),
		ClusterLabel: clusterLabel,
		Phase:        string(model.PhaseUnprovisioned),
		StartedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, fmt.Errorf("record run start: %w", err)
	}
	return runToModel(rec), nil
}

// RecordTransition appends a phase transition to a run and moves the run's
// own phase along with it. A non-empty detail is retained as the run error.
func (s *Store) RecordTransition(ctx context.Context, runID string, from, to model.Phase, detail string) error {
	now := time.Now().UTC()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := &TransitionRecord{
			RunID:     runID,
			FromPhase: string(from),
			ToPhase:   string(to),
			Detail:    detail,
			At:        now,
		}
		if err := tx.Create(rec).Error; err != nil {
			return err
		}

		updates := map[string]any{"phase": string(to), "updated_at": now}
		if detail != "" {
			updates["error"] = detail
		}
		return tx.Model(&RunRecord{}).Where("id = ?", runID).Updates(updates).Error
	})
}

// LatestRun returns the most recently started run for the cluster label.
// Returns ErrNoRuns when the journal has none.
func (s *Store) LatestRun(ctx context.Context, clusterLabel string) (*Run, error) {
	var rec RunRecord
	err := s.db.WithContext(ctx).
		Where("cluster_label = ?", clusterLabel).
		Order("started_at DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoRuns
		}
		return nil, fmt.Errorf("load latest run: %w", err)
	}
	return runToModel(&rec), nil
}

// Transitions returns a run's transitions in the order they were recorded.
func (s *Store) Transitions(ctx context.Context, runID string) ([]Transition, error) {
	var recs []TransitionRecord
	if err := s.db.WithContext(ctx).Where("run_id = ?", runID).Order("id ASC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("load transitions: %w", err)
	}
	out := make([]Transition, 0, len(recs))
	for i := range recs {
		out = append(out, transitionToModel(&recs[i]))
	}
	return out, nil
}

func runToModel(r *RunRecord) *Run {
	return &Run{
		ID:           r.ID,
		ClusterLabel: r.ClusterLabel,
		Phase:        model.Phase(r.Phase),
		Error:        r.Error,
		StartedAt:    r.StartedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func transitionToModel(r *TransitionRecord) Transition {
	return Transition{
		RunID:  r.RunID,
		From:   model.Phase(r.FromPhase),
		To:     model.Phase(r.ToPhase),
		Detail: r.Detail,
		At:     r.At,
	}
}
