// Package benchmarks provides timing estimates for provisioning stages.
package benchmarks

import "time"

// StageRecord captures the observed timing of one workflow stage.
type StageRecord struct {
	Stage     string
	StartedAt time.Time
	EndedAt   *time.Time
}

// DefaultTimings are median stage durations in seconds, measured on LKE
// runs in gb-lon with three g6-standard-2 nodes.
var DefaultTimings = map[string]int{
	"cluster":     240,
	"credentials": 1,
	"stabilize":   45,
	"workload":    180,
}

// StageOrder defines the stage sequence for ETA calculation.
var StageOrder = []string{
	"cluster",
	"credentials",
	"stabilize",
	"workload",
}

// EstimateRemaining calculates the estimated time remaining based on the
// current stage, its elapsed time, and the observed stage history.
func EstimateRemaining(currentStage string, stageElapsed time.Duration, history []StageRecord) time.Duration {
	return EstimateRemainingWithScale(currentStage, stageElapsed, history, PerformanceScale(currentStage, stageElapsed, history))
}

// EstimateRemainingWithScale calculates ETA while applying a performance
// scale factor.
func EstimateRemainingWithScale(
	currentStage string,
	stageElapsed time.Duration,
	history []StageRecord,
	scale float64,
) time.Duration {
	var remaining time.Duration

	currentIdx := -1
	for i, s := range StageOrder {
		if s == currentStage {
			currentIdx = i
			break
		}
	}
	if currentIdx < 0 {
		return 0
	}

	// For the current stage: max(0, expected - elapsed)
	if expected, ok := DefaultTimings[currentStage]; ok {
		expectedDur := time.Duration(expected) * time.Second
		expectedDur = time.Duration(float64(expectedDur) * scale)
		if expectedDur > stageElapsed {
			remaining += expectedDur - stageElapsed
		}
	}

	completedStages := make(map[string]bool)
	for _, rec := range history {
		if rec.EndedAt != nil {
			completedStages[rec.Stage] = true
		}
	}

	for i := currentIdx + 1; i < len(StageOrder); i++ {
		stage := StageOrder[i]
		if completedStages[stage] {
			continue
		}
		if expected, ok := DefaultTimings[stage]; ok {
			expectedDur := time.Duration(expected) * time.Second
			remaining += time.Duration(float64(expectedDur) * scale)
		}
	}

	return remaining
}

// PerformanceScale derives a speed multiplier from observed-vs-expected
// durations. Example: expected 4m, observed 6m => scale=1.5 (future ETAs
// are stretched by 50%).
func PerformanceScale(currentStage string, stageElapsed time.Duration, history []StageRecord) float64 {
	var expectedTotal time.Duration
	var actualTotal time.Duration

	for _, rec := range history {
		expectedSecs, ok := DefaultTimings[rec.Stage]
		if !ok || rec.EndedAt == nil {
			continue
		}
		expectedTotal += time.Duration(expectedSecs) * time.Second
		actualTotal += rec.EndedAt.Sub(rec.StartedAt)
	}

	// If the current stage is overrunning, fold it in immediately so the
	// ETA adapts quickly.
	if expectedSecs, ok := DefaultTimings[currentStage]; ok && stageElapsed > 0 {
		expectedCurrent := time.Duration(expectedSecs) * time.Second
		if stageElapsed > expectedCurrent {
			expectedTotal += expectedCurrent
			actualTotal += stageElapsed
		}
	}

	if expectedTotal == 0 || actualTotal == 0 {
		return 1.0
	}

	scale := float64(actualTotal) / float64(expectedTotal)
	if scale < 0.6 {
		return 0.6
	}
	if scale > 3.0 {
		return 3.0
	}
	return scale
}

// TotalEstimate returns the total estimated provisioning time.
func TotalEstimate() time.Duration {
	var total time.Duration
	for _, stage := range StageOrder {
		if secs, ok := DefaultTimings[stage]; ok {
			total += time.Duration(secs) * time.Second
		}
	}
	return total
}
