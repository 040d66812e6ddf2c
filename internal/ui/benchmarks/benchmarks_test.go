package benchmarks

import (
	"testing"
	"time"
)

func TestEstimateRemaining_NoHistory(t *testing.T) {
	// At the cluster stage, 10s elapsed, no history
	remaining := EstimateRemaining("cluster", 10*time.Second, nil)

	// Should be: (240-10) + 1 + 45 + 180 = 456s
	expected := 456 * time.Second
	if remaining != expected {
		t.Errorf("expected %v, got %v", expected, remaining)
	}
}

func TestEstimateRemaining_MidwayStage(t *testing.T) {
	// At the workload stage with earlier stages far over budget
	now := time.Now()
	past := now.Add(-10 * time.Minute)
	history := []StageRecord{
		{Stage: "cluster", StartedAt: past, EndedAt: &now},
		{Stage: "credentials", StartedAt: past, EndedAt: &now},
		{Stage: "stabilize", StartedAt: past, EndedAt: &now},
		{Stage: "workload", StartedAt: now},
	}

	remaining := EstimateRemaining("workload", 60*time.Second, history)

	// Historical stages took much longer than defaults, so the ETA scales
	// up, capped at 3x: 180*3 - 60 = 480s
	expected := 480 * time.Second
	if remaining != expected {
		t.Errorf("expected %v, got %v", expected, remaining)
	}
}

func TestEstimateRemaining_ElapsedExceedsExpected(t *testing.T) {
	// At the cluster stage, but already 480s in (over the 240s estimate)
	remaining := EstimateRemaining("cluster", 480*time.Second, nil)

	// Overrun scales future predictions: 480s/240s = 2x
	// Should be: max(0, 480-480)=0 + (1 + 45 + 180) * 2 = 452s
	expected := 452 * time.Second
	if remaining != expected {
		t.Errorf("expected %v, got %v", expected, remaining)
	}
}

func TestEstimateRemaining_UnknownStage(t *testing.T) {
	remaining := EstimateRemaining("teardown", time.Second, nil)
	if remaining != 0 {
		t.Errorf("expected 0 for an unknown stage, got %v", remaining)
	}
}

func TestPerformanceScale(t *testing.T) {
	now := time.Now()
	past := now.Add(-360 * time.Second)
	history := []StageRecord{
		{Stage: "cluster", StartedAt: past, EndedAt: &now},
	}

	// Observed 360s vs expected 240s => 1.5
	scale := PerformanceScale("credentials", 0, history)
	if scale < 1.49 || scale > 1.51 {
		t.Errorf("expected ~1.5, got %v", scale)
	}
}

func TestPerformanceScale_FloorAndCap(t *testing.T) {
	now := time.Now()

	fast := now.Add(-10 * time.Second)
	scale := PerformanceScale("credentials", 0, []StageRecord{
		{Stage: "cluster", StartedAt: fast, EndedAt: &now},
	})
	if scale != 0.6 {
		t.Errorf("expected floor 0.6, got %v", scale)
	}

	slow := now.Add(-2 * time.Hour)
	scale = PerformanceScale("credentials", 0, []StageRecord{
		{Stage: "cluster", StartedAt: slow, EndedAt: &now},
	})
	if scale != 3.0 {
		t.Errorf("expected cap 3.0, got %v", scale)
	}
}

func TestPerformanceScale_NoHistory(t *testing.T) {
	if scale := PerformanceScale("cluster", 0, nil); scale != 1.0 {
		t.Errorf("expected 1.0, got %v", scale)
	}
}

func TestTotalEstimate(t *testing.T) {
	expected := 466 * time.Second
	if got := TotalEstimate(); got != expected {
		t.Errorf("expected %v, got %v", expected, got)
	}
}
