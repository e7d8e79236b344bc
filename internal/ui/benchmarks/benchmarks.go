// Package benchmarks provides timing estimates for run phases.
package benchmarks

import (
	"time"
)

// DefaultTimings are median phase durations of live runs (seconds).
// Validation is measured for a single case and scales with the case count.
var DefaultTimings = map[string]int{
	"preflight":      5,
	"infrastructure": 45,
	"cluster":        420,
	"storage":        40,
	"validation":     90,
}

// PhaseOrder defines the sequence of phases for ETA calculation.
var PhaseOrder = []string{
	"preflight",
	"infrastructure",
	"cluster",
	"storage",
	"validation",
}

// PhaseRecord is a finished phase and how long it took.
type PhaseRecord struct {
	Phase    string
	Duration time.Duration
}

// EstimateRemaining calculates the estimated time remaining based on the
// current phase, its elapsed time and the phases already finished.
func EstimateRemaining(currentPhase string, phaseElapsed time.Duration, history []PhaseRecord) time.Duration {
	return EstimateRemainingWithScale(currentPhase, phaseElapsed, history, PerformanceScale(currentPhase, phaseElapsed, history))
}

// EstimateRemainingWithScale calculates ETA while applying a performance scale factor.
func EstimateRemainingWithScale(currentPhase string, phaseElapsed time.Duration, history []PhaseRecord, scale float64) time.Duration {
	currentIdx := -1
	for i, p := range PhaseOrder {
		if p == currentPhase {
			currentIdx = i
			break
		}
	}
	if currentIdx < 0 {
		return 0
	}

	var remaining time.Duration
	if expected, ok := expectedDuration(currentPhase, scale); ok && expected > phaseElapsed {
		remaining += expected - phaseElapsed
	}

	completed := make(map[string]bool, len(history))
	for _, rec := range history {
		completed[rec.Phase] = true
	}
	for _, phase := range PhaseOrder[currentIdx+1:] {
		if completed[phase] {
			continue
		}
		if expected, ok := expectedDuration(phase, scale); ok {
			remaining += expected
		}
	}
	return remaining
}

// PerformanceScale derives a speed multiplier from observed-vs-expected durations.
// Example: expected 7m, observed 10m30s => scale=1.5.
func PerformanceScale(currentPhase string, phaseElapsed time.Duration, history []PhaseRecord) float64 {
	var expectedTotal, actualTotal time.Duration

	for _, rec := range history {
		expected, ok := expectedDuration(rec.Phase, 1)
		if !ok {
			continue
		}
		expectedTotal += expected
		actualTotal += rec.Duration
	}

	// An overrunning current phase is folded in immediately.
	if expected, ok := expectedDuration(currentPhase, 1); ok && phaseElapsed > expected {
		expectedTotal += expected
		actualTotal += phaseElapsed
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

// TotalEstimate returns the total estimated run time.
func TotalEstimate() time.Duration {
	var total time.Duration
	for _, phase := range PhaseOrder {
		if d, ok := expectedDuration(phase, 1); ok {
			total += d
		}
	}
	return total
}

func expectedDuration(phase string, scale float64) (time.Duration, bool) {
	secs, ok := DefaultTimings[phase]
	if !ok {
		return 0, false
	}
	return time.Duration(float64(time.Duration(secs)*time.Second) * scale), true
}
