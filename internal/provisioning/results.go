package provisioning

import (
	"time"

	"github.com/imamik/aks-storage/internal/config"
)

// Process exit codes of a run.
const (
	ExitAllPassed  = 0
	ExitFatal      = 1
	ExitPartial    = 2
	ExitNonePassed = 3
)

// Stage is the part of a run a use case result comes from.
type Stage string

const (
	StageStorage    Stage = "storage"
	StageValidation Stage = "validation"
)

// CaseResult is the outcome of one use case.
type CaseResult struct {
	UseCase  config.UseCase
	Passed   bool
	Keyless  bool
	Stage    Stage
	Message  string
	Logs     string
	Duration time.Duration
}

// Summary counts results.
type Summary struct {
	Total  int
	Passed int
	Failed int
}

// Summarize counts passed and failed results.
func Summarize(results []CaseResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}

// ExitCode maps results to the process exit code.
func ExitCode(results []CaseResult) int {
	s := Summarize(results)
	switch {
	case s.Total > 0 && s.Passed == s.Total:
		return ExitAllPassed
	case s.Passed > 0:
		return ExitPartial
	default:
		return ExitNonePassed
	}
}
