package provisioning

import (
	"time"

	"github.com/imamik/aks-storage/internal/config"
	"github.com/imamik/aks-storage/internal/k8s"
	"github.com/imamik/aks-storage/internal/platform/azure"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Infrastructure results (populated by infrastructure provisioner)
	ResourceGroup  *azure.ResourceGroup
	Identity       *azure.Identity
	StorageAccount *azure.StorageAccount // nil when no static use case is selected

	// Cluster results (populated by cluster provisioner)
	Cluster             *azure.Cluster
	NodeResourceGroupID string
	Kubeconfig          []byte
	KubeContext         string
	Kube                k8s.Client

	// Results holds one entry per use case that has finished or failed.
	Results []CaseResult

	// Run is the persisted record of the run.
	Run *config.RunState
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}

// Result returns the recorded result of uc.
func (s *State) Result(uc config.UseCase) (CaseResult, bool) {
	for _, r := range s.Results {
		if r.UseCase.Number == uc.Number {
			return r, true
		}
	}
	return CaseResult{}, false
}

// SetResult records r, replacing an earlier result of the same use case.
func (s *State) SetResult(r CaseResult) {
	for i := range s.Results {
		if s.Results[i].UseCase.Number == r.UseCase.Number {
			s.Results[i] = r
			return
		}
	}
	s.Results = append(s.Results, r)
}

// RecordFailure marks uc as failed at stage. keyless reports whether uc ran
// without shared key access.
func (s *State) RecordFailure(uc config.UseCase, stage Stage, err error, d time.Duration, keyless bool) {
	s.SetResult(CaseResult{
		UseCase:  uc,
		Keyless:  keyless,
		Stage:    stage,
		Message:  err.Error(),
		Duration: d,
	})
}

// Failed reports whether uc already has a failed result.
func (s *State) Failed(uc config.UseCase) bool {
	r, ok := s.Result(uc)
	return ok && !r.Passed
}
