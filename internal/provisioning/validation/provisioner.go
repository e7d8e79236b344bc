package validation

import (
	"errors"
	"time"

	"github.com/imamik/aks-storage/internal/config"
	"github.com/imamik/aks-storage/internal/provisioning"
)

const phase = "validation"

var errNoKubeClient = errors.New("no kubernetes client available")

// Provisioner validates every selected use case.
type Provisioner struct{}

// NewProvisioner creates a new validation provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface. A failing case is
// recorded, never returned; the exit code is derived from the results.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if ctx.State.Kube == nil {
		return errNoKubeClient
	}

	for _, uc := range ctx.Config.UseCases() {
		if err := ctx.Err(); err != nil {
			return err
		}

		r, ok := ctx.State.Result(uc)
		if !ok {
			r = Validate(ctx, uc)
			ctx.State.SetResult(r)
		}
		provisioning.LogCaseResult(ctx.Observer, phase, r)
		ctx.Metrics.RecordCase(r)
	}

	s := provisioning.Summarize(ctx.State.Results)
	ctx.Observer.Printf("[%s] %d/%d use cases passed", phase, s.Passed, s.Total)
	return nil
}

// Validate runs the checks of one use case.
func Validate(ctx *provisioning.Context, uc config.UseCase) provisioning.CaseResult {
	start := time.Now()
	r := provisioning.CaseResult{
		UseCase: uc,
		Keyless: ctx.Config.Keyless(uc),
		Stage:   provisioning.StageValidation,
	}

	logs, err := checkWriter(ctx, uc)
	r.Logs = logs
	if err == nil {
		err = checkReader(ctx, uc)
	}
	if err == nil {
		err = checkBackingStore(ctx, uc)
	}

	r.Duration = time.Since(start)
	if err != nil {
		r.Message = err.Error()
		return r
	}
	r.Passed = true
	r.Message = uc.Marker()
	return r
}
