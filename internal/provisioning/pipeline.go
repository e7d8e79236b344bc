package provisioning

import (
	"fmt"
	"time"
)

// RunPhases executes all provisioning phases sequentially and stops at the
// first failure.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Starting provisioning with %d phases...", len(phases))

	for i, phase := range phases {
		phaseStart := time.Now()
		ctx.Observer.Progress(phase.Name(), i, len(phases))
		LogPhaseStart(ctx.Observer, phase.Name())

		err := phase.Provision(ctx)
		ctx.Metrics.ObservePhase(phase.Name(), time.Since(phaseStart), err)
		if err != nil {
			LogPhaseFailed(ctx.Observer, phase.Name(), err)
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		LogPhaseComplete(ctx.Observer, phase.Name(), time.Since(phaseStart))
		if err := ctx.Persist(); err != nil {
			ctx.Observer.Printf("[%s] failed to save run state: %v", phase.Name(), err)
		}
	}

	ctx.Observer.Printf("Provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
