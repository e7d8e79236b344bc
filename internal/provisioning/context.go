package provisioning

import (
	"context"

	"github.com/imamik/aks-storage/internal/config"
	"github.com/imamik/aks-storage/internal/k8s"
	"github.com/imamik/aks-storage/internal/platform/azure"
)

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Azure    azure.Client
	Observer Observer
	Timeouts *config.Timeouts
	Metrics  *Metrics

	// NewKubeClient builds the cluster client once the kubeconfig is known.
	NewKubeClient func(kubeconfig []byte) (k8s.Client, error)

	// SaveState persists the run state. Nil disables persistence.
	SaveState func(*config.RunState) error
}

// NewContext creates a new provisioning context.
func NewContext(ctx context.Context, cfg *config.Config, az azure.Client, observer Observer) *Context {
	return &Context{
		Context:       ctx,
		Config:        cfg,
		State:         NewState(),
		Azure:         az,
		Observer:      observer,
		Timeouts:      config.LoadTimeouts(),
		NewKubeClient: k8s.NewFromKubeconfig,
	}
}

// Persist saves the run state when persistence is configured.
func (c *Context) Persist() error {
	if c.SaveState == nil || c.State.Run == nil {
		return nil
	}
	return c.SaveState(c.State.Run)
}
