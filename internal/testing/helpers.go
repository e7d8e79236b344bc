package testing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/imamik/aks-storage/internal/config"
	"github.com/imamik/aks-storage/internal/k8s"
	"github.com/imamik/aks-storage/internal/platform/azure"
	"github.com/imamik/aks-storage/internal/provisioning"
)

// TestContext returns a context with a reasonable timeout for tests.
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// NewProvisioningContext builds a provisioning context with test timeouts
// and a recording observer. The kube client factory fails until a test sets
// one with WithKubeClient.
func NewProvisioningContext(t *testing.T, cfg *config.Config, az azure.Client) (*provisioning.Context, *RecordingObserver) {
	t.Helper()
	obs := NewRecordingObserver()
	ctx := provisioning.NewContext(TestContext(t), cfg, az, obs)
	ctx.Timeouts = config.TestTimeouts()
	ctx.NewKubeClient = func([]byte) (k8s.Client, error) {
		t.Fatalf("unexpected kube client creation")
		return nil, nil
	}
	return ctx, obs
}

// WithKubeClient makes ctx hand out client for every kubeconfig.
func WithKubeClient(ctx *provisioning.Context, client k8s.Client) {
	ctx.NewKubeClient = func([]byte) (k8s.Client, error) { return client, nil }
}

// RecordingObserver implements provisioning.Observer and records output.
type RecordingObserver struct {
	mu       sync.Mutex
	messages []string
	events   []provisioning.Event
}

// NewRecordingObserver creates an empty recording observer.
func NewRecordingObserver() *RecordingObserver {
	return &RecordingObserver{}
}

// Printf records the format string.
func (o *RecordingObserver) Printf(format string, _ ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, format)
}

// Event records the event.
func (o *RecordingObserver) Event(event provisioning.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

// Progress records a progress event.
func (o *RecordingObserver) Progress(phase string, _, _ int) {
	o.Event(provisioning.Event{Type: provisioning.EventProgress, Phase: phase})
}

// WithFields returns the same observer.
func (o *RecordingObserver) WithFields(map[string]string) provisioning.Observer {
	return o
}

// Events returns the recorded events.
func (o *RecordingObserver) Events() []provisioning.Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]provisioning.Event(nil), o.events...)
}

// EventsOfType returns the recorded events of type t.
func (o *RecordingObserver) EventsOfType(t provisioning.EventType) []provisioning.Event {
	var out []provisioning.Event
	for _, e := range o.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Messages returns the recorded format strings.
func (o *RecordingObserver) Messages() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.messages...)
}
