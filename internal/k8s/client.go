package k8s

import (
	"context"
	"fmt"
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// Action describes what Apply did with an object.
type Action string

// Apply outcomes.
const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionUnchanged Action = "unchanged"
)

// ApplyResult reports the outcome of applying one object.
type ApplyResult struct {
	Kind      string
	Namespace string
	Name      string
	Action    Action
}

// String returns "kind/name" with the namespace when set.
func (r ApplyResult) String() string {
	if r.Namespace == "" {
		return fmt.Sprintf("%s/%s", r.Kind, r.Name)
	}
	return fmt.Sprintf("%s/%s/%s", r.Kind, r.Namespace, r.Name)
}

// Client provides the Kubernetes operations of a storage test run.
type Client interface {
	// Apply creates or updates a single typed object.
	Apply(ctx context.Context, obj runtime.Object) (ApplyResult, error)

	// ApplyManifests decodes multi-document YAML and applies each object in order.
	ApplyManifests(ctx context.Context, manifests []byte) ([]ApplyResult, error)

	// WaitForJob polls a Job until it completes or fails.
	WaitForJob(ctx context.Context, namespace, name string, timeout, interval time.Duration) (JobState, error)

	// WaitForPod polls a Pod until it reaches the Succeeded or Failed phase.
	WaitForPod(ctx context.Context, namespace, name string, timeout, interval time.Duration) (corev1.PodPhase, error)

	// JobLogs returns the logs of the most recent pod created by a Job.
	JobLogs(ctx context.Context, namespace, job string) (string, error)

	// PodLogs returns the logs of a pod.
	PodLogs(ctx context.Context, namespace, name string) (string, error)

	// PodEvents returns recent event messages for a pod, oldest first.
	PodEvents(ctx context.Context, namespace, name string) ([]string, error)
}

// client implements the Client interface using k8s.io/client-go.
type client struct {
	clientset kubernetes.Interface
}

// NewFromKubeconfig creates a Client from kubeconfig bytes.
func NewFromKubeconfig(kubeconfig []byte) (Client, error) {
	restConfig, err := clientcmd.RESTConfigFromKubeConfig(kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create REST config from kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes clientset: %w", err)
	}

	return &client{clientset: clientset}, nil
}

// NewFromClients creates a Client from a pre-configured clientset.
// This is useful for testing with fake clients.
func NewFromClients(clientset kubernetes.Interface) Client {
	return &client{clientset: clientset}
}
