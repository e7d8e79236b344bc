package testing

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/imamik/aks-storage/internal/k8s"
)

// MockKubeClient is a mock implementation of the k8s.Client interface.
type MockKubeClient struct {
	mock.Mock
}

var _ k8s.Client = (*MockKubeClient)(nil)

// Apply mocks applying a single object.
func (m *MockKubeClient) Apply(ctx context.Context, obj runtime.Object) (k8s.ApplyResult, error) {
	args := m.Called(ctx, obj)
	return args.Get(0).(k8s.ApplyResult), args.Error(1)
}

// ApplyManifests mocks applying a manifest stream.
func (m *MockKubeClient) ApplyManifests(ctx context.Context, manifests []byte) ([]k8s.ApplyResult, error) {
	args := m.Called(ctx, manifests)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]k8s.ApplyResult), args.Error(1)
}

// WaitForJob mocks waiting for a Job.
func (m *MockKubeClient) WaitForJob(ctx context.Context, namespace, name string, timeout, interval time.Duration) (k8s.JobState, error) {
	args := m.Called(ctx, namespace, name, timeout, interval)
	return args.Get(0).(k8s.JobState), args.Error(1)
}

// WaitForPod mocks waiting for a Pod.
func (m *MockKubeClient) WaitForPod(ctx context.Context, namespace, name string, timeout, interval time.Duration) (corev1.PodPhase, error) {
	args := m.Called(ctx, namespace, name, timeout, interval)
	return args.Get(0).(corev1.PodPhase), args.Error(1)
}

// JobLogs mocks reading Job logs.
func (m *MockKubeClient) JobLogs(ctx context.Context, namespace, job string) (string, error) {
	args := m.Called(ctx, namespace, job)
	return args.String(0), args.Error(1)
}

// PodLogs mocks reading Pod logs.
func (m *MockKubeClient) PodLogs(ctx context.Context, namespace, name string) (string, error) {
	args := m.Called(ctx, namespace, name)
	return args.String(0), args.Error(1)
}

// PodEvents mocks reading Pod events.
func (m *MockKubeClient) PodEvents(ctx context.Context, namespace, name string) ([]string, error) {
	args := m.Called(ctx, namespace, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// NewMockKubeClient creates a MockKubeClient with no expectations.
func NewMockKubeClient() *MockKubeClient {
	return &MockKubeClient{}
}

// WithApplySuccess accepts every ApplyManifests call.
func (m *MockKubeClient) WithApplySuccess() *MockKubeClient {
	m.On("ApplyManifests", mock.Anything, mock.Anything).Return([]k8s.ApplyResult{}, nil)
	return m
}
