package k8s

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"

	"github.com/imamik/aks-storage/internal/util/ptr"
)

func jobWith(status batchv1.JobStatus, backoffLimit *int32) *batchv1.Job {
	return &batchv1.Job{
		ObjectMeta: metav1.ObjectMeta{Name: "static-blob-creator", Namespace: "default"},
		Spec:       batchv1.JobSpec{BackoffLimit: backoffLimit},
		Status:     status,
	}
}

func condition(t batchv1.JobConditionType) batchv1.JobCondition {
	return batchv1.JobCondition{Type: t, Status: corev1.ConditionTrue}
}

func TestClassifyJob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		job  *batchv1.Job
		want JobState
	}{
		{"no status", jobWith(batchv1.JobStatus{}, nil), JobRunning},
		{"complete condition", jobWith(batchv1.JobStatus{Conditions: []batchv1.JobCondition{condition(batchv1.JobComplete)}}, nil), JobComplete},
		{"failed condition", jobWith(batchv1.JobStatus{Conditions: []batchv1.JobCondition{condition(batchv1.JobFailed)}}, nil), JobFailed},
		{"failure target", jobWith(batchv1.JobStatus{Conditions: []batchv1.JobCondition{condition(batchv1.JobFailureTarget)}}, nil), JobFailed},
		{"false condition ignored", jobWith(batchv1.JobStatus{Conditions: []batchv1.JobCondition{{Type: batchv1.JobFailed, Status: corev1.ConditionFalse}}}, nil), JobRunning},
		{"succeeded count", jobWith(batchv1.JobStatus{Succeeded: 1}, nil), JobComplete},
		{"failed beyond backoff limit", jobWith(batchv1.JobStatus{Failed: 1}, ptr.To[int32](0)), JobFailed},
		{"failed within default limit", jobWith(batchv1.JobStatus{Failed: 1}, nil), JobRunning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ClassifyJob(tt.job))
		})
	}
}

func TestWaitForJob_Complete(t *testing.T) {
	t.Parallel()

	job := jobWith(batchv1.JobStatus{Conditions: []batchv1.JobCondition{condition(batchv1.JobComplete)}}, nil)
	c := NewFromClients(fake.NewClientset(job))

	state, err := c.WaitForJob(context.Background(), "default", job.Name, time.Second, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, JobComplete, state)
}

func TestWaitForJob_Failed(t *testing.T) {
	t.Parallel()

	job := jobWith(batchv1.JobStatus{Conditions: []batchv1.JobCondition{condition(batchv1.JobFailed)}}, nil)
	c := NewFromClients(fake.NewClientset(job))

	state, err := c.WaitForJob(context.Background(), "default", job.Name, time.Second, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, JobFailed, state)
}

func TestWaitForJob_Timeout(t *testing.T) {
	t.Parallel()

	job := jobWith(batchv1.JobStatus{Active: 1}, nil)
	c := NewFromClients(fake.NewClientset(job))

	state, err := c.WaitForJob(context.Background(), "default", job.Name, 50*time.Millisecond, 10*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
	assert.Equal(t, JobRunning, state)
}

func TestWaitForJob_BecomesComplete(t *testing.T) {
	t.Parallel()

	job := jobWith(batchv1.JobStatus{Active: 1}, nil)
	cs := fake.NewClientset(job)
	c := NewFromClients(cs)

	go func() {
		time.Sleep(30 * time.Millisecond)
		done := job.DeepCopy()
		done.Status = batchv1.JobStatus{Succeeded: 1}
		_, _ = cs.BatchV1().Jobs("default").UpdateStatus(context.Background(), done, metav1.UpdateOptions{})
	}()

	state, err := c.WaitForJob(context.Background(), "default", job.Name, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, JobComplete, state)
}

func TestWaitForPod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		phase   corev1.PodPhase
		want    corev1.PodPhase
		wantErr bool
	}{
		{"succeeded", corev1.PodSucceeded, corev1.PodSucceeded, false},
		{"failed", corev1.PodFailed, corev1.PodFailed, false},
		{"stuck pending", corev1.PodPending, corev1.PodPending, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pod := &corev1.Pod{
				ObjectMeta: metav1.ObjectMeta{Name: "static-blob-reader", Namespace: "default"},
				Status:     corev1.PodStatus{Phase: tt.phase},
			}
			c := NewFromClients(fake.NewClientset(pod))

			phase, err := c.WaitForPod(context.Background(), "default", pod.Name, 50*time.Millisecond, 10*time.Millisecond)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, phase)
		})
	}
}

func TestWaitForPod_Missing(t *testing.T) {
	t.Parallel()
	c := NewFromClients(fake.NewClientset())
	_, err := c.WaitForPod(context.Background(), "default", "missing", 30*time.Millisecond, 10*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

// forbidGets makes every get of resource fail with Forbidden.
func forbidGets(cs *fake.Clientset, group, resource string) {
	cs.PrependReactor("get", resource, func(action k8stesting.Action) (bool, runtime.Object, error) {
		name := action.(k8stesting.GetAction).GetName()
		return true, nil, apierrors.NewForbidden(schema.GroupResource{Group: group, Resource: resource}, name, errors.New("rbac denied"))
	})
}

func TestWaitForJob_ForbiddenStopsEarly(t *testing.T) {
	t.Parallel()
	cs := fake.NewClientset()
	forbidGets(cs, "batch", "jobs")
	c := NewFromClients(cs)

	start := time.Now()
	_, err := c.WaitForJob(context.Background(), "default", "static-blob-creator", 5*time.Second, 10*time.Millisecond)
	require.Error(t, err)
	assert.True(t, apierrors.IsForbidden(err))
	assert.Contains(t, err.Error(), "failed to get job default/static-blob-creator")
	assert.Less(t, time.Since(start), time.Second)
}

func TestWaitForPod_ForbiddenStopsEarly(t *testing.T) {
	t.Parallel()
	cs := fake.NewClientset()
	forbidGets(cs, "", "pods")
	c := NewFromClients(cs)

	_, err := c.WaitForPod(context.Background(), "default", "static-blob-reader", 5*time.Second, 10*time.Millisecond)
	require.Error(t, err)
	assert.True(t, apierrors.IsForbidden(err))
	assert.NotContains(t, err.Error(), "timed out")
}

func TestWaitForJob_TransientErrorKeepsPolling(t *testing.T) {
	t.Parallel()
	job := jobWith(batchv1.JobStatus{Succeeded: 1}, nil)
	cs := fake.NewClientset(job)
	calls := 0
	cs.PrependReactor("get", "jobs", func(k8stesting.Action) (bool, runtime.Object, error) {
		calls++
		if calls == 1 {
			return true, nil, apierrors.NewTooManyRequests("slow down", 0)
		}
		return false, nil, nil
	})
	c := NewFromClients(cs)

	state, err := c.WaitForJob(context.Background(), "default", job.Name, time.Second, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, JobComplete, state)
}
