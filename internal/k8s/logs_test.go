package k8s

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestJobLogs(t *testing.T) {
	t.Parallel()

	pod := &corev1.Pod{ObjectMeta: metav1.ObjectMeta{
		Name:      "static-blob-creator-abcde",
		Namespace: "default",
		Labels:    map[string]string{jobNameLabel: "static-blob-creator"},
	}}
	c := NewFromClients(fake.NewClientset(pod))

	// The fake clientset answers every log request with "fake logs".
	logs, err := c.JobLogs(context.Background(), "default", "static-blob-creator")
	require.NoError(t, err)
	assert.Equal(t, "fake logs", logs)
}

func TestJobLogs_NoPods(t *testing.T) {
	t.Parallel()
	c := NewFromClients(fake.NewClientset())
	_, err := c.JobLogs(context.Background(), "default", "static-blob-creator")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no pods")
}

func TestPodEvents(t *testing.T) {
	t.Parallel()

	now := time.Now()
	events := []*corev1.Event{
		{
			ObjectMeta:     metav1.ObjectMeta{Name: "e2", Namespace: "default"},
			InvolvedObject: corev1.ObjectReference{Kind: "Pod", Name: "reader"},
			Type:           corev1.EventTypeWarning,
			Reason:         "FailedMount",
			Message:        "mount failed",
			LastTimestamp:  metav1.NewTime(now),
		},
		{
			ObjectMeta:     metav1.ObjectMeta{Name: "e1", Namespace: "default"},
			InvolvedObject: corev1.ObjectReference{Kind: "Pod", Name: "reader"},
			Type:           corev1.EventTypeNormal,
			Reason:         "Scheduled",
			Message:        "assigned",
			LastTimestamp:  metav1.NewTime(now.Add(-time.Minute)),
		},
	}
	c := NewFromClients(fake.NewClientset(events[0], events[1]))

	got, err := c.PodEvents(context.Background(), "default", "reader")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Normal Scheduled: assigned",
		"Warning FailedMount: mount failed",
	}, got)
}
