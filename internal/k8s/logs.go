package k8s

import (
	"context"
	"fmt"
	"sort"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/fields"
)

// jobNameLabel is set by the Job controller on every pod it creates.
const jobNameLabel = "job-name"

// logTailLines bounds how much of a pod's log is fetched.
const logTailLines int64 = 200

// JobLogs returns the logs of the most recent pod created by a Job.
func (c *client) JobLogs(ctx context.Context, namespace, job string) (string, error) {
	pods, err := c.clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: fmt.Sprintf("%s=%s", jobNameLabel, job),
	})
	if err != nil {
		return "", fmt.Errorf("failed to list pods of job %s/%s: %w", namespace, job, err)
	}
	if len(pods.Items) == 0 {
		return "", fmt.Errorf("job %s/%s has no pods", namespace, job)
	}

	items := pods.Items
	sort.Slice(items, func(i, j int) bool {
		return items[j].CreationTimestamp.Before(&items[i].CreationTimestamp)
	})
	return c.PodLogs(ctx, namespace, items[0].Name)
}

// PodLogs returns the logs of a pod.
func (c *client) PodLogs(ctx context.Context, namespace, name string) (string, error) {
	tail := logTailLines
	req := c.clientset.CoreV1().Pods(namespace).GetLogs(name, &corev1.PodLogOptions{TailLines: &tail})
	logs, err := req.DoRaw(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get logs of pod %s/%s: %w", namespace, name, err)
	}
	return string(logs), nil
}

// PodEvents returns recent event messages for a pod, oldest first. They
// explain mount failures that never reach the container log.
func (c *client) PodEvents(ctx context.Context, namespace, name string) ([]string, error) {
	events, err := c.clientset.CoreV1().Events(namespace).List(ctx, metav1.ListOptions{
		FieldSelector: fields.AndSelectors(
			fields.OneTermEqualSelector("involvedObject.kind", "Pod"),
			fields.OneTermEqualSelector("involvedObject.name", name),
		).String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list events of pod %s/%s: %w", namespace, name, err)
	}

	items := events.Items
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].LastTimestamp.Before(&items[j].LastTimestamp)
	})
	out := make([]string, 0, len(items))
	for _, e := range items {
		out = append(out, fmt.Sprintf("%s %s: %s", e.Type, e.Reason, e.Message))
	}
	return out, nil
}
