package k8s

import (
	"context"
	"fmt"
	"time"

	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/wait"
)

// JobState is the terminal classification of a Job.
type JobState string

// Job states.
const (
	JobRunning  JobState = "Running"
	JobComplete JobState = "Complete"
	JobFailed   JobState = "Failed"
)

// ClassifyJob maps a Job's status onto a JobState.
func ClassifyJob(job *batchv1.Job) JobState {
	for _, cond := range job.Status.Conditions {
		if cond.Status != corev1.ConditionTrue {
			continue
		}
		switch cond.Type {
		case batchv1.JobComplete, batchv1.JobSuccessCriteriaMet:
			return JobComplete
		case batchv1.JobFailed, batchv1.JobFailureTarget:
			return JobFailed
		}
	}
	if job.Status.Succeeded > 0 {
		return JobComplete
	}
	backoffLimit := int32(6)
	if job.Spec.BackoffLimit != nil {
		backoffLimit = *job.Spec.BackoffLimit
	}
	if job.Status.Failed > backoffLimit {
		return JobFailed
	}
	return JobRunning
}

// WaitForJob polls a Job until it completes or fails. A Job that is not
// found yet and transient API errors are polled again; any other lookup
// error ends the wait. On timeout the last observed state is returned with
// the error.
func (c *client) WaitForJob(ctx context.Context, namespace, name string, timeout, interval time.Duration) (JobState, error) {
	state := JobRunning
	err := wait.PollUntilContextTimeout(ctx, interval, timeout, true, func(ctx context.Context) (bool, error) {
		job, err := c.clientset.BatchV1().Jobs(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return false, pollError(err)
		}
		state = ClassifyJob(job)
		return state != JobRunning, nil
	})
	if err != nil {
		return state, waitError(err, "job", namespace, name, timeout)
	}
	return state, nil
}

// WaitForPod polls a Pod until it reaches the Succeeded or Failed phase.
func (c *client) WaitForPod(ctx context.Context, namespace, name string, timeout, interval time.Duration) (corev1.PodPhase, error) {
	phase := corev1.PodPending
	err := wait.PollUntilContextTimeout(ctx, interval, timeout, true, func(ctx context.Context) (bool, error) {
		pod, err := c.clientset.CoreV1().Pods(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return false, pollError(err)
		}
		phase = pod.Status.Phase
		return phase == corev1.PodSucceeded || phase == corev1.PodFailed, nil
	})
	if err != nil {
		return phase, waitError(err, "pod", namespace, name, timeout)
	}
	return phase, nil
}

// pollError returns nil for lookup errors worth polling through.
func pollError(err error) error {
	switch {
	case apierrors.IsNotFound(err),
		apierrors.IsTimeout(err),
		apierrors.IsServerTimeout(err),
		apierrors.IsTooManyRequests(err),
		apierrors.IsServiceUnavailable(err),
		apierrors.IsInternalError(err):
		return nil
	}
	return err
}

func waitError(err error, kind, namespace, name string, timeout time.Duration) error {
	if wait.Interrupted(err) {
		return fmt.Errorf("timed out after %s waiting for %s %s/%s: %w", timeout, kind, namespace, name, err)
	}
	return fmt.Errorf("failed to get %s %s/%s: %w", kind, namespace, name, err)
}
