package validation

import (
	"errors"
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"

	"github.com/imamik/aks-storage/internal/config"
	"github.com/imamik/aks-storage/internal/k8s"
	"github.com/imamik/aks-storage/internal/manifests"
	"github.com/imamik/aks-storage/internal/provisioning"
)

// checkWriter waits for the writer Job and checks its output for the
// marker. The Job's logs are returned even when the check fails.
func checkWriter(ctx *provisioning.Context, uc config.UseCase) (string, error) {
	ns := ctx.Config.Kubernetes.Namespace
	name := manifests.JobName(uc)
	timeout := ctx.Timeouts.JobTimeout(uc)

	ctx.Observer.Printf("[%s] Waiting up to %s for job %s", phase, timeout, name)
	state, err := ctx.State.Kube.WaitForJob(ctx, ns, name, timeout, ctx.Timeouts.PollInterval)
	if err != nil {
		return "", fmt.Errorf("writer job %s did not finish (last state %s): %w", name, state, err)
	}

	logs, logErr := ctx.State.Kube.JobLogs(ctx, ns, name)
	if state == k8s.JobFailed {
		return logs, fmt.Errorf("writer job %s failed%s", name, tail(logs))
	}
	if logErr != nil {
		return "", fmt.Errorf("failed to read logs of job %s: %w", name, logErr)
	}
	if !strings.Contains(logs, uc.Marker()) {
		return logs, fmt.Errorf("writer job %s output does not contain %q", name, uc.Marker())
	}
	return logs, nil
}

// checkReader waits for the reader Pod and checks that it read the marker
// back through its own mount.
func checkReader(ctx *provisioning.Context, uc config.UseCase) error {
	ns := ctx.Config.Kubernetes.Namespace
	name := manifests.PodName(uc)

	podPhase, err := ctx.State.Kube.WaitForPod(ctx, ns, name, ctx.Timeouts.JobTimeout(uc), ctx.Timeouts.PollInterval)
	if err != nil || podPhase != corev1.PodSucceeded {
		msg := fmt.Sprintf("reader pod %s ended in phase %s", name, podPhase)
		if err != nil {
			msg = err.Error()
		}
		if events, evErr := ctx.State.Kube.PodEvents(ctx, ns, name); evErr == nil && len(events) > 0 {
			msg += "; events: " + strings.Join(events, "; ")
		}
		return errors.New(msg)
	}

	logs, err := ctx.State.Kube.PodLogs(ctx, ns, name)
	if err != nil {
		return fmt.Errorf("failed to read logs of pod %s: %w", name, err)
	}
	if !strings.Contains(logs, uc.Marker()) {
		return fmt.Errorf("reader pod %s did not read back %q", name, uc.Marker())
	}
	return nil
}

// checkBackingStore confirms that the file written through a static blob
// volume landed in the container.
func checkBackingStore(ctx *provisioning.Context, uc config.UseCase) error {
	account := ctx.State.StorageAccount
	if !ctx.Config.Validation.VerifyBackingStore || !uc.KeylessCandidate() || account == nil {
		return nil
	}

	container := ctx.Config.Kubernetes.ContainerName
	exists, err := ctx.Azure.BlobExists(ctx, account.BlobEndpoint, container, config.TestFileName)
	if err != nil {
		return fmt.Errorf("failed to check blob %s/%s: %w", container, config.TestFileName, err)
	}
	if !exists {
		return fmt.Errorf("blob %s not found in container %s of %s", config.TestFileName, container, account.Name)
	}
	ctx.Observer.Printf("[%s] Blob %s/%s present in %s", phase, container, config.TestFileName, account.Name)
	return nil
}

// tail formats the last lines of logs for an error message.
func tail(logs string) string {
	logs = strings.TrimSpace(logs)
	if logs == "" {
		return ""
	}
	lines := strings.Split(logs, "\n")
	if len(lines) > 5 {
		lines = lines[len(lines)-5:]
	}
	return ": " + strings.Join(lines, " | ")
}
