package k8s

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"
)

// WriteKubeconfig writes kubeconfig data to path with 0600 permissions. An
// existing file at path is merged: clusters, users and contexts from data
// replace entries of the same name and its current context wins. It returns
// the current context name.
func WriteKubeconfig(path string, data []byte) (string, error) {
	incoming, err := clientcmd.Load(data)
	if err != nil {
		return "", fmt.Errorf("failed to parse kubeconfig: %w", err)
	}

	merged := incoming
	existing, err := clientcmd.LoadFromFile(path)
	switch {
	case err == nil:
		merged = mergeKubeconfig(existing, incoming)
	case errors.Is(err, fs.ErrNotExist):
	default:
		return "", fmt.Errorf("failed to read existing kubeconfig %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return "", fmt.Errorf("failed to create kubeconfig directory: %w", err)
		}
	}
	if err := clientcmd.WriteToFile(*merged, path); err != nil {
		return "", fmt.Errorf("failed to write kubeconfig %s: %w", path, err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return "", fmt.Errorf("failed to set kubeconfig permissions: %w", err)
	}
	return merged.CurrentContext, nil
}

func mergeKubeconfig(base, overlay *clientcmdapi.Config) *clientcmdapi.Config {
	out := base.DeepCopy()
	if out.Clusters == nil {
		out.Clusters = map[string]*clientcmdapi.Cluster{}
	}
	if out.AuthInfos == nil {
		out.AuthInfos = map[string]*clientcmdapi.AuthInfo{}
	}
	if out.Contexts == nil {
		out.Contexts = map[string]*clientcmdapi.Context{}
	}
	for name, c := range overlay.Clusters {
		out.Clusters[name] = c
	}
	for name, a := range overlay.AuthInfos {
		out.AuthInfos[name] = a
	}
	for name, c := range overlay.Contexts {
		out.Contexts[name] = c
	}
	if overlay.CurrentContext != "" {
		out.CurrentContext = overlay.CurrentContext
	}
	return out
}
