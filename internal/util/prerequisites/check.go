// Package prerequisites reports which helper CLIs are available locally.
//
// Provisioning talks to Azure and Kubernetes through their Go SDKs, so no
// tool is strictly required. The doctor command still lists the CLIs that
// are handy for inspecting a run by hand.
package prerequisites

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string

	// VersionArgs are passed to the binary to print its version.
	VersionArgs []string
}

// lookPath and versionOf are replaced in tests.
var (
	lookPath  = exec.LookPath
	versionOf = toolVersion
)

// OptionalTools returns the CLIs that help inspecting a run.
func OptionalTools() []Tool {
	return []Tool{
		{
			Name:        "az",
			Description: "Inspect the resource group, identity and role assignments",
			InstallURL:  "https://learn.microsoft.com/cli/azure/install-azure-cli",
			VersionArgs: []string{"version", "--output", "tsv"},
		},
		{
			Name:        "kubectl",
			Description: "Inspect the storage classes, volumes and test jobs",
			InstallURL:  "https://kubernetes.io/docs/tasks/tools/",
			VersionArgs: []string{"version", "--client"},
		},
		{
			Name:        "kubelogin",
			Description: "Needed only when the cluster uses Entra ID integrated kubeconfigs",
			InstallURL:  "https://azure.github.io/kubelogin/install.html",
			VersionArgs: []string{"--version"},
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available.
func Check(ctx context.Context, tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := lookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			result.Version = versionOf(ctx, path, tool.VersionArgs)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// toolVersion returns the first output line of the version command, or ""
// when it cannot be determined within a few seconds.
func toolVersion(ctx context.Context, path string, args []string) string {
	if len(args) == 0 {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// #nosec G204 - path and args come from the fixed tool list
	output, err := exec.CommandContext(ctx, path, args...).Output()
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(output), "\n")
	return strings.TrimSpace(line)
}
