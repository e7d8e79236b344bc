package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	cmd := Version()

	require.NotNil(t, cmd)
	assert.Equal(t, "version", cmd.Use)
	assert.Equal(t, "Print version information", cmd.Short)
}

func TestVersion_Output(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	defer func() {
		version, commit, date = origVersion, origCommit, origDate
	}()

	SetVersionInfo("1.2.3", "abc123", "2026-01-01")

	cmd := Version()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	assert.Contains(t, out.String(), "aks-storage 1.2.3")
	assert.Contains(t, out.String(), "commit: abc123")
	assert.Contains(t, out.String(), "built:  2026-01-01")
}
