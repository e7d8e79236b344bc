package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/aks-storage/internal/config"
)

func TestRun_Flags(t *testing.T) {
	cmd := Run()

	for _, key := range configKeys {
		assert.NotNil(t, cmd.Flags().Lookup(key), "missing flag %s", key)
	}
	for _, name := range []string{"interactive", "tui", "job-timeout-static", "job-timeout-dynamic", "no-verify-backing-store"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
	}
	assert.Equal(t, config.DefaultGroup, cmd.Flags().Lookup(config.KeyGroup).DefValue)
}

func TestNewViper_FlagOverridesEnvironment(t *testing.T) {
	t.Setenv("AKS_STORAGE_GROUP", "fromenv")
	t.Setenv("AKS_STORAGE_LOCATION", "westeurope")

	cmd := Run()
	require.NoError(t, cmd.ParseFlags([]string{"--group", "fromflag", "--storage", "Blob"}))

	v, err := newViper(cmd.Flags())
	require.NoError(t, err)

	assert.Equal(t, "fromflag", v.GetString(config.KeyGroup))
	assert.Equal(t, "westeurope", v.GetString(config.KeyLocation))
	assert.Equal(t, "Blob", v.GetString(config.KeyStorage))
}

func TestNewViper_Defaults(t *testing.T) {
	cmd := Run()
	require.NoError(t, cmd.ParseFlags(nil))

	v, err := newViper(cmd.Flags())
	require.NoError(t, err)

	assert.Equal(t, config.DefaultGroup, v.GetString(config.KeyGroup))
	assert.Equal(t, config.DefaultNodeCount, v.GetInt(config.KeyNodeCount))
	assert.Equal(t, config.DefaultStateFile, v.GetString(config.KeyStateFile))
	assert.True(t, v.GetBool(config.KeyVerifyBackingStore))
}

func TestNewViper_IgnoresFlagsWithoutKeys(t *testing.T) {
	cmd := Destroy()
	require.NoError(t, cmd.ParseFlags([]string{"--resource-group", "rg-1"}))

	v, err := newViper(cmd.Flags())
	require.NoError(t, err)
	assert.False(t, v.IsSet("resource-group"))
}
