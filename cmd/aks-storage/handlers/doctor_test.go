package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/imamik/aks-storage/internal/config"
	"github.com/imamik/aks-storage/internal/logging"
	"github.com/imamik/aks-storage/internal/platform/azure"
	"github.com/imamik/aks-storage/internal/util/prerequisites"
)

func stubDoctor(t *testing.T, client azure.Client, clientErr error) {
	t.Helper()
	origAzure := newAzureClient
	origLogger := newLogger
	origTools := checkTools
	t.Cleanup(func() {
		newAzureClient = origAzure
		newLogger = origLogger
		checkTools = origTools
	})

	newAzureClient = func(context.Context, string, *config.Timeouts, *zap.Logger) (azure.Client, error) {
		return client, clientErr
	}
	newLogger = func(logging.Options) (*zap.Logger, error) { return zap.NewNop(), nil }
	checkTools = func(_ context.Context, tools []prerequisites.Tool) *prerequisites.CheckResults {
		r := &prerequisites.CheckResults{}
		for i, tool := range tools {
			found := i == 0
			r.Results = append(r.Results, prerequisites.CheckResult{Tool: tool, Found: found, Version: "2.70.0"})
			if !found {
				r.Missing = append(r.Missing, tool)
			}
		}
		return r
	}
}

func TestDoctor_Healthy(t *testing.T) {
	stubDoctor(t, &azure.MockClient{Subscription: "sub-1"}, nil)
	out := stubStdout(t)

	require.NoError(t, Doctor(context.Background(), config.NewViper(), GlobalOptions{}, false))

	assert.Contains(t, out.String(), "aks-storage doctor")
	assert.Contains(t, out.String(), "sub-1")
	assert.Contains(t, out.String(), "Blob Storage with Static Provisioning")
	assert.Contains(t, out.String(), "not found")
}

func TestDoctor_JSON(t *testing.T) {
	stubDoctor(t, &azure.MockClient{Subscription: "sub-1"}, nil)
	out := stubStdout(t)
	v := config.NewViper()
	v.Set(config.KeyID, "abc123")

	require.NoError(t, Doctor(context.Background(), v, GlobalOptions{}, true))

	var status DoctorStatus
	require.NoError(t, json.Unmarshal(out.Bytes(), &status))
	assert.True(t, status.Healthy())
	assert.Equal(t, "sub-1", status.Subscription.Message)
	require.NotNil(t, status.Names)
	assert.Equal(t, "aks-storage-poc-abc123-rg", status.Names.ResourceGroup)
	assert.Len(t, status.Tools, len(prerequisites.OptionalTools()))
}

func TestDoctor_CredentialFailure(t *testing.T) {
	client := &azure.MockClient{CheckAccessFunc: func(context.Context) error {
		return errors.New("DefaultAzureCredential: failed to acquire a token")
	}}
	stubDoctor(t, client, nil)
	stubStdout(t)

	err := Doctor(context.Background(), config.NewViper(), GlobalOptions{}, false)
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
}

func TestDoctor_SubscriptionFailure(t *testing.T) {
	stubDoctor(t, nil, errors.New("multiple Azure subscriptions available"))
	stubStdout(t)

	status := diagnose(context.Background(), config.NewViper(), GlobalOptions{})
	assert.True(t, status.Config.OK)
	assert.False(t, status.Credentials.OK)
	assert.Contains(t, status.Credentials.Message, "multiple Azure subscriptions")
	assert.False(t, status.Healthy())
}

func TestDoctor_InvalidConfig(t *testing.T) {
	stubDoctor(t, &azure.MockClient{}, nil)
	v := config.NewViper()
	v.Set(config.KeyDisableSharedKey, true)
	v.Set(config.KeyStorage, "File")

	status := diagnose(context.Background(), v, GlobalOptions{})
	assert.False(t, status.Config.OK)
	assert.Contains(t, status.Config.Message, "--disable-shared-key")
	assert.NotEmpty(t, status.Tools)
}
