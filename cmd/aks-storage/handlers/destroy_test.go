package handlers

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/imamik/aks-storage/internal/config"
	"github.com/imamik/aks-storage/internal/logging"
	"github.com/imamik/aks-storage/internal/platform/azure"
	"github.com/imamik/aks-storage/internal/provisioning"
)

type destroyMock struct {
	group string
	err   error
}

func (m *destroyMock) Name() string { return "destroy" }

func (m *destroyMock) Provision(ctx *provisioning.Context) error {
	m.group = ctx.State.Run.ResourceGroup
	return m.err
}

func stubDestroy(t *testing.T, mock *destroyMock) *string {
	t.Helper()
	origAzure := newAzureClient
	origDestroy := newDestroyProvisioner
	origLogger := newLogger
	t.Cleanup(func() {
		newAzureClient = origAzure
		newDestroyProvisioner = origDestroy
		newLogger = origLogger
	})

	var subscription string
	newAzureClient = func(_ context.Context, sub string, _ *config.Timeouts, _ *zap.Logger) (azure.Client, error) {
		subscription = sub
		return &azure.MockClient{Subscription: sub}, nil
	}
	newDestroyProvisioner = func() Provisioner { return mock }
	newLogger = func(logging.Options) (*zap.Logger, error) { return zap.NewNop(), nil }
	return &subscription
}

func writeState(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.yaml")
	cfg := config.Default()
	cfg.ID = "abc123"
	require.NoError(t, config.SaveState(path, config.NewRunState(cfg, "sub-1")))
	return path
}

func TestDestroy_FromStateFile(t *testing.T) {
	mock := &destroyMock{}
	sub := stubDestroy(t, mock)
	path := writeState(t)

	require.NoError(t, Destroy(context.Background(), DestroyOptions{StateFile: path}))

	assert.Equal(t, "aks-storage-poc-abc123-rg", mock.group)
	assert.Equal(t, "sub-1", *sub)
	assert.NoFileExists(t, path)
}

func TestDestroy_SubscriptionOverride(t *testing.T) {
	mock := &destroyMock{}
	sub := stubDestroy(t, mock)

	require.NoError(t, Destroy(context.Background(), DestroyOptions{StateFile: writeState(t), Subscription: "sub-2"}))
	assert.Equal(t, "sub-2", *sub)
}

func TestDestroy_ResourceGroupFlag(t *testing.T) {
	mock := &destroyMock{}
	stubDestroy(t, mock)
	path := writeState(t)

	require.NoError(t, Destroy(context.Background(), DestroyOptions{StateFile: path, ResourceGroup: "other-rg"}))

	assert.Equal(t, "other-rg", mock.group)
	assert.FileExists(t, path, "state file belongs to another run")
}

func TestDestroy_Failure(t *testing.T) {
	mock := &destroyMock{err: errors.New("delete timed out")}
	stubDestroy(t, mock)
	path := writeState(t)

	err := Destroy(context.Background(), DestroyOptions{StateFile: path})
	require.Error(t, err)
	assert.FileExists(t, path)
}

func TestDestroy_MissingStateFile(t *testing.T) {
	stubDestroy(t, &destroyMock{})

	err := Destroy(context.Background(), DestroyOptions{StateFile: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDestroy_NothingToDestroy(t *testing.T) {
	stubDestroy(t, &destroyMock{})

	err := Destroy(context.Background(), DestroyOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to destroy")
}
