package azure

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/imamik/aks-storage/internal/config"
)

type testResource struct {
	Name  string
	Value string
}

// testClientMinimal creates a RealClient with test timeouts and no ARM clients.
// Use this for tests that only exercise the generic operations.
func testClientMinimal() *RealClient {
	return &RealClient{
		subscriptionID: "sub",
		timeouts:       config.TestTimeouts(),
		logger:         zap.NewNop(),
	}
}

// --- EnsureOperation ---

func TestEnsureOperation_Exists(t *testing.T) {
	t.Parallel()

	createCalled := false
	op := &EnsureOperation[*testResource, string]{
		Name:         "existing",
		ResourceType: "test resource",
		Get: func(_ context.Context) (*testResource, error) {
			return &testResource{Name: "existing"}, nil
		},
		Create: func(_ context.Context, _ string) (*testResource, error) {
			createCalled = true
			return nil, nil
		},
	}

	res, err := op.Execute(context.Background(), testClientMinimal())
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, "existing", res.Resource.Name)
	assert.False(t, createCalled)
}

func TestEnsureOperation_NotFoundCreates(t *testing.T) {
	t.Parallel()

	var gotOpts string
	op := &EnsureOperation[*testResource, string]{
		Name:         "new",
		ResourceType: "test resource",
		Get: func(_ context.Context) (*testResource, error) {
			return nil, respErr(http.StatusNotFound, "ResourceNotFound")
		},
		Create: func(_ context.Context, opts string) (*testResource, error) {
			gotOpts = opts
			return &testResource{Name: "new", Value: opts}, nil
		},
		CreateOptsMapper: func() string { return "centralus" },
	}

	res, err := op.Execute(context.Background(), testClientMinimal())
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "centralus", gotOpts)
	assert.Equal(t, "centralus", res.Resource.Value)
}

func TestEnsureOperation_GetErrorIsFatal(t *testing.T) {
	t.Parallel()

	createCalled := false
	op := &EnsureOperation[*testResource, string]{
		Name:         "broken",
		ResourceType: "test resource",
		Get: func(_ context.Context) (*testResource, error) {
			return nil, respErr(http.StatusForbidden, "AuthorizationFailed")
		},
		Create: func(_ context.Context, _ string) (*testResource, error) {
			createCalled = true
			return nil, nil
		},
	}

	_, err := op.Execute(context.Background(), testClientMinimal())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get test resource broken")
	assert.False(t, createCalled)
}

func TestEnsureOperation_ValidateFails(t *testing.T) {
	t.Parallel()

	op := &EnsureOperation[*testResource, string]{
		Name:         "existing",
		ResourceType: "test resource",
		Get: func(_ context.Context) (*testResource, error) {
			return &testResource{Value: "westeurope"}, nil
		},
		Validate: func(r *testResource) error {
			if r.Value != "centralus" {
				return errors.New("resource exists in a different location")
			}
			return nil
		},
	}

	_, err := op.Execute(context.Background(), testClientMinimal())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "different location")
}

func TestEnsureOperation_Update(t *testing.T) {
	t.Parallel()

	op := &EnsureOperation[*testResource, string]{
		Name:         "existing",
		ResourceType: "test resource",
		Get: func(_ context.Context) (*testResource, error) {
			return &testResource{Value: "old"}, nil
		},
		Update: func(_ context.Context, r *testResource) (*testResource, error) {
			return &testResource{Value: "new"}, nil
		},
	}

	res, err := op.Execute(context.Background(), testClientMinimal())
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, "new", res.Resource.Value)
}

func TestEnsureOperation_UpdateError(t *testing.T) {
	t.Parallel()

	op := &EnsureOperation[*testResource, string]{
		Name:         "existing",
		ResourceType: "test resource",
		Get: func(_ context.Context) (*testResource, error) {
			return &testResource{}, nil
		},
		Update: func(_ context.Context, _ *testResource) (*testResource, error) {
			return nil, respErr(http.StatusBadRequest, "InvalidParameter")
		},
	}

	_, err := op.Execute(context.Background(), testClientMinimal())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to update test resource existing")
}

func TestEnsureOperation_CreateRetriesTransientErrors(t *testing.T) {
	t.Parallel()

	attempts := 0
	op := &EnsureOperation[*testResource, string]{
		Name:         "flaky",
		ResourceType: "test resource",
		Get: func(_ context.Context) (*testResource, error) {
			return nil, respErr(http.StatusNotFound, "")
		},
		Create: func(_ context.Context, _ string) (*testResource, error) {
			attempts++
			if attempts == 1 {
				return nil, respErr(http.StatusServiceUnavailable, "")
			}
			return &testResource{Name: "flaky"}, nil
		},
	}

	res, err := op.Execute(context.Background(), testClientMinimal())
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, 2, attempts)
}

func TestEnsureOperation_CreateStopsOnPermanentError(t *testing.T) {
	t.Parallel()

	attempts := 0
	op := &EnsureOperation[*testResource, string]{
		Name:         "invalid",
		ResourceType: "test resource",
		Get: func(_ context.Context) (*testResource, error) {
			return nil, respErr(http.StatusNotFound, "")
		},
		Create: func(_ context.Context, _ string) (*testResource, error) {
			attempts++
			return nil, respErr(http.StatusBadRequest, "InvalidParameter")
		},
	}

	_, err := op.Execute(context.Background(), testClientMinimal())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create test resource invalid")
	assert.Equal(t, 1, attempts)
}

func TestEnsureOperation_CreateGivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	attempts := 0
	client := testClientMinimal()
	op := &EnsureOperation[*testResource, string]{
		Name:         "throttled",
		ResourceType: "test resource",
		Get: func(_ context.Context) (*testResource, error) {
			return nil, respErr(http.StatusNotFound, "")
		},
		Create: func(_ context.Context, _ string) (*testResource, error) {
			attempts++
			return nil, respErr(http.StatusTooManyRequests, "")
		},
	}

	_, err := op.Execute(context.Background(), client)
	require.Error(t, err)
	assert.Equal(t, client.timeouts.RetryMaxAttempts, attempts)
}

// --- DeleteOperation ---

func TestDeleteOperation_Success(t *testing.T) {
	t.Parallel()

	called := false
	op := &DeleteOperation{
		Name:         "rg",
		ResourceType: "resource group",
		Delete: func(_ context.Context) error {
			called = true
			return nil
		},
	}

	require.NoError(t, op.Execute(context.Background(), testClientMinimal()))
	assert.True(t, called)
}

func TestDeleteOperation_NotFoundIsSuccess(t *testing.T) {
	t.Parallel()

	op := &DeleteOperation{
		Name:         "rg",
		ResourceType: "resource group",
		Delete: func(_ context.Context) error {
			return respErr(http.StatusNotFound, "ResourceGroupNotFound")
		},
	}

	require.NoError(t, op.Execute(context.Background(), testClientMinimal()))
}

func TestDeleteOperation_RetriesThenFails(t *testing.T) {
	t.Parallel()

	attempts := 0
	op := &DeleteOperation{
		Name:         "rg",
		ResourceType: "resource group",
		Delete: func(_ context.Context) error {
			attempts++
			return respErr(http.StatusConflict, "AnotherOperationInProgress")
		},
	}

	err := op.Execute(context.Background(), testClientMinimal())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete resource group rg")
	assert.Equal(t, 2, attempts)
}

func TestRetryOptions_ZeroAttempts(t *testing.T) {
	t.Parallel()

	client := testClientMinimal()
	client.timeouts.RetryMaxAttempts = 0

	attempts := 0
	op := &DeleteOperation{
		Name:         "rg",
		ResourceType: "resource group",
		Delete: func(_ context.Context) error {
			attempts++
			return respErr(http.StatusServiceUnavailable, "")
		},
	}
	require.Error(t, op.Execute(context.Background(), client))
	assert.Equal(t, 1, attempts)
}
