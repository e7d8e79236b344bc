package azure

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/imamik/aks-storage/internal/util/retry"
)

// EnsureResult wraps the outcome of an EnsureOperation.
type EnsureResult[T any] struct {
	Resource T
	Created  bool
}

// EnsureOperation encapsulates get-or-create logic for any ARM resource.
// Get returning a 404 triggers Create; any other Get error is fatal.
//
// Usage example:
//
//	res, err := (&EnsureOperation[armmsi.Identity, armmsi.Identity]{
//	    Name:         name,
//	    ResourceType: "managed identity",
//	    Get: func(ctx context.Context) (armmsi.Identity, error) {
//	        resp, err := c.identities.Get(ctx, rg, name, nil)
//	        return resp.Identity, err
//	    },
//	    Create: func(ctx context.Context, params armmsi.Identity) (armmsi.Identity, error) {
//	        resp, err := c.identities.CreateOrUpdate(ctx, rg, name, params, nil)
//	        return resp.Identity, err
//	    },
//	    CreateOptsMapper: func() armmsi.Identity {
//	        return armmsi.Identity{Location: ptr.To(location)}
//	    },
//	}).Execute(ctx, c)
type EnsureOperation[T any, CreateOpts any] struct {
	Name         string
	ResourceType string

	// Timeout bounds the whole operation. Zero means Timeouts.ResourceCreate.
	Timeout time.Duration

	// Get retrieves the resource. A 404 error means it does not exist.
	Get func(ctx context.Context) (T, error)

	// Create creates the resource with the given options and waits for it.
	Create func(ctx context.Context, opts CreateOpts) (T, error)

	// Validate checks if an existing resource matches desired state (optional).
	Validate func(resource T) error

	// Update reconciles an existing resource (optional). It returns the
	// resource unchanged when nothing differs.
	Update func(ctx context.Context, resource T) (T, error)

	// CreateOptsMapper builds the create parameters.
	CreateOptsMapper func() CreateOpts
}

// Execute performs the ensure operation: get the existing resource,
// validate and update it if needed, or create it. Creation is retried on
// transient errors.
func (op *EnsureOperation[T, CreateOpts]) Execute(ctx context.Context, client *RealClient) (EnsureResult[T], error) {
	var zero EnsureResult[T]

	timeout := op.Timeout
	if timeout == 0 {
		timeout = client.timeouts.ResourceCreate
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resource, err := op.Get(ctx)
	if err == nil {
		if op.Validate != nil {
			if err := op.Validate(resource); err != nil {
				return zero, err
			}
		}
		if op.Update != nil {
			resource, err = op.Update(ctx, resource)
			if err != nil {
				return zero, fmt.Errorf("failed to update %s %s: %w", op.ResourceType, op.Name, err)
			}
		}
		return EnsureResult[T]{Resource: resource}, nil
	}
	if !IsNotFound(err) {
		return zero, fmt.Errorf("failed to get %s %s: %w", op.ResourceType, op.Name, err)
	}

	var opts CreateOpts
	if op.CreateOptsMapper != nil {
		opts = op.CreateOptsMapper()
	}

	var created T
	err = retry.WithExponentialBackoff(ctx, func() error {
		res, err := op.Create(ctx, opts)
		if err != nil {
			return err
		}
		created = res
		return nil
	}, client.retryOptions(op.ResourceType, op.Name)...)
	if err != nil {
		return zero, fmt.Errorf("failed to create %s %s: %w", op.ResourceType, op.Name, err)
	}

	return EnsureResult[T]{Resource: created, Created: true}, nil
}

// DeleteOperation encapsulates deletion logic for any ARM resource.
// The operation is idempotent: a 404 from Delete counts as success.
type DeleteOperation struct {
	Name         string
	ResourceType string

	// Delete starts the deletion and waits for it to finish.
	Delete func(ctx context.Context) error
}

// Execute performs the delete operation with retry logic and timeout handling.
func (op *DeleteOperation) Execute(ctx context.Context, client *RealClient) error {
	ctx, cancel := context.WithTimeout(ctx, client.timeouts.Delete)
	defer cancel()

	err := retry.WithExponentialBackoff(ctx, func() error {
		err := op.Delete(ctx)
		if IsNotFound(err) {
			return nil
		}
		return err
	}, client.retryOptions(op.ResourceType, op.Name)...)
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", op.ResourceType, op.Name, err)
	}
	return nil
}

// retryOptions returns the backoff settings shared by every operation.
// RetryMaxAttempts counts the first attempt.
func (c *RealClient) retryOptions(resourceType, name string) []retry.Option {
	retries := c.timeouts.RetryMaxAttempts - 1
	if retries < 0 {
		retries = 0
	}
	return []retry.Option{
		retry.WithMaxRetries(retries),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay),
		retry.WithRetryable(IsRetryable),
		retry.WithOnRetry(func(attempt int, delay time.Duration, err error) {
			c.logger.Warn("retrying Azure operation",
				zap.String("resource_type", resourceType),
				zap.String("name", name),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(err))
		}),
	}
}
