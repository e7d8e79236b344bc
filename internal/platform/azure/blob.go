package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/imamik/aks-storage/internal/util/retry"
)

// BlobExists checks that a blob is present in a container. The caller's
// credential needs a data plane role such as Storage Blob Data Reader.
func (c *RealClient) BlobExists(ctx context.Context, blobEndpoint, container, blob string) (bool, error) {
	client, err := azblob.NewClient(blobEndpoint, c.credential, c.blobOptions)
	if err != nil {
		return false, fmt.Errorf("failed to create blob client for %s: %w", blobEndpoint, err)
	}
	blobClient := client.ServiceClient().NewContainerClient(container).NewBlobClient(blob)

	exists := false
	err = retry.WithExponentialBackoff(ctx, func() error {
		_, err := blobClient.GetProperties(ctx, nil)
		switch {
		case err == nil:
			exists = true
			return nil
		case bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound):
			exists = false
			return nil
		default:
			return err
		}
	}, c.retryOptions("blob", container+"/"+blob)...)
	if err != nil {
		return false, fmt.Errorf("failed to check blob %s/%s: %w", container, blob, err)
	}
	return exists, nil
}
