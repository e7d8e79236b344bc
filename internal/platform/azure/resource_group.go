package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"

	"github.com/imamik/aks-storage/internal/util/ptr"
)

// EnsureResourceGroup gets or creates a resource group. Tags are only
// applied on creation.
func (c *RealClient) EnsureResourceGroup(ctx context.Context, name, location string, tags map[string]string) (*ResourceGroup, error) {
	res, err := (&EnsureOperation[armresources.ResourceGroup, armresources.ResourceGroup]{
		Name:         name,
		ResourceType: "resource group",
		Get: func(ctx context.Context) (armresources.ResourceGroup, error) {
			resp, err := c.resourceGroups.Get(ctx, name, nil)
			return resp.ResourceGroup, err
		},
		Create: func(ctx context.Context, params armresources.ResourceGroup) (armresources.ResourceGroup, error) {
			resp, err := c.resourceGroups.CreateOrUpdate(ctx, name, params, nil)
			return resp.ResourceGroup, err
		},
		CreateOptsMapper: func() armresources.ResourceGroup {
			return armresources.ResourceGroup{
				Location: ptr.To(location),
				Tags:     ptr.StringMap(tags),
			}
		},
	}).Execute(ctx, c)
	if err != nil {
		return nil, err
	}

	rg := res.Resource
	return &ResourceGroup{
		ID:       ptr.Deref(rg.ID, ResourceGroupID(c.subscriptionID, name)),
		Name:     ptr.Deref(rg.Name, name),
		Location: ptr.Deref(rg.Location, location),
		Created:  res.Created,
	}, nil
}

// ResourceGroupExists reports whether a resource group exists.
func (c *RealClient) ResourceGroupExists(ctx context.Context, name string) (bool, error) {
	resp, err := c.resourceGroups.CheckExistence(ctx, name, nil)
	if err != nil {
		return false, err
	}
	return resp.Success, nil
}

// DeleteResourceGroup deletes a resource group and everything in it.
func (c *RealClient) DeleteResourceGroup(ctx context.Context, name string) error {
	return (&DeleteOperation{
		Name:         name,
		ResourceType: "resource group",
		Delete: func(ctx context.Context) error {
			poller, err := c.resourceGroups.BeginDelete(ctx, name, nil)
			if err != nil {
				return err
			}
			_, err = poller.PollUntilDone(ctx, nil)
			return err
		},
	}).Execute(ctx, c)
}
