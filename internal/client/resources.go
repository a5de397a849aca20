package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/hapio-client/internal/http"
	"github.com/fivetwenty-io/hapio-client/pkg/hapio"
)

const resourcesPath = "resources"

// ResourcesClient implements hapio.ResourcesRepository.
type ResourcesClient struct {
	*crudRepository[*hapio.Resource]
}

// NewResourcesClient creates a new resources client.
func NewResourcesClient(httpClient *http.Client) *ResourcesClient {
	return &ResourcesClient{
		crudRepository: newCrudRepository(httpClient, resourcesPath, "resource", hapio.NewResource),
	}
}

// ListSchedule implements hapio.ResourcesRepository.ListSchedule.
func (c *ResourcesClient) ListSchedule(ctx context.Context, resourceID string, params hapio.QueryParams) (*hapio.PaginatedResponse[*hapio.TimeSpan], error) {
	again := func(ctx context.Context, params hapio.QueryParams) (*hapio.PaginatedResponse[*hapio.TimeSpan], error) {
		return c.ListSchedule(ctx, resourceID, params)
	}

	path := joinPath(resourcesPath, resourceID) + "/schedule"

	page, err := listEntities(ctx, c.httpClient, path, params, hapio.NewTimeSpan, again)
	if err != nil {
		return nil, fmt.Errorf("listing resource schedule: %w", err)
	}

	return page, nil
}

// ListFullyBooked implements hapio.ResourcesRepository.ListFullyBooked.
func (c *ResourcesClient) ListFullyBooked(ctx context.Context, resourceID string, params hapio.QueryParams) (*hapio.PaginatedResponse[*hapio.TimeSpan], error) {
	again := func(ctx context.Context, params hapio.QueryParams) (*hapio.PaginatedResponse[*hapio.TimeSpan], error) {
		return c.ListFullyBooked(ctx, resourceID, params)
	}

	path := joinPath(resourcesPath, resourceID) + "/fully-booked"

	page, err := listEntities(ctx, c.httpClient, path, params, hapio.NewTimeSpan, again)
	if err != nil {
		return nil, fmt.Errorf("listing fully booked spans: %w", err)
	}

	return page, nil
}

// ListAssociatedServices implements hapio.ResourcesRepository.ListAssociatedServices.
func (c *ResourcesClient) ListAssociatedServices(ctx context.Context, resourceID string) ([]*hapio.ResourceServiceAssociation, error) {
	associations, err := listBare(ctx, c.httpClient, joinPath(resourcesPath, resourceID)+"/services", hapio.NewResourceServiceAssociation)
	if err != nil {
		return nil, fmt.Errorf("listing associated services: %w", err)
	}

	return associations, nil
}

// GetAssociatedService implements hapio.ResourcesRepository.GetAssociatedService.
func (c *ResourcesClient) GetAssociatedService(ctx context.Context, resourceID, serviceID string) (*hapio.ResourceServiceAssociation, error) {
	association, err := getEntity(ctx, c.httpClient, joinPath(resourcesPath, resourceID, "services", serviceID), hapio.NewResourceServiceAssociation)
	if err != nil {
		return nil, fmt.Errorf("getting associated service: %w", err)
	}

	return association, nil
}

// AssociateService implements hapio.ResourcesRepository.AssociateService.
func (c *ResourcesClient) AssociateService(ctx context.Context, resourceID, serviceID string) (*hapio.ResourceServiceAssociation, error) {
	association, err := putBare(ctx, c.httpClient, joinPath(resourcesPath, resourceID, "services", serviceID), hapio.NewResourceServiceAssociation)
	if err != nil {
		return nil, fmt.Errorf("associating service: %w", err)
	}

	return association, nil
}

// DissociateService implements hapio.ResourcesRepository.DissociateService.
func (c *ResourcesClient) DissociateService(ctx context.Context, resourceID, serviceID string) (bool, error) {
	dissociated, err := deleteEntity(ctx, c.httpClient, joinPath(resourcesPath, resourceID, "services", serviceID))
	if err != nil {
		return false, fmt.Errorf("dissociating service: %w", err)
	}

	return dissociated, nil
}
