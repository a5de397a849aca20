package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/hapio-client/internal/http"
	"github.com/fivetwenty-io/hapio-client/pkg/hapio"
)

const servicesPath = "services"

// ServicesClient implements hapio.ServicesRepository.
type ServicesClient struct {
	*crudRepository[*hapio.Service]
}

// NewServicesClient creates a new services client.
func NewServicesClient(httpClient *http.Client) *ServicesClient {
	return &ServicesClient{
		crudRepository: newCrudRepository(httpClient, servicesPath, "service", hapio.NewService),
	}
}

// ListBookableSlots implements hapio.ServicesRepository.ListBookableSlots.
// The API requires "from" and "to" parameters.
func (c *ServicesClient) ListBookableSlots(ctx context.Context, serviceID string, params hapio.QueryParams) (*hapio.PaginatedResponse[*hapio.BookableSlot], error) {
	again := func(ctx context.Context, params hapio.QueryParams) (*hapio.PaginatedResponse[*hapio.BookableSlot], error) {
		return c.ListBookableSlots(ctx, serviceID, params)
	}

	path := joinPath(servicesPath, serviceID) + "/bookable-slots"

	page, err := listEntities(ctx, c.httpClient, path, params, hapio.NewBookableSlot, again)
	if err != nil {
		return nil, fmt.Errorf("listing bookable slots: %w", err)
	}

	return page, nil
}

// ListAssociatedResources implements hapio.ServicesRepository.ListAssociatedResources.
func (c *ServicesClient) ListAssociatedResources(ctx context.Context, serviceID string) ([]*hapio.ResourceServiceAssociation, error) {
	associations, err := listBare(ctx, c.httpClient, joinPath(servicesPath, serviceID)+"/resources", hapio.NewResourceServiceAssociation)
	if err != nil {
		return nil, fmt.Errorf("listing associated resources: %w", err)
	}

	return associations, nil
}

// GetAssociatedResource implements hapio.ServicesRepository.GetAssociatedResource.
func (c *ServicesClient) GetAssociatedResource(ctx context.Context, serviceID, resourceID string) (*hapio.ResourceServiceAssociation, error) {
	association, err := getEntity(ctx, c.httpClient, joinPath(servicesPath, serviceID, "resources", resourceID), hapio.NewResourceServiceAssociation)
	if err != nil {
		return nil, fmt.Errorf("getting associated resource: %w", err)
	}

	return association, nil
}

// AssociateResource implements hapio.ServicesRepository.AssociateResource.
func (c *ServicesClient) AssociateResource(ctx context.Context, serviceID, resourceID string) (*hapio.ResourceServiceAssociation, error) {
	association, err := putBare(ctx, c.httpClient, joinPath(servicesPath, serviceID, "resources", resourceID), hapio.NewResourceServiceAssociation)
	if err != nil {
		return nil, fmt.Errorf("associating resource: %w", err)
	}

	return association, nil
}

// DissociateResource implements hapio.ServicesRepository.DissociateResource.
func (c *ServicesClient) DissociateResource(ctx context.Context, serviceID, resourceID string) (bool, error) {
	dissociated, err := deleteEntity(ctx, c.httpClient, joinPath(servicesPath, serviceID, "resources", resourceID))
	if err != nil {
		return false, fmt.Errorf("dissociating resource: %w", err)
	}

	return dissociated, nil
}
