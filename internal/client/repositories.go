package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/hapio-client/internal/http"
	"github.com/fivetwenty-io/hapio-client/pkg/hapio"
)

// ProjectClient implements hapio.ProjectRepository.
type ProjectClient struct {
	httpClient *http.Client
}

// NewProjectClient creates a new project client.
func NewProjectClient(httpClient *http.Client) *ProjectClient {
	return &ProjectClient{httpClient: httpClient}
}

// GetCurrentProject implements hapio.ProjectRepository.GetCurrentProject.
func (c *ProjectClient) GetCurrentProject(ctx context.Context) (*hapio.Project, error) {
	project, err := getEntity(ctx, c.httpClient, "project", hapio.NewProject)
	if err != nil {
		return nil, fmt.Errorf("getting current project: %w", err)
	}

	return project, nil
}

// LocationsClient implements hapio.LocationsRepository.
type LocationsClient struct {
	*crudRepository[*hapio.Location]
}

// NewLocationsClient creates a new locations client.
func NewLocationsClient(httpClient *http.Client) *LocationsClient {
	return &LocationsClient{
		crudRepository: newCrudRepository(httpClient, "locations", "location", hapio.NewLocation),
	}
}

// BookingsClient implements hapio.BookingsRepository.
type BookingsClient struct {
	*crudRepository[*hapio.Booking]
}

// NewBookingsClient creates a new bookings client.
func NewBookingsClient(httpClient *http.Client) *BookingsClient {
	return &BookingsClient{
		crudRepository: newCrudRepository(httpClient, "bookings", "booking", hapio.NewBooking),
	}
}

// BookingGroupsClient implements hapio.BookingGroupsRepository.
type BookingGroupsClient struct {
	*crudRepository[*hapio.BookingGroup]
}

// NewBookingGroupsClient creates a new booking groups client.
func NewBookingGroupsClient(httpClient *http.Client) *BookingGroupsClient {
	return &BookingGroupsClient{
		crudRepository: newCrudRepository(httpClient, "booking-groups", "booking group", hapio.NewBookingGroup),
	}
}

// ScheduleBlocksClient implements hapio.ScheduleBlocksRepository.
// Parents: resource id.
type ScheduleBlocksClient struct {
	*nestedCrudRepository[*hapio.ScheduleBlock]
}

// NewScheduleBlocksClient creates a new schedule blocks client.
func NewScheduleBlocksClient(httpClient *http.Client) *ScheduleBlocksClient {
	return &ScheduleBlocksClient{
		nestedCrudRepository: newNestedCrudRepository(
			httpClient, "resources/%s/schedule-blocks", 1, "schedule block", hapio.NewScheduleBlock,
		),
	}
}

// RecurringSchedulesClient implements hapio.RecurringSchedulesRepository.
// Parents: resource id.
type RecurringSchedulesClient struct {
	*nestedCrudRepository[*hapio.RecurringSchedule]
}

// NewRecurringSchedulesClient creates a new recurring schedules client.
func NewRecurringSchedulesClient(httpClient *http.Client) *RecurringSchedulesClient {
	return &RecurringSchedulesClient{
		nestedCrudRepository: newNestedCrudRepository(
			httpClient, "resources/%s/recurring-schedules", 1, "recurring schedule", hapio.NewRecurringSchedule,
		),
	}
}

// RecurringScheduleBlocksClient implements hapio.RecurringScheduleBlocksRepository.
// Parents: resource id, recurring schedule id.
type RecurringScheduleBlocksClient struct {
	*nestedCrudRepository[*hapio.RecurringScheduleBlock]
}

// NewRecurringScheduleBlocksClient creates a new recurring schedule blocks client.
func NewRecurringScheduleBlocksClient(httpClient *http.Client) *RecurringScheduleBlocksClient {
	return &RecurringScheduleBlocksClient{
		nestedCrudRepository: newNestedCrudRepository(
			httpClient, "resources/%s/recurring-schedules/%s/schedule-blocks", 2,
			"recurring schedule block", hapio.NewRecurringScheduleBlock,
		),
	}
}
