package hapio

import (
	"context"
	"time"

	"github.com/fivetwenty-io/hapio-client/internal/constants"
)

// CrudRepository is the gateway for a top-level resource kind.
type CrudRepository[T Entity] interface {
	Get(ctx context.Context, id string) (T, error)
	List(ctx context.Context, params QueryParams) (*PaginatedResponse[T], error)
	Store(ctx context.Context, entity T) (T, error)
	Replace(ctx context.Context, id string, entity T) (T, error)
	Patch(ctx context.Context, id string, entity T) (T, error)
	// Delete reports true only for a 204 No Content response.
	Delete(ctx context.Context, id string) (bool, error)
}

// NestedCrudRepository is the gateway for a resource kind living under one
// or more parents. parentIDs are substituted into the path in order.
type NestedCrudRepository[T Entity] interface {
	Get(ctx context.Context, parentIDs []string, id string) (T, error)
	List(ctx context.Context, parentIDs []string, params QueryParams) (*PaginatedResponse[T], error)
	Store(ctx context.Context, parentIDs []string, entity T) (T, error)
	Replace(ctx context.Context, parentIDs []string, id string, entity T) (T, error)
	Patch(ctx context.Context, parentIDs []string, id string, entity T) (T, error)
	Delete(ctx context.Context, parentIDs []string, id string) (bool, error)
}

// ProjectRepository exposes the singleton project of the token.
type ProjectRepository interface {
	GetCurrentProject(ctx context.Context) (*Project, error)
}

// LocationsRepository manages locations.
type LocationsRepository = CrudRepository[*Location]

// ResourcesRepository manages resources, their derived schedule views and
// their service associations.
type ResourcesRepository interface {
	CrudRepository[*Resource]

	ListSchedule(ctx context.Context, resourceID string, params QueryParams) (*PaginatedResponse[*TimeSpan], error)
	ListFullyBooked(ctx context.Context, resourceID string, params QueryParams) (*PaginatedResponse[*TimeSpan], error)
	ListAssociatedServices(ctx context.Context, resourceID string) ([]*ResourceServiceAssociation, error)
	GetAssociatedService(ctx context.Context, resourceID, serviceID string) (*ResourceServiceAssociation, error)
	AssociateService(ctx context.Context, resourceID, serviceID string) (*ResourceServiceAssociation, error)
	DissociateService(ctx context.Context, resourceID, serviceID string) (bool, error)
}

// ServicesRepository manages services, their bookable slots and their
// resource associations.
type ServicesRepository interface {
	CrudRepository[*Service]

	ListBookableSlots(ctx context.Context, serviceID string, params QueryParams) (*PaginatedResponse[*BookableSlot], error)
	ListAssociatedResources(ctx context.Context, serviceID string) ([]*ResourceServiceAssociation, error)
	GetAssociatedResource(ctx context.Context, serviceID, resourceID string) (*ResourceServiceAssociation, error)
	AssociateResource(ctx context.Context, serviceID, resourceID string) (*ResourceServiceAssociation, error)
	DissociateResource(ctx context.Context, serviceID, resourceID string) (bool, error)
}

// ScheduleBlocksRepository manages schedule blocks under a resource.
type ScheduleBlocksRepository = NestedCrudRepository[*ScheduleBlock]

// RecurringSchedulesRepository manages recurring schedules under a resource.
type RecurringSchedulesRepository = NestedCrudRepository[*RecurringSchedule]

// RecurringScheduleBlocksRepository manages blocks under a resource and one
// of its recurring schedules.
type RecurringScheduleBlocksRepository = NestedCrudRepository[*RecurringScheduleBlock]

// BookingsRepository manages bookings.
type BookingsRepository = CrudRepository[*Booking]

// BookingGroupsRepository manages booking groups.
type BookingGroupsRepository = CrudRepository[*BookingGroup]

// RepositoryKind names a repository of the client.
type RepositoryKind string

// Repository kinds.
const (
	RepositoryProject                 RepositoryKind = "project"
	RepositoryLocations               RepositoryKind = "locations"
	RepositoryResources               RepositoryKind = "resources"
	RepositoryServices                RepositoryKind = "services"
	RepositoryScheduleBlocks          RepositoryKind = "scheduleBlocks"
	RepositoryRecurringSchedules      RepositoryKind = "recurringSchedules"
	RepositoryRecurringScheduleBlocks RepositoryKind = "recurringScheduleBlocks"
	RepositoryBookings                RepositoryKind = "bookings"
	RepositoryBookingGroups           RepositoryKind = "bookingGroups"
)

// Client is the entry point of the API. Every accessor returns the same
// repository instance for the lifetime of the client.
type Client interface {
	Project() ProjectRepository
	Locations() LocationsRepository
	Resources() ResourcesRepository
	Services() ServicesRepository
	ScheduleBlocks() ScheduleBlocksRepository
	RecurringSchedules() RecurringSchedulesRepository
	RecurringScheduleBlocks() RecurringScheduleBlocksRepository
	Bookings() BookingsRepository
	BookingGroups() BookingGroupsRepository

	// Repository returns the repository of kind. It panics for a kind the
	// client does not know, which is a programming error.
	Repository(kind RepositoryKind) interface{}
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a hapio.Client.
type Config struct {
	// BaseURL: API root that repository paths are resolved against.
	// Defaults to the eu-central-1 endpoint.
	BaseURL string
	// Token: API token sent as "Authorization: Bearer <token>". Required.
	Token string
	// Timeout: fixed client-wide request timeout. Defaults to 30s.
	Timeout time.Duration
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// Interceptors: optional hooks run around every request.
	Interceptors *InterceptorChain
}

// DefaultConfig returns a configuration with the default endpoint and
// timeout. The token still has to be set.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   constants.DefaultBaseURL,
		Timeout:   constants.DefaultHTTPTimeout,
		UserAgent: constants.DefaultUserAgent,
	}
}
