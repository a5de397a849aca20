package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/fivetwenty-io/hapio-client/internal/constants"
	"github.com/fivetwenty-io/hapio-client/internal/http"
	"github.com/fivetwenty-io/hapio-client/pkg/hapio"
)

// repositorySlot builds its repository on first use.
type repositorySlot struct {
	once  sync.Once
	build func(*http.Client) interface{}
	repo  interface{}
}

func repositoryBuilders() map[hapio.RepositoryKind]func(*http.Client) interface{} {
	return map[hapio.RepositoryKind]func(*http.Client) interface{}{
		hapio.RepositoryProject:                 func(c *http.Client) interface{} { return NewProjectClient(c) },
		hapio.RepositoryLocations:               func(c *http.Client) interface{} { return NewLocationsClient(c) },
		hapio.RepositoryResources:               func(c *http.Client) interface{} { return NewResourcesClient(c) },
		hapio.RepositoryServices:                func(c *http.Client) interface{} { return NewServicesClient(c) },
		hapio.RepositoryScheduleBlocks:          func(c *http.Client) interface{} { return NewScheduleBlocksClient(c) },
		hapio.RepositoryRecurringSchedules:      func(c *http.Client) interface{} { return NewRecurringSchedulesClient(c) },
		hapio.RepositoryRecurringScheduleBlocks: func(c *http.Client) interface{} { return NewRecurringScheduleBlocksClient(c) },
		hapio.RepositoryBookings:                func(c *http.Client) interface{} { return NewBookingsClient(c) },
		hapio.RepositoryBookingGroups:           func(c *http.Client) interface{} { return NewBookingGroupsClient(c) },
	}
}

// Client implements the hapio.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     hapio.Logger
	slots      map[hapio.RepositoryKind]*repositorySlot
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *hapio.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.Timeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.Timeout))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	return httpOpts
}

// New creates a new Hapio API client. No request is sent before the first
// repository call.
func New(_ context.Context, config *hapio.Config) (*Client, error) {
	if config == nil || config.Token == "" {
		return nil, hapio.ErrTokenRequired
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}

	httpClient := http.NewClient(baseURL, config.Token, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     config.Logger,
		slots:      make(map[hapio.RepositoryKind]*repositorySlot),
	}

	for kind, build := range repositoryBuilders() {
		client.slots[kind] = &repositorySlot{build: build}
	}

	return client, nil
}

// BaseURL returns the API root the client resolves paths against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Repository implements hapio.Client.Repository.
func (c *Client) Repository(kind hapio.RepositoryKind) interface{} {
	slot, ok := c.slots[kind]
	if !ok {
		panic(fmt.Errorf("%w: %q", hapio.ErrUnknownRepository, kind))
	}

	slot.once.Do(func() {
		slot.repo = slot.build(c.httpClient)

		if c.logger != nil {
			c.logger.Debug("repository created", map[string]interface{}{"kind": string(kind)})
		}
	})

	return slot.repo
}

// Repository client accessors

// Project implements hapio.Client.Project.
func (c *Client) Project() hapio.ProjectRepository {
	return c.Repository(hapio.RepositoryProject).(*ProjectClient)
}

// Locations implements hapio.Client.Locations.
func (c *Client) Locations() hapio.LocationsRepository {
	return c.Repository(hapio.RepositoryLocations).(*LocationsClient)
}

// Resources implements hapio.Client.Resources.
func (c *Client) Resources() hapio.ResourcesRepository {
	return c.Repository(hapio.RepositoryResources).(*ResourcesClient)
}

// Services implements hapio.Client.Services.
func (c *Client) Services() hapio.ServicesRepository {
	return c.Repository(hapio.RepositoryServices).(*ServicesClient)
}

// ScheduleBlocks implements hapio.Client.ScheduleBlocks.
func (c *Client) ScheduleBlocks() hapio.ScheduleBlocksRepository {
	return c.Repository(hapio.RepositoryScheduleBlocks).(*ScheduleBlocksClient)
}

// RecurringSchedules implements hapio.Client.RecurringSchedules.
func (c *Client) RecurringSchedules() hapio.RecurringSchedulesRepository {
	return c.Repository(hapio.RepositoryRecurringSchedules).(*RecurringSchedulesClient)
}

// RecurringScheduleBlocks implements hapio.Client.RecurringScheduleBlocks.
func (c *Client) RecurringScheduleBlocks() hapio.RecurringScheduleBlocksRepository {
	return c.Repository(hapio.RepositoryRecurringScheduleBlocks).(*RecurringScheduleBlocksClient)
}

// Bookings implements hapio.Client.Bookings.
func (c *Client) Bookings() hapio.BookingsRepository {
	return c.Repository(hapio.RepositoryBookings).(*BookingsClient)
}

// BookingGroups implements hapio.Client.BookingGroups.
func (c *Client) BookingGroups() hapio.BookingGroupsRepository {
	return c.Repository(hapio.RepositoryBookingGroups).(*BookingGroupsClient)
}

// loggerAdapter adapts hapio.Logger to http.Logger.
type loggerAdapter struct {
	logger hapio.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}

// Compile-time interface checks.
var (
	_ hapio.Client                            = (*Client)(nil)
	_ hapio.ProjectRepository                 = (*ProjectClient)(nil)
	_ hapio.LocationsRepository               = (*LocationsClient)(nil)
	_ hapio.ResourcesRepository               = (*ResourcesClient)(nil)
	_ hapio.ServicesRepository                = (*ServicesClient)(nil)
	_ hapio.ScheduleBlocksRepository          = (*ScheduleBlocksClient)(nil)
	_ hapio.RecurringSchedulesRepository      = (*RecurringSchedulesClient)(nil)
	_ hapio.RecurringScheduleBlocksRepository = (*RecurringScheduleBlocksClient)(nil)
	_ hapio.BookingsRepository                = (*BookingsClient)(nil)
	_ hapio.BookingGroupsRepository           = (*BookingGroupsClient)(nil)
)
