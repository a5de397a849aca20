package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/hapio-client/internal/client"
	"github.com/fivetwenty-io/hapio-client/internal/constants"
	"github.com/fivetwenty-io/hapio-client/pkg/hapio"
)

type countingLogger struct {
	mu     sync.Mutex
	debugs []string
}

func (l *countingLogger) Debug(msg string, _ map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.debugs = append(l.debugs, msg)
}

func (l *countingLogger) Info(string, map[string]interface{})  {}
func (l *countingLogger) Warn(string, map[string]interface{})  {}
func (l *countingLogger) Error(string, map[string]interface{}) {}

func (l *countingLogger) count(msg string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0

	for _, debug := range l.debugs {
		if debug == msg {
			n++
		}
	}

	return n
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires a token", func(t *testing.T) {
		t.Parallel()

		_, err := client.New(context.Background(), &hapio.Config{BaseURL: "https://example.com/v1/"})
		require.ErrorIs(t, err, hapio.ErrTokenRequired)
	})

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := client.New(context.Background(), nil)
		require.ErrorIs(t, err, hapio.ErrTokenRequired)
	})

	t.Run("default base URL", func(t *testing.T) {
		t.Parallel()

		c, err := client.New(context.Background(), &hapio.Config{Token: "token"})
		require.NoError(t, err)
		assert.Equal(t, constants.DefaultBaseURL, c.BaseURL())
	})

	t.Run("custom base URL", func(t *testing.T) {
		t.Parallel()

		c, err := client.New(context.Background(), &hapio.Config{Token: "token", BaseURL: "https://us-east-1.hapio.net/v1/"})
		require.NoError(t, err)
		assert.Equal(t, "https://us-east-1.hapio.net/v1/", c.BaseURL())
	})

	t.Run("no request before first call", func(t *testing.T) {
		t.Parallel()

		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { requests++ }))
		defer server.Close()

		c, err := client.New(context.Background(), &hapio.Config{Token: "token", BaseURL: server.URL + "/v1/"})
		require.NoError(t, err)
		assert.NotNil(t, c.Locations())
		assert.Zero(t, requests)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_RepositoryCache(t *testing.T) {
	t.Parallel()

	t.Run("accessors return the same instance", func(t *testing.T) {
		t.Parallel()

		c, err := client.New(context.Background(), &hapio.Config{Token: "token"})
		require.NoError(t, err)

		assert.Same(t, c.Project(), c.Project())
		assert.Same(t, c.Locations(), c.Locations())
		assert.Same(t, c.Resources(), c.Resources())
		assert.Same(t, c.Services(), c.Services())
		assert.Same(t, c.ScheduleBlocks(), c.ScheduleBlocks())
		assert.Same(t, c.RecurringSchedules(), c.RecurringSchedules())
		assert.Same(t, c.RecurringScheduleBlocks(), c.RecurringScheduleBlocks())
		assert.Same(t, c.Bookings(), c.Bookings())
		assert.Same(t, c.BookingGroups(), c.BookingGroups())
	})

	t.Run("repository by kind matches accessor", func(t *testing.T) {
		t.Parallel()

		c, err := client.New(context.Background(), &hapio.Config{Token: "token"})
		require.NoError(t, err)

		tests := []struct {
			kind     hapio.RepositoryKind
			accessor func() interface{}
		}{
			{hapio.RepositoryProject, func() interface{} { return c.Project() }},
			{hapio.RepositoryLocations, func() interface{} { return c.Locations() }},
			{hapio.RepositoryResources, func() interface{} { return c.Resources() }},
			{hapio.RepositoryServices, func() interface{} { return c.Services() }},
			{hapio.RepositoryScheduleBlocks, func() interface{} { return c.ScheduleBlocks() }},
			{hapio.RepositoryRecurringSchedules, func() interface{} { return c.RecurringSchedules() }},
			{hapio.RepositoryRecurringScheduleBlocks, func() interface{} { return c.RecurringScheduleBlocks() }},
			{hapio.RepositoryBookings, func() interface{} { return c.Bookings() }},
			{hapio.RepositoryBookingGroups, func() interface{} { return c.BookingGroups() }},
		}

		for _, tt := range tests {
			assert.Same(t, tt.accessor(), c.Repository(tt.kind), string(tt.kind))
		}
	})

	t.Run("clients do not share repositories", func(t *testing.T) {
		t.Parallel()

		first, err := client.New(context.Background(), &hapio.Config{Token: "token"})
		require.NoError(t, err)

		second, err := client.New(context.Background(), &hapio.Config{Token: "token"})
		require.NoError(t, err)

		assert.NotSame(t, first.Bookings(), second.Bookings())
	})

	t.Run("concurrent first use builds once", func(t *testing.T) {
		t.Parallel()

		logger := &countingLogger{}

		c, err := client.New(context.Background(), &hapio.Config{Token: "token", Logger: logger})
		require.NoError(t, err)

		var wg sync.WaitGroup

		results := make([]hapio.ServicesRepository, 16)
		for i := range results {
			wg.Add(1)

			go func(i int) {
				defer wg.Done()

				results[i] = c.Services()
			}(i)
		}

		wg.Wait()

		for _, repo := range results {
			assert.Same(t, results[0], repo)
		}

		assert.Equal(t, 1, logger.count("repository created"))
	})

	t.Run("unknown kind panics", func(t *testing.T) {
		t.Parallel()

		c, err := client.New(context.Background(), &hapio.Config{Token: "token"})
		require.NoError(t, err)

		assert.PanicsWithError(t, `call to undefined repository: "invoices"`, func() {
			c.Repository("invoices")
		})
	})
}
