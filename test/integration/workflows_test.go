//go:build integration

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/hapio-client/pkg/hapio"
)

func TestProjectWorkflow(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client, metrics := config.NewClient(t)
	ctx := context.Background()

	project, err := client.Project().GetCurrentProject(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, project.ID())
	assert.NotEmpty(t, project.Name())

	m, ok := metrics.GetMetrics("GET project")
	require.True(t, ok)
	assert.Equal(t, int64(1), m.TotalRequests)
	assert.Zero(t, m.TotalErrors)
}

func TestLocationsListWorkflow(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client, _ := config.NewClient(t)
	ctx := context.Background()

	page, err := client.Locations().List(ctx, hapio.NewQueryParams().WithPerPage(1))
	require.NoError(t, err)
	assert.LessOrEqual(t, page.Len(), 1)
	assert.Equal(t, 1, page.CurrentPageNumber())

	if !page.HasMoreItems() {
		next, err := page.NextPage(ctx)
		require.NoError(t, err)
		assert.Nil(t, next)

		return
	}

	next, err := page.NextPage(ctx)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, 2, next.CurrentPageNumber())
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestLocationResourceWorkflow(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client, _ := config.NewClient(t)
	ctx := context.Background()
	suffix := uuid.NewString()[:8]

	zone, err := time.LoadLocation("Europe/Stockholm")
	require.NoError(t, err)

	location := hapio.NewLocation()
	location.SetName(fmt.Sprintf("integration-%s", suffix))
	location.SetTimeZone(zone)

	location, err = client.Locations().Store(ctx, location)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = client.Locations().Delete(context.Background(), location.ID())
	})

	assert.Equal(t, "Europe/Stockholm", location.TimeZone().String())

	resource := hapio.NewResource()
	resource.SetName(fmt.Sprintf("integration-%s", suffix))

	resource, err = client.Resources().Store(ctx, resource)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = client.Resources().Delete(context.Background(), resource.ID())
	})

	t.Run("schedule block", func(t *testing.T) {
		startsAt := time.Now().In(zone).Truncate(time.Hour).AddDate(0, 0, 1)

		block := hapio.NewScheduleBlock()
		block.SetLocation(location)
		block.SetStartsAt(startsAt)
		block.SetEndsAt(startsAt.Add(2 * time.Hour))

		block, err := client.ScheduleBlocks().Store(ctx, []string{resource.ID()}, block)
		require.NoError(t, err)
		assert.Equal(t, location.ID(), block.LocationID())
		assert.True(t, block.StartsAt().Equal(startsAt))

		fetched, err := client.ScheduleBlocks().Get(ctx, []string{resource.ID()}, block.ID())
		require.NoError(t, err)
		assert.Equal(t, block.ID(), fetched.ID())

		schedule, err := client.Resources().ListSchedule(ctx, resource.ID(), hapio.NewQueryParams().
			WithTime("from", startsAt.Add(-time.Hour)).
			WithTime("to", startsAt.Add(3*time.Hour)).
			With("location", location.ID()))
		require.NoError(t, err)
		assert.Positive(t, schedule.Len())

		deleted, err := client.ScheduleBlocks().Delete(ctx, []string{resource.ID()}, block.ID())
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("validation error", func(t *testing.T) {
		_, err := client.Locations().Store(ctx, hapio.NewLocation())
		require.Error(t, err)

		validationErr, ok := hapio.AsValidationError(err)
		require.True(t, ok)
		assert.NotEmpty(t, validationErr.FieldErrors("name"))
	})

	t.Run("not found after delete", func(t *testing.T) {
		deleted, err := client.Resources().Delete(ctx, resource.ID())
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = client.Resources().Get(ctx, resource.ID())
		assert.True(t, hapio.IsNotFound(err))
	})
}
