package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/hapio-client/pkg/hapio"
)

func TestProjectClient_GetCurrentProject(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		recorder := &RequestRecorder{}
		server := NewRecordingServer(t, http.StatusOK,
			`{"id": "prj-1", "name": "Clinic", "enabled": true, "created_at": "2024-01-01T10:00:00+00:00"}`, recorder)
		client := NewTestClient(server.URL + "/v1/")

		project, err := client.Project().GetCurrentProject(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Clinic", project.Name())
		assert.True(t, project.Enabled())
		assert.Equal(t, 2024, project.CreatedAt().Year())
		assert.Equal(t, "/v1/project", recorder.Last().Path)
	})

	t.Run("unauthorized", func(t *testing.T) {
		t.Parallel()

		server := NewRecordingServer(t, http.StatusUnauthorized, `{"message": "Unauthenticated."}`, nil)
		client := NewTestClient(server.URL + "/v1/")

		project, err := client.Project().GetCurrentProject(context.Background())
		require.Error(t, err)
		assert.Nil(t, project)
		assert.True(t, hapio.IsUnauthorized(err))
		assert.Contains(t, err.Error(), "getting current project")
	})
}

func TestLocationsClient_GetAndDelete(t *testing.T) {
	t.Parallel()

	RunGetTests(t, []TestGetOperation{
		{
			Name:         "location with time zone",
			ID:           "loc-1",
			ExpectedPath: "/v1/locations/loc-1",
			StatusCode:   http.StatusOK,
			Response:     `{"id": "loc-1", "name": "Main", "time_zone": "Europe/Stockholm"}`,
		},
		{
			Name:         "forbidden",
			ID:           "loc-2",
			ExpectedPath: "/v1/locations/loc-2",
			StatusCode:   http.StatusForbidden,
			Response:     `{"message": "This action is unauthorized."}`,
			WantErr:      true,
			ErrMessage:   "This action is unauthorized.",
		},
	}, func(c *Client) func(context.Context, string) (*hapio.Location, error) {
		return c.Locations().Get
	})

	RunDeleteTests(t, []TestDeleteOperation{
		{
			Name:         "deleted",
			ID:           "loc-1",
			ExpectedPath: "/v1/locations/loc-1",
			StatusCode:   http.StatusNoContent,
			Deleted:      true,
		},
	}, func(c *Client) func(context.Context, string) (bool, error) {
		return c.Locations().Delete
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestBookingsClient(t *testing.T) {
	t.Parallel()

	t.Run("store sends nested entities as ids", func(t *testing.T) {
		t.Parallel()

		recorder := &RequestRecorder{}
		server := NewRecordingServer(t, http.StatusCreated, `{
			"id": "bkg-1",
			"resource_id": "res-1",
			"service_id": "svc-1",
			"location_id": "loc-1",
			"starts_at": "2024-06-03T09:00:00+02:00",
			"ends_at": "2024-06-03T09:30:00+02:00",
			"is_temporary": false
		}`, recorder)
		client := NewTestClient(server.URL + "/v1/")

		startsAt := time.Date(2024, 6, 3, 9, 0, 0, 0, time.FixedZone("CEST", 2*60*60))

		resource := hapio.NewResource()
		resource.Set("id", "res-1")

		booking := hapio.NewBooking()
		booking.SetResource(resource)
		booking.SetServiceID("svc-1")
		booking.SetLocationID("loc-1")
		booking.SetStartsAt(startsAt)
		booking.SetEndsAt(startsAt.Add(30 * time.Minute))

		stored, err := client.Bookings().Store(context.Background(), booking)
		require.NoError(t, err)
		assert.Equal(t, "bkg-1", stored.ID())
		assert.True(t, stored.StartsAt().Equal(startsAt))

		last := recorder.Last()
		assert.Equal(t, http.MethodPost, last.Method)
		assert.Equal(t, "/v1/bookings", last.Path)

		var sent map[string]interface{}
		require.NoError(t, json.Unmarshal(last.Body, &sent))
		assert.Equal(t, "res-1", sent["resource_id"])
		assert.NotContains(t, sent, "resource")
		assert.Equal(t, "2024-06-03T09:00:00+02:00", sent["starts_at"])
		assert.Equal(t, "2024-06-03T09:30:00+02:00", sent["ends_at"])
	})

	t.Run("cancel is a patch", func(t *testing.T) {
		t.Parallel()

		recorder := &RequestRecorder{}
		server := NewRecordingServer(t, http.StatusOK, `{"id": "bkg-1", "is_canceled": true}`, recorder)
		client := NewTestClient(server.URL + "/v1/")

		update := hapio.NewBooking()
		update.SetIsCanceled(true)

		canceled, err := client.Bookings().Patch(context.Background(), "bkg-1", update)
		require.NoError(t, err)
		assert.True(t, canceled.IsCanceled())
		assert.Equal(t, http.MethodPatch, recorder.Last().Method)
		assert.Equal(t, "/v1/bookings/bkg-1", recorder.Last().Path)
		assert.JSONEq(t, `{"is_canceled": true}`, string(recorder.Last().Body))
	})

	t.Run("conflicting booking", func(t *testing.T) {
		t.Parallel()

		server := NewRecordingServer(t, http.StatusUnprocessableEntity, `{
			"message": "The given data was invalid.",
			"errors": {"starts_at": ["The resource is fully booked."]}
		}`, nil)
		client := NewTestClient(server.URL + "/v1/")

		_, err := client.Bookings().Store(context.Background(), hapio.NewBooking())
		require.Error(t, err)

		validationErr, ok := hapio.AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, []string{"The resource is fully booked."}, validationErr.FieldErrors("starts_at"))
	})
}

func TestBookingGroupsClient_List(t *testing.T) {
	t.Parallel()

	recorder := &RequestRecorder{}
	server := NewRecordingServer(t, http.StatusOK, `{
		"data": [{"id": "grp-1", "bookings": [{"id": "bkg-1"}, {"id": "bkg-2"}]}],
		"links": {"first": null, "last": null, "prev": null, "next": null},
		"meta": {"current_page": 1, "from": 1, "last_page": 1, "per_page": 20, "to": 1, "total": 1}
	}`, recorder)
	client := NewTestClient(server.URL + "/v1/")

	page, err := client.BookingGroups().List(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, 1, page.Len())
	assert.False(t, page.HasMoreItems())

	bookings := page.Items()[0].Bookings()
	require.Len(t, bookings, 2)
	assert.Equal(t, "bkg-2", bookings[1].ID())
	assert.Equal(t, "/v1/booking-groups", recorder.Last().Path)
	assert.Empty(t, recorder.Last().Query)
}
