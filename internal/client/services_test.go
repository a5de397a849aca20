package client

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/hapio-client/pkg/hapio"
)

const bookableSlotsPage = `{
	"data": [
		{
			"starts_at": "2024-06-03T09:00:00+02:00",
			"ends_at": "2024-06-03T09:30:00+02:00",
			"buffer_starts_at": "2024-06-03T08:50:00+02:00",
			"buffer_ends_at": "2024-06-03T09:40:00+02:00",
			"resources": [{"id": "res-1", "name": "Anna"}, {"id": "res-2", "name": "Ben"}]
		}
	],
	"links": {"first": null, "last": null, "prev": null, "next": null},
	"meta": {"current_page": 1, "from": 1, "last_page": 1, "per_page": 20, "to": 1, "total": 1}
}`

func TestServicesClient_ListBookableSlots(t *testing.T) {
	t.Parallel()

	recorder := &RequestRecorder{}
	server := NewRecordingServer(t, http.StatusOK, bookableSlotsPage, recorder)
	client := NewTestClient(server.URL + "/v1/")

	params := hapio.NewQueryParams().
		WithTime("from", time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)).
		WithTime("to", time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)).
		With("location", "loc-1")

	page, err := client.Services().ListBookableSlots(context.Background(), "svc-1", params)
	require.NoError(t, err)
	require.Equal(t, 1, page.Len())

	slot := page.Items()[0]
	assert.Equal(t, 30*time.Minute, slot.EndsAt().Sub(slot.StartsAt()))
	assert.Equal(t, 50*time.Minute, slot.BufferEndsAt().Sub(slot.BufferStartsAt()))
	assert.True(t, slot.MinEndsAt().IsZero())

	resources := slot.Resources()
	require.Len(t, resources, 2)
	assert.Equal(t, "Ben", resources[1].Name())

	assert.Equal(t, "/v1/services/svc-1/bookable-slots", recorder.Last().Path)

	query, err := url.ParseQuery(recorder.Last().Query)
	require.NoError(t, err)
	assert.Equal(t, "loc-1", query.Get("location"))
	assert.Equal(t, "2024-06-03T00:00:00+00:00", query.Get("from"))
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestServicesClient_Associations(t *testing.T) {
	t.Parallel()

	t.Run("list associated resources", func(t *testing.T) {
		t.Parallel()

		recorder := &RequestRecorder{}
		server := NewRecordingServer(t, http.StatusOK, "["+associationJSON+"]", recorder)
		client := NewTestClient(server.URL + "/v1/")

		associations, err := client.Services().ListAssociatedResources(context.Background(), "svc-1")
		require.NoError(t, err)
		require.Len(t, associations, 1)
		assert.Equal(t, "res-1", associations[0].ResourceID())
		assert.Equal(t, "/v1/services/svc-1/resources", recorder.Last().Path)
	})

	t.Run("get associated resource", func(t *testing.T) {
		t.Parallel()

		recorder := &RequestRecorder{}
		server := NewRecordingServer(t, http.StatusOK, associationJSON, recorder)
		client := NewTestClient(server.URL + "/v1/")

		association, err := client.Services().GetAssociatedResource(context.Background(), "svc-1", "res-1")
		require.NoError(t, err)
		assert.Equal(t, "svc-1", association.ServiceID())
		assert.Equal(t, "/v1/services/svc-1/resources/res-1", recorder.Last().Path)
	})

	t.Run("associate resource", func(t *testing.T) {
		t.Parallel()

		recorder := &RequestRecorder{}
		server := NewRecordingServer(t, http.StatusOK, associationJSON, recorder)
		client := NewTestClient(server.URL + "/v1/")

		_, err := client.Services().AssociateResource(context.Background(), "svc-1", "res-1")
		require.NoError(t, err)
		assert.Equal(t, http.MethodPut, recorder.Last().Method)
		assert.Equal(t, "/v1/services/svc-1/resources/res-1", recorder.Last().Path)
	})

	t.Run("dissociate resource", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name     string
			status   int
			body     string
			expected bool
		}{
			{name: "no content", status: http.StatusNoContent, expected: true},
			{name: "ok", status: http.StatusOK, body: `{}`, expected: false},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				recorder := &RequestRecorder{}
				server := NewRecordingServer(t, tt.status, tt.body, recorder)
				client := NewTestClient(server.URL + "/v1/")

				dissociated, err := client.Services().DissociateResource(context.Background(), "svc-1", "res-1")
				require.NoError(t, err)
				assert.Equal(t, tt.expected, dissociated)
				assert.Equal(t, http.MethodDelete, recorder.Last().Method)
				assert.Equal(t, "/v1/services/svc-1/resources/res-1", recorder.Last().Path)
			})
		}
	})
}
