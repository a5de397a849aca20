package hapio_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/hapio-client/pkg/hapio"
)

//nolint:funlen // Test functions can be longer for detailed testing
func TestQueryParams_ToValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		params   hapio.QueryParams
		expected url.Values
	}{
		{
			name:     "empty params",
			params:   hapio.NewQueryParams(),
			expected: url.Values{},
		},
		{
			name:   "with pagination",
			params: hapio.NewQueryParams().WithPage(2).WithPerPage(50),
			expected: url.Values{
				"page":     []string{"2"},
				"per_page": []string{"50"},
			},
		},
		{
			name:   "with date times",
			params: hapio.NewQueryParams().WithTime("from", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)),
			expected: url.Values{
				"from": []string{"2024-01-01T09:00:00+00:00"},
			},
		},
		{
			name: "with booleans",
			params: hapio.QueryParams{
				"enabled":     true,
				"is_canceled": false,
			},
			expected: url.Values{
				"enabled":     []string{"1"},
				"is_canceled": []string{"0"},
			},
		},
		{
			name: "with lists",
			params: hapio.QueryParams{
				"resource":  []string{"res-1", "res-2"},
				"locations": []interface{}{"loc-1", 7},
			},
			expected: url.Values{
				"resource[]":  []string{"res-1", "res-2"},
				"locations[]": []string{"loc-1", "7"},
			},
		},
		{
			name: "with maps",
			params: hapio.QueryParams{
				"metadata": map[string]interface{}{"color": "blue"},
			},
			expected: url.Values{
				"metadata[color]": []string{"blue"},
			},
		},
		{
			name: "skips nil values",
			params: hapio.QueryParams{
				"location": nil,
				"service":  "svc-1",
			},
			expected: url.Values{
				"service": []string{"svc-1"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.params.ToValues())
		})
	}
}

func TestFormatQuery(t *testing.T) {
	t.Parallel()

	zone, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	from := time.Date(2024, 7, 1, 8, 0, 0, 0, zone)

	formatted := hapio.FormatQuery(map[string]interface{}{
		"from":      from,
		"to":        &from,
		"time_zone": zone,
		"page":      3,
	})

	assert.Equal(t, "2024-07-01T08:00:00+02:00", formatted["from"])
	assert.Equal(t, "2024-07-01T08:00:00+02:00", formatted["to"])
	assert.Equal(t, "Europe/Berlin", formatted["time_zone"])
	assert.Equal(t, 3, formatted["page"])
}

func TestQueryParamsFromLink(t *testing.T) {
	t.Parallel()

	t.Run("extracts the query", func(t *testing.T) {
		t.Parallel()

		params, err := hapio.QueryParamsFromLink("https://eu-central-1.hapio.net/v1/locations?page=3&per_page=10")
		require.NoError(t, err)
		assert.Equal(t, hapio.QueryParams{"page": "3", "per_page": "10"}, params)
	})

	t.Run("rebuilds lists and maps", func(t *testing.T) {
		t.Parallel()

		params, err := hapio.QueryParamsFromLink(
			"https://example.test/v1/bookings?resource%5B%5D=a&resource%5B%5D=b&metadata%5Bcolor%5D=blue&page=2",
		)
		require.NoError(t, err)
		assert.Equal(t, hapio.QueryParams{
			"resource": []string{"a", "b"},
			"metadata": map[string]interface{}{"color": "blue"},
			"page":     "2",
		}, params)

		assert.Equal(t, url.Values{
			"resource[]":      []string{"a", "b"},
			"metadata[color]": []string{"blue"},
			"page":            []string{"2"},
		}, params.ToValues())
	})

	t.Run("has no query", func(t *testing.T) {
		t.Parallel()

		params, err := hapio.QueryParamsFromLink("https://example.test/v1/bookings")
		require.NoError(t, err)
		assert.Empty(t, params)
	})

	t.Run("rejects malformed links", func(t *testing.T) {
		t.Parallel()

		_, err := hapio.QueryParamsFromLink("%zz")
		require.Error(t, err)
	})
}

func TestQueryParams_Clone(t *testing.T) {
	t.Parallel()

	original := hapio.NewQueryParams().WithPage(1)
	clone := original.Clone().WithPage(2).With("service", "svc-1")

	assert.Equal(t, 1, original["page"])
	assert.NotContains(t, original, "service")
	assert.Equal(t, 2, clone["page"])
}
