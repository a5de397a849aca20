package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hapiohttp "github.com/fivetwenty-io/hapio-client/internal/http"
	"github.com/fivetwenty-io/hapio-client/pkg/hapio"
)

var errBlocked = errors.New("blocked by interceptor")

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/locations/loc-1", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))
			assert.Equal(t, "hapio-client-go/1.0", request.Header.Get("User-Agent"))
			assert.Empty(t, request.Header.Get("Content-Type"))

			_ = json.NewEncoder(writer).Encode(map[string]string{"id": "loc-1", "name": "North"})
		}))
		defer server.Close()

		client := hapiohttp.NewClient(server.URL+"/v1/", "test-token")

		resp, err := client.Do(context.Background(), &hapiohttp.Request{
			Method: "GET",
			Path:   "locations/loc-1",
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result map[string]string

		err = json.Unmarshal(resp.Body, &result)
		require.NoError(t, err)
		assert.Equal(t, "loc-1", result["id"])
		assert.Equal(t, "North", result["name"])
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/locations", request.URL.Path)
			assert.Equal(t, "page=2&per_page=10", request.URL.RawQuery)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := hapiohttp.NewClient(server.URL+"/v1", "")

		resp, err := client.Get(context.Background(), "/locations", url.Values{
			"page":     []string{"2"},
			"per_page": []string{"10"},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("absolute urls bypass the base url", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/resources", request.URL.Path)
			assert.Equal(t, "page=3", request.URL.RawQuery)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := hapiohttp.NewClient("https://unused.invalid/v1/", "token")

		_, err := client.Get(context.Background(), server.URL+"/v1/resources?page=3", nil)
		require.NoError(t, err)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "Room A", body["name"])

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := hapiohttp.NewClient(server.URL, "token")

		resp, err := client.Do(context.Background(), &hapiohttp.Request{
			Method: "POST",
			Path:   "resources",
			Body:   map[string]string{"name": "Room A"},
		})
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("put without body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "PUT", request.Method)
			assert.Empty(t, request.Header.Get("Content-Type"))

			body, err := io.ReadAll(request.Body)
			assert.NoError(t, err)
			assert.Empty(t, body)

			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := hapiohttp.NewClient(server.URL, "token")

		_, err := client.Put(context.Background(), "resources/r/services/s", nil)
		require.NoError(t, err)
	})

	t.Run("error response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"message": "Not found."}`))
		}))
		defer server.Close()

		client := hapiohttp.NewClient(server.URL, "token")

		resp, err := client.Get(context.Background(), "locations/missing", nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, 404, resp.StatusCode)

		respErr := &hapiohttp.ResponseError{}
		ok := errors.As(err, &respErr)
		require.True(t, ok)
		assert.Equal(t, 404, respErr.StatusCode)
		assert.Equal(t, "GET", respErr.Method)
		assert.JSONEq(t, `{"message": "Not found."}`, string(respErr.Body))
		assert.Contains(t, err.Error(), "resulted in a 404 Not Found response")
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := hapiohttp.NewClient(server.URL, "token")

		resp, err := client.Do(context.Background(), &hapiohttp.Request{
			Method: "GET",
			Path:   "project",
			Headers: map[string]string{
				"X-Custom-Header": "custom-value",
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := hapiohttp.NewClient(server.URL, "token", hapiohttp.WithLogger(logger), hapiohttp.WithDebug(true))

		_, err := client.Get(context.Background(), "project", nil)
		require.NoError(t, err)

		// Should have logged request and response
		assert.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})

	t.Run("transport failure", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		serverURL := server.URL
		server.Close()

		client := hapiohttp.NewClient(serverURL, "token")

		resp, err := client.Get(context.Background(), "project", nil)
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.Contains(t, err.Error(), "executing request")

		respErr := &hapiohttp.ResponseError{}
		assert.False(t, errors.As(err, &respErr))
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client := hapiohttp.NewClient(server.URL, "token")

		_, err := client.Get(ctx, "project", nil)
		require.ErrorIs(t, err, context.Canceled)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		fn     func(*hapiohttp.Client, context.Context) (*hapiohttp.Response, error)
	}{
		{
			name:   "GET",
			method: "GET",
			fn: func(c *hapiohttp.Client, ctx context.Context) (*hapiohttp.Response, error) {
				return c.Get(ctx, "/test", nil)
			},
		},
		{
			name:   "POST",
			method: "POST",
			fn: func(c *hapiohttp.Client, ctx context.Context) (*hapiohttp.Response, error) {
				return c.Post(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "PUT",
			method: "PUT",
			fn: func(c *hapiohttp.Client, ctx context.Context) (*hapiohttp.Response, error) {
				return c.Put(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "PATCH",
			method: "PATCH",
			fn: func(c *hapiohttp.Client, ctx context.Context) (*hapiohttp.Response, error) {
				return c.Patch(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "DELETE",
			method: "DELETE",
			fn: func(c *hapiohttp.Client, ctx context.Context) (*hapiohttp.Response, error) {
				return c.Delete(ctx, "/test")
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/test", request.URL.Path)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := hapiohttp.NewClient(server.URL, "token")
			resp, err := testCase.fn(client, context.Background())
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}

func TestClient_DoesNotRetry(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusInternalServerError, http.StatusServiceUnavailable, http.StatusTooManyRequests} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			t.Parallel()

			var attempts atomic.Int32

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				attempts.Add(1)
				writer.WriteHeader(status)
			}))
			defer server.Close()

			client := hapiohttp.NewClient(server.URL, "token")

			resp, err := client.Get(context.Background(), "/test", nil)
			require.Error(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, status, resp.StatusCode)
			assert.Equal(t, int32(1), attempts.Load())
		})
	}
}

func TestClient_Options(t *testing.T) {
	t.Parallel()

	client := hapiohttp.NewClient("https://example.test/v1/", "token")
	assert.Equal(t, 30*time.Second, client.Timeout())

	client = hapiohttp.NewClient("https://example.test/v1/", "token", hapiohttp.WithTimeout(5*time.Second))
	assert.Equal(t, 5*time.Second, client.Timeout())

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "my-app/2.0", request.Header.Get("User-Agent"))
		assert.Empty(t, request.Header.Get("Authorization"))
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client = hapiohttp.NewClient(server.URL, "", hapiohttp.WithUserAgent("my-app/2.0"))

	_, err := client.Get(context.Background(), "project", nil)
	require.NoError(t, err)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Interceptors(t *testing.T) {
	t.Parallel()

	t.Run("request interceptors modify headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "salon", request.Header.Get("X-Tenant"))
			assert.NotEmpty(t, request.Header.Get("X-Request-Id"))
			writer.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		var seenStatus int

		chain := hapio.NewInterceptorChain().
			AddRequestInterceptor(hapio.HeaderInterceptor(map[string]string{"X-Tenant": "salon"})).
			AddRequestInterceptor(hapio.RequestIDInterceptor()).
			AddResponseInterceptor(func(_ context.Context, _ *hapio.Request, resp *hapio.Response) error {
				seenStatus = resp.StatusCode

				return nil
			})

		client := hapiohttp.NewClient(server.URL, "token", hapiohttp.WithInterceptors(chain))

		resp, err := client.Delete(context.Background(), "locations/loc-1")
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Equal(t, http.StatusNoContent, seenStatus)
	})

	t.Run("request interceptor errors abort the request", func(t *testing.T) {
		t.Parallel()

		var called atomic.Bool

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			called.Store(true)
		}))
		defer server.Close()

		chain := hapio.NewInterceptorChain().AddRequestInterceptor(func(context.Context, *hapio.Request) error {
			return errBlocked
		})

		client := hapiohttp.NewClient(server.URL, "token", hapiohttp.WithInterceptors(chain))

		_, err := client.Get(context.Background(), "project", nil)
		require.ErrorIs(t, err, errBlocked)
		assert.False(t, called.Load())
	})

	t.Run("metrics are recorded", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		collector := hapio.NewMetricsCollector()
		chain := hapio.NewInterceptorChain()
		collector.Install(chain)

		client := hapiohttp.NewClient(server.URL, "token", hapiohttp.WithInterceptors(chain))

		_, err := client.Get(context.Background(), "resources", nil)
		require.NoError(t, err)

		metrics, ok := collector.GetMetrics("GET resources")
		require.True(t, ok)
		assert.Equal(t, int64(1), metrics.TotalRequests)
		assert.Equal(t, int64(0), metrics.TotalErrors)
	})
}
