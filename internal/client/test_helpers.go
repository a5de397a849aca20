package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/hapio-client/pkg/hapio"
)

const testToken = "test-token"

// NewTestClient creates a new test client with the given base URL.
func NewTestClient(baseURL string) *Client {
	client, err := New(context.Background(), &hapio.Config{BaseURL: baseURL, Token: testToken})
	if err != nil {
		panic(err)
	}

	return client
}

// RecordedRequest is what a test server saw.
type RecordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

// RequestRecorder keeps the requests a test server received.
type RequestRecorder struct {
	mu       sync.Mutex
	requests []RecordedRequest
}

func (r *RequestRecorder) record(req RecordedRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests = append(r.requests, req)
}

// Last returns the most recent request, or the zero value.
func (r *RequestRecorder) Last() RecordedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.requests) == 0 {
		return RecordedRequest{}
	}

	return r.requests[len(r.requests)-1]
}

// Count returns the number of requests received.
func (r *RequestRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.requests)
}

// NewRecordingServer starts a server answering every request with status and
// body. Requests are kept in recorder when it is not nil.
func NewRecordingServer(t *testing.T, status int, body string, recorder *RequestRecorder) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "Bearer "+testToken, request.Header.Get("Authorization"))

		payload, err := io.ReadAll(request.Body)
		assert.NoError(t, err)

		if recorder != nil {
			recorder.record(RecordedRequest{
				Method: request.Method,
				Path:   request.URL.Path,
				Query:  request.URL.RawQuery,
				Body:   payload,
			})
		}

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)

		if body != "" {
			_, _ = io.WriteString(writer, body)
		}
	}))
	t.Cleanup(server.Close)

	return server
}

// TestGetOperation represents a generic get operation test case.
type TestGetOperation struct {
	Name         string
	ID           string
	ExpectedPath string
	StatusCode   int
	Response     string
	WantErr      bool
	ErrMessage   string
}

// RunGetTests runs a series of get operation tests.
func RunGetTests[T hapio.Entity](
	t *testing.T,
	tests []TestGetOperation,
	getFunc func(*Client) func(context.Context, string) (T, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			recorder := &RequestRecorder{}

			server := NewRecordingServer(t, testCase.StatusCode, testCase.Response, recorder)
			client := NewTestClient(server.URL + "/v1/")

			result, err := getFunc(client)(context.Background(), testCase.ID)

			assert.Equal(t, http.MethodGet, recorder.Last().Method)
			assert.Equal(t, testCase.ExpectedPath, recorder.Last().Path)

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.ErrMessage != "" {
					assert.Contains(t, err.Error(), testCase.ErrMessage)
				}

				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, testCase.ID, result.Get("id"))
			}
		})
	}
}

// TestDeleteOperation represents a generic delete operation test case.
type TestDeleteOperation struct {
	Name         string
	ID           string
	ExpectedPath string
	StatusCode   int
	Response     string
	Deleted      bool
	WantErr      bool
}

// RunDeleteTests runs a series of delete operation tests.
func RunDeleteTests(
	t *testing.T,
	tests []TestDeleteOperation,
	deleteFunc func(*Client) func(context.Context, string) (bool, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			recorder := &RequestRecorder{}

			server := NewRecordingServer(t, testCase.StatusCode, testCase.Response, recorder)
			client := NewTestClient(server.URL + "/v1/")

			deleted, err := deleteFunc(client)(context.Background(), testCase.ID)

			assert.Equal(t, http.MethodDelete, recorder.Last().Method)
			assert.Equal(t, testCase.ExpectedPath, recorder.Last().Path)

			if testCase.WantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, testCase.Deleted, deleted)
		})
	}
}
