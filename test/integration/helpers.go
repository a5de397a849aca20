//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/hapio-client/pkg/hapio"
	"github.com/fivetwenty-io/hapio-client/pkg/hapioclient"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Endpoint string
	Token    string
	Verbose  bool
}

// LoadTestConfig loads configuration from the environment, falling back to
// a .env file at the repository root.
func LoadTestConfig() *TestConfig {
	_ = godotenv.Load("../../.env")

	return &TestConfig{
		Endpoint: os.Getenv("HAPIO_API_ENDPOINT"),
		Token:    os.Getenv("HAPIO_API_TOKEN"),
		Verbose:  os.Getenv("HAPIO_VERBOSE") == "true",
	}
}

// SkipIfMissingConfig skips the test when no API token is configured
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Token == "" {
		t.Skip("HAPIO_API_TOKEN not set, skipping integration test")
	}
}

// NewClient builds a client against the configured project
func (config *TestConfig) NewClient(t *testing.T) (hapio.Client, *hapio.MetricsCollector) {
	t.Helper()

	metrics := hapio.NewMetricsCollector()
	chain := hapio.NewInterceptorChain()
	chain.AddRequestInterceptor(hapio.RequestIDInterceptor())
	metrics.Install(chain)

	cfg := hapio.DefaultConfig()
	cfg.Token = config.Token
	cfg.Interceptors = chain

	if config.Endpoint != "" {
		cfg.BaseURL = config.Endpoint
	}

	if config.Verbose {
		cfg.Debug = true
		cfg.Logger = &testLogger{t: t}
	}

	client, err := hapioclient.New(context.Background(), cfg)
	require.NoError(t, err)

	return client, metrics
}

type testLogger struct {
	t *testing.T
}

func (l *testLogger) Debug(msg string, fields map[string]interface{}) { l.t.Logf("DEBUG %s %v", msg, fields) }
func (l *testLogger) Info(msg string, fields map[string]interface{})  { l.t.Logf("INFO %s %v", msg, fields) }
func (l *testLogger) Warn(msg string, fields map[string]interface{})  { l.t.Logf("WARN %s %v", msg, fields) }
func (l *testLogger) Error(msg string, fields map[string]interface{}) { l.t.Logf("ERROR %s %v", msg, fields) }
