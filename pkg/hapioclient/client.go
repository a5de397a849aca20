// Package hapioclient provides the main entry point for creating Hapio API clients
package hapioclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/hapio-client/internal/client"
	"github.com/fivetwenty-io/hapio-client/internal/constants"
	"github.com/fivetwenty-io/hapio-client/pkg/hapio"
)

// New creates a new Hapio API client.
func New(ctx context.Context, config *hapio.Config) (hapio.Client, error) {
	if config == nil || config.Token == "" {
		return nil, hapio.ErrTokenRequired
	}

	normalized := *config

	if normalized.BaseURL != "" {
		baseURL, err := NormalizeBaseURL(normalized.BaseURL)
		if err != nil {
			return nil, err
		}

		normalized.BaseURL = baseURL
	}

	// Use the internal client implementation
	c, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NormalizeBaseURL adds a missing https scheme and the trailing slash
// repository paths are resolved against.
func NormalizeBaseURL(raw string) (string, error) {
	endpoint := strings.TrimSpace(raw)
	if endpoint == "" {
		return constants.DefaultBaseURL, nil
	}

	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	parsed, err := url.Parse(endpoint)
	if err != nil || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q", hapio.ErrInvalidBaseURL, raw)
	}

	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}

	return parsed.String(), nil
}

// NewWithToken creates a new client for the default endpoint.
func NewWithToken(ctx context.Context, token string) (hapio.Client, error) {
	return New(ctx, &hapio.Config{
		Token: token,
	})
}

// NewWithEndpoint creates a new client with an API root and token.
func NewWithEndpoint(ctx context.Context, endpoint, token string) (hapio.Client, error) {
	return New(ctx, &hapio.Config{
		BaseURL: endpoint,
		Token:   token,
	})
}
