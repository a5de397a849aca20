package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// API endpoint defaults.
const (
	// DefaultBaseURL is the Hapio API root every repository path is resolved against.
	DefaultBaseURL = "https://eu-central-1.hapio.net/v1/"

	// DefaultUserAgent is sent when the caller does not configure one.
	DefaultUserAgent = "hapio-client-go/1.0"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the fixed client-wide request timeout.
	DefaultHTTPTimeout = 30 * time.Second
)

// HTTP headers and media types.
const (
	// MediaTypeJSON is used for both Accept and Content-Type.
	MediaTypeJSON = "application/json"

	// HeaderRequestID carries a per-request correlation id.
	HeaderRequestID = "X-Request-Id"
)

// Date and time formats.
const (
	// DateTimeLayout renders instants as W3C/ISO-8601 with an explicit offset.
	DateTimeLayout = "2006-01-02T15:04:05-07:00"

	// DateLayout is used by date-only values like recurring schedule bounds.
	DateLayout = "2006-01-02"
)

// Pagination and display limits.
const (
	// StandardPageSize is the page size the CLI asks for.
	StandardPageSize = 50

	// MaxPageSize is the upper bound accepted by the API.
	MaxPageSize = 100
)

// Query encoding.
const (
	// QueryTrue and QueryFalse are how booleans travel in query strings.
	QueryTrue  = "1"
	QueryFalse = "0"
)

// Format constants.
const (
	// FormatJSON selects JSON output.
	FormatJSON = "json"

	// FormatYAML selects YAML output.
	FormatYAML = "yaml"

	// FormatTable selects table output.
	FormatTable = "table"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// CheckMarkSymbol marks boolean true values in tables.
	CheckMarkSymbol = "✓"
)
