package constants

import "errors"

// Configuration errors.
var (
	ErrNoToken          = errors.New("no API token configured, use 'hapio config set-token' or set HAPIO_TOKEN")
	ErrEmptyToken       = errors.New("token must not be empty")
	ErrInvalidOutput    = errors.New("invalid output format, expected table, json or yaml")
	ErrInvalidParameter = errors.New("invalid --param value, expected key=value")
)
