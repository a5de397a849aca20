package hapio

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Static errors for err113 compliance.
var (
	ErrNotAnObject       = errors.New("response body is not a JSON object")
	ErrParentIDCount     = errors.New("wrong number of parent IDs")
	ErrUnknownRepository = errors.New("call to undefined repository")
	ErrTokenRequired     = errors.New("API token is required")
	ErrInvalidBaseURL    = errors.New("invalid base URL")
)

// RequestError is returned for any failed request: a non-2xx response or a
// transport failure (StatusCode 0).
type RequestError struct {
	StatusCode int
	Message    string
	Body       []byte
	Err        error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("hapio request failed: %s", e.Message)
	}

	return fmt.Sprintf("hapio API error (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap returns the underlying transport error, if any.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// ValidationError is a RequestError for HTTP 422 responses carrying the
// field-level errors reported by the API.
type ValidationError struct {
	RequestError

	// Errors maps a field path such as "items.2.name" to its messages.
	Errors map[string][]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("hapio validation failed: %s", e.Message)
}

// Unwrap exposes the embedded RequestError so errors.As matches both kinds.
func (e *ValidationError) Unwrap() []error {
	return []error{&e.RequestError}
}

// FieldErrors returns the messages reported for field.
func (e *ValidationError) FieldErrors(field string) []string {
	return e.Errors[field]
}

// errorBody is the JSON shape of an API error response.
type errorBody struct {
	Message  string                     `json:"message"`
	Messages map[string]json.RawMessage `json:"messages"`
	Errors   map[string]json.RawMessage `json:"errors"`
}

// NewRequestError builds a RequestError from a failed response.
func NewRequestError(statusCode int, body []byte) *RequestError {
	parsed, _ := parseErrorBody(body)

	return &RequestError{
		StatusCode: statusCode,
		Message:    errorMessage(statusCode, parsed),
		Body:       body,
	}
}

// NewValidationError builds a ValidationError from a 422 response. Errors is
// empty, never nil, when the body has no errors key.
func NewValidationError(statusCode int, body []byte) *ValidationError {
	parsed, _ := parseErrorBody(body)

	validationErr := &ValidationError{
		RequestError: RequestError{
			StatusCode: statusCode,
			Message:    errorMessage(statusCode, parsed),
			Body:       body,
		},
		Errors: make(map[string][]string),
	}

	if parsed != nil {
		for field, raw := range parsed.Errors {
			validationErr.Errors[field] = decodeMessages(raw)
		}
	}

	return validationErr
}

// NewTransportError wraps a failure that produced no HTTP response.
func NewTransportError(err error) *RequestError {
	return &RequestError{
		Message: err.Error(),
		Err:     err,
	}
}

// parseErrorBody decodes each known key on its own, so a key of an
// unexpected shape (an empty map may arrive as []) leaves the others intact.
func parseErrorBody(body []byte) (*errorBody, error) {
	if len(body) == 0 {
		return nil, ErrNotAnObject
	}

	var raw map[string]json.RawMessage

	err := json.Unmarshal(body, &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal error response: %w", err)
	}

	if raw == nil {
		return nil, ErrNotAnObject
	}

	var parsed errorBody

	if value, ok := raw["message"]; ok {
		_ = json.Unmarshal(value, &parsed.Message)
	}

	if value, ok := raw["messages"]; ok {
		_ = json.Unmarshal(value, &parsed.Messages)
	}

	if value, ok := raw["errors"]; ok {
		_ = json.Unmarshal(value, &parsed.Errors)
	}

	return &parsed, nil
}

// errorMessage prefers the field-joined messages mapping, then message,
// then the HTTP status text.
func errorMessage(statusCode int, body *errorBody) string {
	if body != nil {
		if joined := joinFieldMessages(body.Messages); joined != "" {
			return joined
		}

		if body.Message != "" {
			return body.Message
		}
	}

	if text := http.StatusText(statusCode); text != "" {
		return fmt.Sprintf("%d %s", statusCode, text)
	}

	return strconv.Itoa(statusCode)
}

func joinFieldMessages(messages map[string]json.RawMessage) string {
	if len(messages) == 0 {
		return ""
	}

	fields := make([]string, 0, len(messages))
	for field := range messages {
		fields = append(fields, field)
	}

	sort.Strings(fields)

	parts := make([]string, 0, len(fields))

	for _, field := range fields {
		path := FormatFieldPath(field)
		for _, message := range decodeMessages(messages[field]) {
			parts = append(parts, path+": "+message)
		}
	}

	return strings.Join(parts, " ")
}

// decodeMessages accepts either a single string or a list of strings.
func decodeMessages(raw json.RawMessage) []string {
	var list []string

	err := json.Unmarshal(raw, &list)
	if err == nil {
		return list
	}

	var single string

	err = json.Unmarshal(raw, &single)
	if err == nil {
		return []string{single}
	}

	return []string{string(raw)}
}

// FormatFieldPath renders a dotted field path for humans: "items.2.name"
// becomes "Items[2].name".
func FormatFieldPath(path string) string {
	segments := strings.Split(path, ".")

	var builder strings.Builder

	for i, segment := range segments {
		switch {
		case i == 0:
			builder.WriteString(capitalize(segment))
		case isIndex(segment):
			builder.WriteString("[" + segment + "]")
		default:
			builder.WriteString("." + segment)
		}
	}

	return builder.String()
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

func isIndex(segment string) bool {
	if segment == "" {
		return false
	}

	for _, r := range segment {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// IsValidationError reports whether err carries field-level validation errors.
func IsValidationError(err error) bool {
	validationErr := &ValidationError{}

	return errors.As(err, &validationErr)
}

// AsValidationError returns the ValidationError in err's chain, if any.
func AsValidationError(err error) (*ValidationError, bool) {
	validationErr := &ValidationError{}
	if errors.As(err, &validationErr) {
		return validationErr, true
	}

	return nil, false
}

// StatusCode returns the HTTP status of a RequestError in err's chain, or 0.
func StatusCode(err error) int {
	requestErr := &RequestError{}
	if errors.As(err, &requestErr) {
		return requestErr.StatusCode
	}

	return 0
}

// IsNotFound checks if the error is a 404 response.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error is a 401 response.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error is a 403 response.
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}
