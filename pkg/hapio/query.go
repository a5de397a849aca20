package hapio

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/hapio-client/internal/constants"
)

// QueryParams are the query parameters of a list request. Values may be
// strings, numbers, booleans, time.Time, slices or maps; ToValues encodes
// them for the wire.
type QueryParams map[string]interface{}

// NewQueryParams creates empty query parameters.
func NewQueryParams() QueryParams {
	return QueryParams{}
}

// WithPage sets the page number.
func (q QueryParams) WithPage(page int) QueryParams {
	q["page"] = page

	return q
}

// WithPerPage sets the number of items per page.
func (q QueryParams) WithPerPage(perPage int) QueryParams {
	q["per_page"] = perPage

	return q
}

// WithTime sets a date/time parameter such as "from" or "to".
func (q QueryParams) WithTime(key string, t time.Time) QueryParams {
	q[key] = t

	return q
}

// With sets an arbitrary parameter.
func (q QueryParams) With(key string, value interface{}) QueryParams {
	q[key] = value

	return q
}

// Clone returns a shallow copy.
func (q QueryParams) Clone() QueryParams {
	clone := make(QueryParams, len(q))
	for key, value := range q {
		clone[key] = value
	}

	return clone
}

// FormatQuery renders date/time values as ISO-8601 strings with offset and
// zones as their names. Every other value passes through unchanged.
func FormatQuery(params map[string]interface{}) map[string]interface{} {
	formatted := make(map[string]interface{}, len(params))

	for key, value := range params {
		switch typed := value.(type) {
		case time.Time:
			formatted[key] = FormatDateTime(typed)
		case *time.Time:
			if typed == nil {
				formatted[key] = nil
			} else {
				formatted[key] = FormatDateTime(*typed)
			}
		case *time.Location:
			formatted[key] = typed.String()
		default:
			formatted[key] = value
		}
	}

	return formatted
}

// ToValues formats the parameters and encodes them as url.Values. Lists
// become key[] entries and maps key[sub] entries. Nil values are skipped.
func (q QueryParams) ToValues() url.Values {
	values := url.Values{}

	for key, value := range FormatQuery(q) {
		encodeQueryValue(values, key, value)
	}

	return values
}

func encodeQueryValue(values url.Values, key string, value interface{}) {
	switch typed := value.(type) {
	case nil:
	case []string:
		for _, item := range typed {
			values.Add(key+"[]", item)
		}
	case []interface{}:
		for _, item := range typed {
			values.Add(key+"[]", scalarString(item))
		}
	case map[string]string:
		for sub, item := range typed {
			values.Add(key+"["+sub+"]", item)
		}
	case map[string]interface{}:
		for sub, item := range typed {
			encodeQueryValue(values, key+"["+sub+"]", item)
		}
	default:
		values.Add(key, scalarString(value))
	}
}

func scalarString(value interface{}) string {
	switch typed := value.(type) {
	case string:
		return typed
	case bool:
		if typed {
			return constants.QueryTrue
		}

		return constants.QueryFalse
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case json.Number:
		return typed.String()
	case time.Time:
		return FormatDateTime(typed)
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(value)
	}
}

// QueryParamsFromValues converts a parsed query string back into
// parameters. Values stay strings; key[] entries become string slices and
// key[sub] entries one-level maps.
func QueryParamsFromValues(values url.Values) QueryParams {
	params := make(QueryParams, len(values))

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		items := values[key]
		if len(items) == 0 {
			continue
		}

		if name, ok := strings.CutSuffix(key, "[]"); ok {
			list, _ := params[name].([]string)
			params[name] = append(list, items...)

			continue
		}

		if open := strings.Index(key, "["); open > 0 && strings.HasSuffix(key, "]") {
			name, sub := key[:open], key[open+1:len(key)-1]

			nested, ok := params[name].(map[string]interface{})
			if !ok {
				nested = make(map[string]interface{})
				params[name] = nested
			}

			nested[sub] = items[len(items)-1]

			continue
		}

		params[key] = items[len(items)-1]
	}

	return params
}

// QueryParamsFromLink extracts the query parameters of a pagination link.
func QueryParamsFromLink(link string) (QueryParams, error) {
	parsed, err := url.Parse(link)
	if err != nil {
		return nil, fmt.Errorf("parsing link %q: %w", link, err)
	}

	return QueryParamsFromValues(parsed.Query()), nil
}
