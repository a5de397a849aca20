package hapio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // zone names must resolve on hosts without a tz database
	"unicode"

	"github.com/fivetwenty-io/hapio-client/internal/constants"
)

// Entity is a typed domain record hydrated from and serialized to JSON.
type Entity interface {
	Kind() EntityKind
	Schema() *Schema
	Get(key string) interface{}
	Set(key string, value interface{})
	Has(key string) bool
	Unset(key string)
	Hydrate(raw map[string]interface{})
	ToMap(asInput bool) map[string]interface{}
}

// Model holds the properties of an entity, governed by its schema.
// Concrete entities embed it and add typed accessors.
type Model struct {
	schema     *Schema
	properties map[string]interface{}
}

func newModel(schema *Schema) Model {
	return Model{
		schema:     schema,
		properties: make(map[string]interface{}),
	}
}

// Kind implements Entity.Kind.
func (m *Model) Kind() EntityKind {
	return m.schema.kind
}

// Schema implements Entity.Schema.
func (m *Model) Schema() *Schema {
	return m.schema
}

// Get returns the stored value of key, or nil.
func (m *Model) Get(key string) interface{} {
	return m.properties[SnakeCase(key)]
}

// Set stores value under key without casting. Undeclared keys are ignored.
func (m *Model) Set(key string, value interface{}) {
	key = SnakeCase(key)
	if !m.schema.Allows(key) {
		return
	}

	if m.properties == nil {
		m.properties = make(map[string]interface{})
	}

	m.properties[key] = value
}

// Has reports whether key holds a value.
func (m *Model) Has(key string) bool {
	_, ok := m.properties[SnakeCase(key)]

	return ok
}

// Unset removes key.
func (m *Model) Unset(key string) {
	delete(m.properties, SnakeCase(key))
}

// Hydrate copies the declared properties of raw into the model, casting
// values according to the schema. Unknown keys are dropped.
func (m *Model) Hydrate(raw map[string]interface{}) {
	for key, value := range raw {
		key = SnakeCase(key)

		rule, ok := m.schema.Rule(key)
		if !ok {
			continue
		}

		m.Set(key, castValue(rule, value))
	}
}

// ToMap serializes the model. In input mode nested entities are collapsed
// to a <key>_id reference. Entities inside arrays are always serialized in
// full.
func (m *Model) ToMap(asInput bool) map[string]interface{} {
	result := make(map[string]interface{}, len(m.properties))

	for _, field := range m.schema.fields {
		value, ok := m.properties[field.Name]
		if !ok {
			continue
		}

		if nested, isEntity := value.(Entity); isEntity && asInput {
			result[field.Name+"_id"] = nested.Get("id")

			continue
		}

		result[field.Name] = serializeValue(value, asInput)
	}

	return result
}

// MarshalJSON encodes the full representation.
func (m *Model) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(m.ToMap(false))
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", m.schema.kind, err)
	}

	return data, nil
}

// UnmarshalJSON hydrates the model from a JSON object.
func (m *Model) UnmarshalJSON(data []byte) error {
	raw, err := DecodeObject(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", m.schema.kind, err)
	}

	m.Hydrate(raw)

	return nil
}

// DecodeObject decodes a JSON object keeping numbers as json.Number.
func DecodeObject(data []byte) (map[string]interface{}, error) {
	var raw map[string]interface{}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	err := decoder.Decode(&raw)
	if err != nil {
		return nil, err
	}

	if raw == nil {
		return nil, ErrNotAnObject
	}

	return raw, nil
}

func castValue(rule CastRule, value interface{}) interface{} {
	if value == nil {
		return nil
	}

	switch rule.Type {
	case CastNested:
		return castEntity(rule.Kind, value)
	case CastEntityArray:
		items, ok := value.([]interface{})
		if !ok {
			return value
		}

		cast := make([]interface{}, len(items))
		for i, item := range items {
			cast[i] = castEntity(rule.Kind, item)
		}

		return cast
	case CastDateTime:
		text, ok := value.(string)
		if !ok {
			return value
		}

		parsed, err := ParseDateTime(text)
		if err != nil {
			return value
		}

		return parsed
	case CastTimeZone:
		name, ok := value.(string)
		if !ok {
			return value
		}

		location, err := time.LoadLocation(name)
		if err != nil {
			return value
		}

		return location
	case CastScalar:
	}

	return value
}

func castEntity(kind EntityKind, value interface{}) interface{} {
	if entity, ok := value.(Entity); ok && entity.Kind() == kind {
		return value
	}

	raw, ok := value.(map[string]interface{})
	if !ok {
		return value
	}

	entity := NewEntity(kind)
	if entity == nil {
		return value
	}

	entity.Hydrate(raw)

	return entity
}

func serializeValue(value interface{}, asInput bool) interface{} {
	switch typed := value.(type) {
	case time.Time:
		return FormatDateTime(typed)
	case *time.Location:
		return typed.String()
	case Entity:
		return typed.ToMap(asInput)
	case []interface{}:
		items := make([]interface{}, len(typed))
		for i, item := range typed {
			items[i] = serializeValue(item, false)
		}

		return items
	default:
		return value
	}
}

// FormatDateTime renders t as ISO-8601 with an explicit offset. Precision
// is whole seconds; fractional seconds are truncated.
func FormatDateTime(t time.Time) string {
	return t.Format(constants.DateTimeLayout)
}

// ParseDateTime parses an ISO-8601 timestamp. Fractional seconds and a Z
// suffix are accepted.
func ParseDateTime(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date time %q: %w", value, err)
	}

	return parsed, nil
}

// SnakeCase canonicalizes a property key: every upper-case letter except a
// leading one is prefixed with an underscore, then the key is lower-cased.
func SnakeCase(key string) string {
	hasUpper := false

	for _, r := range key {
		if unicode.IsUpper(r) {
			hasUpper = true

			break
		}
	}

	if !hasUpper {
		return key
	}

	var builder strings.Builder

	builder.Grow(len(key) + 4)

	for i, r := range key {
		if i > 0 && unicode.IsUpper(r) {
			builder.WriteByte('_')
		}

		builder.WriteRune(unicode.ToLower(r))
	}

	return builder.String()
}

// Typed accessors shared by the concrete entities.

func (m *Model) stringValue(key string) string {
	switch value := m.properties[key].(type) {
	case string:
		return value
	case json.Number:
		return value.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(value)
	}
}

func (m *Model) intValue(key string) int {
	switch value := m.properties[key].(type) {
	case int:
		return value
	case int64:
		return int(value)
	case float64:
		return int(value)
	case json.Number:
		n, err := value.Int64()
		if err != nil {
			f, ferr := value.Float64()
			if ferr != nil {
				return 0
			}

			return int(f)
		}

		return int(n)
	case string:
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0
		}

		return n
	default:
		return 0
	}
}

func (m *Model) boolValue(key string) bool {
	value, _ := m.properties[key].(bool)

	return value
}

func (m *Model) timeValue(key string) time.Time {
	value, _ := m.properties[key].(time.Time)

	return value
}

func (m *Model) locationValue(key string) *time.Location {
	value, _ := m.properties[key].(*time.Location)

	return value
}

func (m *Model) mapValue(key string) map[string]interface{} {
	value, _ := m.properties[key].(map[string]interface{})

	return value
}

func (m *Model) listValue(key string) []interface{} {
	value, _ := m.properties[key].([]interface{})

	return value
}
