package hapio

// EntityKind identifies a concrete entity type.
type EntityKind string

// Entity kinds known to the client.
const (
	KindProject                    EntityKind = "project"
	KindLocation                   EntityKind = "location"
	KindResource                   EntityKind = "resource"
	KindService                    EntityKind = "service"
	KindScheduleBlock              EntityKind = "schedule_block"
	KindRecurringSchedule          EntityKind = "recurring_schedule"
	KindRecurringScheduleBlock     EntityKind = "recurring_schedule_block"
	KindBooking                    EntityKind = "booking"
	KindBookingGroup               EntityKind = "booking_group"
	KindBookableSlot               EntityKind = "bookable_slot"
	KindTimeSpan                   EntityKind = "time_span"
	KindResourceServiceAssociation EntityKind = "resource_service_association"
)

// CastType is the tag of a CastRule.
type CastType int

// Cast rule tags.
const (
	// CastScalar stores the raw decoded value.
	CastScalar CastType = iota
	// CastNested hydrates a JSON object into a single entity.
	CastNested
	// CastEntityArray hydrates every object of a JSON array into an entity.
	CastEntityArray
	// CastDateTime parses an ISO-8601 string into a time.Time.
	CastDateTime
	// CastTimeZone loads an IANA zone name into a *time.Location.
	CastTimeZone
)

// CastRule describes how a property value is converted during hydration.
type CastRule struct {
	Type CastType
	// Kind is the target entity kind for CastNested and CastEntityArray.
	Kind EntityKind
}

// Scalar is the passthrough rule.
func Scalar() CastRule { return CastRule{Type: CastScalar} }

// Nested casts an object into a single entity of kind.
func Nested(kind EntityKind) CastRule { return CastRule{Type: CastNested, Kind: kind} }

// EntityArray casts a list of objects into entities of kind.
func EntityArray(kind EntityKind) CastRule { return CastRule{Type: CastEntityArray, Kind: kind} }

// DateTime casts a string into a time.Time.
func DateTime() CastRule { return CastRule{Type: CastDateTime} }

// TimeZone casts a zone name into a *time.Location.
func TimeZone() CastRule { return CastRule{Type: CastTimeZone} }

// Field is one declared property of an entity.
type Field struct {
	Name string
	Cast CastRule
}

// Schema is the allowed property set of an entity kind, in declaration order.
type Schema struct {
	kind   EntityKind
	fields []Field
	index  map[string]int
}

// NewSchema builds a schema. created_at and updated_at default to DateTime
// unless declared explicitly.
func NewSchema(kind EntityKind, fields ...Field) *Schema {
	schema := &Schema{
		kind:  kind,
		index: make(map[string]int, len(fields)),
	}

	for _, field := range fields {
		if field.Cast.Type == CastScalar && (field.Name == "created_at" || field.Name == "updated_at") {
			field.Cast = DateTime()
		}

		schema.index[field.Name] = len(schema.fields)
		schema.fields = append(schema.fields, field)
	}

	return schema
}

// Kind returns the entity kind the schema describes.
func (s *Schema) Kind() EntityKind {
	return s.kind
}

// Fields returns a copy of the declared fields.
func (s *Schema) Fields() []Field {
	fields := make([]Field, len(s.fields))
	copy(fields, s.fields)

	return fields
}

// Allows reports whether key (already canonical) is a declared property.
func (s *Schema) Allows(key string) bool {
	_, ok := s.index[key]

	return ok
}

// Rule returns the cast rule of key. Undeclared keys report false.
func (s *Schema) Rule(key string) (CastRule, bool) {
	i, ok := s.index[key]
	if !ok {
		return CastRule{}, false
	}

	return s.fields[i].Cast, true
}

// scalars declares passthrough fields.
func scalars(names ...string) []Field {
	fields := make([]Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, Field{Name: name, Cast: Scalar()})
	}

	return fields
}

func fieldsOf(groups ...[]Field) []Field {
	var fields []Field
	for _, group := range groups {
		fields = append(fields, group...)
	}

	return fields
}

func field(name string, cast CastRule) []Field {
	return []Field{{Name: name, Cast: cast}}
}

// entityFactories maps a kind to its constructor. Nested casts resolve their
// target through this table, so schemas can reference each other freely.
var entityFactories = map[EntityKind]func() Entity{
	KindProject:                    func() Entity { return NewProject() },
	KindLocation:                   func() Entity { return NewLocation() },
	KindResource:                   func() Entity { return NewResource() },
	KindService:                    func() Entity { return NewService() },
	KindScheduleBlock:              func() Entity { return NewScheduleBlock() },
	KindRecurringSchedule:          func() Entity { return NewRecurringSchedule() },
	KindRecurringScheduleBlock:     func() Entity { return NewRecurringScheduleBlock() },
	KindBooking:                    func() Entity { return NewBooking() },
	KindBookingGroup:               func() Entity { return NewBookingGroup() },
	KindBookableSlot:               func() Entity { return NewBookableSlot() },
	KindTimeSpan:                   func() Entity { return NewTimeSpan() },
	KindResourceServiceAssociation: func() Entity { return NewResourceServiceAssociation() },
}

// NewEntity constructs an empty entity of kind, or nil for an unknown kind.
func NewEntity(kind EntityKind) Entity {
	factory, ok := entityFactories[kind]
	if !ok {
		return nil
	}

	return factory()
}
