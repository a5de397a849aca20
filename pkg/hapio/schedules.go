package hapio

import "time"

var scheduleBlockSchema = NewSchema(KindScheduleBlock, fieldsOf(
	scalars("id", "location_id"),
	field("location", Nested(KindLocation)),
	field("starts_at", DateTime()),
	field("ends_at", DateTime()),
	scalars("is_available", "created_at", "updated_at"),
)...)

// ScheduleBlock is a one-off window of availability (or unavailability)
// for a resource at a location.
type ScheduleBlock struct {
	Model
}

// NewScheduleBlock creates an empty schedule block.
func NewScheduleBlock() *ScheduleBlock {
	return &ScheduleBlock{Model: newModel(scheduleBlockSchema)}
}

func (b *ScheduleBlock) ID() string { return b.stringValue("id") }
func (b *ScheduleBlock) LocationID() string { return b.stringValue("location_id") }
func (b *ScheduleBlock) StartsAt() time.Time { return b.timeValue("starts_at") }
func (b *ScheduleBlock) EndsAt() time.Time { return b.timeValue("ends_at") }
func (b *ScheduleBlock) IsAvailable() bool { return b.boolValue("is_available") }
func (b *ScheduleBlock) CreatedAt() time.Time { return b.timeValue("created_at") }
func (b *ScheduleBlock) UpdatedAt() time.Time { return b.timeValue("updated_at") }

// Location returns the expanded location, if the response included it.
func (b *ScheduleBlock) Location() *Location {
	location, _ := b.Get("location").(*Location)

	return location
}

func (b *ScheduleBlock) SetLocationID(id string) { b.Set("location_id", id) }
func (b *ScheduleBlock) SetLocation(location *Location) { b.Set("location", location) }
func (b *ScheduleBlock) SetStartsAt(t time.Time) { b.Set("starts_at", t) }
func (b *ScheduleBlock) SetEndsAt(t time.Time) { b.Set("ends_at", t) }
func (b *ScheduleBlock) SetIsAvailable(available bool) { b.Set("is_available", available) }

var recurringScheduleSchema = NewSchema(KindRecurringSchedule, fieldsOf(
	scalars("id", "location_id"),
	field("location", Nested(KindLocation)),
	scalars("start_date", "end_date", "created_at", "updated_at"),
)...)

// RecurringSchedule groups weekly recurring blocks between two dates.
// StartDate and EndDate are plain dates ("2006-01-02"); EndDate may be empty.
type RecurringSchedule struct {
	Model
}

// NewRecurringSchedule creates an empty recurring schedule.
func NewRecurringSchedule() *RecurringSchedule {
	return &RecurringSchedule{Model: newModel(recurringScheduleSchema)}
}

func (s *RecurringSchedule) ID() string { return s.stringValue("id") }
func (s *RecurringSchedule) LocationID() string { return s.stringValue("location_id") }
func (s *RecurringSchedule) StartDate() string { return s.stringValue("start_date") }
func (s *RecurringSchedule) EndDate() string { return s.stringValue("end_date") }
func (s *RecurringSchedule) CreatedAt() time.Time { return s.timeValue("created_at") }
func (s *RecurringSchedule) UpdatedAt() time.Time { return s.timeValue("updated_at") }

// Location returns the expanded location, if present.
func (s *RecurringSchedule) Location() *Location {
	location, _ := s.Get("location").(*Location)

	return location
}

func (s *RecurringSchedule) SetLocationID(id string) { s.Set("location_id", id) }
func (s *RecurringSchedule) SetLocation(location *Location) { s.Set("location", location) }
func (s *RecurringSchedule) SetStartDate(date string) { s.Set("start_date", date) }
func (s *RecurringSchedule) SetEndDate(date string) { s.Set("end_date", date) }

var recurringScheduleBlockSchema = NewSchema(KindRecurringScheduleBlock, scalars(
	"id", "weekday", "start_time", "end_time", "created_at", "updated_at",
)...)

// RecurringScheduleBlock is a weekly time window inside a recurring schedule.
type RecurringScheduleBlock struct {
	Model
}

// NewRecurringScheduleBlock creates an empty recurring schedule block.
func NewRecurringScheduleBlock() *RecurringScheduleBlock {
	return &RecurringScheduleBlock{Model: newModel(recurringScheduleBlockSchema)}
}

func (b *RecurringScheduleBlock) ID() string { return b.stringValue("id") }
func (b *RecurringScheduleBlock) Weekday() string { return b.stringValue("weekday") }
func (b *RecurringScheduleBlock) StartTime() string { return b.stringValue("start_time") }
func (b *RecurringScheduleBlock) EndTime() string { return b.stringValue("end_time") }
func (b *RecurringScheduleBlock) CreatedAt() time.Time { return b.timeValue("created_at") }
func (b *RecurringScheduleBlock) UpdatedAt() time.Time { return b.timeValue("updated_at") }

func (b *RecurringScheduleBlock) SetWeekday(weekday string) { b.Set("weekday", weekday) }
func (b *RecurringScheduleBlock) SetStartTime(start string) { b.Set("start_time", start) }
func (b *RecurringScheduleBlock) SetEndTime(end string) { b.Set("end_time", end) }

var timeSpanSchema = NewSchema(KindTimeSpan,
	Field{Name: "starts_at", Cast: DateTime()},
	Field{Name: "ends_at", Cast: DateTime()},
)

// TimeSpan is a half-open interval returned by the schedule and
// fully-booked views.
type TimeSpan struct {
	Model
}

// NewTimeSpan creates an empty time span.
func NewTimeSpan() *TimeSpan {
	return &TimeSpan{Model: newModel(timeSpanSchema)}
}

func (s *TimeSpan) StartsAt() time.Time { return s.timeValue("starts_at") }
func (s *TimeSpan) EndsAt() time.Time { return s.timeValue("ends_at") }

var bookableSlotSchema = NewSchema(KindBookableSlot, fieldsOf(
	field("starts_at", DateTime()),
	field("ends_at", DateTime()),
	field("min_ends_at", DateTime()),
	field("buffer_starts_at", DateTime()),
	field("buffer_ends_at", DateTime()),
	field("min_buffer_ends_at", DateTime()),
	field("resources", EntityArray(KindResource)),
)...)

// BookableSlot is a window a service can be booked in, together with the
// resources available for it.
type BookableSlot struct {
	Model
}

// NewBookableSlot creates an empty bookable slot.
func NewBookableSlot() *BookableSlot {
	return &BookableSlot{Model: newModel(bookableSlotSchema)}
}

func (s *BookableSlot) StartsAt() time.Time { return s.timeValue("starts_at") }
func (s *BookableSlot) EndsAt() time.Time { return s.timeValue("ends_at") }
func (s *BookableSlot) MinEndsAt() time.Time { return s.timeValue("min_ends_at") }
func (s *BookableSlot) BufferStartsAt() time.Time { return s.timeValue("buffer_starts_at") }
func (s *BookableSlot) BufferEndsAt() time.Time { return s.timeValue("buffer_ends_at") }
func (s *BookableSlot) MinBufferEndsAt() time.Time { return s.timeValue("min_buffer_ends_at") }

// Resources returns the hydrated resources of the slot.
func (s *BookableSlot) Resources() []*Resource {
	items := s.listValue("resources")
	resources := make([]*Resource, 0, len(items))

	for _, item := range items {
		if resource, ok := item.(*Resource); ok {
			resources = append(resources, resource)
		}
	}

	return resources
}
