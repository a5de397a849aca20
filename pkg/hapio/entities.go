package hapio

import "time"

var projectSchema = NewSchema(KindProject, scalars(
	"id", "name", "enabled", "created_at", "updated_at",
)...)

// Project is the API project the token belongs to.
type Project struct {
	Model
}

// NewProject creates an empty project.
func NewProject() *Project {
	return &Project{Model: newModel(projectSchema)}
}

func (p *Project) ID() string { return p.stringValue("id") }
func (p *Project) Name() string { return p.stringValue("name") }
func (p *Project) Enabled() bool { return p.boolValue("enabled") }
func (p *Project) CreatedAt() time.Time { return p.timeValue("created_at") }
func (p *Project) UpdatedAt() time.Time { return p.timeValue("updated_at") }

var locationSchema = NewSchema(KindLocation, fieldsOf(
	scalars("id", "name"),
	field("time_zone", TimeZone()),
	scalars(
		"resource_selection_strategy", "resource_selection_priority",
		"metadata", "protected_metadata", "enabled", "created_at", "updated_at",
	),
)...)

// Location is a physical or virtual place where resources are booked.
type Location struct {
	Model
}

// NewLocation creates an empty location.
func NewLocation() *Location {
	return &Location{Model: newModel(locationSchema)}
}

func (l *Location) ID() string { return l.stringValue("id") }
func (l *Location) Name() string { return l.stringValue("name") }
func (l *Location) TimeZone() *time.Location { return l.locationValue("time_zone") }
func (l *Location) ResourceSelectionStrategy() string { return l.stringValue("resource_selection_strategy") }
func (l *Location) Metadata() map[string]interface{} { return l.mapValue("metadata") }
func (l *Location) Enabled() bool { return l.boolValue("enabled") }
func (l *Location) CreatedAt() time.Time { return l.timeValue("created_at") }
func (l *Location) UpdatedAt() time.Time { return l.timeValue("updated_at") }

// ResourceSelectionPriority returns the ordered resource ids used by the
// "priority" selection strategy.
func (l *Location) ResourceSelectionPriority() []string {
	return stringList(l.listValue("resource_selection_priority"))
}

// ProtectedMetadata is only visible to secret tokens.
func (l *Location) ProtectedMetadata() map[string]interface{} {
	return l.mapValue("protected_metadata")
}

func (l *Location) SetName(name string) { l.Set("name", name) }
func (l *Location) SetTimeZone(zone *time.Location) { l.Set("time_zone", zone) }
func (l *Location) SetResourceSelectionStrategy(s string) { l.Set("resource_selection_strategy", s) }
func (l *Location) SetMetadata(meta map[string]interface{}) { l.Set("metadata", meta) }
func (l *Location) SetEnabled(enabled bool) { l.Set("enabled", enabled) }

// SetResourceSelectionPriority sets the ordered resource ids.
func (l *Location) SetResourceSelectionPriority(ids []string) {
	l.Set("resource_selection_priority", anyList(ids))
}

// SetProtectedMetadata replaces the protected metadata.
func (l *Location) SetProtectedMetadata(meta map[string]interface{}) {
	l.Set("protected_metadata", meta)
}

var resourceSchema = NewSchema(KindResource, scalars(
	"id", "name", "max_simultaneous_bookings", "metadata", "protected_metadata",
	"enabled", "created_at", "updated_at",
)...)

// Resource is anything that can be booked: a person, a room, a machine.
type Resource struct {
	Model
}

// NewResource creates an empty resource.
func NewResource() *Resource {
	return &Resource{Model: newModel(resourceSchema)}
}

func (r *Resource) ID() string { return r.stringValue("id") }
func (r *Resource) Name() string { return r.stringValue("name") }
func (r *Resource) MaxSimultaneousBookings() int { return r.intValue("max_simultaneous_bookings") }
func (r *Resource) Metadata() map[string]interface{} { return r.mapValue("metadata") }
func (r *Resource) ProtectedMetadata() map[string]interface{} { return r.mapValue("protected_metadata") }
func (r *Resource) Enabled() bool { return r.boolValue("enabled") }
func (r *Resource) CreatedAt() time.Time { return r.timeValue("created_at") }
func (r *Resource) UpdatedAt() time.Time { return r.timeValue("updated_at") }

func (r *Resource) SetName(name string) { r.Set("name", name) }
func (r *Resource) SetMaxSimultaneousBookings(n int) { r.Set("max_simultaneous_bookings", n) }
func (r *Resource) SetMetadata(meta map[string]interface{}) { r.Set("metadata", meta) }
func (r *Resource) SetProtectedMetadata(meta map[string]interface{}) { r.Set("protected_metadata", meta) }
func (r *Resource) SetEnabled(enabled bool) { r.Set("enabled", enabled) }

var serviceSchema = NewSchema(KindService, scalars(
	"id", "name", "price", "type",
	"duration", "min_duration", "max_duration", "default_duration", "duration_step",
	"start_time", "end_time",
	"min_days", "max_days", "default_days",
	"bookable_interval", "buffer_time_before", "buffer_time_after",
	"booking_window_start", "booking_window_end", "cancelation_threshold",
	"metadata", "protected_metadata", "enabled", "created_at", "updated_at",
)...)

// Service types.
const (
	ServiceTypeFixed    = "fixed"
	ServiceTypeFlexible = "flexible"
	ServiceTypeDay      = "day"
)

// Service is something a resource can be booked for. Durations and
// intervals are ISO-8601 duration strings such as "PT30M".
type Service struct {
	Model
}

// NewService creates an empty service.
func NewService() *Service {
	return &Service{Model: newModel(serviceSchema)}
}

func (s *Service) ID() string { return s.stringValue("id") }
func (s *Service) Name() string { return s.stringValue("name") }
func (s *Service) Price() string { return s.stringValue("price") }
func (s *Service) Type() string { return s.stringValue("type") }
func (s *Service) Duration() string { return s.stringValue("duration") }
func (s *Service) MinDuration() string { return s.stringValue("min_duration") }
func (s *Service) MaxDuration() string { return s.stringValue("max_duration") }
func (s *Service) DefaultDuration() string { return s.stringValue("default_duration") }
func (s *Service) DurationStep() string { return s.stringValue("duration_step") }
func (s *Service) StartTime() string { return s.stringValue("start_time") }
func (s *Service) EndTime() string { return s.stringValue("end_time") }
func (s *Service) MinDays() int { return s.intValue("min_days") }
func (s *Service) MaxDays() int { return s.intValue("max_days") }
func (s *Service) DefaultDays() int { return s.intValue("default_days") }
func (s *Service) BookableInterval() string { return s.stringValue("bookable_interval") }
func (s *Service) BufferTimeBefore() string { return s.stringValue("buffer_time_before") }
func (s *Service) BufferTimeAfter() string { return s.stringValue("buffer_time_after") }
func (s *Service) BookingWindowStart() string { return s.stringValue("booking_window_start") }
func (s *Service) BookingWindowEnd() string { return s.stringValue("booking_window_end") }
func (s *Service) CancelationThreshold() string { return s.stringValue("cancelation_threshold") }
func (s *Service) Metadata() map[string]interface{} { return s.mapValue("metadata") }
func (s *Service) ProtectedMetadata() map[string]interface{} { return s.mapValue("protected_metadata") }
func (s *Service) Enabled() bool { return s.boolValue("enabled") }
func (s *Service) CreatedAt() time.Time { return s.timeValue("created_at") }
func (s *Service) UpdatedAt() time.Time { return s.timeValue("updated_at") }

func (s *Service) SetName(name string) { s.Set("name", name) }
func (s *Service) SetPrice(price string) { s.Set("price", price) }
func (s *Service) SetType(serviceType string) { s.Set("type", serviceType) }
func (s *Service) SetDuration(duration string) { s.Set("duration", duration) }
func (s *Service) SetBookableInterval(interval string) { s.Set("bookable_interval", interval) }
func (s *Service) SetBufferTimeBefore(buffer string) { s.Set("buffer_time_before", buffer) }
func (s *Service) SetBufferTimeAfter(buffer string) { s.Set("buffer_time_after", buffer) }
func (s *Service) SetMetadata(meta map[string]interface{}) { s.Set("metadata", meta) }
func (s *Service) SetEnabled(enabled bool) { s.Set("enabled", enabled) }

func stringList(items []interface{}) []string {
	if items == nil {
		return nil
	}

	list := make([]string, 0, len(items))

	for _, item := range items {
		if text, ok := item.(string); ok {
			list = append(list, text)
		}
	}

	return list
}

func anyList(items []string) []interface{} {
	list := make([]interface{}, len(items))
	for i, item := range items {
		list[i] = item
	}

	return list
}
