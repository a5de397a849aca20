package hapio

import "time"

var bookingSchema = NewSchema(KindBooking, fieldsOf(
	scalars("id", "resource_id"),
	field("resource", Nested(KindResource)),
	scalars("service_id"),
	field("service", Nested(KindService)),
	scalars("location_id"),
	field("location", Nested(KindLocation)),
	scalars("booking_group_id"),
	field("booking_group", Nested(KindBookingGroup)),
	scalars("price", "metadata", "protected_metadata", "is_temporary", "is_canceled"),
	field("starts_at", DateTime()),
	field("ends_at", DateTime()),
	field("buffer_starts_at", DateTime()),
	field("buffer_ends_at", DateTime()),
	scalars("ignore_schedule", "ignore_fully_booked", "ignore_bookable_slots", "created_at", "updated_at"),
	field("finalized_at", DateTime()),
	field("canceled_at", DateTime()),
)...)

// Booking reserves a resource for a service at a location.
type Booking struct {
	Model
}

// NewBooking creates an empty booking.
func NewBooking() *Booking {
	return &Booking{Model: newModel(bookingSchema)}
}

func (b *Booking) ID() string { return b.stringValue("id") }
func (b *Booking) ResourceID() string { return b.stringValue("resource_id") }
func (b *Booking) ServiceID() string { return b.stringValue("service_id") }
func (b *Booking) LocationID() string { return b.stringValue("location_id") }
func (b *Booking) BookingGroupID() string { return b.stringValue("booking_group_id") }
func (b *Booking) Price() string { return b.stringValue("price") }
func (b *Booking) Metadata() map[string]interface{} { return b.mapValue("metadata") }
func (b *Booking) ProtectedMetadata() map[string]interface{} { return b.mapValue("protected_metadata") }
func (b *Booking) IsTemporary() bool { return b.boolValue("is_temporary") }
func (b *Booking) IsCanceled() bool { return b.boolValue("is_canceled") }
func (b *Booking) StartsAt() time.Time { return b.timeValue("starts_at") }
func (b *Booking) EndsAt() time.Time { return b.timeValue("ends_at") }
func (b *Booking) BufferStartsAt() time.Time { return b.timeValue("buffer_starts_at") }
func (b *Booking) BufferEndsAt() time.Time { return b.timeValue("buffer_ends_at") }
func (b *Booking) CreatedAt() time.Time { return b.timeValue("created_at") }
func (b *Booking) UpdatedAt() time.Time { return b.timeValue("updated_at") }
func (b *Booking) FinalizedAt() time.Time { return b.timeValue("finalized_at") }
func (b *Booking) CanceledAt() time.Time { return b.timeValue("canceled_at") }

// Resource returns the expanded resource, if present.
func (b *Booking) Resource() *Resource {
	resource, _ := b.Get("resource").(*Resource)

	return resource
}

// Service returns the expanded service, if present.
func (b *Booking) Service() *Service {
	service, _ := b.Get("service").(*Service)

	return service
}

// Location returns the expanded location, if present.
func (b *Booking) Location() *Location {
	location, _ := b.Get("location").(*Location)

	return location
}

// BookingGroup returns the expanded booking group, if present.
func (b *Booking) BookingGroup() *BookingGroup {
	group, _ := b.Get("booking_group").(*BookingGroup)

	return group
}

func (b *Booking) SetResourceID(id string) { b.Set("resource_id", id) }
func (b *Booking) SetResource(resource *Resource) { b.Set("resource", resource) }
func (b *Booking) SetServiceID(id string) { b.Set("service_id", id) }
func (b *Booking) SetService(service *Service) { b.Set("service", service) }
func (b *Booking) SetLocationID(id string) { b.Set("location_id", id) }
func (b *Booking) SetLocation(location *Location) { b.Set("location", location) }
func (b *Booking) SetBookingGroupID(id string) { b.Set("booking_group_id", id) }
func (b *Booking) SetPrice(price string) { b.Set("price", price) }
func (b *Booking) SetMetadata(meta map[string]interface{}) { b.Set("metadata", meta) }
func (b *Booking) SetIsTemporary(temporary bool) { b.Set("is_temporary", temporary) }
func (b *Booking) SetIsCanceled(canceled bool) { b.Set("is_canceled", canceled) }
func (b *Booking) SetStartsAt(t time.Time) { b.Set("starts_at", t) }
func (b *Booking) SetEndsAt(t time.Time) { b.Set("ends_at", t) }
func (b *Booking) SetIgnoreSchedule(ignore bool) { b.Set("ignore_schedule", ignore) }
func (b *Booking) SetIgnoreFullyBooked(ignore bool) { b.Set("ignore_fully_booked", ignore) }
func (b *Booking) SetIgnoreBookableSlots(ignore bool) { b.Set("ignore_bookable_slots", ignore) }

var bookingGroupSchema = NewSchema(KindBookingGroup, fieldsOf(
	scalars("id", "metadata", "protected_metadata"),
	field("bookings", EntityArray(KindBooking)),
	scalars("created_at", "updated_at"),
)...)

// BookingGroup ties several bookings together so they are created and
// canceled as a unit.
type BookingGroup struct {
	Model
}

// NewBookingGroup creates an empty booking group.
func NewBookingGroup() *BookingGroup {
	return &BookingGroup{Model: newModel(bookingGroupSchema)}
}

func (g *BookingGroup) ID() string { return g.stringValue("id") }
func (g *BookingGroup) Metadata() map[string]interface{} { return g.mapValue("metadata") }
func (g *BookingGroup) ProtectedMetadata() map[string]interface{} { return g.mapValue("protected_metadata") }
func (g *BookingGroup) CreatedAt() time.Time { return g.timeValue("created_at") }
func (g *BookingGroup) UpdatedAt() time.Time { return g.timeValue("updated_at") }

// Bookings returns the hydrated bookings of the group.
func (g *BookingGroup) Bookings() []*Booking {
	items := g.listValue("bookings")
	bookings := make([]*Booking, 0, len(items))

	for _, item := range items {
		if booking, ok := item.(*Booking); ok {
			bookings = append(bookings, booking)
		}
	}

	return bookings
}

// SetBookings replaces the bookings of the group.
func (g *BookingGroup) SetBookings(bookings []*Booking) {
	items := make([]interface{}, len(bookings))
	for i, booking := range bookings {
		items[i] = booking
	}

	g.Set("bookings", items)
}

func (g *BookingGroup) SetMetadata(meta map[string]interface{}) { g.Set("metadata", meta) }

var resourceServiceAssociationSchema = NewSchema(KindResourceServiceAssociation, scalars(
	"resource_id", "service_id", "created_at",
)...)

// ResourceServiceAssociation links a resource to a service it can be booked for.
type ResourceServiceAssociation struct {
	Model
}

// NewResourceServiceAssociation creates an empty association.
func NewResourceServiceAssociation() *ResourceServiceAssociation {
	return &ResourceServiceAssociation{Model: newModel(resourceServiceAssociationSchema)}
}

func (a *ResourceServiceAssociation) ResourceID() string { return a.stringValue("resource_id") }
func (a *ResourceServiceAssociation) ServiceID() string { return a.stringValue("service_id") }
func (a *ResourceServiceAssociation) CreatedAt() time.Time { return a.timeValue("created_at") }
