package commands

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/hapio-client/pkg/hapio"
)

var bookingColumns = columns[*hapio.Booking]{
	headers: []string{"ID", "Resource ID", "Service ID", "Starts At", "Ends At", "Status"},
	row: func(booking *hapio.Booking) []string {
		return []string{
			booking.ID(),
			orNotAvailable(booking.ResourceID()),
			orNotAvailable(booking.ServiceID()),
			formatTime(booking.StartsAt()),
			formatTime(booking.EndsAt()),
			bookingStatus(booking),
		}
	},
}

var bookingGroupColumns = columns[*hapio.BookingGroup]{
	headers: []string{"ID", "Bookings", "Created"},
	row: func(group *hapio.BookingGroup) []string {
		return []string{group.ID(), strconv.Itoa(len(group.Bookings())), formatTime(group.CreatedAt())}
	},
}

func bookingStatus(booking *hapio.Booking) string {
	switch {
	case booking.IsCanceled():
		return "canceled"
	case booking.IsTemporary():
		return "temporary"
	default:
		return "confirmed"
	}
}

// NewBookingsCommand creates the bookings command group.
func NewBookingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookings",
		Aliases: []string{"booking"},
		Short:   "Manage bookings",
		Long:    "List, inspect and cancel bookings",
	}

	cmd.AddCommand(newBookingsListCommand())
	cmd.AddCommand(newBookingsGetCommand())
	cmd.AddCommand(newBookingsCancelCommand())

	return cmd
}

func newBookingsListCommand() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bookings",
		Long:  "List the bookings of the project; narrow them down with --param, e.g. --param resource=ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, func(ctx context.Context, client hapio.Client, params hapio.QueryParams) (*hapio.PaginatedResponse[*hapio.Booking], error) {
				return client.Bookings().List(ctx, params)
			}, bookingColumns)
		},
	}

	addListFlags(cmd, opts)

	return cmd
}

func newBookingsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get BOOKING_ID",
		Short: "Get booking details",
		Long:  "Display detailed information about a specific booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, func(ctx context.Context, client hapio.Client) (*hapio.Booking, error) {
				return client.Bookings().Get(ctx, args[0])
			})
		},
	}
}

func newBookingsCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel BOOKING_ID",
		Short: "Cancel a booking",
		Long:  "Mark a booking as canceled. The booking is kept and its slot is released.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, func(ctx context.Context, client hapio.Client) (*hapio.Booking, error) {
				update := hapio.NewBooking()
				update.SetIsCanceled(true)

				return client.Bookings().Patch(ctx, args[0], update)
			})
		},
	}
}

// NewBookingGroupsCommand creates the booking-groups command group.
func NewBookingGroupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "booking-groups",
		Aliases: []string{"booking-group", "groups"},
		Short:   "Manage booking groups",
		Long:    "List, inspect and delete booking groups",
	}

	cmd.AddCommand(newBookingGroupsListCommand())
	cmd.AddCommand(newBookingGroupsGetCommand())
	cmd.AddCommand(newBookingGroupsDeleteCommand())

	return cmd
}

func newBookingGroupsListCommand() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List booking groups",
		Long:  "List the booking groups of the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, func(ctx context.Context, client hapio.Client, params hapio.QueryParams) (*hapio.PaginatedResponse[*hapio.BookingGroup], error) {
				return client.BookingGroups().List(ctx, params)
			}, bookingGroupColumns)
		},
	}

	addListFlags(cmd, opts)

	return cmd
}

func newBookingGroupsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get BOOKING_GROUP_ID",
		Short: "Get booking group details",
		Long:  "Display detailed information about a specific booking group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, func(ctx context.Context, client hapio.Client) (*hapio.BookingGroup, error) {
				return client.BookingGroups().Get(ctx, args[0])
			})
		},
	}
}

func newBookingGroupsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete BOOKING_GROUP_ID",
		Short: "Delete a booking group",
		Long:  "Delete a booking group by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, "booking group "+args[0], func(ctx context.Context, client hapio.Client) (bool, error) {
				return client.BookingGroups().Delete(ctx, args[0])
			})
		},
	}
}
