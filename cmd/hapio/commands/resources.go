package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/hapio-client/internal/constants"
	"github.com/fivetwenty-io/hapio-client/pkg/hapio"
)

var resourceColumns = columns[*hapio.Resource]{
	headers: []string{"ID", "Name", "Max Simultaneous", "Enabled"},
	row: func(resource *hapio.Resource) []string {
		return []string{
			resource.ID(),
			resource.Name(),
			strconv.Itoa(resource.MaxSimultaneousBookings()),
			formatBool(resource.Enabled()),
		}
	},
}

var timeSpanColumns = columns[*hapio.TimeSpan]{
	headers: []string{"Starts At", "Ends At"},
	row: func(span *hapio.TimeSpan) []string {
		return []string{formatTime(span.StartsAt()), formatTime(span.EndsAt())}
	},
}

var associationColumns = columns[*hapio.ResourceServiceAssociation]{
	headers: []string{"Resource ID", "Service ID", "Created"},
	row: func(association *hapio.ResourceServiceAssociation) []string {
		return []string{association.ResourceID(), association.ServiceID(), formatTime(association.CreatedAt())}
	},
}

// NewResourcesCommand creates the resources command group.
func NewResourcesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resources",
		Aliases: []string{"resource", "res"},
		Short:   "Manage resources",
		Long:    "List, inspect and delete resources, view their schedules and service associations",
	}

	cmd.AddCommand(newResourcesListCommand())
	cmd.AddCommand(newResourcesGetCommand())
	cmd.AddCommand(newResourcesDeleteCommand())
	cmd.AddCommand(newResourcesScheduleCommand())
	cmd.AddCommand(newResourcesFullyBookedCommand())
	cmd.AddCommand(newResourcesServicesCommand())
	cmd.AddCommand(newResourcesAssociateCommand())
	cmd.AddCommand(newResourcesDissociateCommand())

	return cmd
}

func newResourcesListCommand() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List resources",
		Long:  "List the resources of the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, func(ctx context.Context, client hapio.Client, params hapio.QueryParams) (*hapio.PaginatedResponse[*hapio.Resource], error) {
				return client.Resources().List(ctx, params)
			}, resourceColumns)
		},
	}

	addListFlags(cmd, opts)

	return cmd
}

func newResourcesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get RESOURCE_ID",
		Short: "Get resource details",
		Long:  "Display detailed information about a specific resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, func(ctx context.Context, client hapio.Client) (*hapio.Resource, error) {
				return client.Resources().Get(ctx, args[0])
			})
		},
	}
}

func newResourcesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete RESOURCE_ID",
		Short: "Delete a resource",
		Long:  "Delete a resource by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, "resource "+args[0], func(ctx context.Context, client hapio.Client) (bool, error) {
				return client.Resources().Delete(ctx, args[0])
			})
		},
	}
}

func newResourcesScheduleCommand() *cobra.Command {
	opts := &rangeOptions{}

	cmd := &cobra.Command{
		Use:   "schedule RESOURCE_ID",
		Short: "Show the schedule of a resource",
		Long:  "List the time spans a resource is scheduled to work within a date range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRangeList(cmd, opts, func(ctx context.Context, client hapio.Client, params hapio.QueryParams) (*hapio.PaginatedResponse[*hapio.TimeSpan], error) {
				return client.Resources().ListSchedule(ctx, args[0], params)
			}, timeSpanColumns)
		},
	}

	addRangeFlags(cmd, opts)

	return cmd
}

func newResourcesFullyBookedCommand() *cobra.Command {
	opts := &rangeOptions{}

	cmd := &cobra.Command{
		Use:   "fully-booked RESOURCE_ID",
		Short: "Show when a resource is fully booked",
		Long:  "List the time spans a resource has no capacity left within a date range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRangeList(cmd, opts, func(ctx context.Context, client hapio.Client, params hapio.QueryParams) (*hapio.PaginatedResponse[*hapio.TimeSpan], error) {
				return client.Resources().ListFullyBooked(ctx, args[0], params)
			}, timeSpanColumns)
		},
	}

	addRangeFlags(cmd, opts)

	return cmd
}

func newResourcesServicesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "services RESOURCE_ID",
		Short: "List services of a resource",
		Long:  "List the services a resource is associated with",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssociations(cmd, func(ctx context.Context, client hapio.Client) ([]*hapio.ResourceServiceAssociation, error) {
				return client.Resources().ListAssociatedServices(ctx, args[0])
			})
		},
	}
}

func newResourcesAssociateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "associate RESOURCE_ID SERVICE_ID",
		Short: "Associate a service with a resource",
		Long:  "Make a resource bookable for a service",
		Args:  cobra.ExactArgs(2), //nolint:mnd // resource and service
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, func(ctx context.Context, client hapio.Client) (*hapio.ResourceServiceAssociation, error) {
				return client.Resources().AssociateService(ctx, args[0], args[1])
			})
		},
	}
}

func newResourcesDissociateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dissociate RESOURCE_ID SERVICE_ID",
		Short: "Remove a service from a resource",
		Long:  "Remove the association between a resource and a service",
		Args:  cobra.ExactArgs(2), //nolint:mnd // resource and service
		RunE: func(cmd *cobra.Command, args []string) error {
			what := fmt.Sprintf("association of resource %s with service %s", args[0], args[1])

			return runDelete(cmd, what, func(ctx context.Context, client hapio.Client) (bool, error) {
				return client.Resources().DissociateService(ctx, args[0], args[1])
			})
		},
	}
}

func runAssociations(cmd *cobra.Command, list func(ctx context.Context, client hapio.Client) ([]*hapio.ResourceServiceAssociation, error)) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.finish()

	associations, err := list(cmd.Context(), s.client)
	if err != nil {
		return err
	}

	return renderEntities(s, associations, associationColumns)
}

// rangeOptions are the flags of the date-range views.
type rangeOptions struct {
	listOptions
	from     string
	to       string
	location string
}

func addRangeFlags(cmd *cobra.Command, opts *rangeOptions) {
	addListFlags(cmd, &opts.listOptions)
	cmd.Flags().StringVar(&opts.from, "from", "", "range start, ISO-8601 date time or YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&opts.to, "to", "", "range end, ISO-8601 date time or YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&opts.location, "location", "", "location ID")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
}

func runRangeList[T hapio.Entity](cmd *cobra.Command, opts *rangeOptions, list lister[T], cols columns[T]) error {
	from, err := parseRangeTime(opts.from)
	if err != nil {
		return err
	}

	to, err := parseRangeTime(opts.to)
	if err != nil {
		return err
	}

	return runList(cmd, &opts.listOptions, func(ctx context.Context, client hapio.Client, params hapio.QueryParams) (*hapio.PaginatedResponse[T], error) {
		params.WithTime("from", from).WithTime("to", to)

		if opts.location != "" {
			params.With("location", opts.location)
		}

		return list(ctx, client, params)
	}, cols)
}

// parseRangeTime accepts an ISO-8601 date time or a plain date, which is
// read as midnight UTC.
func parseRangeTime(value string) (time.Time, error) {
	if date, err := time.Parse(constants.DateLayout, value); err == nil {
		return date, nil
	}

	return hapio.ParseDateTime(value)
}
