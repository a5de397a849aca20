package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/hapio-client/pkg/hapio"
)

var serviceColumns = columns[*hapio.Service]{
	headers: []string{"ID", "Name", "Type", "Duration", "Price", "Enabled"},
	row: func(service *hapio.Service) []string {
		return []string{
			service.ID(),
			service.Name(),
			orNotAvailable(service.Type()),
			orNotAvailable(service.Duration()),
			orNotAvailable(service.Price()),
			formatBool(service.Enabled()),
		}
	},
}

var bookableSlotColumns = columns[*hapio.BookableSlot]{
	headers: []string{"Starts At", "Ends At", "Resources"},
	row: func(slot *hapio.BookableSlot) []string {
		resources := slot.Resources()

		names := make([]string, 0, len(resources))
		for _, resource := range resources {
			names = append(names, orNotAvailable(resource.Name()))
		}

		return []string{formatTime(slot.StartsAt()), formatTime(slot.EndsAt()), strings.Join(names, ", ")}
	},
}

// NewServicesCommand creates the services command group.
func NewServicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "services",
		Aliases: []string{"service", "svc"},
		Short:   "Manage services",
		Long:    "List, inspect and delete services, find bookable slots and associated resources",
	}

	cmd.AddCommand(newServicesListCommand())
	cmd.AddCommand(newServicesGetCommand())
	cmd.AddCommand(newServicesDeleteCommand())
	cmd.AddCommand(newServicesBookableSlotsCommand())
	cmd.AddCommand(newServicesResourcesCommand())

	return cmd
}

func newServicesListCommand() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List services",
		Long:  "List the services of the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, func(ctx context.Context, client hapio.Client, params hapio.QueryParams) (*hapio.PaginatedResponse[*hapio.Service], error) {
				return client.Services().List(ctx, params)
			}, serviceColumns)
		},
	}

	addListFlags(cmd, opts)

	return cmd
}

func newServicesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SERVICE_ID",
		Short: "Get service details",
		Long:  "Display detailed information about a specific service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, func(ctx context.Context, client hapio.Client) (*hapio.Service, error) {
				return client.Services().Get(ctx, args[0])
			})
		},
	}
}

func newServicesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete SERVICE_ID",
		Short: "Delete a service",
		Long:  "Delete a service by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, "service "+args[0], func(ctx context.Context, client hapio.Client) (bool, error) {
				return client.Services().Delete(ctx, args[0])
			})
		},
	}
}

func newServicesBookableSlotsCommand() *cobra.Command {
	opts := &rangeOptions{}

	cmd := &cobra.Command{
		Use:   "bookable-slots SERVICE_ID",
		Short: "List bookable slots of a service",
		Long:  "List the slots a service can be booked in at a location within a date range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRangeList(cmd, opts, func(ctx context.Context, client hapio.Client, params hapio.QueryParams) (*hapio.PaginatedResponse[*hapio.BookableSlot], error) {
				return client.Services().ListBookableSlots(ctx, args[0], params)
			}, bookableSlotColumns)
		},
	}

	addRangeFlags(cmd, opts)

	return cmd
}

func newServicesResourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resources SERVICE_ID",
		Short: "List resources of a service",
		Long:  "List the resources a service is associated with",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssociations(cmd, func(ctx context.Context, client hapio.Client) ([]*hapio.ResourceServiceAssociation, error) {
				return client.Services().ListAssociatedResources(ctx, args[0])
			})
		},
	}
}
