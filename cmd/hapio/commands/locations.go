package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/hapio-client/pkg/hapio"
)

var locationColumns = columns[*hapio.Location]{
	headers: []string{"ID", "Name", "Time Zone", "Enabled"},
	row: func(location *hapio.Location) []string {
		zone := ""
		if tz := location.TimeZone(); tz != nil {
			zone = tz.String()
		}

		return []string{location.ID(), location.Name(), orNotAvailable(zone), formatBool(location.Enabled())}
	},
}

// NewLocationsCommand creates the locations command group.
func NewLocationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "locations",
		Aliases: []string{"location", "loc"},
		Short:   "Manage locations",
		Long:    "List, inspect and delete Hapio locations",
	}

	cmd.AddCommand(newLocationsListCommand())
	cmd.AddCommand(newLocationsGetCommand())
	cmd.AddCommand(newLocationsDeleteCommand())

	return cmd
}

func newLocationsListCommand() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List locations",
		Long:  "List the locations of the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, func(ctx context.Context, client hapio.Client, params hapio.QueryParams) (*hapio.PaginatedResponse[*hapio.Location], error) {
				return client.Locations().List(ctx, params)
			}, locationColumns)
		},
	}

	addListFlags(cmd, opts)

	return cmd
}

func newLocationsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get LOCATION_ID",
		Short: "Get location details",
		Long:  "Display detailed information about a specific location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, func(ctx context.Context, client hapio.Client) (*hapio.Location, error) {
				return client.Locations().Get(ctx, args[0])
			})
		},
	}
}

func newLocationsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete LOCATION_ID",
		Short: "Delete a location",
		Long:  "Delete a location by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, "location "+args[0], func(ctx context.Context, client hapio.Client) (bool, error) {
				return client.Locations().Delete(ctx, args[0])
			})
		},
	}
}
