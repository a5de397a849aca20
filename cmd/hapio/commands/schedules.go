package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/hapio-client/pkg/hapio"
)

var scheduleBlockColumns = columns[*hapio.ScheduleBlock]{
	headers: []string{"ID", "Location ID", "Starts At", "Ends At", "Available"},
	row: func(block *hapio.ScheduleBlock) []string {
		return []string{
			block.ID(),
			orNotAvailable(block.LocationID()),
			formatTime(block.StartsAt()),
			formatTime(block.EndsAt()),
			formatBool(block.IsAvailable()),
		}
	},
}

var recurringScheduleColumns = columns[*hapio.RecurringSchedule]{
	headers: []string{"ID", "Location ID", "Start Date", "End Date"},
	row: func(schedule *hapio.RecurringSchedule) []string {
		return []string{
			schedule.ID(),
			orNotAvailable(schedule.LocationID()),
			orNotAvailable(schedule.StartDate()),
			orNotAvailable(schedule.EndDate()),
		}
	},
}

var recurringScheduleBlockColumns = columns[*hapio.RecurringScheduleBlock]{
	headers: []string{"ID", "Weekday", "Start Time", "End Time"},
	row: func(block *hapio.RecurringScheduleBlock) []string {
		return []string{block.ID(), block.Weekday(), block.StartTime(), block.EndTime()}
	},
}

// NewScheduleBlocksCommand creates the schedule-blocks command group.
func NewScheduleBlocksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schedule-blocks",
		Aliases: []string{"schedule-block"},
		Short:   "Inspect one-off schedule blocks",
		Long:    "List and inspect the one-off schedule blocks of a resource",
	}

	opts := &listOptions{}

	list := &cobra.Command{
		Use:   "list RESOURCE_ID",
		Short: "List schedule blocks of a resource",
		Long:  "List the one-off schedule blocks of a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, func(ctx context.Context, client hapio.Client, params hapio.QueryParams) (*hapio.PaginatedResponse[*hapio.ScheduleBlock], error) {
				return client.ScheduleBlocks().List(ctx, []string{args[0]}, params)
			}, scheduleBlockColumns)
		},
	}
	addListFlags(list, opts)

	get := &cobra.Command{
		Use:   "get RESOURCE_ID BLOCK_ID",
		Short: "Get schedule block details",
		Long:  "Display detailed information about a schedule block of a resource",
		Args:  cobra.ExactArgs(2), //nolint:mnd // resource and block
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, func(ctx context.Context, client hapio.Client) (*hapio.ScheduleBlock, error) {
				return client.ScheduleBlocks().Get(ctx, []string{args[0]}, args[1])
			})
		},
	}

	cmd.AddCommand(list, get)

	return cmd
}

// NewRecurringSchedulesCommand creates the recurring-schedules command group.
func NewRecurringSchedulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recurring-schedules",
		Aliases: []string{"recurring-schedule"},
		Short:   "Inspect recurring schedules",
		Long:    "List and inspect the recurring schedules of a resource",
	}

	opts := &listOptions{}

	list := &cobra.Command{
		Use:   "list RESOURCE_ID",
		Short: "List recurring schedules of a resource",
		Long:  "List the recurring schedules of a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, func(ctx context.Context, client hapio.Client, params hapio.QueryParams) (*hapio.PaginatedResponse[*hapio.RecurringSchedule], error) {
				return client.RecurringSchedules().List(ctx, []string{args[0]}, params)
			}, recurringScheduleColumns)
		},
	}
	addListFlags(list, opts)

	get := &cobra.Command{
		Use:   "get RESOURCE_ID SCHEDULE_ID",
		Short: "Get recurring schedule details",
		Long:  "Display detailed information about a recurring schedule of a resource",
		Args:  cobra.ExactArgs(2), //nolint:mnd // resource and schedule
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, func(ctx context.Context, client hapio.Client) (*hapio.RecurringSchedule, error) {
				return client.RecurringSchedules().Get(ctx, []string{args[0]}, args[1])
			})
		},
	}

	cmd.AddCommand(list, get)

	return cmd
}

// NewRecurringScheduleBlocksCommand creates the recurring-schedule-blocks command group.
func NewRecurringScheduleBlocksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recurring-schedule-blocks",
		Aliases: []string{"recurring-schedule-block"},
		Short:   "Inspect recurring schedule blocks",
		Long:    "List the weekly blocks of a recurring schedule",
	}

	opts := &listOptions{}

	list := &cobra.Command{
		Use:   "list RESOURCE_ID SCHEDULE_ID",
		Short: "List blocks of a recurring schedule",
		Long:  "List the weekly blocks of a recurring schedule of a resource",
		Args:  cobra.ExactArgs(2), //nolint:mnd // resource and schedule
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, func(ctx context.Context, client hapio.Client, params hapio.QueryParams) (*hapio.PaginatedResponse[*hapio.RecurringScheduleBlock], error) {
				return client.RecurringScheduleBlocks().List(ctx, []string{args[0], args[1]}, params)
			}, recurringScheduleBlockColumns)
		},
	}
	addListFlags(list, opts)

	cmd.AddCommand(list)

	return cmd
}
