package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/hapio-client/pkg/hapio"
)

// NewProjectCommand creates the project command.
func NewProjectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "project",
		Short: "Show the current project",
		Long:  "Display the project the configured API token belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, func(ctx context.Context, client hapio.Client) (*hapio.Project, error) {
				return client.Project().GetCurrentProject(ctx)
			})
		},
	}
}
