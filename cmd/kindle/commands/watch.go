package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [modules...]",
		Short: "Select profiles again whenever the workspace changes",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Watch(cmd.Context(), selectOptions(cmd, args))
		},
	}
	addSelectFlags(cmd.Flags())
	return cmd
}
