package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/kindle/internal/app"
)

func (c *CLI) newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <script>",
		Short: "Evaluate one activation script and print what it depends on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := selectOptions(cmd, nil)
			_, err := c.app.Eval(cmd.Context(), args[0], app.EvalOptions{
				Dir:        opts.Dir,
				Properties: opts.Properties,
				Profiles:   opts.Profiles,
				Trace:      opts.Trace,
				JSON:       opts.JSON,
			})
			return err
		},
	}
	addContextFlags(cmd.Flags())
	return cmd
}
