package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.trai.ch/kindle/internal/app"
)

// addContextFlags registers the flags every command builds its contexts from.
func addContextFlags(flags *pflag.FlagSet) {
	flags.StringP("dir", "C", "", "Run as if kindle was started in this directory")
	flags.StringArrayP("define", "D", nil, "Define a user property (key=value, or key for true)")
	flags.StringSliceP("profiles", "P", nil, "Comma separated profile ids to activate, prefix with ! or - to deactivate")
	flags.Bool("trace", false, "Trace every evaluation step at info level")
	flags.Bool("json", false, "Print results as JSON")
}

func selectOptions(cmd *cobra.Command, modules []string) app.SelectOptions {
	flags := cmd.Flags()
	dir, _ := flags.GetString("dir")
	defines, _ := flags.GetStringArray("define")
	profiles, _ := flags.GetStringSlice("profiles")
	trace, _ := flags.GetBool("trace")
	asJSON, _ := flags.GetBool("json")
	record, _ := flags.GetBool("record")
	parallelism, _ := flags.GetInt("jobs")
	return app.SelectOptions{
		Dir:         dir,
		Modules:     modules,
		Properties:  defines,
		Profiles:    profiles,
		Trace:       trace,
		JSON:        asJSON,
		Record:      record,
		Parallelism: parallelism,
	}
}

func addSelectFlags(flags *pflag.FlagSet) {
	addContextFlags(flags)
	flags.Bool("record", false, "Store the activation of every module and flag changes")
	flags.IntP("jobs", "j", 0, "Number of modules selected concurrently (0 uses every CPU)")
}

func (c *CLI) newSelectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select [modules...]",
		Short: "Print the active profiles of the workspace modules",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Select(cmd.Context(), selectOptions(cmd, args))
		},
	}
	addSelectFlags(cmd.Flags())
	return cmd
}
