package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oukeidos/playback/internal/cleanup"
	"github.com/oukeidos/playback/internal/config"
	"github.com/oukeidos/playback/internal/version"
)

func execute() {
	cmd := newRootCmd()
	err := cmd.Execute()
	if cleanupErr := cleanup.RunAll(); cleanupErr != nil {
		fmt.Fprintln(os.Stderr, cleanupErr)
		if err == nil {
			err = cleanupErr
		}
	}
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playback",
		Short: "Video player mockup with auto-hiding overlays",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.Version = version.Info()
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetUsageTemplate(rootUsageTemplate)

	flags := config.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newTermCmd(flags),
		newConfigCmd(flags),
		newAboutCmd(),
	)
	return cmd
}

// mediaArg returns the optional positional media argument.
func mediaArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
