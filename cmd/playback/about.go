package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAboutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "about",
		Short: "Show a short description and link",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "playback: video player mockup with auto-hiding overlays")
			fmt.Fprintln(out, "https://github.com/oukeidos/playback")
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
