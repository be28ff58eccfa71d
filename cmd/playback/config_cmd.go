package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oukeidos/playback/internal/config"
	"github.com/oukeidos/playback/internal/files"
)

func newConfigCmd(flags *config.Flags) *cobra.Command {
	var writePath string
	var force bool
	cmd := &cobra.Command{
		Use:   "config [media]",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.Resolve(mediaArg(args))
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			if writePath == "" {
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}
			return writeConfig(cmd, writePath, out, force)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().StringVarP(&writePath, "write", "w", "", "Write the YAML to this file instead of stdout")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file given to --write")
	return cmd
}

func writeConfig(cmd *cobra.Command, path, data string, force bool) error {
	target := path
	if !force {
		safe, changed, err := files.SafePath(path)
		if err != nil {
			return err
		}
		if changed {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s exists; writing %s instead\n", path, safe)
		}
		target = safe
	}
	if err := files.AtomicWrite(target, []byte(data), 0o600); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), target)
	return nil
}
