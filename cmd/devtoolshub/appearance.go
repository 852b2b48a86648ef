package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"devtoolshub/internal/appearance"
	tuiapp "devtoolshub/internal/tui/app"
)

func newAppearanceCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "appearance [light|dark|toggle]",
		Short:     "Show or change the terminal appearance",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := opts.localPrefs()
			if err != nil {
				return err
			}
			defer closePrefs(prefs, opts.logger)

			ctx := cmd.Context()
			mode := resolveTerminalMode(ctx, prefs, opts.logger)
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), mode)
				return nil
			}

			next := mode.Toggle()
			if arg := strings.ToLower(strings.TrimSpace(args[0])); arg != "toggle" {
				next, err = appearance.Parse(arg)
				if err != nil {
					return err
				}
			}
			if err := prefs.Save(ctx, tuiapp.PrefsKey, next); err != nil {
				return fmt.Errorf("save appearance: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), next)
			return nil
		},
	}
}
