package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"devtoolshub/internal/appearance"
	"devtoolshub/internal/content"
	tuiapp "devtoolshub/internal/tui/app"
)

func newBrowseCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "browse [path]",
		Aliases: []string{"tui"},
		Short:   "Browse the tutorials in the terminal",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := "/"
			if len(args) == 1 {
				start = args[0]
			}

			lib, err := content.Load()
			if err != nil {
				return err
			}

			// stderr belongs to the alt screen while the program runs.
			logger := zap.NewNop()

			prefs, err := opts.localPrefs()
			if err != nil {
				opts.logger.Warn("appearance preferences unavailable, using memory", zap.Error(err))
				prefs = appearance.NewMemoryStore()
			}
			defer closePrefs(prefs, opts.logger)

			mode := resolveTerminalMode(cmd.Context(), prefs, opts.logger)

			p := tea.NewProgram(tuiapp.New(tuiapp.Options{
				Library: lib,
				Prefs:   prefs,
				Copier:  opts.clipboard(logger),
				Logger:  logger,
				Mode:    mode,
				Start:   start,
			}), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}

func resolveTerminalMode(ctx context.Context, prefs appearance.Store, logger *zap.Logger) appearance.Mode {
	system := appearance.System(appearance.Light)
	if lipgloss.HasDarkBackground() {
		system = appearance.System(appearance.Dark)
	}
	mode, err := appearance.Resolve(ctx, prefs, tuiapp.PrefsKey, system)
	if err != nil {
		logger.Warn("load appearance", zap.Error(err))
	}
	return mode
}
