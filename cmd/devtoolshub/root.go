package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"devtoolshub/internal/app"
	"devtoolshub/internal/appearance"
	"devtoolshub/internal/clipboard"
)

type cliOptions struct {
	configFile string
	cfg        app.Config
	logger     *zap.Logger
	// copier is set by tests; nil means the system clipboard.
	copier *clipboard.Copier
}

func newRootCommand() *cobra.Command {
	return newRoot(&cliOptions{logger: zap.NewNop()})
}

func newRoot(opts *cliOptions) *cobra.Command {
	root := &cobra.Command{
		Use:           "devtoolshub",
		Short:         "Dev-Tools Mastery Hub",
		Long:          "devtoolshub - tutorials for JMeter, Selenium, Docker, Kubernetes and friends, on the web or in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig(opts.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := app.NewLogger(cfg.LogLevel, cfg.LogDevelopment)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = opts.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file (yaml or toml)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.Bool("log-dev", false, "human readable development logs")
	pf.String("prefs", app.PrefsAuto, "appearance store for the web server (auto, memory, bolt, mysql)")
	pf.String("prefs-path", "", "bolt file holding local appearance preferences")
	pf.String("code-style", "onedark", "chroma style for highlighted code")

	root.AddCommand(
		newServeCmd(opts),
		newBrowseCmd(opts),
		newListCmd(opts),
		newShowCmd(opts),
		newCopyCmd(opts),
		newAppearanceCmd(opts),
		newExportCmd(opts),
		newValidateCmd(opts),
	)

	return root
}

func (o *cliOptions) clipboard(logger *zap.Logger) *clipboard.Copier {
	if o.copier != nil {
		return o.copier
	}
	return clipboard.New(logger)
}

func closePrefs(prefs appearance.Store, logger *zap.Logger) {
	if err := prefs.Close(); err != nil {
		logger.Warn("close appearance store", zap.Error(err))
	}
}

// localPrefs opens the bolt file shared by the terminal commands.
func (o *cliOptions) localPrefs() (appearance.Store, error) {
	return appearance.OpenBoltStore(o.cfg.PrefsPath)
}
