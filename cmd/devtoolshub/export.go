package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"devtoolshub/internal/content"
	"devtoolshub/internal/router"
	"devtoolshub/internal/tools/sitemap"
)

func newExportCmd(opts *cliOptions) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write sitemap.xml and catalog.json for static hosting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := content.Load()
			if err != nil {
				return err
			}

			c, err := sitemap.Export(lib, router.Default(), opts.cfg.BaseURL, outDir)
			if err != nil {
				return err
			}

			opts.logger.Info("exported catalog",
				zap.String("dir", outDir),
				zap.Int("tools", c.Totals.Tools),
				zap.Int("groups", c.Totals.Groups))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s and %s to %s (%d tools, %d links, %d topic groups)\n",
				sitemap.SitemapFile, sitemap.CatalogFile, outDir, c.Totals.Tools, c.Totals.Links, c.Totals.Groups)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "public", "output directory")
	cmd.Flags().String("base-url", "http://localhost:8080", "public base URL for sitemap entries")
	return cmd
}
