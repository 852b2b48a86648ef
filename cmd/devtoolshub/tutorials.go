package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"devtoolshub/internal/appearance"
	"devtoolshub/internal/catalog"
	"devtoolshub/internal/content"
	"devtoolshub/internal/router"
	"devtoolshub/internal/tui/styles"
)

func newListCmd(_ *cliOptions) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:     "list [query]",
		Aliases: []string{"ls", "search"},
		Short:   "List tutorials, optionally filtered by title",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = strings.TrimSpace(args[0])
			}
			entries := catalog.Search(query)
			out := cmd.OutOrStdout()

			if jsonOutput {
				if entries == nil {
					entries = []catalog.Entry{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			printCatalog(out, entries, query)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output JSON")
	return cmd
}

func printCatalog(out io.Writer, entries []catalog.Entry, query string) {
	if len(entries) == 0 {
		fmt.Fprintf(out, "No tutorials match %q\n", query)
		return
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%s  %-14s %s\n", e.Icon, e.Title, e.Path)
	}
	fmt.Fprintf(out, "\n%d of %d tools\n", len(entries), catalog.Len())
}

func newShowCmd(opts *cliOptions) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "show <path>",
		Short: "Print a tutorial",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := content.Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			u := router.Default().Resolve(args[0])
			b, ok := lib.ForUnit(u)
			if !ok {
				if u.Kind == router.KindHome {
					printCatalog(out, catalog.All(), "")
					return nil
				}
				fmt.Fprintf(out, "404 - Page not found\nNo tutorial lives at %s. Try `devtoolshub list`.\n", u.Path)
				return exitSilent(1)
			}

			st := styles.For(appearance.Default)
			r := content.TextRenderer{Styles: st.Text()}
			if !plain {
				r.CodeStyle = opts.cfg.CodeStyle
			}
			fmt.Fprintln(out, r.Render(b, 0, 0).String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "do not highlight code")
	return cmd
}

func newCopyCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <path> <n>",
		Short: "Copy snippet n of a tutorial to the clipboard",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("snippet number %q: %w", args[1], err)
			}

			lib, err := content.Load()
			if err != nil {
				return err
			}
			b, ok := lib.ForUnit(router.Default().Resolve(args[0]))
			if !ok {
				return exitError{code: 1, message: fmt.Sprintf("no tutorial at %s", args[0])}
			}
			snip, err := b.Snippet(n)
			if err != nil {
				return exitError{code: 1, message: fmt.Sprintf("%s has %d snippets", args[0], len(b.Snippets()))}
			}

			if !opts.clipboard(opts.logger).Copy(snip.Code) {
				return exitError{code: 1, message: "clipboard unavailable"}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ copied snippet %d of %s\n", n, b.Title)
			return nil
		},
	}
}

func newValidateCmd(_ *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog, routes and tutorial content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries := catalog.All()
			if err := catalog.Validate(entries); err != nil {
				return fmt.Errorf("catalog: %w", err)
			}
			table, err := router.NewTable(entries)
			if err != nil {
				return fmt.Errorf("routes: %w", err)
			}
			lib, err := content.LoadFS(content.Bundles(), table)
			if err != nil {
				return fmt.Errorf("content: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "catalog: %d tools\n", len(entries))
			fmt.Fprintf(out, "routes:  %d paths\n", table.Len())
			fmt.Fprintf(out, "content: %d snippets\n", lib.SnippetCount())
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
}
