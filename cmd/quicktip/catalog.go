package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/quicktip/internal/catalog"
	"github.com/vango-dev/quicktip/internal/errors"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Work with tip catalogs",
	}
	cmd.AddCommand(catalogValidateCmd())
	return cmd
}

func catalogValidateCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check tip catalog files",
		Long: `Parse and validate YAML, JSON or TOML tip catalogs.

Every entry needs at least one target and non-empty text; delays must be
Go durations, alignments must look like "tl-bl?" and anchors must be a
side. Errors point at the offending line.

Examples:
  quicktip catalog validate tips.yaml
  quicktip catalog validate --json tips.yaml extra.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				c, err := catalog.NewFileSource(path).Load(cmd.Context())
				switch {
				case err != nil && asJSON:
					fmt.Fprintln(out, errors.FromError(err, errors.CatalogParse).FormatJSON())
					failed++
				case err != nil:
					errors.PrintError(cmd.ErrOrStderr(), err)
					failed++
				case asJSON:
					data, _ := json.Marshal(map[string]any{
						"file":    path,
						"valid":   true,
						"entries": len(c.Entries),
						"targets": len(c.Targets()),
					})
					fmt.Fprintln(out, string(data))
				default:
					fmt.Fprintf(out, "✓ %s: %d entries, %d targets\n", path, len(c.Entries), len(c.Targets()))
				}
			}
			if failed > 0 {
				return errors.Newf(errors.CategoryCLI, "%d of %d catalogs invalid", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}
