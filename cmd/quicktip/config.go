package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/quicktip/internal/config"
	"github.com/vango-dev/quicktip/internal/errors"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage quicktip.json",
	}
	cmd.AddCommand(configInitCmd(), configShowCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	var (
		dir   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a quicktip.json with default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.Exists(dir) && !force {
				return errors.Newf(errors.CategoryConfig, "%s already exists in %s", config.ConfigFileName, dir).
					WithSuggestion("Pass --force to overwrite it")
			}
			path := filepath.Join(dir, config.ConfigFileName)
			if err := config.New().SaveTo(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to write quicktip.json to")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing quicktip.json")
	return cmd
}

func configShowCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print quicktip.json from --dir with defaults filled in, after
validating it. Without a quicktip.json the defaults are printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(dir)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory containing quicktip.json")
	return cmd
}
