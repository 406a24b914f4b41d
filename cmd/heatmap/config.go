package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/heatmap-go/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show current configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg := config.Get()
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Current configuration:")
				fmt.Fprintln(out, "----------------------")
				fmt.Fprintf(out, "Fallback color:    %s\n", cfg.Style.Color)
				fmt.Fprintf(out, "Fallback text:     %s on %s, %dpt\n", cfg.Style.TextColor, cfg.Style.BgColor, cfg.Style.FontSize)
				fmt.Fprintf(out, "Currency units:    %s\n", strings.Join(cfg.Units.Currency, " "))
				fmt.Fprintf(out, "Group thousands:   %v\n", cfg.Units.GroupThousands)
				fmt.Fprintf(out, "Import sheet:      %q\n", cfg.Import.Sheet)
				fmt.Fprintf(out, "Import range:      %q\n", cfg.Import.Range)
				fmt.Fprintf(out, "Case-sensitive:    %v\n", cfg.Import.CaseSensitive)
				fmt.Fprintf(out, "Log:               %s (%s)\n", cfg.Log.Level, cfg.Log.Format)
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Show config file path",
			RunE: func(cmd *cobra.Command, args []string) error {
				out := cmd.OutOrStdout()
				if path := config.GetConfigPath(); path != "" {
					fmt.Fprintf(out, "Config file: %s\n", path)
					return nil
				}
				fmt.Fprintln(out, "No config file found. Create one at:")
				fmt.Fprintf(out, "  %s (global)\n", config.GetDefaultConfigPath())
				fmt.Fprintln(out, "  ./.heatmap.yaml (project)")
				return nil
			},
		},
	)
	return cmd
}
