package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/heatmap-go/internal/config"
	"github.com/ukaji3/heatmap-go/pkg/heatmap"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/registry"
)

func newConditionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conditions",
		Short: "Export or import variable rule sets",
	}

	var outputPath string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the project's variables and rules to a conditions file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			format := registry.FormatJSON
			if outputPath != "" {
				format = registry.FormatForPath(outputPath)
			}
			data, err := registry.Encode(s.engine.ExportConditions(), format, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			if outputPath == "" {
				_, err = cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			if err := os.WriteFile(outputPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path, .json or .yaml (default: stdout)")

	var merge bool
	importCmd := &cobra.Command{
		Use:   "import [conditions.json]",
		Short: "Load variables and rules from a conditions file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			doc, err := readConditions(args[0])
			if err != nil {
				return err
			}
			mode := registry.Replace
			if merge {
				mode = registry.Merge
			}
			changed, err := s.engine.ImportConditions(doc, mode)
			if err != nil {
				return err
			}
			if err := s.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d variable(s); %d binding(s) re-evaluated\n", len(doc.Variables), len(changed))
			return nil
		},
	}
	importCmd.Flags().BoolVar(&merge, "merge", false, "Merge into existing variables instead of replacing them")

	cmd.AddCommand(exportCmd, importCmd)
	return cmd
}

func newEvalCmd() *cobra.Command {
	var conditionsPath string

	cmd := &cobra.Command{
		Use:   "eval VARIABLE VALUE",
		Short: "Resolve the style of a value without binding it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var engine *heatmap.Engine
			if conditionsPath != "" {
				cfg := config.Get()
				logger, err := cfg.NewLogger(cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				doc, err := readConditions(conditionsPath)
				if err != nil {
					return err
				}
				engine = heatmap.New(cfg.EngineOptions(logger))
				if _, err := engine.ImportConditions(doc, registry.Replace); err != nil {
					return err
				}
			} else {
				s, err := openSession(cmd)
				if err != nil {
					return err
				}
				engine = s.engine
			}

			style, err := engine.Evaluate(args[0], args[1])
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; using fallback style\n", err)
			}
			return writeJSON(cmd.OutOrStdout(), style)
		},
	}

	cmd.Flags().StringVar(&conditionsPath, "conditions", "", "Evaluate against a conditions file instead of the project")
	return cmd
}

func readConditions(path string) (models.Conditions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Conditions{}, err
	}
	doc, err := registry.Decode(data, registry.FormatForPath(path))
	if err != nil {
		var perr *registry.ParseError
		if errors.As(err, &perr) {
			perr.Source = path
		}
		return models.Conditions{}, err
	}
	return doc, nil
}
