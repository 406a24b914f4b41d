// Package main provides the CLI entry point for heatmap-go.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/heatmap-go/internal/config"
	"github.com/ukaji3/heatmap-go/pkg/heatmap"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/project"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	projectPath string
	pretty      bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Color floor-plan shapes from spreadsheet values",
		Long: `heatmap binds label lines of floor-plan shapes to named variables and
derives shape colors and label styles from each variable's ordered rules.

Rules are evaluated in list order and the first matching rule wins.`,
		SilenceUsage: true,
	}
	cobra.OnInitialize(config.Init)

	rootCmd.PersistentFlags().StringVarP(&projectPath, "project", "p", "heatmap.json", "Project file path")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", true, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().Bool("group-thousands", false, "Show integral values with thousands separators")
	config.BindFlags(rootCmd)

	rootCmd.AddCommand(
		newImportCmd(),
		newRemapCmd(),
		newEvalCmd(),
		newConditionsCmd(),
		newVariableCmd(),
		newBindCmd(),
		newUnbindCmd(),
		newPreviewCmd(),
		newConfigCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version number",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "heatmap version %s\n", Version)
			},
		},
	)
	return rootCmd
}

// session is an opened project plus its engine.
type session struct {
	cfg     *config.Config
	project *project.Project
	engine  *heatmap.Engine
}

// openSession loads (or creates) the project and builds its engine.
func openSession(cmd *cobra.Command) (*session, error) {
	cfg := config.Get()
	logger, err := cfg.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	p, err := project.LoadOrNew(projectPath)
	if err != nil {
		return nil, err
	}
	e, err := p.Open(cfg.EngineOptions(logger))
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, project: p, engine: e}, nil
}

// save writes the engine state back to the project file.
func (s *session) save() error {
	s.project.Capture(s.engine)
	if err := s.project.Save(projectPath, pretty); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}
