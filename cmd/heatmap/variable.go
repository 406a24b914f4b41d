package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/render"
)

// variableFlags are the defaults accepted by "variable add" and "variable set".
type variableFlags struct {
	color     string
	textColor string
	bgColor   string
	fontSize  int
	unit      string
	autoUnit  bool
	rules     []string
}

func (f *variableFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.color, "color", "", "Fill color when no rule matches")
	cmd.Flags().StringVar(&f.textColor, "text-color", "", "Label text color")
	cmd.Flags().StringVar(&f.bgColor, "bg-color", "", "Label background color")
	cmd.Flags().IntVar(&f.fontSize, "font-size", 0, "Label font size in points")
	cmd.Flags().StringVar(&f.unit, "unit", "", `Unit symbol, e.g. "m²" or "$"`)
	cmd.Flags().BoolVar(&f.autoUnit, "auto-unit", false, "Append the unit to bound values")
	cmd.Flags().StringArrayVar(&f.rules, "rule", nil, `Rule "OP,THRESHOLD,COLOR[,TEXT_COLOR[,BG_COLOR]]" (repeatable, in evaluation order)`)
}

func (f *variableFlags) defaults() models.VariableDefaults {
	return models.VariableDefaults{
		Color:           f.color,
		TextColor:       f.textColor,
		BackgroundColor: f.bgColor,
		FontSize:        f.fontSize,
		AutoUnit:        f.autoUnit,
		Unit:            f.unit,
	}
}

func newVariableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "variable",
		Aliases: []string{"var"},
		Short:   "Manage variables and their rules",
	}

	var addFlags variableFlags
	addCmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a variable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			rules, err := parseRules(addFlags.rules)
			if err != nil {
				return err
			}
			if _, err := s.engine.AddVariable(args[0], addFlags.defaults()); err != nil {
				return err
			}
			if _, err := s.engine.SetRules(args[0], rules); err != nil {
				s.engine.DeleteVariable(args[0])
				return err
			}
			return s.save()
		},
	}
	addFlags.register(addCmd)

	var setFlags variableFlags
	setCmd := &cobra.Command{
		Use:   "set NAME",
		Short: "Replace a variable's defaults, and its rules when --rule is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			rules, err := parseRules(setFlags.rules)
			if err != nil {
				return err
			}
			changed, err := s.engine.SetDefaults(args[0], setFlags.defaults())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("rule") {
				if changed, err = s.engine.SetRules(args[0], rules); err != nil {
					return err
				}
			}
			if err := s.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d binding(s) re-evaluated\n", len(changed))
			return nil
		},
	}
	setFlags.register(setCmd)

	renameCmd := &cobra.Command{
		Use:   "rename OLD NEW",
		Short: "Rename a variable and repoint its bindings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			changed, err := s.engine.RenameVariable(args[0], args[1])
			if err != nil {
				return err
			}
			if err := s.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %q to %q; %d binding(s) updated\n", args[0], args[1], len(changed))
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a variable; its bindings become unresolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			changed := s.engine.DeleteVariable(args[0])
			if err := s.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q; %d binding(s) unresolved\n", args[0], len(changed))
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List variables and their rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), render.Legend(s.engine.Variables()))
			return nil
		},
	}

	cmd.AddCommand(addCmd, setCmd, renameCmd, deleteCmd, listCmd)
	return cmd
}

// parseRules parses "OP,THRESHOLD,COLOR[,TEXT_COLOR[,BG_COLOR]]" flags.
func parseRules(specs []string) ([]models.Rule, error) {
	rules := make([]models.Rule, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, ",")
		if len(parts) < 3 || len(parts) > 5 {
			return nil, fmt.Errorf("invalid rule %q (want OP,THRESHOLD,COLOR[,TEXT_COLOR[,BG_COLOR]])", spec)
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		op, err := models.ParseOperator(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid rule %q: %w", spec, err)
		}
		threshold, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid rule %q: threshold: %w", spec, err)
		}
		if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
			return nil, fmt.Errorf("invalid rule %q: threshold must be finite", spec)
		}

		rule := models.Rule{Operator: op, Threshold: threshold, Color: parts[2]}
		if len(parts) > 3 {
			rule.TextColor = parts[3]
		}
		if len(parts) > 4 {
			rule.BackgroundColor = parts[4]
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
