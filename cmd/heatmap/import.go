package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/heatmap-go/internal/config"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/importer"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/output"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/parser"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/project"
)

func newImportCmd() *cobra.Command {
	var (
		layoutPath string
		keyColumn  string
		mappings   []string
		replace    bool
	)

	cmd := &cobra.Command{
		Use:   "import [rows.xlsx|rows.csv]",
		Short: "Bind spreadsheet rows to shapes",
		Long: `Reads a spreadsheet and binds each row to the shape named in its key column.

Without --map the sheet must use the paired layout:
  Name, Name variable, Value1, Variable1, Value2, Variable2, ...
With --map COLUMN=VARIABLE each listed column becomes a label line bound
to the given variable, in flag order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}

			if layoutPath != "" {
				pdf, shapes, err := project.LoadLayout(layoutPath)
				if err != nil {
					return fmt.Errorf("failed to load layout: %w", err)
				}
				s.project.PDF = pdf
				s.engine.SetShapes(shapes)
			}
			if len(s.engine.Shapes()) == 0 {
				return fmt.Errorf("project has no shapes; pass --layout")
			}

			table, err := parser.ReadFile(args[0], s.cfg.ParserOptions())
			if err != nil {
				return err
			}

			plan, warnings, err := buildPlan(table.Columns, keyColumn, mappings)
			if err != nil {
				return err
			}

			if replace {
				for _, shape := range s.engine.Shapes() {
					s.engine.ClearShape(shape.ID)
				}
			}

			result, err := s.engine.ImportRows(table, plan)
			if err != nil {
				return err
			}
			result.Warnings = append(warnings, result.Warnings...)

			if err := s.save(); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&layoutPath, "layout", "", "Shape layout JSON to load into the project")
	cmd.Flags().StringVar(&keyColumn, "key", "", "Column naming the target shape (default: first column)")
	cmd.Flags().StringArrayVar(&mappings, "map", nil, "Bind COLUMN=VARIABLE (repeatable, in line order)")
	cmd.Flags().BoolVar(&replace, "replace", false, "Remove existing bindings before importing")
	cmd.Flags().String("sheet", "", "Worksheet name (default: first sheet)")
	cmd.Flags().String("range", "", "Cell range to read, e.g. A1:F40 (default: print area or data bounds)")
	config.BindImportFlags(cmd)
	return cmd
}

func newRemapCmd() *cobra.Command {
	var assigns []string

	cmd := &cobra.Command{
		Use:   "remap",
		Short: "Re-apply the last import with a new shape-to-row assignment",
		Long: `Re-applies the rows of the last import using a new correspondence between
shapes and sheet rows. Shapes left without a row are unbound.

  heatmap remap --assign "Shop A=3" --assign "Shop B=2"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}

			assignment := make(map[string]int, len(assigns))
			for _, a := range assigns {
				shape, rowText, ok := strings.Cut(a, "=")
				if !ok {
					return fmt.Errorf("invalid assignment %q (want SHAPE=ROW)", a)
				}
				row, err := strconv.Atoi(strings.TrimSpace(rowText))
				if err != nil {
					return fmt.Errorf("invalid row in %q: %w", a, err)
				}
				id, err := resolveShape(s, shape)
				if err != nil {
					return err
				}
				assignment[id] = row
			}

			result, err := s.engine.Remap(assignment)
			if err != nil {
				return err
			}
			if err := s.save(); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringArrayVar(&assigns, "assign", nil, "Assign SHAPE=ROW (shape id or name, sheet row number)")
	return cmd
}

// buildPlan picks the paired layout or an explicit column mapping.
func buildPlan(columns []string, keyColumn string, mappings []string) (models.ImportPlan, []string, error) {
	if len(mappings) == 0 {
		return importer.PairedPlan(columns)
	}

	if keyColumn == "" && len(columns) > 0 {
		keyColumn = columns[0]
	}
	cols := make([]string, 0, len(mappings))
	vars := make([]string, 0, len(mappings))
	for _, m := range mappings {
		col, variable, ok := strings.Cut(m, "=")
		if !ok {
			return models.ImportPlan{}, nil, fmt.Errorf("invalid mapping %q (want COLUMN=VARIABLE)", m)
		}
		cols = append(cols, strings.TrimSpace(col))
		vars = append(vars, strings.TrimSpace(variable))
	}
	plan, err := importer.ColumnPlan(keyColumn, cols, vars)
	return plan, nil, err
}

// resolveShape accepts a shape id or a shape name.
func resolveShape(s *session, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	for _, shape := range s.engine.Shapes() {
		if shape.ID == ref {
			return shape.ID, nil
		}
	}
	for _, shape := range s.engine.Shapes() {
		if strings.EqualFold(shape.Name, ref) {
			return shape.ID, nil
		}
	}
	return "", fmt.Errorf("unknown shape %q", ref)
}

// writeJSON prints v as JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	data, err := output.ToJSON(v, pretty)
	if err != nil {
		return err
	}
	if !pretty {
		data = append(data, '\n')
	}
	_, err = w.Write(data)
	return err
}
