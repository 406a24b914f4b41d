package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/render"
)

func newBindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bind SHAPE LINE VARIABLE VALUE",
		Short: "Bind a label line to a variable and value",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			key, err := bindingKey(s, args[0], args[1])
			if err != nil {
				return err
			}
			s.engine.Bind(key, args[2], args[3])
			b, err := s.engine.Binding(key)
			if err != nil {
				return err
			}
			if err := s.save(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Line(b))
			return nil
		},
	}
}

func newUnbindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unbind SHAPE LINE",
		Short: "Clear a label line's variable binding",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			key, err := bindingKey(s, args[0], args[1])
			if err != nil {
				return err
			}
			if _, err := s.engine.Binding(key); err != nil {
				return err
			}
			s.engine.Unbind(key)
			return s.save()
		},
	}
}

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Show shapes with their resolved colors and label lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, render.Legend(s.engine.Variables()))
			fmt.Fprint(out, render.Preview(s.engine))
			if n := len(s.engine.Unresolved()); n > 0 {
				fmt.Fprintln(out, render.WarnStyle.Render(fmt.Sprintf("%d binding(s) reference deleted variables", n)))
			}
			return nil
		},
	}
}

func bindingKey(s *session, shapeRef, lineText string) (models.BindingKey, error) {
	id, err := resolveShape(s, shapeRef)
	if err != nil {
		return models.BindingKey{}, err
	}
	line, err := strconv.Atoi(lineText)
	if err != nil || line < 0 {
		return models.BindingKey{}, fmt.Errorf("invalid line %q", lineText)
	}
	return models.BindingKey{ShapeID: id, Line: line}, nil
}
