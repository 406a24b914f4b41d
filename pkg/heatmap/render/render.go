// Package render draws a terminal preview of shapes, their label lines and
// the resolved styles of those lines.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
)

// Source is the engine view the preview needs. *heatmap.Engine implements it.
type Source interface {
	Shapes() []models.Shape
	Fill(shapeID string) string
	ShapeBindings(shapeID string) []models.Binding
}

// Preview renders every shape with its fill swatch and styled label lines.
func Preview(src Source) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Shapes"))
	b.WriteString("\n")

	shapes := src.Shapes()
	if len(shapes) == 0 {
		b.WriteString(DimStyle.Render("  (no shapes)"))
		b.WriteString("\n")
		return b.String()
	}

	for _, s := range shapes {
		fill := src.Fill(s.ID)
		fmt.Fprintf(&b, "  %s %s %s\n", swatch(fill), NameStyle.Render(s.Name), DimStyle.Render(fill))
		for _, line := range src.ShapeBindings(s.ID) {
			b.WriteString(LineIndent.Render(Line(line)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Line renders one bound label line in its resolved text colors, followed
// by the variable and the rule that produced the style.
func Line(bd models.Binding) string {
	st := bd.Style
	text := lipgloss.NewStyle().
		Foreground(lipgloss.Color(st.TextColor)).
		Background(lipgloss.Color(st.BackgroundColor)).
		Render(st.Text)

	var origin string
	switch {
	case bd.Unresolved:
		origin = WarnStyle.Render(fmt.Sprintf("[%s: unresolved]", bd.Variable))
	case st.Matched():
		origin = DimStyle.Render(fmt.Sprintf("[%s: rule %d]", bd.Variable, st.MatchedRule+1))
	default:
		origin = DimStyle.Render(fmt.Sprintf("[%s: default]", bd.Variable))
	}
	return fmt.Sprintf("%d: %s %s %dpt", bd.Line, text, origin, st.FontSize)
}

// Legend lists each variable's rules in evaluation order.
func Legend(vars []models.Variable) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Variables"))
	b.WriteString("\n")
	for _, v := range vars {
		unit := ""
		if v.AutoUnit && v.Unit != "" {
			unit = DimStyle.Render(" unit " + v.Unit)
		}
		fmt.Fprintf(&b, "  %s%s\n", NameStyle.Render(v.Name), unit)
		for i, r := range v.Rules {
			fmt.Fprintf(&b, "    %d. %s x %s %g\n", i+1, swatch(r.Color), r.Operator, r.Threshold)
		}
		if v.Color != "" {
			fmt.Fprintf(&b, "    -  %s otherwise\n", swatch(v.Color))
		}
	}
	return b.String()
}
