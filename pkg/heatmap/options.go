// Package heatmap provides the conditional coloring engine: variables with
// ordered rules, label bindings that cache resolved styles, and bulk
// import of spreadsheet rows onto shapes.
package heatmap

import (
	"io"
	"log/slog"

	"github.com/ukaji3/heatmap-go/pkg/heatmap/evaluator"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/units"
)

// Options configures an Engine.
type Options struct {
	// Fallback is the style used when neither rule nor variable sets an attribute.
	Fallback evaluator.Fallback
	// Currency lists unit symbols placed before the number.
	// If nil, units.DefaultCurrency is used.
	Currency []string
	// GroupThousands rewrites integral display values with separators.
	GroupThousands bool
	// CaseSensitiveShapes makes import row keys match shape names exactly.
	CaseSensitiveShapes bool
	// Logger receives engine events. If nil, events are discarded.
	Logger *slog.Logger
}

// DefaultOptions returns default engine options.
func DefaultOptions() Options {
	return Options{
		Fallback: evaluator.DefaultFallback(),
	}
}

// currency returns the prefix unit set to use.
func (o Options) currency() []string {
	if o.Currency != nil {
		return o.Currency
	}
	return units.DefaultCurrency
}

// logger returns the configured logger or a discarding one.
func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
