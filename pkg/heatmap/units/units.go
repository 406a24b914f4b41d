// Package units composes display text from a raw value and a variable's
// unit configuration.
package units

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/registry"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/rules"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrency is the set of unit symbols placed before the number.
var DefaultCurrency = []string{"$", "€", "£", "฿", "¥"}

// maxGrouped bounds integral values that are regrouped.
const maxGrouped = 1e15

// numberToken matches the digits of a number with any separators already in
// place, plus a fraction or exponent.
var numberToken = regexp.MustCompile(`\d[\d,]*(?:\.\d*)?(?:[eE][+-]?\d+)?`)

// Placement is where a unit goes relative to the number.
type Placement int

const (
	// Suffix units follow the number after a space ("250 m²").
	Suffix Placement = iota
	// Prefix units precede the number directly ("$250").
	Prefix
)

// Formatter applies units to display text.
type Formatter struct {
	currency map[string]bool
	group    bool
	printer  *message.Printer
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithCurrency replaces the prefix unit set.
func WithCurrency(symbols []string) Option {
	return func(f *Formatter) {
		f.currency = make(map[string]bool, len(symbols))
		for _, s := range symbols {
			if s = strings.TrimSpace(s); s != "" {
				f.currency[s] = true
			}
		}
	}
}

// WithGrouping rewrites integral numbers with thousands separators.
func WithGrouping(enabled bool) Option {
	return func(f *Formatter) {
		f.group = enabled
	}
}

// New creates a Formatter.
func New(opts ...Option) *Formatter {
	f := &Formatter{printer: message.NewPrinter(language.English)}
	WithCurrency(DefaultCurrency)(f)
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Placement classifies a unit symbol.
func (f *Formatter) Placement(unit string) Placement {
	if f.currency[unit] {
		return Prefix
	}
	return Suffix
}

// Format returns the display text for raw under v's unit settings.
//
// Text is returned unmodified when auto units are off, the unit is empty,
// or the text is not numeric (grouping, when enabled, still applies to
// numeric text). Otherwise the unit is added unless already
// present, so Format(Format(x)) == Format(x).
func (f *Formatter) Format(raw string, v models.Variable) string {
	text := raw
	if f.group {
		text = f.Group(raw)
	}
	unit := registry.NormalizeUnit(v.Unit)
	if !v.AutoUnit || unit == "" {
		return text
	}
	if _, ok := rules.ParseNumber(text); !ok {
		return text
	}

	text = strings.TrimSpace(text)
	placement := f.Placement(unit)
	if hasUnit(text, unit, placement) {
		return text
	}
	if placement == Prefix {
		return unit + text
	}
	return text + " " + unit
}

// Group rewrites the integral number in raw with thousands separators and
// keeps the text around it ("$60000 USD" becomes "$60,000 USD"). Text that
// is not numeric or holds a fractional number is returned unchanged.
func (f *Formatter) Group(raw string) string {
	if _, ok := rules.ParseNumber(raw); !ok {
		return raw
	}
	loc := numberToken.FindStringIndex(raw)
	if loc == nil {
		return raw
	}
	token := raw[loc[0]:loc[1]]
	if strings.ContainsAny(token, ".eE") {
		return raw
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(token, ",", ""), 10, 64)
	if err != nil || n >= maxGrouped {
		return raw
	}
	return raw[:loc[0]] + f.printer.Sprintf("%v", n) + raw[loc[1]:]
}

func hasUnit(text, unit string, p Placement) bool {
	if p == Prefix {
		return strings.HasPrefix(text, unit) || strings.HasPrefix(text, "-"+unit)
	}
	return strings.HasSuffix(text, unit)
}
