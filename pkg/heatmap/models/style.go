package models

// NoRule is the MatchedRule value of a style produced without a matching rule.
const NoRule = -1

// ResolvedStyle is the display state computed for one binding. It is a
// value: every evaluation produces a fresh one.
type ResolvedStyle struct {
	// Color is the shape fill color.
	Color string `json:"color"`
	// TextColor is the label text color.
	TextColor string `json:"text_color"`
	// BackgroundColor is the label background color.
	BackgroundColor string `json:"bg_color"`
	// FontSize is the label font size in points.
	FontSize int `json:"font_size"`
	// Text is the display string after unit formatting.
	Text string `json:"text"`
	// MatchedRule is the index of the winning rule, or NoRule.
	MatchedRule int `json:"matched_rule"`
}

// Matched reports whether a rule produced this style.
func (s ResolvedStyle) Matched() bool {
	return s.MatchedRule != NoRule
}
