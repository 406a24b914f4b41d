package registry

import "strings"

// NormalizeUnit reduces a unit label to its symbol. "m² (Square Meter)"
// becomes "m²"; "None" and blank labels become "".
func NormalizeUnit(label string) string {
	label = strings.TrimSpace(label)
	if i := strings.Index(label, "("); i >= 0 {
		label = strings.TrimSpace(label[:i])
	}
	if strings.EqualFold(label, "none") {
		return ""
	}
	return label
}
