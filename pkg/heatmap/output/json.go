// Package output serializes engine data for the host.
package output

import (
	"bytes"
	"encoding/json"
)

// ToJSON serializes v. Pretty output is indented with two spaces and ends
// with a newline. HTML characters are not escaped so unit symbols and
// "<"/">" operators stay readable.
func ToJSON(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if !pretty {
		return bytes.TrimRight(buf.Bytes(), "\n"), nil
	}
	return buf.Bytes(), nil
}
