// Package output serializes quotation trees and comparison reports.
package output

import (
	"encoding/json"
)

// ToJSON serializes v, optionally indented for human reading.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
