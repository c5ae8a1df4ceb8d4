package models

import (
	"encoding/json"
	"fmt"
	"os"
)

// SaveJSON writes the quotation to filepath as indented JSON. The encoding
// is deterministic: extracting the same workbook twice yields byte-identical
// output.
func (q *Quotation) SaveJSON(filepath string) error {
	data, err := json.MarshalIndent(q, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal quotation: %w", err)
	}
	if err := os.WriteFile(filepath, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath, err)
	}
	return nil
}

// LoadJSON reads a quotation previously written by SaveJSON.
func LoadJSON(filepath string) (*Quotation, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath, err)
	}
	var q Quotation
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath, err)
	}
	return &q, nil
}
