// Package parser implements the two workbook extractors and their shared
// cell-level plumbing.
package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// sheetGrid is an in-memory snapshot of one sheet, addressed with 1-based
// (row, column) coordinates. Reads past the populated area return "".
type sheetGrid struct {
	rows [][]string
}

// loadSheet snapshots sheetName from f. The caller is expected to have
// verified the sheet exists; excelize errors are passed through.
func loadSheet(f *excelize.File, sheetName string) (*sheetGrid, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	return &sheetGrid{rows: rows}, nil
}

// hasSheet reports whether the workbook contains a sheet with the given
// name, ignoring surrounding whitespace.
func hasSheet(f *excelize.File, sheetName string) bool {
	return containsSheet(f.GetSheetList(), sheetName)
}

// MaxRow returns the last populated row index (1-based), 0 for empty sheets.
func (g *sheetGrid) MaxRow() int {
	return len(g.rows)
}

// Cell returns the trimmed value at (row, col), both 1-based.
func (g *sheetGrid) Cell(row, col int) string {
	if row < 1 || row > len(g.rows) {
		return ""
	}
	r := g.rows[row-1]
	if col < 1 || col > len(r) {
		return ""
	}
	return strings.TrimSpace(r[col-1])
}

// CellAt resolves a CellRef through Cell.
func (g *sheetGrid) CellAt(ref CellRef) string {
	return g.Cell(ref.Row, ref.Col)
}
