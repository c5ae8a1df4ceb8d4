package parser

import (
	"errors"
	"fmt"
)

// MissingSheetError reports that a sheet required by the selected format is
// absent from the workbook. It is a structural failure: the facade treats it
// as grounds for trying the other extractor.
type MissingSheetError struct {
	Sheet string
}

func (e *MissingSheetError) Error() string {
	return fmt.Sprintf("required sheet %q not found in workbook", e.Sheet)
}

// MissingColumnError reports that a required column header was not found at
// its expected position. Like MissingSheetError it is structural.
type MissingColumnError struct {
	Sheet  string
	Column string
	Row    int
	Col    int
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("sheet %q: expected column header %q at row %d col %d",
		e.Sheet, e.Column, e.Row, e.Col)
}

// IsStructural reports whether err represents a structural mismatch between
// the workbook and the selected format, as opposed to an IO failure.
func IsStructural(err error) bool {
	var ms *MissingSheetError
	var mc *MissingColumnError
	return errors.As(err, &ms) || errors.As(err, &mc)
}
