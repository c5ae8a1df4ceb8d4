package quotex

import (
	"fmt"

	"github.com/industrialquote/quotex-go/pkg/quotex/parser"
)

// Re-exported so callers can match extraction errors without importing the
// parser package.
type (
	// MissingSheetError reports an absent required sheet.
	MissingSheetError = parser.MissingSheetError
	// MissingColumnError reports a header not found at its expected position.
	MissingColumnError = parser.MissingColumnError
)

// IsStructural reports whether err is a structural mismatch between workbook
// and format, the class of failure that justifies trying the other format.
func IsStructural(err error) bool {
	return parser.IsStructural(err)
}

// ExtractionFailedError reports that both extractors failed on a workbook.
// It keeps both causes so the caller can see why each format was rejected.
type ExtractionFailedError struct {
	Primary     Kind
	PrimaryErr  error
	Fallback    Kind
	FallbackErr error
}

func (e *ExtractionFailedError) Error() string {
	if e.FallbackErr == nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Primary, e.PrimaryErr)
	}
	return fmt.Sprintf("extraction failed: %s: %v; %s: %v",
		e.Primary, e.PrimaryErr, e.Fallback, e.FallbackErr)
}

// Unwrap exposes both causes to errors.Is and errors.As.
func (e *ExtractionFailedError) Unwrap() []error {
	errs := []error{e.PrimaryErr}
	if e.FallbackErr != nil {
		errs = append(errs, e.FallbackErr)
	}
	return errs
}
