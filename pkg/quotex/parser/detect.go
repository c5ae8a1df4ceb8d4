package parser

import "strings"

// Kind identifies one of the two supported workbook formats.
type Kind string

const (
	// KindPre is the PRE commercial quotation format.
	KindPre Kind = "pre"
	// KindProfittabilita is the Analisi Profittabilita cost analysis format.
	KindProfittabilita Kind = "analisi_profittabilita"
)

// profittabilitaMarkerSheet is the single structural signal that separates
// the two formats.
const profittabilitaMarkerSheet = "NEW_OFFER1"

// Detect classifies an open workbook. The rule is total and deterministic:
// a sheet literally named NEW_OFFER1 means Analisi Profittabilita, anything
// else is PRE. There is no "unknown" outcome at this layer.
func Detect(f SheetLister) Kind {
	if containsSheet(f.GetSheetList(), profittabilitaMarkerSheet) {
		return KindProfittabilita
	}
	return KindPre
}

// SheetLister is the part of an open workbook detection needs.
type SheetLister interface {
	GetSheetList() []string
}

func containsSheet(names []string, want string) bool {
	for _, name := range names {
		if strings.TrimSpace(name) == want {
			return true
		}
	}
	return false
}
