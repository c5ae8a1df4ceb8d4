package parser

import "testing"

type fakeSheets []string

func (f fakeSheets) GetSheetList() []string { return f }

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		sheets   []string
		expected Kind
	}{
		{"marker sheet present", []string{"NEW_OFFER1"}, KindProfittabilita},
		{"marker among others", []string{"Cover", "NEW_OFFER1", "VA21-01"}, KindProfittabilita},
		{"marker with padding", []string{" NEW_OFFER1 "}, KindProfittabilita},
		{"pre workbook", []string{"OFFER1", "MDC"}, KindPre},
		{"near miss is not the marker", []string{"NEW_OFFER"}, KindPre},
		{"empty workbook", nil, KindPre},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(fakeSheets(tt.sheets)); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}
