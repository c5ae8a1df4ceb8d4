package quotex

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/industrialquote/quotex-go/pkg/quotex/models"
	"github.com/industrialquote/quotex-go/pkg/quotex/output"
)

// saveWorkbook writes f to a temp file and returns its path.
func saveWorkbook(t *testing.T, f *excelize.File, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

// minimalPre builds a workbook the PRE extractor accepts.
func minimalPre(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", "OFFER1")
	f.SetCellValue("OFFER1", "A1", "P-1")
	f.SetCellValue("OFFER1", "A17", "COD")
	f.SetCellValue("OFFER1", "C18", "X1")
	f.SetCellValue("OFFER1", "D18", "Widget")
	f.SetCellValue("OFFER1", "E18", 1)
	f.SetCellValue("OFFER1", "S18", 10)
	f.SetCellValue("OFFER1", "T18", 10)
	return saveWorkbook(t, f, "pre.xlsx")
}

func TestExtractDetectsPre(t *testing.T) {
	path := minimalPre(t)
	q, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if q.ParserType != string(KindPre) {
		t.Errorf("Expected parser type %s, got %s", KindPre, q.ParserType)
	}
	if q.SourceFile != path {
		t.Errorf("Expected source file %s, got %s", path, q.SourceFile)
	}
}

func TestExtractFallsBackToPre(t *testing.T) {
	// The marker sheet routes detection to the profittabilita extractor,
	// which fails structurally; the PRE sheet is complete so the fallback
	// succeeds.
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", "NEW_OFFER1")
	f.NewSheet("OFFER1")
	f.SetCellValue("OFFER1", "A17", "COD")
	f.SetCellValue("OFFER1", "C18", "X1")
	f.SetCellValue("OFFER1", "D18", "Widget")
	f.SetCellValue("OFFER1", "E18", 1)
	f.SetCellValue("OFFER1", "S18", 10)
	f.SetCellValue("OFFER1", "T18", 10)
	path := saveWorkbook(t, f, "mixed.xlsx")

	q, err := Extract(path)
	if err != nil {
		t.Fatalf("Expected fallback to succeed, got %v", err)
	}
	if q.ParserType != string(KindPre) {
		t.Errorf("Expected parser type %s after fallback, got %s", KindPre, q.ParserType)
	}
}

func TestExtractBothFail(t *testing.T) {
	// Marker sheet present but headerless, and no PRE sheet at all.
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", "NEW_OFFER1")
	path := saveWorkbook(t, f, "broken.xlsx")

	_, err := Extract(path)
	var failed *ExtractionFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("Expected ExtractionFailedError, got %v", err)
	}
	if failed.Primary != KindProfittabilita || failed.Fallback != KindPre {
		t.Errorf("Expected profittabilita then pre, got %s then %s", failed.Primary, failed.Fallback)
	}
	var mc *MissingColumnError
	if !errors.As(failed.PrimaryErr, &mc) {
		t.Errorf("Expected MissingColumnError as primary cause, got %v", failed.PrimaryErr)
	}
	var ms *MissingSheetError
	if !errors.As(failed.FallbackErr, &ms) {
		t.Errorf("Expected MissingSheetError as fallback cause, got %v", failed.FallbackErr)
	}
}

func TestRunCandidates(t *testing.T) {
	ok := &models.Quotation{ParserType: "ok"}
	structural := &MissingSheetError{Sheet: "X"}
	ioErr := errors.New("disk on fire")

	succeed := func(*excelize.File, string) (*models.Quotation, error) { return ok, nil }
	failStructural := func(*excelize.File, string) (*models.Quotation, error) { return nil, structural }
	failHard := func(*excelize.File, string) (*models.Quotation, error) { return nil, ioErr }

	t.Run("first candidate wins", func(t *testing.T) {
		q, err := runCandidates(nil, "src", []candidate{{KindPre, succeed}, {KindProfittabilita, failHard}})
		if err != nil || q != ok {
			t.Fatalf("Expected first candidate result, got %v, %v", q, err)
		}
	})

	t.Run("structural failure falls through", func(t *testing.T) {
		q, err := runCandidates(nil, "src", []candidate{{KindPre, failStructural}, {KindProfittabilita, succeed}})
		if err != nil || q != ok {
			t.Fatalf("Expected fallback result, got %v, %v", q, err)
		}
	})

	t.Run("non-structural failure aborts", func(t *testing.T) {
		_, err := runCandidates(nil, "src", []candidate{{KindPre, failHard}, {KindProfittabilita, succeed}})
		if !errors.Is(err, ioErr) {
			t.Fatalf("Expected the IO error, got %v", err)
		}
	})

	t.Run("all structural failures aggregate", func(t *testing.T) {
		_, err := runCandidates(nil, "src", []candidate{{KindPre, failStructural}, {KindProfittabilita, failStructural}})
		var failed *ExtractionFailedError
		if !errors.As(err, &failed) {
			t.Fatalf("Expected ExtractionFailedError, got %v", err)
		}
		if !errors.Is(err, structural) {
			t.Error("Expected wrapped causes to be reachable via errors.Is")
		}
	})
}

func TestForceExtract(t *testing.T) {
	path := minimalPre(t)

	q, err := ForceExtract(path, KindPre)
	if err != nil {
		t.Fatalf("ForceExtract failed: %v", err)
	}
	if q.ParserType != string(KindPre) {
		t.Errorf("Expected parser type %s, got %s", KindPre, q.ParserType)
	}

	// Forcing the wrong format must fail without falling back.
	if _, err := ForceExtract(path, KindProfittabilita); !IsStructural(err) {
		t.Errorf("Expected a structural error, got %v", err)
	}
}

func TestExtractDeterministic(t *testing.T) {
	path := minimalPre(t)

	first, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	second, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	a, err := output.ToJSON(first, true)
	if err != nil {
		t.Fatalf("Serialization failed: %v", err)
	}
	b, err := output.ToJSON(second, true)
	if err != nil {
		t.Fatalf("Serialization failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("Expected byte-identical JSON for repeated extractions")
	}
}

func TestAnalyzeConfidence(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", "NEW_OFFER1")
	f.SetCellValue("NEW_OFFER1", "A3", "COD")
	f.NewSheet("VA21-01")
	path := saveWorkbook(t, f, "analisi_full.xlsx")

	report, err := AnalyzeConfidence(path)
	if err != nil {
		t.Fatalf("AnalyzeConfidence failed: %v", err)
	}
	if report.Recommended != KindProfittabilita {
		t.Errorf("Expected recommendation %s, got %s", KindProfittabilita, report.Recommended)
	}
	if len(report.Kinds) != 2 {
		t.Fatalf("Expected a score for every format, got %+v", report.Kinds)
	}
	if got := report.Score(KindProfittabilita); got < 0.8 || got > 1 {
		t.Errorf("Expected profittabilita score in [0.8, 1], got %v", got)
	}
	if got := report.Score(KindPre); got != 0 {
		t.Errorf("Expected zero pre score with no pre markers, got %v", got)
	}
	for _, c := range report.Kinds {
		if c.Kind == KindProfittabilita && len(c.Signals) == 0 {
			t.Error("Expected contributing signals to be listed")
		}
	}
}

func TestAnalyzeConfidenceScoresBothFormats(t *testing.T) {
	// Markers of both formats: the marker sheet routes the recommendation,
	// but the PRE side must still show how well it matches.
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", "NEW_OFFER1")
	f.NewSheet("OFFER1")
	f.SetCellValue("OFFER1", "A17", "COD")
	f.NewSheet("MDC")
	path := saveWorkbook(t, f, "mixed.xlsx")

	report, err := AnalyzeConfidence(path)
	if err != nil {
		t.Fatalf("AnalyzeConfidence failed: %v", err)
	}
	if report.Recommended != KindProfittabilita {
		t.Errorf("Expected recommendation %s, got %s", KindProfittabilita, report.Recommended)
	}
	// Either format's extractor could be compared through its score.
	if got := report.Score(KindPre); got < 0.8 {
		t.Errorf("Expected pre score >= 0.8 with sheet, header and MDC present, got %v", got)
	}
	if got := report.Score(KindProfittabilita); got != 0.5 {
		t.Errorf("Expected profittabilita score 0.5 with a headerless marker sheet, got %v", got)
	}
}
