// Package quotex extracts industrial quotation workbooks into a unified
// tree and exposes format detection, forced extraction and confidence
// analysis on top of the two format-specific extractors.
package quotex

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/industrialquote/quotex-go/pkg/quotex/models"
	"github.com/industrialquote/quotex-go/pkg/quotex/parser"
)

// Kind identifies one of the two supported workbook formats.
type Kind = parser.Kind

const (
	// KindPre is the PRE commercial quotation format.
	KindPre = parser.KindPre
	// KindProfittabilita is the Analisi Profittabilita cost analysis format.
	KindProfittabilita = parser.KindProfittabilita
)

// Extractor runs format detection and extraction with fixed schemas. The
// zero value is not usable; construct with NewExtractor.
type Extractor struct {
	pre  parser.PreSchema
	prof parser.ProfittabilitaSchema
}

// NewExtractor returns an extractor using the current format layouts.
func NewExtractor() *Extractor {
	return &Extractor{
		pre:  parser.DefaultPreSchema(),
		prof: parser.DefaultProfittabilitaSchema(),
	}
}

// NewExtractorWithSchemas returns an extractor with explicit layouts, for
// format revisions that move cells or columns.
func NewExtractorWithSchemas(pre parser.PreSchema, prof parser.ProfittabilitaSchema) *Extractor {
	return &Extractor{pre: pre, prof: prof}
}

// NewExtractorFromConfig returns an extractor with the default layouts and
// the config's thresholds applied.
func NewExtractorFromConfig(cfg Config) *Extractor {
	e := NewExtractor()
	e.pre.InstallationPercent = cfg.InstallationPercent()
	return e
}

// Extract opens the workbook at path, detects its format, and extracts it.
// When the detected format fails structurally the other format is tried; if
// both fail the returned error is an *ExtractionFailedError carrying both
// causes.
func (e *Extractor) Extract(path string) (*models.Quotation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	detected := parser.Detect(f)
	return runCandidates(f, path, e.orderedCandidates(detected))
}

// ForceExtract extracts the workbook as the given format, with no detection
// and no fallback.
func (e *Extractor) ForceExtract(path string, kind Kind) (*models.Quotation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	for _, c := range e.orderedCandidates(kind) {
		if c.kind == kind {
			return c.run(f, path)
		}
	}
	return nil, fmt.Errorf("unsupported format %q", kind)
}

// Detect reports the format the workbook at path would be extracted as.
func (e *Extractor) Detect(path string) (Kind, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return parser.Detect(f), nil
}

// candidate pairs a format with its extraction function.
type candidate struct {
	kind Kind
	run  func(f *excelize.File, sourceFile string) (*models.Quotation, error)
}

// orderedCandidates lists both extractors with the detected format first.
func (e *Extractor) orderedCandidates(first Kind) []candidate {
	pre := candidate{KindPre, parser.NewPreExtractor(e.pre).Extract}
	prof := candidate{KindProfittabilita, parser.NewProfittabilitaExtractor(e.prof).Extract}
	if first == KindProfittabilita {
		return []candidate{prof, pre}
	}
	return []candidate{pre, prof}
}

// runCandidates tries each candidate in order. A structural failure moves on
// to the next candidate; any other failure aborts immediately. When every
// candidate fails structurally the result is an *ExtractionFailedError.
func runCandidates(f *excelize.File, sourceFile string, candidates []candidate) (*models.Quotation, error) {
	failed := &ExtractionFailedError{}
	for i, c := range candidates {
		q, err := c.run(f, sourceFile)
		if err == nil {
			return q, nil
		}
		if !IsStructural(err) {
			return nil, err
		}
		if i == 0 {
			failed.Primary, failed.PrimaryErr = c.kind, err
		} else {
			failed.Fallback, failed.FallbackErr = c.kind, err
		}
	}
	return nil, failed
}

// Extract extracts the workbook at path with the default layouts.
func Extract(path string) (*models.Quotation, error) {
	return NewExtractor().Extract(path)
}

// ForceExtract extracts the workbook at path as the given format, with the
// default layouts and no fallback.
func ForceExtract(path string, kind Kind) (*models.Quotation, error) {
	return NewExtractor().ForceExtract(path, kind)
}

// Confidence reports how strongly a workbook's structure matches one format.
type Confidence struct {
	Kind    Kind     `json:"kind"`
	Score   float64  `json:"score"`
	Signals []string `json:"signals"`
}

// ConfidenceReport scores a workbook against both formats, so a caller can
// see how well each extractor would fit even when markers of both are
// present. Recommended is the format detection would pick.
type ConfidenceReport struct {
	Recommended Kind         `json:"recommended"`
	Kinds       []Confidence `json:"kinds"`
}

// Score returns the score for one format, zero for an unknown kind.
func (r *ConfidenceReport) Score(kind Kind) float64 {
	for _, c := range r.Kinds {
		if c.Kind == kind {
			return c.Score
		}
	}
	return 0
}

// AnalyzeConfidence inspects the workbook's structural markers and filename
// and scores every format, not just the detected one. Scores are clamped to
// [0, 1]; each entry's signal list records the markers that contributed.
func (e *Extractor) AnalyzeConfidence(path string) (*ConfidenceReport, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	name := strings.ToLower(filepath.Base(path))
	return &ConfidenceReport{
		Recommended: parser.Detect(f),
		Kinds: []Confidence{
			e.scorePre(f, sheets, name),
			e.scoreProfittabilita(f, sheets, name),
		},
	}, nil
}

func (e *Extractor) scorePre(f *excelize.File, sheets []string, name string) Confidence {
	conf := Confidence{Kind: KindPre}
	if containsName(sheets, e.pre.Sheet) {
		conf.add(0.5, "sheet "+e.pre.Sheet+" present")
		if headerAt(f, e.pre.Sheet, e.pre.HeaderRow, e.pre.ColCod, e.pre.HeaderCode) {
			conf.add(0.2, fmt.Sprintf("header %s at expected position", e.pre.HeaderCode))
		}
	}
	if containsName(sheets, e.pre.MDCSheet) {
		conf.add(0.1, "sheet "+e.pre.MDCSheet+" present")
	}
	if strings.Contains(name, "pre") {
		conf.add(0.1, "filename suggests pre")
	}
	conf.finish()
	return conf
}

func (e *Extractor) scoreProfittabilita(f *excelize.File, sheets []string, name string) Confidence {
	conf := Confidence{Kind: KindProfittabilita}
	if containsName(sheets, e.prof.Sheet) {
		conf.add(0.5, "sheet "+e.prof.Sheet+" present")
		if headerAt(f, e.prof.Sheet, e.prof.HeaderRow, e.prof.Cols.Cod, e.prof.HeaderCode) {
			conf.add(0.2, fmt.Sprintf("header %s at expected position", e.prof.HeaderCode))
		}
	}
	if n := countPrefixed(sheets, e.prof.VA21Prefix); n > 0 {
		conf.add(0.1, fmt.Sprintf("%d %s sheet(s) present", n, e.prof.VA21Prefix))
	}
	if strings.Contains(name, "analisi") || strings.Contains(name, "profittabilita") {
		conf.add(0.1, "filename suggests analisi profittabilita")
	}
	conf.finish()
	return conf
}

func (c *Confidence) add(weight float64, signal string) {
	c.Score += weight
	c.Signals = append(c.Signals, signal)
}

func (c *Confidence) finish() {
	if c.Score > 1 {
		c.Score = 1
	}
	sort.Strings(c.Signals)
}

// AnalyzeConfidence scores the workbook at path with the default layouts.
func AnalyzeConfidence(path string) (*ConfidenceReport, error) {
	return NewExtractor().AnalyzeConfidence(path)
}

func headerAt(f *excelize.File, sheet string, row, col int, want string) bool {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return false
	}
	value, err := f.GetCellValue(sheet, ref)
	if err != nil {
		return false
	}
	return strings.TrimSpace(value) == want
}

func containsName(names []string, want string) bool {
	for _, n := range names {
		if strings.TrimSpace(n) == want {
			return true
		}
	}
	return false
}

func countPrefixed(names []string, prefix string) int {
	n := 0
	for _, name := range names {
		if strings.HasPrefix(strings.TrimSpace(name), prefix) {
			n++
		}
	}
	return n
}
