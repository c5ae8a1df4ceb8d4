package parser

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// buildPreWorkbook writes a minimal PRE fixture and returns its path.
// The data block holds one group, one category, and two items whose total
// cost sums to 25.
func buildPreWorkbook(t *testing.T, withMDC bool) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "OFFER1")
	f.SetCellValue("OFFER1", "A1", "Project: P-100")
	f.SetCellValue("OFFER1", "G3", "Customer: ACME Corp")
	f.SetCellValue("OFFER1", "B8", "2%")
	f.SetCellValue("OFFER1", "B9", "1%")
	f.SetCellValue("OFFER1", "B10", 100)
	f.SetCellValue("OFFER1", "B11", "Euro")
	f.SetCellValue("OFFER1", "B12", 1)
	f.SetCellValue("OFFER1", "B13", 50)
	f.SetCellValue("OFFER1", "K8", "1%")

	f.SetCellValue("OFFER1", "A17", "COD")

	// Group header.
	f.SetCellValue("OFFER1", "C18", "TXT-01")
	f.SetCellValue("OFFER1", "D18", "Main line")
	f.SetCellValue("OFFER1", "E18", 1)
	// Category header.
	f.SetCellValue("OFFER1", "A19", "ABCD")
	f.SetCellValue("OFFER1", "C19", "CAT-A")
	f.SetCellValue("OFFER1", "D19", "Robots")
	// Item X1: stored total cost 20.
	f.SetCellValue("OFFER1", "C20", "X1")
	f.SetCellValue("OFFER1", "D20", "Robot cell")
	f.SetCellValue("OFFER1", "E20", 2)
	f.SetCellValue("OFFER1", "S20", 10)
	f.SetCellValue("OFFER1", "T20", 20)
	// Item X2: zero stored total, recomputed from 1 x 5.
	f.SetCellValue("OFFER1", "C21", "X2")
	f.SetCellValue("OFFER1", "D21", "Conveyor")
	f.SetCellValue("OFFER1", "E21", 1)
	f.SetCellValue("OFFER1", "S21", 5)
	f.SetCellValue("OFFER1", "T21", 0)

	if withMDC {
		f.NewSheet("MDC")
		f.SetCellValue("MDC", "A2", "COD")
		f.SetCellValue("MDC", "A4", "CC2199-A-ABCD-IT")
		f.SetCellValue("MDC", "B4", "Robots")
		f.SetCellValue("MDC", "C4", 1)
		f.SetCellValue("MDC", "D4", 20)
		f.SetCellValue("MDC", "E4", 30)
		f.SetCellValue("MDC", "F4", 40)
		f.SetCellValue("MDC", "G4", 45)
	}

	path := filepath.Join(t.TempDir(), "pre.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func openWorkbook(t *testing.T, path string) *excelize.File {
	t.Helper()
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func assertDecimal(t *testing.T, label string, got decimal.Decimal, expected string) {
	t.Helper()
	want, _ := decimal.NewFromString(expected)
	if !got.Equal(want) {
		t.Errorf("%s: expected %s, got %s", label, want, got)
	}
}

func TestPreExtract(t *testing.T) {
	path := buildPreWorkbook(t, false)
	f := openWorkbook(t, path)

	q, err := NewPreExtractor(DefaultPreSchema()).Extract(f, path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if q.Project.ID != "P-100" {
		t.Errorf("Expected project P-100, got %q", q.Project.ID)
	}
	if q.Project.Customer != "ACME Corp" {
		t.Errorf("Expected customer ACME Corp, got %q", q.Project.Customer)
	}
	if q.Project.Parameters.Currency != "EUR" {
		t.Errorf("Expected currency EUR, got %q", q.Project.Parameters.Currency)
	}
	if q.ParserType != string(KindPre) {
		t.Errorf("Expected parser type %s, got %s", KindPre, q.ParserType)
	}

	if len(q.ProductGroups) != 1 {
		t.Fatalf("Expected 1 group, got %d", len(q.ProductGroups))
	}
	g := q.ProductGroups[0]
	if g.GroupID != "TXT-01" || g.GroupName != "Main line" {
		t.Errorf("Unexpected group %q %q", g.GroupID, g.GroupName)
	}
	if len(g.Categories) != 1 {
		t.Fatalf("Expected 1 category, got %d", len(g.Categories))
	}
	c := g.Categories[0]
	if c.CategoryID != "ABCD" || c.CategoryName != "Robots" {
		t.Errorf("Unexpected category %q %q", c.CategoryID, c.CategoryName)
	}
	if len(c.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(c.Items))
	}
	assertDecimal(t, "X1 total cost", c.Items[0].TotalCost, "20")
	// Stored zero total is recomputed from quantity times unit cost.
	assertDecimal(t, "X2 total cost", c.Items[1].TotalCost, "5")

	assertDecimal(t, "equipment total", q.Totals.EquipmentTotal, "25")
	assertDecimal(t, "doc fee", q.Totals.DocFee, "0.5")
	assertDecimal(t, "pm fee", q.Totals.PMFee, "0.25")
	assertDecimal(t, "warranty fee", q.Totals.WarrantyFee, "0.25")
	// 25 + 0.5 + 0.25 + 0.25 + 100 financial + 50 waste disposal.
	assertDecimal(t, "grand total", q.Totals.GrandTotal, "176")
}

func TestPreExtractMDCOverrides(t *testing.T) {
	path := buildPreWorkbook(t, true)
	f := openWorkbook(t, path)

	q, err := NewPreExtractor(DefaultPreSchema()).Extract(f, path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	c := q.ProductGroups[0].Categories[0]
	if c.WBE != "CC2199-A-ABCD-IT" {
		t.Errorf("Expected WBE CC2199-A-ABCD-IT, got %q", c.WBE)
	}
	if c.OfferPrice == nil {
		t.Fatal("Expected offer price from MDC sheet")
	}
	assertDecimal(t, "offer price", *c.OfferPrice, "40")
}

func TestPreExtractMalformedMDCWarns(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", "OFFER1")
	f.SetCellValue("OFFER1", "A17", "COD")
	f.SetCellValue("OFFER1", "A18", "ABCD")
	f.SetCellValue("OFFER1", "D18", "Robots")
	// MDC sheet without its COD marker anywhere in column A.
	f.NewSheet("MDC")
	f.SetCellValue("MDC", "A1", "something else")

	path := filepath.Join(t.TempDir(), "badmdc.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	f2 := openWorkbook(t, path)

	q, err := NewPreExtractor(DefaultPreSchema()).Extract(f2, path)
	if err != nil {
		t.Fatalf("A malformed MDC sheet must not abort extraction: %v", err)
	}
	if len(q.Warnings) == 0 {
		t.Fatal("Expected a warning about the unreadable MDC sheet")
	}
	if q.ProductGroups[0].Categories[0].WBE != "" {
		t.Errorf("Expected no WBE override, got %q", q.ProductGroups[0].Categories[0].WBE)
	}
}

func TestPreExtractImplicitCategory(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", "OFFER1")
	f.SetCellValue("OFFER1", "A17", "COD")
	// An item row with no preceding group or category header.
	f.SetCellValue("OFFER1", "C18", "X9")
	f.SetCellValue("OFFER1", "D18", "Orphan item")
	f.SetCellValue("OFFER1", "E18", 1)
	f.SetCellValue("OFFER1", "S18", 3)
	f.SetCellValue("OFFER1", "T18", 3)

	path := filepath.Join(t.TempDir(), "orphan.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	f2 := openWorkbook(t, path)

	q, err := NewPreExtractor(DefaultPreSchema()).Extract(f2, path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(q.ProductGroups) != 1 || len(q.ProductGroups[0].Categories) != 1 {
		t.Fatalf("Expected implicit group and category, got %+v", q.ProductGroups)
	}
	items := q.ProductGroups[0].Categories[0].Items
	if len(items) != 1 || items[0].Description != "Orphan item" {
		t.Fatalf("Expected the orphan item, got %+v", items)
	}
}

func TestPreExtractMissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	f2 := openWorkbook(t, path)

	_, err := NewPreExtractor(DefaultPreSchema()).Extract(f2, path)
	var ms *MissingSheetError
	if !errors.As(err, &ms) {
		t.Fatalf("Expected MissingSheetError, got %v", err)
	}
	if !IsStructural(err) {
		t.Error("Expected a structural error")
	}
}

func TestPreExtractMissingHeader(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", "OFFER1")
	f.SetCellValue("OFFER1", "A17", "WRONG")
	path := filepath.Join(t.TempDir(), "badheader.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	f2 := openWorkbook(t, path)

	_, err := NewPreExtractor(DefaultPreSchema()).Extract(f2, path)
	var mc *MissingColumnError
	if !errors.As(err, &mc) {
		t.Fatalf("Expected MissingColumnError, got %v", err)
	}
	if mc.Row != 17 || mc.Col != 1 {
		t.Errorf("Expected position (17,1), got (%d,%d)", mc.Row, mc.Col)
	}
}
