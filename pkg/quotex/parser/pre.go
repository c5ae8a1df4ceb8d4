package parser

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/industrialquote/quotex-go/pkg/quotex/models"
)

// PreExtractor maps a PRE-format workbook into the unified quotation tree.
// The schema is fixed at construction and never mutated.
type PreExtractor struct {
	schema PreSchema
}

// NewPreExtractor builds an extractor for the given layout.
func NewPreExtractor(schema PreSchema) *PreExtractor {
	return &PreExtractor{schema: schema}
}

// Extract reads the whole workbook into a quotation tree. Structural
// mismatches (missing sheet, wrong header position) abort with typed errors;
// malformed cell values degrade to defaults with a recorded warning.
func (p *PreExtractor) Extract(f *excelize.File, sourceFile string) (*models.Quotation, error) {
	s := p.schema
	if !hasSheet(f, s.Sheet) {
		return nil, &MissingSheetError{Sheet: s.Sheet}
	}
	grid, err := loadSheet(f, s.Sheet)
	if err != nil {
		return nil, err
	}
	if grid.Cell(s.HeaderRow, s.ColCod) != s.HeaderCode {
		return nil, &MissingColumnError{Sheet: s.Sheet, Column: s.HeaderCode, Row: s.HeaderRow, Col: s.ColCod}
	}

	co := &Coercer{}
	project := p.extractProject(grid, co)
	groups := p.extractGroups(grid, co)

	if hasSheet(f, s.MDCSheet) {
		overrides, err := readMDC(f, s.MDCSheet, co)
		switch {
		case err != nil:
			co.warnf("sheet %s: %v, skipping overrides", s.MDCSheet, err)
		case len(overrides) > 0:
			applyWBEOverrides(groups, overrides)
		}
	}

	q := &models.Quotation{
		Project:       project,
		ProductGroups: groups,
		SourceFile:    sourceFile,
		ParserType:    string(KindPre),
	}
	q.Totals = p.calculateTotals(groups, project.Parameters)
	q.Warnings = co.Warnings()
	return q, nil
}

func (p *PreExtractor) extractProject(grid *sheetGrid, co *Coercer) models.ProjectInfo {
	s := p.schema
	params := models.DefaultParameters()
	params.DocPercentage = co.Number(afterColon(grid.CellAt(s.CellDocPercentage)), decimal.Zero)
	params.PMPercentage = co.Number(afterColon(grid.CellAt(s.CellPMPercentage)), decimal.Zero)
	params.FinancialCosts = co.Number(afterColon(grid.CellAt(s.CellFinancialCosts)), decimal.Zero)
	params.Currency = NormalizeCurrency(afterColon(grid.CellAt(s.CellCurrency)))
	params.ExchangeRate = co.Number(afterColon(grid.CellAt(s.CellExchangeRate)), decimal.NewFromInt(1))
	params.WasteDisposal = co.Number(afterColon(grid.CellAt(s.CellWasteDisposal)), decimal.Zero)
	params.WarrantyPercentage = co.Number(afterColon(grid.CellAt(s.CellWarrantyPercentage)), decimal.Zero)

	return models.ProjectInfo{
		ID:         afterColon(grid.CellAt(s.CellProjectID)),
		Customer:   afterColon(grid.CellAt(s.CellCustomer)),
		Parameters: params,
	}
}

// extractGroups walks the data rows classifying each as a group header, a
// category header, or an item. Items that appear before any category header
// are attached to an implicit default category.
func (p *PreExtractor) extractGroups(grid *sheetGrid, co *Coercer) []models.ProductGroup {
	s := p.schema
	var groups []models.ProductGroup
	var group *models.ProductGroup
	var category *models.QuotationCategory

	flushGroup := func() {
		if group != nil {
			if category != nil {
				group.Categories = append(group.Categories, *category)
				category = nil
			}
			groups = append(groups, *group)
			group = nil
		}
	}
	flushCategory := func() {
		if category != nil {
			group.Categories = append(group.Categories, *category)
			category = nil
		}
	}
	ensureGroup := func() {
		if group == nil {
			group = &models.ProductGroup{Quantity: 1}
		}
	}

	for row := s.DataStartRow; row <= grid.MaxRow(); row++ {
		cod := grid.Cell(row, s.ColCod)
		codice := grid.Cell(row, s.ColCodice)
		description := grid.Cell(row, s.ColDenominazione)

		switch {
		case strings.HasPrefix(codice, s.GroupPrefix):
			flushGroup()
			group = &models.ProductGroup{
				GroupID:   codice,
				GroupName: description,
				Quantity:  co.Int(grid.Cell(row, s.ColQta), 1),
			}

		case len(cod) == s.CategoryCodeLength && cod != s.HeaderCode:
			ensureGroup()
			flushCategory()
			category = &models.QuotationCategory{
				CategoryID:      cod,
				CategoryCode:    codice,
				CategoryName:    description,
				SubtotalListino: co.Number(grid.Cell(row, s.ColSubTotListino), decimal.Zero),
				SubtotalCosto:   co.Number(grid.Cell(row, s.ColSubTotCosto), decimal.Zero),
				TotalCost:       co.Number(grid.Cell(row, s.ColTotaleCosto), decimal.Zero),
			}
			if offer := co.Number(grid.Cell(row, s.ColTotaleOfferta), decimal.Zero); offer.IsPositive() {
				category.OfferPrice = &offer
			}

		case description != "" && !strings.HasPrefix(cod, s.HeaderCode):
			ensureGroup()
			if category == nil {
				category = &models.QuotationCategory{}
			}
			item := models.QuotationItem{
				Position:            row,
				Code:                codice,
				CodListino:          grid.Cell(row, s.ColCodListino),
				Description:         description,
				Quantity:            co.Number(grid.Cell(row, s.ColQta), decimal.Zero),
				PricelistUnitPrice:  co.Number(grid.Cell(row, s.ColListUnit), decimal.Zero),
				PricelistTotalPrice: co.Number(grid.Cell(row, s.ColListinoTotale), decimal.Zero),
				UnitCost:            co.Number(grid.Cell(row, s.ColCostoUnitario), decimal.Zero),
				TotalCost:           co.Number(grid.Cell(row, s.ColCosto), decimal.Zero),
			}
			item.Normalize()
			category.Items = append(category.Items, item)
		}
	}
	flushGroup()

	for gi := range groups {
		for ci := range groups[gi].Categories {
			groups[gi].Categories[ci].FillSubtotals()
		}
	}
	return groups
}

// calculateTotals applies the PRE fee model: percentage fees on the
// equipment total plus the flat financial and waste disposal amounts.
func (p *PreExtractor) calculateTotals(groups []models.ProductGroup, params models.ParameterSet) models.Totals {
	equipment := decimal.Zero
	for gi := range groups {
		for ci := range groups[gi].Categories {
			cat := &groups[gi].Categories[ci]
			for ii := range cat.Items {
				equipment = equipment.Add(cat.Items[ii].TotalCost)
			}
		}
	}
	installation := equipment.Mul(p.schema.InstallationPercent)
	docFee := equipment.Mul(params.DocPercentage)
	pmFee := equipment.Mul(params.PMPercentage)
	warrantyFee := equipment.Mul(params.WarrantyPercentage)
	fees := docFee.Add(pmFee).Add(warrantyFee).Add(params.FinancialCosts).Add(params.WasteDisposal)

	return models.Totals{
		EquipmentTotal:    equipment.Round(2),
		InstallationTotal: installation.Round(2),
		Subtotal:          equipment.Add(installation).Round(2),
		DocFee:            docFee.Round(2),
		PMFee:             pmFee.Round(2),
		WarrantyFee:       warrantyFee.Round(2),
		GrandTotal:        equipment.Add(installation).Add(fees).Round(2),
	}
}

// applyWBEOverrides assigns MDC figures to categories. An MDC row matches a
// category when its WBE code equals the category ID or contains it as a
// hyphen-delimited segment; categories matching nothing keep an empty WBE.
func applyWBEOverrides(groups []models.ProductGroup, overrides map[string]wbeFigures) {
	codes := make([]string, 0, len(overrides))
	for code := range overrides {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for gi := range groups {
		for ci := range groups[gi].Categories {
			cat := &groups[gi].Categories[ci]
			for _, code := range codes {
				fig := overrides[code]
				if !wbeMatchesCategory(code, cat.CategoryID) {
					continue
				}
				cat.WBE = code
				if fig.HasOffer {
					offer := fig.Offer
					cat.OfferPrice = &offer
				}
				break
			}
		}
	}
}

// wbeMatchesCategory reports whether a WBE code refers to a category ID,
// either by equality or by carrying the ID as a hyphen-delimited segment
// (e.g. "CC2199-A-PCZZ-IT" matches category "PCZZ").
func wbeMatchesCategory(wbeCode, categoryID string) bool {
	if categoryID == "" {
		return false
	}
	if wbeCode == categoryID {
		return true
	}
	for _, segment := range strings.Split(wbeCode, "-") {
		if segment == categoryID {
			return true
		}
	}
	return false
}
