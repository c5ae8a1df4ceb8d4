package parser

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/industrialquote/quotex-go/pkg/quotex/models"
)

var hundred = decimal.NewFromInt(100)

// ProfittabilitaExtractor maps an Analisi Profittabilita workbook into the
// unified quotation tree, including the per-item cost-center breakdown and
// the VA21 offer figures.
type ProfittabilitaExtractor struct {
	schema ProfittabilitaSchema
}

// NewProfittabilitaExtractor builds an extractor for the given layout.
func NewProfittabilitaExtractor(schema ProfittabilitaSchema) *ProfittabilitaExtractor {
	return &ProfittabilitaExtractor{schema: schema}
}

// Extract reads the whole workbook into a quotation tree.
func (p *ProfittabilitaExtractor) Extract(f *excelize.File, sourceFile string) (*models.Quotation, error) {
	s := p.schema
	if !hasSheet(f, s.Sheet) {
		return nil, &MissingSheetError{Sheet: s.Sheet}
	}
	grid, err := loadSheet(f, s.Sheet)
	if err != nil {
		return nil, err
	}
	if grid.Cell(s.HeaderRow, s.Cols.Cod) != s.HeaderCode {
		return nil, &MissingColumnError{Sheet: s.Sheet, Column: s.HeaderCode, Row: s.HeaderRow, Col: s.Cols.Cod}
	}

	co := &Coercer{}
	project := models.ProjectInfo{
		ID:         afterColon(grid.CellAt(s.CellProjectID)),
		Listino:    afterColon(grid.CellAt(s.CellListino)),
		Parameters: models.DefaultParameters(),
	}
	groups := p.extractGroups(grid, co)

	if offers := p.readLatestVA21(f, co); len(offers) > 0 {
		groups = p.applyVA21Offers(groups, offers)
	}

	q := &models.Quotation{
		Project:       project,
		ProductGroups: groups,
		SourceFile:    sourceFile,
		ParserType:    string(KindProfittabilita),
	}
	q.Totals = calculateProfittabilitaTotals(groups)
	q.Warnings = co.Warnings()
	return q, nil
}

// extractGroups walks the data rows. Rows without a priority value carry no
// engineering content and are skipped before classification; the remaining
// rows are classified as group headers, category headers, or items.
func (p *ProfittabilitaExtractor) extractGroups(grid *sheetGrid, co *Coercer) []models.ProductGroup {
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
		if grid.Cell(row, s.Cols.Priority) == "" {
			continue
		}
		cod := grid.Cell(row, s.Cols.Cod)
		codice := grid.Cell(row, s.Cols.Codice)
		description := grid.Cell(row, s.Cols.Denominazione)

		switch {
		case strings.HasPrefix(codice, s.GroupPrefix):
			flushGroup()
			group = &models.ProductGroup{
				GroupID:   codice,
				GroupName: description,
				Quantity:  co.Int(grid.Cell(row, s.Cols.Qta), 1),
			}

		case len(cod) == s.CategoryCodeLength && cod != s.HeaderCode:
			ensureGroup()
			flushCategory()
			category = &models.QuotationCategory{
				CategoryID:      cod,
				CategoryCode:    codice,
				CategoryName:    description,
				WBE:             grid.Cell(row, s.Cols.WBE),
				SubtotalListino: co.Number(grid.Cell(row, s.Cols.SubTotListino), decimal.Zero),
				SubtotalCosto:   co.Number(grid.Cell(row, s.Cols.SubtotCosto), decimal.Zero),
				TotalCost:       co.Number(grid.Cell(row, s.Cols.CostoTotale), decimal.Zero),
			}

		case description != "" && description != s.HeaderDescription:
			ensureGroup()
			if category == nil {
				category = &models.QuotationCategory{}
			}
			item := models.QuotationItem{
				Position:            row,
				Code:                codice,
				CodListino:          grid.Cell(row, s.Cols.CodListino),
				Description:         description,
				Quantity:            co.Number(grid.Cell(row, s.Cols.Qta), decimal.Zero),
				PricelistUnitPrice:  co.Number(grid.Cell(row, s.Cols.ListUnit), decimal.Zero),
				PricelistTotalPrice: co.Number(grid.Cell(row, s.Cols.ListinoTotale), decimal.Zero),
				UnitCost:            co.Number(grid.Cell(row, s.Cols.CostoUnitario), decimal.Zero),
				TotalCost:           co.Number(grid.Cell(row, s.Cols.CostoTotale), decimal.Zero),
				CostCenters:         p.readCostCenters(grid, row, co),
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

func (p *ProfittabilitaExtractor) readCostCenters(grid *sheetGrid, row int, co *Coercer) *models.CostCenters {
	c := p.schema.Cols
	num := func(col int) decimal.Decimal {
		return co.Number(grid.Cell(row, col), decimal.Zero)
	}
	return &models.CostCenters{
		InternalCode:  grid.Cell(row, c.Cod2),
		PriorityOrder: co.Int(grid.Cell(row, c.PriorityOrder), 0),
		Priority:      co.Int(grid.Cell(row, c.Priority), 0),
		LineNumber:    co.Int(grid.Cell(row, c.LineNumber), 0),
		WBS:           grid.Cell(row, c.WBS),
		Totale:        num(c.Totale),

		Mat:        num(c.Mat),
		UTMRobot:   num(c.UTMRobot),
		UTMRobotH:  num(c.UTMRobotH),
		UTMLGV:     num(c.UTMLGV),
		UTMLGVH:    num(c.UTMLGVH),
		UTMIntra:   num(c.UTMIntra),
		UTMIntraH:  num(c.UTMIntraH),
		UTMLayout:  num(c.UTMLayout),
		UTMLayoutH: num(c.UTMLayoutH),

		UTE:    num(c.UTE),
		UTEH:   num(c.UTEH),
		BA:     num(c.BA),
		BAH:    num(c.BAH),
		SWPC:   num(c.SWPC),
		SWPCH:  num(c.SWPCH),
		SWPLC:  num(c.SWPLC),
		SWPLCH: num(c.SWPLCH),
		SWLGV:  num(c.SWLGV),
		SWLGVH: num(c.SWLGVH),

		MtgMec:       num(c.MtgMec),
		MtgMecH:      num(c.MtgMecH),
		MtgMecIntra:  num(c.MtgMecIntra),
		MtgMecIntraH: num(c.MtgMecIntraH),
		CabEle:       num(c.CabEle),
		CabEleH:      num(c.CabEleH),
		CabEleIntra:  num(c.CabEleIntra),
		CabEleIntraH: num(c.CabEleIntraH),

		CollBA:   num(c.CollBA),
		CollBAH:  num(c.CollBAH),
		CollPC:   num(c.CollPC),
		CollPCH:  num(c.CollPCH),
		CollPLC:  num(c.CollPLC),
		CollPLCH: num(c.CollPLCH),
		CollLGV:  num(c.CollLGV),
		CollLGVH: num(c.CollLGVH),

		PMCost:    num(c.PMCost),
		PMH:       num(c.PMH),
		SpesePM:   num(c.SpesePM),
		Document:  num(c.Document),
		DocumentH: num(c.DocumentH),

		Imballo:    num(c.Imballo),
		Stoccaggio: num(c.Stoccaggio),
		Trasporto:  num(c.Trasporto),

		Site:     num(c.Site),
		SiteH:    num(c.SiteH),
		Install:  num(c.Install),
		InstallH: num(c.InstallH),
		AvPC:     num(c.AvPC),
		AvPCH:    num(c.AvPCH),
		AvPLC:    num(c.AvPLC),
		AvPLCH:   num(c.AvPLCH),
		AvLGV:    num(c.AvLGV),
		AvLGVH:   num(c.AvLGVH),

		SpeseField:         num(c.SpeseField),
		SpeseVarie:         num(c.SpeseVarie),
		AfterSales:         num(c.AfterSales),
		ProvvigioniItalia:  num(c.ProvvigioniItalia),
		ProvvigioniEstero:  num(c.ProvvigioniEstero),
		Tesoretto:          num(c.Tesoretto),
		MontaggioBemaMbeUS: num(c.MontaggioBemaMbeUS),
	}
}

// calculateProfittabilitaTotals aggregates category subtotals and derives
// margins on both the pricelist and the offered totals. Percentage margins
// are left at zero when their base is zero.
func calculateProfittabilitaTotals(groups []models.ProductGroup) models.Totals {
	totalListino := decimal.Zero
	totalCosto := decimal.Zero
	totalOffer := decimal.Zero
	for gi := range groups {
		for ci := range groups[gi].Categories {
			cat := &groups[gi].Categories[ci]
			totalListino = totalListino.Add(cat.SubtotalListino)
			totalCosto = totalCosto.Add(cat.SubtotalCosto)
			if cat.OfferPrice != nil {
				totalOffer = totalOffer.Add(*cat.OfferPrice)
			}
		}
	}

	margin := totalListino.Sub(totalCosto)
	t := models.Totals{
		TotalListino: totalListino.Round(2),
		TotalCosto:   totalCosto.Round(2),
		TotalOffer:   totalOffer.Round(2),
		Margin:       margin.Round(2),
	}
	if !totalListino.IsZero() {
		t.MarginPercentage = margin.Div(totalListino).Mul(hundred).Round(2)
	}
	if !totalOffer.IsZero() {
		t.OfferMargin = totalOffer.Sub(totalCosto).Round(2)
		t.OfferMarginPercentage = decimal.NewFromInt(1).Sub(totalCosto.Div(totalOffer)).Mul(hundred).Round(2)
	}
	return t
}
