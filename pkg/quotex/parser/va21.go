package parser

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/industrialquote/quotex-go/pkg/quotex/models"
)

// readLatestVA21 locates the most recent VA21 sheet and sums its offer
// figures per WBE code. Workbooks accumulate one VA21 sheet per revision;
// the lexicographically last one is the current revision. Returns nil when
// the workbook has no VA21 sheets.
func (p *ProfittabilitaExtractor) readLatestVA21(f *excelize.File, co *Coercer) map[string]decimal.Decimal {
	s := p.schema
	var candidates []string
	for _, name := range f.GetSheetList() {
		if strings.HasPrefix(strings.TrimSpace(name), s.VA21Prefix) {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Strings(candidates)
	latest := candidates[len(candidates)-1]

	grid, err := loadSheet(f, latest)
	if err != nil {
		co.warnf("sheet %s: %v", latest, err)
		return nil
	}

	offers := make(map[string]decimal.Decimal)
	for row := s.VA21.DataStartRow; row <= grid.MaxRow(); row++ {
		wbe := grid.Cell(row, s.VA21.WBECol)
		if wbe == "" {
			// Backup column carries US-suffixed codes for the same WBE.
			backup := grid.Cell(row, s.VA21.WBEBackupCol)
			if strings.HasSuffix(backup, s.WBEUSSuffix) {
				wbe = strings.TrimSuffix(backup, s.WBEUSSuffix) + s.WBEITSuffix
			} else {
				wbe = backup
			}
		}
		if wbe == "" {
			continue
		}
		// A blank offer cell still registers the WBE, with a zero offer.
		offers[wbe] = offers[wbe].Add(co.Number(grid.Cell(row, s.VA21.OfferCol), decimal.Zero))
	}
	return offers
}

// applyVA21Offers assigns the summed offer figures to the categories whose
// WBE codes appear in the VA21 sheet. Offers with no matching category are
// preserved in a synthetic trailing group so the offered total still covers
// the whole revision.
func (p *ProfittabilitaExtractor) applyVA21Offers(groups []models.ProductGroup, offers map[string]decimal.Decimal) []models.ProductGroup {
	matched := make(map[string]bool, len(offers))
	for gi := range groups {
		for ci := range groups[gi].Categories {
			cat := &groups[gi].Categories[ci]
			if cat.WBE == "" {
				continue
			}
			if offer, ok := offers[cat.WBE]; ok {
				value := offer
				cat.OfferPrice = &value
				matched[cat.WBE] = true
			}
		}
	}

	var unmatched []string
	for wbe := range offers {
		if !matched[wbe] {
			unmatched = append(unmatched, wbe)
		}
	}
	if len(unmatched) == 0 {
		return groups
	}
	sort.Strings(unmatched)

	synthetic := models.ProductGroup{
		GroupID:   p.schema.GroupPrefix + "-" + p.schema.VA21Prefix,
		GroupName: "VA21 offers without a matching category",
		Quantity:  1,
	}
	for _, wbe := range unmatched {
		offer := offers[wbe]
		synthetic.Categories = append(synthetic.Categories, models.QuotationCategory{
			CategoryID:   wbe,
			CategoryName: wbe,
			WBE:          wbe,
			OfferPrice:   &offer,
		})
	}
	return append(groups, synthetic)
}
