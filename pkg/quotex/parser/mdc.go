package parser

import (
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// wbeFigures holds the per-WBE summary read from an MDC sheet.
type wbeFigures struct {
	Description string
	Quantity    decimal.Decimal
	DirectCost  decimal.Decimal
	ListPrice   decimal.Decimal
	Offer       decimal.Decimal
	SellPrice   decimal.Decimal
	HasOffer    bool
}

const (
	mdcColWBE         = 1
	mdcColDescription = 2
	mdcColQuantity    = 3
	mdcColDirectCost  = 4
	mdcColListPrice   = 5
	mdcColOfferPrice  = 6
	mdcColSellPrice   = 7

	mdcHeaderCode = "COD"
)

// readMDC parses the margin summary sheet into per-WBE figures. The header
// row is located by scanning the first column for the COD marker; data starts
// one blank row below it and ends at the first row with no description,
// quantity, or cost.
func readMDC(f *excelize.File, sheet string, co *Coercer) (map[string]wbeFigures, error) {
	grid, err := loadSheet(f, sheet)
	if err != nil {
		return nil, err
	}

	headerRow := 0
	for row := 1; row <= grid.MaxRow(); row++ {
		if grid.Cell(row, mdcColWBE) == mdcHeaderCode {
			headerRow = row
			break
		}
	}
	if headerRow == 0 {
		return nil, &MissingColumnError{Sheet: sheet, Column: mdcHeaderCode, Row: 0, Col: mdcColWBE}
	}

	figures := make(map[string]wbeFigures)
	for row := headerRow + 2; row <= grid.MaxRow(); row++ {
		description := grid.Cell(row, mdcColDescription)
		quantity := grid.Cell(row, mdcColQuantity)
		cost := grid.Cell(row, mdcColDirectCost)
		if description == "" && quantity == "" && cost == "" {
			break
		}
		code := grid.Cell(row, mdcColWBE)
		if code == "" {
			continue
		}
		fig := wbeFigures{
			Description: description,
			Quantity:    co.Number(quantity, decimal.Zero),
			DirectCost:  co.Number(cost, decimal.Zero),
			ListPrice:   co.Number(grid.Cell(row, mdcColListPrice), decimal.Zero),
			Offer:       co.Number(grid.Cell(row, mdcColOfferPrice), decimal.Zero),
			SellPrice:   co.Number(grid.Cell(row, mdcColSellPrice), decimal.Zero),
		}
		fig.HasOffer = fig.Offer.IsPositive()
		figures[code] = fig
	}
	return figures, nil
}
