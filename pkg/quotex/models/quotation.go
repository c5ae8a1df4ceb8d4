// Package models defines the unified quotation tree shared by both
// extraction formats and by the comparator.
package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Monetary fields serialize as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// consistencyTolerance absorbs rounding differences when validating totals.
var consistencyTolerance = decimal.New(1, -2) // 0.01

// ParameterSet holds the project-level financial parameters. It is always
// present on a quotation even when every field carries its default.
type ParameterSet struct {
	DocPercentage      decimal.Decimal `json:"doc_percentage"`
	PMPercentage       decimal.Decimal `json:"pm_percentage"`
	FinancialCosts     decimal.Decimal `json:"financial_costs"`
	Currency           string          `json:"currency"`
	ExchangeRate       decimal.Decimal `json:"exchange_rate"`
	WasteDisposal      decimal.Decimal `json:"waste_disposal"`
	WarrantyPercentage decimal.Decimal `json:"warranty_percentage"`
	Is24hService       bool            `json:"is_24h_service"`
}

// DefaultParameters returns a parameter set with the documented defaults:
// EUR currency and a 1.0 exchange rate.
func DefaultParameters() ParameterSet {
	return ParameterSet{
		Currency:     "EUR",
		ExchangeRate: decimal.NewFromInt(1),
	}
}

// SalesInfo carries optional commercial attribution for the quotation.
type SalesInfo struct {
	AreaManager          *string         `json:"area_manager"`
	Agent                *string         `json:"agent"`
	CommissionPercentage decimal.Decimal `json:"commission_percentage"`
	Author               *string         `json:"author"`
}

// ProjectInfo identifies the project a quotation belongs to.
type ProjectInfo struct {
	ID         string       `json:"id"`
	Customer   string       `json:"customer,omitempty"`
	Listino    string       `json:"listino,omitempty"`
	Parameters ParameterSet `json:"parameters"`
	SalesInfo  SalesInfo    `json:"sales_info"`
}

// QuotationItem is a single line item. Code may be empty: free-text rows
// without a product code are still valid items.
type QuotationItem struct {
	Position            int             `json:"position"`
	Code                string          `json:"code,omitempty"`
	CodListino          string          `json:"cod_listino,omitempty"`
	Description         string          `json:"description"`
	Quantity            decimal.Decimal `json:"quantity"`
	PricelistUnitPrice  decimal.Decimal `json:"pricelist_unit_price"`
	PricelistTotalPrice decimal.Decimal `json:"pricelist_total_price"`
	UnitCost            decimal.Decimal `json:"unit_cost"`
	TotalCost           decimal.Decimal `json:"total_cost"`

	// CostCenters is populated only for Profittabilita-origin items.
	CostCenters *CostCenters `json:"cost_centers,omitempty"`
}

// Normalize fills a stored total that is exactly zero from quantity times the
// unit value, when that product is positive. A stored nonzero total is never
// touched, and a genuine zero-value line with a zero unit price stays zero.
func (it *QuotationItem) Normalize() {
	if it.TotalCost.IsZero() {
		if derived := it.Quantity.Mul(it.UnitCost); derived.IsPositive() {
			it.TotalCost = derived
		}
	}
	if it.PricelistTotalPrice.IsZero() {
		if derived := it.Quantity.Mul(it.PricelistUnitPrice); derived.IsPositive() {
			it.PricelistTotalPrice = derived
		}
	}
}

// QuotationCategory groups related items under a 4-character code. Subtotals
// are the raw sums over items; OfferPrice, when an MDC or VA21 sheet supplies
// one for the category's WBE, takes precedence for margin purposes.
type QuotationCategory struct {
	CategoryID      string           `json:"category_id"`
	CategoryCode    string           `json:"category_code,omitempty"`
	CategoryName    string           `json:"category_name"`
	WBE             string           `json:"wbe,omitempty"`
	SubtotalListino decimal.Decimal  `json:"subtotal_listino"`
	SubtotalCosto   decimal.Decimal  `json:"subtotal_costo"`
	TotalCost       decimal.Decimal  `json:"total_cost"`
	OfferPrice      *decimal.Decimal `json:"offer_price,omitempty"`
	Items           []QuotationItem  `json:"items"`
}

// CalculatedSubtotalListino sums pricelist totals over the category's items.
func (c *QuotationCategory) CalculatedSubtotalListino() decimal.Decimal {
	sum := decimal.Zero
	for i := range c.Items {
		sum = sum.Add(c.Items[i].PricelistTotalPrice)
	}
	return sum
}

// CalculatedSubtotalCosto sums item total costs over the category's items.
func (c *QuotationCategory) CalculatedSubtotalCosto() decimal.Decimal {
	sum := decimal.Zero
	for i := range c.Items {
		sum = sum.Add(c.Items[i].TotalCost)
	}
	return sum
}

// FillSubtotals replaces zero stored subtotals with the raw item sums.
func (c *QuotationCategory) FillSubtotals() {
	if c.SubtotalListino.IsZero() {
		c.SubtotalListino = c.CalculatedSubtotalListino()
	}
	if c.SubtotalCosto.IsZero() {
		c.SubtotalCosto = c.CalculatedSubtotalCosto()
	}
	if c.TotalCost.IsZero() {
		c.TotalCost = c.SubtotalCosto
	}
}

// MarginBase is the value margins are computed against: the offer price when
// an override is present, otherwise the pricelist subtotal.
func (c *QuotationCategory) MarginBase() decimal.Decimal {
	if c.OfferPrice != nil {
		return *c.OfferPrice
	}
	return c.SubtotalListino
}

// MarginAmount is margin base minus cost subtotal.
func (c *QuotationCategory) MarginAmount() decimal.Decimal {
	return c.MarginBase().Sub(c.SubtotalCosto)
}

// MarginPercentage is the margin over the margin base, as a percentage.
// A zero base short-circuits to zero.
func (c *QuotationCategory) MarginPercentage() decimal.Decimal {
	base := c.MarginBase()
	if base.IsZero() {
		return decimal.Zero
	}
	return c.MarginAmount().Div(base).Mul(decimal.NewFromInt(100))
}

// ProductGroup is the top level of the tree, identified by a TXT-prefixed
// code. Category order follows source row order and is significant.
type ProductGroup struct {
	GroupID    string              `json:"group_id"`
	GroupName  string              `json:"group_name"`
	Quantity   int                 `json:"quantity"`
	Categories []QuotationCategory `json:"categories"`
}

// ItemCount returns the number of items across the group's categories.
func (g *ProductGroup) ItemCount() int {
	n := 0
	for i := range g.Categories {
		n += len(g.Categories[i].Items)
	}
	return n
}

// Totals carries the quotation-level figures. Both the PRE-origin set
// (equipment/installation/fees/grand total) and the Profittabilita-origin set
// (listino/costo/offer/margins) are always present; the set that does not
// apply to the source format is left at zero.
type Totals struct {
	EquipmentTotal    decimal.Decimal `json:"equipment_total"`
	InstallationTotal decimal.Decimal `json:"installation_total"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	DocFee            decimal.Decimal `json:"doc_fee"`
	PMFee             decimal.Decimal `json:"pm_fee"`
	WarrantyFee       decimal.Decimal `json:"warranty_fee"`
	GrandTotal        decimal.Decimal `json:"grand_total"`

	TotalListino          decimal.Decimal `json:"total_listino"`
	TotalCosto            decimal.Decimal `json:"total_costo"`
	TotalOffer            decimal.Decimal `json:"total_offer"`
	Margin                decimal.Decimal `json:"margin"`
	MarginPercentage      decimal.Decimal `json:"margin_percentage"`
	OfferMargin           decimal.Decimal `json:"offer_margin"`
	OfferMarginPercentage decimal.Decimal `json:"offer_margin_percentage"`
}

// Quotation is the common tree produced by both extractors. Instances are
// built once per extraction and not mutated afterwards.
type Quotation struct {
	Project       ProjectInfo    `json:"project"`
	ProductGroups []ProductGroup `json:"product_groups"`
	Totals        Totals         `json:"totals"`
	SourceFile    string         `json:"source_file,omitempty"`
	ParserType    string         `json:"parser_type,omitempty"`

	// Warnings records cells that could not be coerced and were defaulted.
	Warnings []string `json:"warnings,omitempty"`
}

// EachCategory visits every category in source order.
func (q *Quotation) EachCategory(fn func(g *ProductGroup, c *QuotationCategory)) {
	for gi := range q.ProductGroups {
		g := &q.ProductGroups[gi]
		for ci := range g.Categories {
			fn(g, &g.Categories[ci])
		}
	}
}

// SummaryStats reports headline counts and figures for display.
type SummaryStats struct {
	ProjectID       string          `json:"project_id"`
	Groups          int             `json:"groups"`
	Categories      int             `json:"categories"`
	Items           int             `json:"items"`
	TotalListino    decimal.Decimal `json:"total_listino"`
	TotalCosto      decimal.Decimal `json:"total_costo"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	Currency        string          `json:"currency"`
	HasOfferPrices  bool            `json:"has_offer_prices"`
}

// Summary computes headline statistics for the quotation.
func (q *Quotation) Summary() SummaryStats {
	stats := SummaryStats{
		ProjectID:    q.Project.ID,
		Groups:       len(q.ProductGroups),
		TotalListino: q.Totals.TotalListino,
		TotalCosto:   q.Totals.TotalCosto,
		GrandTotal:   q.Totals.GrandTotal,
		Currency:     q.Project.Parameters.Currency,
	}
	q.EachCategory(func(_ *ProductGroup, c *QuotationCategory) {
		stats.Categories++
		stats.Items += len(c.Items)
		if c.OfferPrice != nil && c.OfferPrice.IsPositive() {
			stats.HasOfferPrices = true
		}
	})
	return stats
}

// ValidateConsistency checks stored totals against sums recomputed from the
// tree, within a 0.01 tolerance.
func (q *Quotation) ValidateConsistency() map[string]bool {
	listino, costo, offer := decimal.Zero, decimal.Zero, decimal.Zero
	q.EachCategory(func(_ *ProductGroup, c *QuotationCategory) {
		listino = listino.Add(c.SubtotalListino)
		costo = costo.Add(c.SubtotalCosto)
		if c.OfferPrice != nil {
			offer = offer.Add(*c.OfferPrice)
		}
	})
	within := func(a, b decimal.Decimal) bool {
		return a.Sub(b).Abs().LessThanOrEqual(consistencyTolerance)
	}
	return map[string]bool{
		"total_listino": within(q.Totals.TotalListino, listino),
		"total_costo":   within(q.Totals.TotalCosto, costo),
		"total_offer":   within(q.Totals.TotalOffer, offer),
	}
}
