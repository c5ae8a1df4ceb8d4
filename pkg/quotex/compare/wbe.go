package compare

import (
	"github.com/shopspring/decimal"

	"github.com/industrialquote/quotex-go/pkg/quotex/models"
)

// UnassignedWBE collects the categories that carry no WBE code, so their
// cost movement is still visible in the impact list.
const UnassignedWBE = "UNASSIGNED"

// WBEImpact summarizes how one work breakdown element moved between the two
// revisions. Margin percentages are computed against the offer price when
// present, otherwise against the pricelist subtotal.
type WBEImpact struct {
	WBE            string          `json:"wbe"`
	OldOffer       decimal.Decimal `json:"old_offer"`
	NewOffer       decimal.Decimal `json:"new_offer"`
	OfferDelta     decimal.Decimal `json:"offer_delta"`
	OldCost        decimal.Decimal `json:"old_cost"`
	NewCost        decimal.Decimal `json:"new_cost"`
	CostDelta      decimal.Decimal `json:"cost_delta"`
	OldMarginPct   decimal.Decimal `json:"old_margin_pct"`
	NewMarginPct   decimal.Decimal `json:"new_margin_pct"`
	MarginPctDelta decimal.Decimal `json:"margin_pct_delta"`

	// HighRisk marks a margin percentage swing beyond the configured
	// threshold in either direction.
	HighRisk bool `json:"high_risk"`
}

// wbeTotals accumulates one side's totals for a single WBE.
type wbeTotals struct {
	offer decimal.Decimal
	cost  decimal.Decimal
}

func collectWBETotals(q *models.Quotation) map[string]wbeTotals {
	m := make(map[string]wbeTotals)
	q.EachCategory(func(_ *models.ProductGroup, c *models.QuotationCategory) {
		key := c.WBE
		if key == "" {
			key = UnassignedWBE
		}
		t := m[key]
		t.offer = t.offer.Add(c.MarginBase())
		t.cost = t.cost.Add(c.SubtotalCosto)
		m[key] = t
	})
	return m
}

// marginPct is (offer - cost) / offer as a percentage, zero when the offer
// base is zero.
func marginPct(t wbeTotals) decimal.Decimal {
	if t.offer.IsZero() {
		return decimal.Zero
	}
	return t.offer.Sub(t.cost).Div(t.offer).Mul(decimal.NewFromInt(100))
}

// wbeImpacts builds the sorted per-WBE impact list over the union of both
// sides' WBE codes.
func wbeImpacts(old, new *models.Quotation, opts Options) []WBEImpact {
	oldTotals := collectWBETotals(old)
	newTotals := collectWBETotals(new)

	impacts := make([]WBEImpact, 0, len(oldTotals))
	for _, wbe := range sortedKeys(oldTotals, newTotals) {
		ot := oldTotals[wbe]
		nt := newTotals[wbe]
		impact := WBEImpact{
			WBE:          wbe,
			OldOffer:     ot.offer,
			NewOffer:     nt.offer,
			OfferDelta:   nt.offer.Sub(ot.offer),
			OldCost:      ot.cost,
			NewCost:      nt.cost,
			CostDelta:    nt.cost.Sub(ot.cost),
			OldMarginPct: marginPct(ot).Round(2),
			NewMarginPct: marginPct(nt).Round(2),
		}
		impact.MarginPctDelta = impact.NewMarginPct.Sub(impact.OldMarginPct)
		impact.HighRisk = impact.MarginPctDelta.Abs().GreaterThan(opts.MarginRiskThreshold)
		impacts = append(impacts, impact)
	}
	return impacts
}
