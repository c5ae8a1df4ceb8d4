// Package compare computes hierarchical differences between two quotation
// trees: per-item field changes rolled up through categories and groups,
// plus per-WBE margin impact.
package compare

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/industrialquote/quotex-go/pkg/quotex/models"
)

// Options holds the comparison thresholds.
type Options struct {
	// Tolerance is the absolute difference below which two numeric values
	// count as equal. A difference of exactly Tolerance still matches.
	Tolerance decimal.Decimal
	// MarginRiskThreshold flags a WBE impact as high risk when the absolute
	// margin percentage delta exceeds it.
	MarginRiskThreshold decimal.Decimal
}

// DefaultOptions returns a 0.01 tolerance and a 10 point risk threshold.
func DefaultOptions() Options {
	return Options{
		Tolerance:           decimal.New(1, -2),
		MarginRiskThreshold: decimal.NewFromInt(10),
	}
}

// Status classifies one node of the diff tree.
type Status string

const (
	StatusMatched  Status = "matched"
	StatusAdded    Status = "added"
	StatusRemoved  Status = "removed"
	StatusModified Status = "modified"
)

// FieldChange records one numeric field that moved beyond tolerance.
type FieldChange struct {
	Field string          `json:"field"`
	Old   decimal.Decimal `json:"old"`
	New   decimal.Decimal `json:"new"`
	Delta decimal.Decimal `json:"delta"`
}

// ItemDiff is the leaf of the diff tree.
type ItemDiff struct {
	Key         string        `json:"key"`
	Description string        `json:"description"`
	Status      Status        `json:"status"`
	Changes     []FieldChange `json:"changes,omitempty"`
}

// CategoryDiff aggregates the item diffs of one category pair.
type CategoryDiff struct {
	CategoryID           string          `json:"category_id"`
	CategoryName         string          `json:"category_name"`
	WBE                  string          `json:"wbe,omitempty"`
	Status               Status          `json:"status"`
	SubtotalListinoDelta decimal.Decimal `json:"subtotal_listino_delta"`
	SubtotalCostoDelta   decimal.Decimal `json:"subtotal_costo_delta"`
	Items                []ItemDiff      `json:"items,omitempty"`
}

// GroupDiff aggregates the category diffs of one group pair.
type GroupDiff struct {
	GroupID    string         `json:"group_id"`
	GroupName  string         `json:"group_name"`
	Status     Status         `json:"status"`
	Categories []CategoryDiff `json:"categories,omitempty"`
}

// MissingItem describes an item present on only one side, with the values
// the other side lost or gained.
type MissingItem struct {
	Key                 string          `json:"key"`
	Description         string          `json:"description"`
	GroupID             string          `json:"group_id"`
	CategoryID          string          `json:"category_id"`
	Quantity            decimal.Decimal `json:"quantity"`
	TotalCost           decimal.Decimal `json:"total_cost"`
	PricelistTotalPrice decimal.Decimal `json:"pricelist_total_price"`
}

// Summary carries the headline counts and total deltas of a comparison.
type Summary struct {
	ItemsMatched      int             `json:"items_matched"`
	ItemsModified     int             `json:"items_modified"`
	ItemsAdded        int             `json:"items_added"`
	ItemsRemoved      int             `json:"items_removed"`
	CategoriesChanged int             `json:"categories_changed"`
	GroupsChanged     int             `json:"groups_changed"`
	TotalListinoDelta decimal.Decimal `json:"total_listino_delta"`
	TotalCostoDelta   decimal.Decimal `json:"total_costo_delta"`
	GrandTotalDelta   decimal.Decimal `json:"grand_total_delta"`
}

// Report is the full result of comparing two quotation trees. ReportID and
// GeneratedAt are left empty here and filled in by the caller, keeping the
// comparison itself a pure function of its inputs.
type Report struct {
	ReportID    string        `json:"report_id,omitempty"`
	GeneratedAt string        `json:"generated_at,omitempty"`
	OldSource   string        `json:"old_source,omitempty"`
	NewSource   string        `json:"new_source,omitempty"`
	OldProject  string        `json:"old_project"`
	NewProject  string        `json:"new_project"`
	Summary     Summary       `json:"summary"`
	Groups      []GroupDiff   `json:"groups"`
	WBEImpacts  []WBEImpact   `json:"wbe_impacts"`
	Removed     []MissingItem `json:"removed_items"`
	Added       []MissingItem `json:"added_items"`
}

// Compare diffs two quotation trees. Groups and categories are matched by
// code, items by product code with a positional fallback, and every numeric
// comparison uses the configured tolerance. The output is fully sorted so
// equal inputs always produce byte-identical reports.
func Compare(old, new *models.Quotation, opts Options) *Report {
	r := &Report{
		OldSource:  old.SourceFile,
		NewSource:  new.SourceFile,
		OldProject: old.Project.ID,
		NewProject: new.Project.ID,
	}

	oldGroups := groupsByID(old)
	newGroups := groupsByID(new)
	for _, id := range sortedKeys(oldGroups, newGroups) {
		og, inOld := oldGroups[id]
		ng, inNew := newGroups[id]
		switch {
		case inOld && inNew:
			r.Groups = append(r.Groups, diffGroup(og, ng, opts, r))
		case inOld:
			r.Groups = append(r.Groups, oneSidedGroup(og, StatusRemoved, opts, r))
		default:
			r.Groups = append(r.Groups, oneSidedGroup(ng, StatusAdded, opts, r))
		}
	}

	for _, g := range r.Groups {
		if g.Status != StatusMatched {
			r.Summary.GroupsChanged++
		}
		for _, c := range g.Categories {
			if c.Status != StatusMatched {
				r.Summary.CategoriesChanged++
			}
		}
	}
	r.Summary.TotalListinoDelta = new.Totals.TotalListino.Sub(old.Totals.TotalListino)
	r.Summary.TotalCostoDelta = new.Totals.TotalCosto.Sub(old.Totals.TotalCosto)
	r.Summary.GrandTotalDelta = new.Totals.GrandTotal.Sub(old.Totals.GrandTotal)

	r.WBEImpacts = wbeImpacts(old, new, opts)
	sortMissing(r.Removed)
	sortMissing(r.Added)
	return r
}

func diffGroup(old, new *models.ProductGroup, opts Options, r *Report) GroupDiff {
	g := GroupDiff{GroupID: new.GroupID, GroupName: new.GroupName, Status: StatusMatched}

	oldCats := categoriesByID(old)
	newCats := categoriesByID(new)
	for _, id := range sortedKeys(oldCats, newCats) {
		oc, inOld := oldCats[id]
		nc, inNew := newCats[id]
		var cd CategoryDiff
		switch {
		case inOld && inNew:
			cd = diffCategory(old.GroupID, oc, nc, opts, r)
		case inOld:
			cd = oneSidedCategory(old.GroupID, oc, StatusRemoved, opts, r)
		default:
			cd = oneSidedCategory(new.GroupID, nc, StatusAdded, opts, r)
		}
		g.Categories = append(g.Categories, cd)
		if cd.Status != StatusMatched {
			g.Status = StatusModified
		}
	}
	return g
}

func diffCategory(groupID string, old, new *models.QuotationCategory, opts Options, r *Report) CategoryDiff {
	cd := CategoryDiff{
		CategoryID:           new.CategoryID,
		CategoryName:         new.CategoryName,
		WBE:                  new.WBE,
		Status:               StatusMatched,
		SubtotalListinoDelta: new.SubtotalListino.Sub(old.SubtotalListino),
		SubtotalCostoDelta:   new.SubtotalCosto.Sub(old.SubtotalCosto),
	}

	oldItems := itemsByKey(old)
	newItems := itemsByKey(new)
	for _, key := range sortedKeys(oldItems, newItems) {
		oi, inOld := oldItems[key]
		ni, inNew := newItems[key]
		switch {
		case inOld && inNew:
			id := diffItem(key, oi, ni, opts)
			cd.Items = append(cd.Items, id)
			if id.Status == StatusModified {
				r.Summary.ItemsModified++
				cd.Status = StatusModified
			} else {
				r.Summary.ItemsMatched++
			}
		case inOld:
			cd.Items = append(cd.Items, ItemDiff{Key: key, Description: oi.Description, Status: StatusRemoved})
			r.Removed = append(r.Removed, missingItem(key, groupID, old.CategoryID, oi))
			r.Summary.ItemsRemoved++
			cd.Status = StatusModified
		default:
			cd.Items = append(cd.Items, ItemDiff{Key: key, Description: ni.Description, Status: StatusAdded})
			r.Added = append(r.Added, missingItem(key, groupID, new.CategoryID, ni))
			r.Summary.ItemsAdded++
			cd.Status = StatusModified
		}
	}

	if !withinTolerance(cd.SubtotalListinoDelta, opts.Tolerance) ||
		!withinTolerance(cd.SubtotalCostoDelta, opts.Tolerance) {
		cd.Status = StatusModified
	}
	return cd
}

// comparedFields are the item fields the diff inspects, in output order.
var comparedFields = []struct {
	name  string
	value func(it *models.QuotationItem) decimal.Decimal
}{
	{"quantity", func(it *models.QuotationItem) decimal.Decimal { return it.Quantity }},
	{"unit_cost", func(it *models.QuotationItem) decimal.Decimal { return it.UnitCost }},
	{"total_cost", func(it *models.QuotationItem) decimal.Decimal { return it.TotalCost }},
	{"pricelist_total_price", func(it *models.QuotationItem) decimal.Decimal { return it.PricelistTotalPrice }},
}

func diffItem(key string, old, new *models.QuotationItem, opts Options) ItemDiff {
	d := ItemDiff{Key: key, Description: new.Description, Status: StatusMatched}
	for _, f := range comparedFields {
		ov, nv := f.value(old), f.value(new)
		delta := nv.Sub(ov)
		if withinTolerance(delta, opts.Tolerance) {
			continue
		}
		d.Changes = append(d.Changes, FieldChange{Field: f.name, Old: ov, New: nv, Delta: delta})
		d.Status = StatusModified
	}
	return d
}

// oneSidedGroup renders a group present on only one side. Every item in it
// is counted as added or removed.
func oneSidedGroup(g *models.ProductGroup, status Status, opts Options, r *Report) GroupDiff {
	gd := GroupDiff{GroupID: g.GroupID, GroupName: g.GroupName, Status: status}
	for ci := range g.Categories {
		gd.Categories = append(gd.Categories, oneSidedCategory(g.GroupID, &g.Categories[ci], status, opts, r))
	}
	return gd
}

func oneSidedCategory(groupID string, c *models.QuotationCategory, status Status, opts Options, r *Report) CategoryDiff {
	cd := CategoryDiff{
		CategoryID:   c.CategoryID,
		CategoryName: c.CategoryName,
		WBE:          c.WBE,
		Status:       status,
	}
	items := itemsByKey(c)
	for _, key := range sortedKeys(items, nil) {
		it := items[key]
		cd.Items = append(cd.Items, ItemDiff{Key: key, Description: it.Description, Status: status})
		missing := missingItem(key, groupID, c.CategoryID, it)
		if status == StatusRemoved {
			r.Removed = append(r.Removed, missing)
			r.Summary.ItemsRemoved++
		} else {
			r.Added = append(r.Added, missing)
			r.Summary.ItemsAdded++
		}
	}
	if status == StatusRemoved {
		cd.SubtotalListinoDelta = c.SubtotalListino.Neg()
		cd.SubtotalCostoDelta = c.SubtotalCosto.Neg()
	} else {
		cd.SubtotalListinoDelta = c.SubtotalListino
		cd.SubtotalCostoDelta = c.SubtotalCosto
	}
	return cd
}

func missingItem(key, groupID, categoryID string, it *models.QuotationItem) MissingItem {
	return MissingItem{
		Key:                 key,
		Description:         it.Description,
		GroupID:             groupID,
		CategoryID:          categoryID,
		Quantity:            it.Quantity,
		TotalCost:           it.TotalCost,
		PricelistTotalPrice: it.PricelistTotalPrice,
	}
}

// withinTolerance treats a delta of exactly the tolerance as equal.
func withinTolerance(delta, tolerance decimal.Decimal) bool {
	return delta.Abs().LessThanOrEqual(tolerance)
}

func groupsByID(q *models.Quotation) map[string]*models.ProductGroup {
	m := make(map[string]*models.ProductGroup, len(q.ProductGroups))
	for i := range q.ProductGroups {
		m[q.ProductGroups[i].GroupID] = &q.ProductGroups[i]
	}
	return m
}

func categoriesByID(g *models.ProductGroup) map[string]*models.QuotationCategory {
	m := make(map[string]*models.QuotationCategory, len(g.Categories))
	for i := range g.Categories {
		m[g.Categories[i].CategoryID] = &g.Categories[i]
	}
	return m
}

// itemsByKey indexes a category's items by product code, falling back to a
// positional composite for code-less free-text rows. A duplicated code gets
// an occurrence suffix so every item keeps a distinct key.
func itemsByKey(c *models.QuotationCategory) map[string]*models.QuotationItem {
	m := make(map[string]*models.QuotationItem, len(c.Items))
	seen := make(map[string]int, len(c.Items))
	for i := range c.Items {
		it := &c.Items[i]
		var base string
		if it.Code != "" {
			base = "code:" + it.Code
		} else {
			base = fmt.Sprintf("pos:%s|%s|%d", c.CategoryID, it.Description, it.Position)
		}
		key := base
		if n := seen[base]; n > 0 {
			key = fmt.Sprintf("%s#%d", base, n)
		}
		seen[base]++
		m[key] = it
	}
	return m
}

// sortedKeys returns the union of both maps' keys in sorted order.
func sortedKeys[V any](a, b map[string]V) []string {
	set := make(map[string]bool, len(a)+len(b))
	for k := range a {
		set[k] = true
	}
	for k := range b {
		set[k] = true
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortMissing(items []MissingItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CategoryID != items[j].CategoryID {
			return items[i].CategoryID < items[j].CategoryID
		}
		return items[i].Key < items[j].Key
	})
}
