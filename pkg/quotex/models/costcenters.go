package models

import "github.com/shopspring/decimal"

// CostCenters carries the per-item cost-center breakdown found only in
// Analisi Profittabilita workbooks. Paired fields track cost and hours for
// the same center (for example UTMRobot and UTMRobotH). Field names mirror
// the source column headers.
type CostCenters struct {
	InternalCode  string          `json:"internal_code,omitempty"`
	PriorityOrder int             `json:"priority_order,omitempty"`
	Priority      int             `json:"priority,omitempty"`
	LineNumber    int             `json:"line_number,omitempty"`
	WBS           string          `json:"wbs,omitempty"`
	Totale        decimal.Decimal `json:"totale"`

	// Material and UTM engineering centers.
	Mat        decimal.Decimal `json:"mat"`
	UTMRobot   decimal.Decimal `json:"utm_robot"`
	UTMRobotH  decimal.Decimal `json:"utm_robot_h"`
	UTMLGV     decimal.Decimal `json:"utm_lgv"`
	UTMLGVH    decimal.Decimal `json:"utm_lgv_h"`
	UTMIntra   decimal.Decimal `json:"utm_intra"`
	UTMIntraH  decimal.Decimal `json:"utm_intra_h"`
	UTMLayout  decimal.Decimal `json:"utm_layout"`
	UTMLayoutH decimal.Decimal `json:"utm_layout_h"`

	// Engineering centers.
	UTE    decimal.Decimal `json:"ute"`
	UTEH   decimal.Decimal `json:"ute_h"`
	BA     decimal.Decimal `json:"ba"`
	BAH    decimal.Decimal `json:"ba_h"`
	SWPC   decimal.Decimal `json:"sw_pc"`
	SWPCH  decimal.Decimal `json:"sw_pc_h"`
	SWPLC  decimal.Decimal `json:"sw_plc"`
	SWPLCH decimal.Decimal `json:"sw_plc_h"`
	SWLGV  decimal.Decimal `json:"sw_lgv"`
	SWLGVH decimal.Decimal `json:"sw_lgv_h"`

	// Manufacturing centers.
	MtgMec        decimal.Decimal `json:"mtg_mec"`
	MtgMecH       decimal.Decimal `json:"mtg_mec_h"`
	MtgMecIntra   decimal.Decimal `json:"mtg_mec_intra"`
	MtgMecIntraH  decimal.Decimal `json:"mtg_mec_intra_h"`
	CabEle        decimal.Decimal `json:"cab_ele"`
	CabEleH       decimal.Decimal `json:"cab_ele_h"`
	CabEleIntra   decimal.Decimal `json:"cab_ele_intra"`
	CabEleIntraH  decimal.Decimal `json:"cab_ele_intra_h"`

	// Testing (collaudo) centers.
	CollBA   decimal.Decimal `json:"coll_ba"`
	CollBAH  decimal.Decimal `json:"coll_ba_h"`
	CollPC   decimal.Decimal `json:"coll_pc"`
	CollPCH  decimal.Decimal `json:"coll_pc_h"`
	CollPLC  decimal.Decimal `json:"coll_plc"`
	CollPLCH decimal.Decimal `json:"coll_plc_h"`
	CollLGV  decimal.Decimal `json:"coll_lgv"`
	CollLGVH decimal.Decimal `json:"coll_lgv_h"`

	// Project management and documentation.
	PMCost    decimal.Decimal `json:"pm_cost"`
	PMH       decimal.Decimal `json:"pm_h"`
	SpesePM   decimal.Decimal `json:"spese_pm"`
	Document  decimal.Decimal `json:"document"`
	DocumentH decimal.Decimal `json:"document_h"`

	// Logistics.
	Imballo    decimal.Decimal `json:"imballo"`
	Stoccaggio decimal.Decimal `json:"stoccaggio"`
	Trasporto  decimal.Decimal `json:"trasporto"`

	// Field activities and commissioning (avviamento).
	Site     decimal.Decimal `json:"site"`
	SiteH    decimal.Decimal `json:"site_h"`
	Install  decimal.Decimal `json:"install"`
	InstallH decimal.Decimal `json:"install_h"`
	AvPC     decimal.Decimal `json:"av_pc"`
	AvPCH    decimal.Decimal `json:"av_pc_h"`
	AvPLC    decimal.Decimal `json:"av_plc"`
	AvPLCH   decimal.Decimal `json:"av_plc_h"`
	AvLGV    decimal.Decimal `json:"av_lgv"`
	AvLGVH   decimal.Decimal `json:"av_lgv_h"`

	// After-sales, commissions and reserves.
	SpeseField          decimal.Decimal `json:"spese_field"`
	SpeseVarie          decimal.Decimal `json:"spese_varie"`
	AfterSales          decimal.Decimal `json:"after_sales"`
	ProvvigioniItalia   decimal.Decimal `json:"provvigioni_italia"`
	ProvvigioniEstero   decimal.Decimal `json:"provvigioni_estero"`
	Tesoretto           decimal.Decimal `json:"tesoretto"`
	MontaggioBemaMbeUS  decimal.Decimal `json:"montaggio_bema_mbe_us"`
}
