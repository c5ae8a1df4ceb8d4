package parser

import "github.com/shopspring/decimal"

// CellRef addresses a fixed cell with 1-based coordinates.
type CellRef struct {
	Row int
	Col int
}

// PreSchema is the declarative layout of a PRE workbook: every fixed cell
// and column index the extractor reads. Instances are treated as immutable;
// a future format revision gets its own schema value rather than mutated
// globals.
type PreSchema struct {
	Sheet        string
	HeaderRow    int
	DataStartRow int

	// Row classification.
	GroupPrefix        string
	CategoryCodeLength int
	HeaderCode         string

	// Data columns (1-based).
	ColCod           int
	ColCodice        int
	ColDenominazione int
	ColQta           int
	ColListUnit      int
	ColListinoTotale int
	ColSubTotListino int
	ColTotaleOfferta int
	ColCodListino    int
	ColCostoUnitario int
	ColCosto         int
	ColSubTotCosto   int
	ColTotaleCosto   int

	// Project info cells.
	CellProjectID          CellRef
	CellCustomer           CellRef
	CellDocPercentage      CellRef
	CellPMPercentage       CellRef
	CellFinancialCosts     CellRef
	CellCurrency           CellRef
	CellExchangeRate       CellRef
	CellWasteDisposal      CellRef
	CellWarrantyPercentage CellRef

	// MDCSheet names the optional per-WBE override sheet.
	MDCSheet string

	// InstallationPercent derives installation_total from equipment_total
	// when the workbook carries no independent installation figure.
	InstallationPercent decimal.Decimal
}

// DefaultPreSchema returns the layout of the current PRE format revision.
func DefaultPreSchema() PreSchema {
	return PreSchema{
		Sheet:        "OFFER1",
		HeaderRow:    17,
		DataStartRow: 18,

		GroupPrefix:        "TXT-",
		CategoryCodeLength: 4,
		HeaderCode:         "COD",

		ColCod:           1,
		ColCodice:        3,
		ColDenominazione: 4,
		ColQta:           5,
		ColListUnit:      6,
		ColListinoTotale: 7,
		ColSubTotListino: 8,
		ColTotaleOfferta: 12,
		ColCodListino:    17,
		ColCostoUnitario: 19,
		ColCosto:         20,
		ColSubTotCosto:   21,
		ColTotaleCosto:   22,

		CellProjectID:          CellRef{1, 1},
		CellCustomer:           CellRef{3, 7},
		CellDocPercentage:      CellRef{8, 2},
		CellPMPercentage:       CellRef{9, 2},
		CellFinancialCosts:     CellRef{10, 2},
		CellCurrency:           CellRef{11, 2},
		CellExchangeRate:       CellRef{12, 2},
		CellWasteDisposal:      CellRef{13, 2},
		CellWarrantyPercentage: CellRef{8, 11},

		MDCSheet: "MDC",
	}
}

// ProfittabilitaColumns maps the 81-column Analisi Profittabilita layout.
// Indexes are 1-based; columns 18 and 20 are empty in the source format.
type ProfittabilitaColumns struct {
	Cod           int
	PriorityOrder int
	Priority      int
	LineNumber    int
	WBS           int
	WBE           int
	Codice        int
	CodListino    int
	Denominazione int
	Qta           int
	SubTotListino int
	ListUnit      int
	ListinoTotale int
	SubtotCosto   int
	CostoUnitario int
	CostoTotale   int
	Cod2          int
	Totale        int

	Mat        int
	UTMRobot   int
	UTMRobotH  int
	UTMLGV     int
	UTMLGVH    int
	UTMIntra   int
	UTMIntraH  int
	UTMLayout  int
	UTMLayoutH int

	UTE    int
	UTEH   int
	BA     int
	BAH    int
	SWPC   int
	SWPCH  int
	SWPLC  int
	SWPLCH int
	SWLGV  int
	SWLGVH int

	MtgMec       int
	MtgMecH      int
	MtgMecIntra  int
	MtgMecIntraH int
	CabEle       int
	CabEleH      int
	CabEleIntra  int
	CabEleIntraH int
	CollBA       int
	CollBAH      int

	CollPC   int
	CollPCH  int
	CollPLC  int
	CollPLCH int
	CollLGV  int
	CollLGVH int
	PMCost   int
	PMH      int
	SpesePM  int
	Document int

	DocumentH  int
	Imballo    int
	Stoccaggio int
	Trasporto  int
	Site       int
	SiteH      int
	Install    int
	InstallH   int
	AvPC       int
	AvPCH      int

	AvPLC              int
	AvPLCH             int
	AvLGV              int
	AvLGVH             int
	SpeseField         int
	SpeseVarie         int
	AfterSales         int
	ProvvigioniItalia  int
	ProvvigioniEstero  int
	Tesoretto          int
	MontaggioBemaMbeUS int
}

// VA21Layout locates the per-WBE offer figures inside a VA21 sheet. Column C
// backs up column D for the WBE code, carrying -US suffixed codes.
type VA21Layout struct {
	WBECol       int
	WBEBackupCol int
	OfferCol     int
	HeaderRow    int
	DataStartRow int
}

// ProfittabilitaSchema is the declarative layout of an Analisi
// Profittabilita workbook.
type ProfittabilitaSchema struct {
	Sheet        string
	HeaderRow    int
	DataStartRow int

	GroupPrefix        string
	CategoryCodeLength int
	HeaderCode         string
	HeaderDescription  string

	CellProjectID CellRef
	CellListino   CellRef

	Cols ProfittabilitaColumns

	VA21Prefix  string
	VA21        VA21Layout
	WBEITSuffix string
	WBEUSSuffix string
}

// DefaultProfittabilitaSchema returns the layout of the current Analisi
// Profittabilita format revision.
func DefaultProfittabilitaSchema() ProfittabilitaSchema {
	return ProfittabilitaSchema{
		Sheet:        profittabilitaMarkerSheet,
		HeaderRow:    3,
		DataStartRow: 4,

		GroupPrefix:        "TXT",
		CategoryCodeLength: 4,
		HeaderCode:         "COD",
		HeaderDescription:  "DENOMINAZIONE",

		CellProjectID: CellRef{1, 1},
		CellListino:   CellRef{2, 1},

		Cols: ProfittabilitaColumns{
			Cod:           1,
			PriorityOrder: 2,
			Priority:      3,
			LineNumber:    4,
			WBS:           5,
			WBE:           6,
			Codice:        8,
			CodListino:    9,
			Denominazione: 10,
			Qta:           11,
			SubTotListino: 12,
			ListUnit:      13,
			ListinoTotale: 14,
			SubtotCosto:   15,
			CostoUnitario: 16,
			CostoTotale:   17,
			Cod2:          19,
			Totale:        21,

			Mat:        22,
			UTMRobot:   23,
			UTMRobotH:  24,
			UTMLGV:     25,
			UTMLGVH:    26,
			UTMIntra:   27,
			UTMIntraH:  28,
			UTMLayout:  29,
			UTMLayoutH: 30,

			UTE:    31,
			UTEH:   32,
			BA:     33,
			BAH:    34,
			SWPC:   35,
			SWPCH:  36,
			SWPLC:  37,
			SWPLCH: 38,
			SWLGV:  39,
			SWLGVH: 40,

			MtgMec:       41,
			MtgMecH:      42,
			MtgMecIntra:  43,
			MtgMecIntraH: 44,
			CabEle:       45,
			CabEleH:      46,
			CabEleIntra:  47,
			CabEleIntraH: 48,
			CollBA:       49,
			CollBAH:      50,

			CollPC:   51,
			CollPCH:  52,
			CollPLC:  53,
			CollPLCH: 54,
			CollLGV:  55,
			CollLGVH: 56,
			PMCost:   57,
			PMH:      58,
			SpesePM:  59,
			Document: 60,

			DocumentH:  61,
			Imballo:    62,
			Stoccaggio: 63,
			Trasporto:  64,
			Site:       65,
			SiteH:      66,
			Install:    67,
			InstallH:   68,
			AvPC:       69,
			AvPCH:      70,

			AvPLC:              71,
			AvPLCH:             72,
			AvLGV:              73,
			AvLGVH:             74,
			SpeseField:         75,
			SpeseVarie:         76,
			AfterSales:         77,
			ProvvigioniItalia:  78,
			ProvvigioniEstero:  79,
			Tesoretto:          80,
			MontaggioBemaMbeUS: 81,
		},

		VA21Prefix: "VA21",
		VA21: VA21Layout{
			WBECol:       4,
			WBEBackupCol: 3,
			OfferCol:     25,
			HeaderRow:    18,
			DataStartRow: 19,
		},
		WBEITSuffix: "-IT",
		WBEUSSuffix: "-US",
	}
}
