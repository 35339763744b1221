package psxdps

// sectorNames maps the exchange's numeric sector codes, as shown on the
// market-watch page, to the sector names used everywhere else on the
// portal.
var sectorNames = map[string]string{
	"0801": "AUTOMOBILE ASSEMBLER",
	"0802": "AUTOMOBILE PARTS & ACCESSORIES",
	"0803": "CABLE & ELECTRICAL GOODS",
	"0804": "CEMENT",
	"0805": "CHEMICAL",
	"0806": "CLOSE - END MUTUAL FUND",
	"0807": "COMMERCIAL BANKS",
	"0808": "ENGINEERING",
	"0809": "FERTILIZER",
	"0810": "FOOD & PERSONAL CARE PRODUCTS",
	"0811": "GLASS & CERAMICS",
	"0812": "INSURANCE",
	"0813": "INV. BANKS / INV. COS. / SECURITIES COS.",
	"0814": "JUTE",
	"0815": "LEASING COMPANIES",
	"0816": "LEATHER & TANNERIES",
	"0818": "MISCELLANEOUS",
	"0819": "MODARABAS",
	"0820": "OIL & GAS EXPLORATION COMPANIES",
	"0821": "OIL & GAS MARKETING COMPANIES",
	"0822": "PAPER, BOARD & PACKAGING",
	"0823": "PHARMACEUTICALS",
	"0824": "POWER GENERATION & DISTRIBUTION",
	"0825": "REFINERY",
	"0826": "SUGAR & ALLIED INDUSTRIES",
	"0827": "SYNTHETIC & RAYON",
	"0828": "TECHNOLOGY & COMMUNICATION",
	"0829": "TEXTILE COMPOSITE",
	"0830": "TEXTILE SPINNING",
	"0831": "TEXTILE WEAVING",
	"0832": "TOBACCO",
	"0833": "TRANSPORT",
	"0834": "VANASPATI & ALLIED INDUSTRIES",
	"0835": "WOOLLEN",
	"0836": "REAL ESTATE INVESTMENT TRUST",
	"0837": "EXCHANGE TRADED FUNDS",
	"0838": "PROPERTY",
}

// SectorName resolves a sector code to its display name. Unknown codes
// resolve to "Unknown" rather than failing the row.
func SectorName(code string) string {
	if name, ok := sectorNames[code]; ok {
		return name
	}
	return "Unknown"
}
