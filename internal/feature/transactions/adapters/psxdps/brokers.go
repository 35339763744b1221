package psxdps

// brokerNames maps three-digit exchange member codes to broker names,
// taken from the exchange's internet-trading subscriber directory.
var brokerNames = map[string]string{
	"001": "Altaf Adam Securities (Pvt.) Ltd.",
	"006": "Sherman Securities (Pvt.) Ltd.",
	"008": "Optimus Capital Management (Pvt.) Ltd.",
	"010": "Sakarwala Capital Securities (Pvt.) Ltd.",
	"017": "Summit Capital (Pvt.) Ltd.",
	"018": "Ismail Iqbal Securities (Pvt.) Ltd.",
	"019": "AKD Securities Ltd.",
	"021": "Alpha Capital (Pvt.) Ltd.",
	"022": "BMA Capital Management Ltd.",
	"025": "Vector Securities (Pvt.) Ltd.",
	"027": "Habib Metropolitan Financial Services",
	"037": "H.H. Misbah Securities (Pvt.) Ltd.",
	"038": "A.H.M. Securities (Pvt.) Ltd.",
	"044": "IGI Finex Securities Ltd.",
	"046": "Fortune Securities Ltd.",
	"047": "Zillion Capital Securities (Pvt.) Ltd.",
	"048": "Next Capital Ltd.",
	"049": "Multiline Securities Ltd.",
	"050": "Arif Habib Ltd.",
	"058": "Dawood Equities Ltd.",
	"062": "WE Financial Services Ltd.",
	"063": "Al-Habib Capital Markets (Pvt.) Ltd.",
	"068": "Zafar Securities (Pvt.) Ltd.",
	"077": "Bawany Securities (Pvt.) Ltd.",
	"084": "Munir Khanani Securities Ltd.",
	"088": "Fawad Yusuf Securities (Pvt.) Ltd.",
	"090": "Darson Securities Private Limited.",
	"091": "Intermarket Securities Ltd.",
	"092": "Memon Securities (Pvt.) Ltd.",
	"094": "FDM Capital Securities (Pvt.) Ltd.",
	"096": "Msmaniar Financials (Pvt.) Ltd.",
	"102": "Growth Securities (Pvt.) Ltd.",
	"107": "Seven Star Securities (Pvt.) Ltd.",
	"108": "AZEE Securities (Pvt.) Ltd.",
	"112": "Standard Capital Securities (Pvt.) Ltd.",
	"119": "Axis Global Ltd.",
	"120": "Alfalah Securities (Pvt.) Ltd.",
	"124": "EFG Hermes Pakistan Ltd.",
	"129": "Taurus Securities Ltd.",
	"140": "M.M. Securities (Pvt.) Ltd.",
	"142": "Foundation Securities (Pvt.) Ltd.",
	"145": "Adam Securities Ltd.",
	"149": "JS Global Capital Ltd.",
	"159": "Rafi Securities (Pvt.) Ltd.",
	"162": "Aba Ali Habib Securities (Pvt.) Ltd.",
	"163": "Friendly Securities (Pvt.) Ltd.",
	"164": "Interactive Securities (Pvt.) Ltd.",
	"166": "Topline Securities Ltd.",
	"169": "Pearl Securities Ltd.",
	"173": "Spectrum Securities Ltd.",
	"175": "First National Equities Ltd.",
	"183": "R.T. Securities (Pvt.) Ltd.",
	"194": "MRA Securities Ltd.",
	"199": "Insight Securities (Pvt.) Ltd.",
	"248": "Ktrade Securites Ltd.",
	"254": "ShajarPak Securities (Pvt.) Ltd.",
	"275": "Rahat Securities Ltd.",
	"293": "Integrated Equities Ltd.",
	"311": "Abbasi & Company (Pvt.) Ltd.",
	"332": "Trust Securities & Brokerage Ltd.",
	"410": "Zahid Latif Khan Securities (Pvt.) Ltd.",
	"524": "Akik Capital (Pvt.) Ltd.",
	"525": "Adam Usman Securities (Pvt.) Ltd.",
	"526": "Chase Securities Pakistan (Pvt.) Ltd.",
	"528": "H.G Markets (Private) Limited",
	"529": "Orbit Securities (Pvt.) Ltd.",
	"531": "T&G Securities Private Limited.",
	"601": "JSK Securities Limited",
	"602": "ZLK Islamic Financial Services Pvt.Ltd.",
	"603": "Enrichers Securities (Pvt) Ltd.",
	"932": "Ahsam Securities (Pvt.) Ltd.",
	"934": "Falki Capital (Pvt.) Ltd.",
	"935": "Salim Sozer Securities (Pvt.) Ltd.",
	"936": "Saya Securities (Pvt.) Ltd.",
	"937": "ASA Stocks (Pvt.) Ltd.",
	"938": "Margalla Financial (Pvt.) Ltd.",
	"941": "A.I. Securities (Pvt.) Ltd.",
	"942": "M. Salim Kasmani Securities (Pvt.) Ltd.",
	"943": "Z.A. Ghaffar Securities (Pvt.) Ltd.",
	"951": "K.H.S. Securities (Pvt.) Ltd.",
	"957": "128 Securities (Pvt.) Ltd.",
	"961": "KP Securities (Pvt.) Ltd.",
	"963": "Yasir Mahmood Securities (Pvt.) Ltd.",
	"967": "High Land Securities (Pvt.) Ltd.",
	"972": "Pasha Securities (Pvt.) Ltd.",
	"973": "Stocxinvest Securities (Pvt) Ltd",
	"975": "Adeel Nadeem Securities Ltd.",
	"977": "Gul Dhami Securities Pvt Ltd",
	"978": "Dosslani's Securities Private Limited",
	"986": "Progressive Securities Pvt Ltd.",
	"987": "CMA Securities Pvt Ltd.",
	"988": "Javed Iqbal Securities Pvt Ltd.",
	"992": "Vector Securities Private Limited",
	"994": "Unex Securities (Private) Limited",
	"995": "Syed Faraz Equities (Private) Limited",
}

// BrokerName resolves a member code to the broker's name, or "" when
// the code is not in the directory.
func BrokerName(code string) string {
	return brokerNames[code]
}
