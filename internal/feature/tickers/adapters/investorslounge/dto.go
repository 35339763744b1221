package investorslounge

import "encoding/json"

// postRequest is the envelope the proxy endpoint expects: the target API
// path plus the inner query serialized as a JSON string.
type postRequest struct {
	URL  string `json:"url"`
	Data string `json:"data"`
}

// historyQuery is the inner query for PriceHistory/GetPriceHistoryCompanyWise.
// Dates use the "02 Jan 2006" layout.
type historyQuery struct {
	Company  string `json:"company"`
	Sort     string `json:"sort"`
	DateFrom string `json:"DateFrom"`
	DateTo   string `json:"DateTo"`
	Key      string `json:"key"`
}

// flexValue decodes a field the upstream serves sometimes as a JSON
// number and sometimes as a string.
type flexValue string

func (f *flexValue) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexValue(n.String())
	return nil
}

// priceRecord is one history row. The upstream is inconsistent about
// field names across symbols and over time, so every observed variant
// is mapped and the client picks the first one present.
type priceRecord struct {
	Date          string    `json:"Date"`
	DateAlt       string    `json:"Date_"`
	Open          flexValue `json:"Open"`
	High          flexValue `json:"High"`
	Low           flexValue `json:"Low"`
	Close         flexValue `json:"Close"`
	Change        flexValue `json:"Change"`
	ChangePercent flexValue `json:"Change (%)"`
	ChangeP       flexValue `json:"ChangeP"`
	ChangeValueP  flexValue `json:"change_valueP"`
	Volume        flexValue `json:"Volume"`
}
