// Package importqr turns pasted QR or eKasa payloads into reviewable expense
// rows. Parsing never fails outright: lines that cannot be understood come
// back flagged invalid with their original text preserved, so the user can
// correct them instead of losing them.
package importqr

// Row is one candidate expense line staged for review. Numeric fields stay
// strings so unparsable input survives the round trip to the user.
type Row struct {
	Valid    bool   `json:"valid"`
	OPD      string `json:"opd"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Item     string `json:"item"`
	Qnt      string `json:"qnt"`
	Price    string `json:"price"`
	Vat      string `json:"vat"`
	Seller   string `json:"seller"`
	Unit     string `json:"unit"`
}

const (
	defaultCategory = "Jedlo"
	defaultUnit     = "ks"
	defaultQnt      = "1"
)
