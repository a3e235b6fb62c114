package dto

// GoldPriceResponse is one title-keyed gold quote.
type GoldPriceResponse struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Sign  string `json:"sign"`
}

// LatestGoldResponse is one entry of the gold getLatest response.
type LatestGoldResponse struct {
	ID     int64               `json:"id"`
	Type   string              `json:"type"`
	Unit   string              `json:"unit"`
	Time   string              `json:"time"`
	Prices []GoldPriceResponse `json:"prices"`
}
