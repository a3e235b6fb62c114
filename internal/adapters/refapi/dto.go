package refapi

// PriceQuote is one quoted value on the wire, e.g. {"value":"4,460.00","sign":"up"}.
type PriceQuote struct {
	Value string `json:"value"`
	Sign  string `json:"sign"`
}

// LatestCurrency is one entry of the currency/getLatest response.
// Prices are positional: index 0 is the buy quote, index 1 the sell quote.
type LatestCurrency struct {
	Code   string       `json:"code"`
	Unit   string       `json:"unit"`
	Prices []PriceQuote `json:"prices"`
}

// GoldQuote is a title-keyed quote of the gold/getLatest response.
type GoldQuote struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Sign  string `json:"sign"`
}

// LatestGold is one entry of the gold/getLatest response.
type LatestGold struct {
	Type   string      `json:"type"`
	Unit   string      `json:"unit"`
	Time   string      `json:"time"`
	Prices []GoldQuote `json:"prices"`
}

// TransactionEntry is one intra-day quote inside a date group.
type TransactionEntry struct {
	Time   string       `json:"time"`
	Prices []PriceQuote `json:"prices"`
}

// DateGroup holds the transactions of one calendar day. Date is in the
// upstream display format "DD/MM/YYYY".
type DateGroup struct {
	Date         string             `json:"date"`
	Transactions []TransactionEntry `json:"transactions"`
}

// TransactionsPage is the currency/getTransactions response. NextStartDate
// is the ISO-date cursor for the next (older) page, nil when exhausted.
type TransactionsPage struct {
	NextStartDate *string     `json:"nextStartDate"`
	Data          []DateGroup `json:"data"`
}
