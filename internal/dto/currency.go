package dto

// PriceResponse is one display-formatted quote, e.g. {"value":"4,460.00","sign":"up"}.
type PriceResponse struct {
	Value string `json:"value"`
	Sign  string `json:"sign"`
}

// LatestCurrencyResponse is one entry of the getLatest response.
// Prices are ordered buy first, sell second.
type LatestCurrencyResponse struct {
	ID     int64           `json:"id"`
	Code   string          `json:"code"`
	Unit   string          `json:"unit"`
	Prices []PriceResponse `json:"prices"`
}

// GetTransactionsRequest carries the getTransactions query parameters.
// All fields are optional; the service applies defaults (today, 1, 10).
type GetTransactionsRequest struct {
	Date  string `form:"date" binding:"omitempty,isodate"`
	Which int64  `form:"which" binding:"omitempty,min=1"`
	Count int    `form:"count" binding:"omitempty,min=1,max=100"`
}

// TransactionItemResponse is one intra-day quote within a date group.
type TransactionItemResponse struct {
	Time   string          `json:"time"`
	Unit   string          `json:"unit"`
	Prices []PriceResponse `json:"prices"`
}

// TransactionDateGroup holds the transactions of one calendar day.
// Date is in the display format "DD/MM/YYYY".
type TransactionDateGroup struct {
	Date         string                    `json:"date"`
	Transactions []TransactionItemResponse `json:"transactions"`
}

// GetTransactionsResponse is the grouped history plus the backward cursor.
// NextStartDate is the ISO calendar day before the oldest returned group,
// nil when Data is empty.
type GetTransactionsResponse struct {
	NextStartDate *string                `json:"nextStartDate"`
	Data          []TransactionDateGroup `json:"data"`
}

// HistoricalSeedRequest carries the historical backfill window.
type HistoricalSeedRequest struct {
	StartDate string `form:"startDate" binding:"required,isodate"`
	EndDate   string `form:"endDate" binding:"omitempty,isodate"`
}
