// Package refapi is a thin client for the external reference price API.
// It classifies failures into the apperrors taxonomy but performs no
// retries itself; retry and backoff policy belongs to the caller.
package refapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mmexchange/price_tracker_app/internal/apperrors"
	"github.com/mmexchange/price_tracker_app/internal/utils/dateconv"
)

// Client issues authenticated GET requests against the reference API.
type Client struct {
	http  *resty.Client
	token string
}

// NewClient builds a Client for the given base URL and bearer token.
// An empty token is allowed here; it is rejected at call time so that a
// misconfigured deployment fails with ErrConfig instead of a silent 401 loop.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: rc, token: token}
}

// FetchLatest retrieves the latest buy/sell quotes for every currency.
func (c *Client) FetchLatest(ctx context.Context) ([]LatestCurrency, error) {
	if err := c.checkToken(); err != nil {
		return nil, err
	}

	var out []LatestCurrency
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		SetResult(&out).
		Get("/currency/getLatest")
	if err != nil {
		return nil, fmt.Errorf("%w: currency/getLatest: %v", apperrors.ErrTransient, err)
	}
	if err := classify(resp); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchGoldLatest retrieves the latest title-keyed quotes for every gold variant.
func (c *Client) FetchGoldLatest(ctx context.Context) ([]LatestGold, error) {
	if err := c.checkToken(); err != nil {
		return nil, err
	}

	var out []LatestGold
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		SetResult(&out).
		Get("/gold/getLatest")
	if err != nil {
		return nil, fmt.Errorf("%w: gold/getLatest: %v", apperrors.ErrTransient, err)
	}
	if err := classify(resp); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchTransactions retrieves up to count transactions for one currency at
// or before the anchor date, grouped by day, newest first. The server
// returns a backward-pagination cursor in NextStartDate.
func (c *Client) FetchTransactions(ctx context.Context, anchor time.Time, which int64, count int) (*TransactionsPage, error) {
	if err := c.checkToken(); err != nil {
		return nil, err
	}

	var out TransactionsPage
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		SetQueryParams(map[string]string{
			"date":  dateconv.ToISODate(anchor),
			"which": strconv.FormatInt(which, 10),
			"count": strconv.Itoa(count),
		}).
		SetResult(&out).
		Get("/currency/getTransactions")
	if err != nil {
		return nil, fmt.Errorf("%w: currency/getTransactions: %v", apperrors.ErrTransient, err)
	}
	if err := classify(resp); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) checkToken() error {
	if c.token == "" {
		return fmt.Errorf("%w: CURRENCY_API_TOKEN is not set", apperrors.ErrConfig)
	}
	return nil
}

// classify maps upstream HTTP status codes onto the error taxonomy.
func classify(resp *resty.Response) error {
	code := resp.StatusCode()
	switch {
	case code < 400:
		return nil
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return fmt.Errorf("%w: check CURRENCY_API_TOKEN (http %d)", apperrors.ErrUpstreamAuth, code)
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: check CURRENCY_API_URL (http %d)", apperrors.ErrUpstreamNotFound, code)
	case code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: http %d", apperrors.ErrRateLimited, code)
	default:
		return fmt.Errorf("%w: http %d: %s", apperrors.ErrTransient, code, resp.String())
	}
}
