// Package lcd queries ledger REST endpoints for supply, denom-owner and
// provider-directory data.
package lcd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"

	"holdermap/models"
	"holdermap/util/log"
)

// Client is a read-only ledger REST client. Every request is bounded by a
// fixed timeout; an endpoint that cannot be reached at all is rotated out in
// favor of the next configured one.
type Client struct {
	mu    sync.Mutex
	bases []string
	curr  int

	timeout time.Duration
	scale   decimal.Decimal
	client  *fasthttp.Client
}

// NewClient creates a ledger client over one or more base URLs.
// scaleFactor converts minor units to major units (e.g., 1e6).
func NewClient(bases []string, timeout time.Duration, scaleFactor int64) *Client {
	trimmed := make([]string, 0, len(bases))
	for _, b := range bases {
		trimmed = append(trimmed, strings.TrimRight(b, "/"))
	}

	return &Client{
		bases:   trimmed,
		timeout: timeout,
		scale:   decimal.NewFromInt(scaleFactor),
		client: &fasthttp.Client{
			MaxConnWaitTimeout: 10 * time.Second,
		},
	}
}

// TotalSupply returns the total supply for a denom, converted to major
// units. A missing amount yields a nil Total (supply unknown) rather than an
// error; downstream percentage computation treats it as unknown.
func (c *Client) TotalSupply(denom string) (models.SupplyRecord, error) {
	rec := models.SupplyRecord{Denom: denom}

	var out struct {
		Amount struct {
			Denom  string `json:"denom"`
			Amount string `json:"amount"`
		} `json:"amount"`
	}
	if err := c.getJSON("/cosmos/bank/v1beta1/supply/by_denom?denom="+url.QueryEscape(denom), &out); err != nil {
		return rec, err
	}

	if out.Amount.Amount == "" {
		return rec, nil
	}

	minor, err := decimal.NewFromString(out.Amount.Amount)
	if err != nil {
		return rec, &ParseError{URL: c.base() + "/cosmos/bank/v1beta1/supply/by_denom", Err: err}
	}

	total := minor.Div(c.scale)
	rec.Total = &total
	return rec, nil
}

// OwnersPage is one page of the denom owners listing. An absent or empty
// NextKey signals the last page.
type OwnersPage struct {
	Owners     []models.RawBalanceRecord `json:"denom_owners"`
	Pagination struct {
		NextKey string `json:"next_key"`
		Total   string `json:"total"`
	} `json:"pagination"`
}

// DenomOwners fetches a single page of balance-holding accounts.
func (c *Client) DenomOwners(denom string, offset, limit int) (*OwnersPage, error) {
	path := fmt.Sprintf("/cosmos/bank/v1beta1/denom_owners/%s?pagination.offset=%d&pagination.limit=%d",
		url.PathEscape(denom), offset, limit)

	var page OwnersPage
	if err := c.getJSON(path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Providers fetches the provider directory from its dedicated service URL.
func (c *Client) Providers(directoryURL string) ([]models.Provider, error) {
	body, err := c.get(directoryURL)
	if err != nil {
		return nil, err
	}

	var providers []models.Provider
	if err := json.Unmarshal(body, &providers); err != nil {
		return nil, &ParseError{URL: directoryURL, Err: err}
	}
	return providers, nil
}

// getJSON performs a GET against the current base URL, rotating to the next
// endpoint when one is unreachable. Timeouts and HTTP errors are returned
// as-is: with those the endpoint answered (or was given its full bound), so
// failing over would only mask the upstream problem.
func (c *Client) getJSON(path string, target interface{}) error {
	var lastErr error

	for i := 0; i < len(c.bases); i++ {
		full := c.base() + path

		body, err := c.get(full)
		if err != nil {
			var te *TimeoutError
			var he *HTTPError
			if errors.As(err, &te) || errors.As(err, &he) {
				return err
			}

			lastErr = err
			log.Warnf("lcd endpoint unreachable, rotating: %v", err)
			c.rotate()
			continue
		}

		if err := json.Unmarshal(body, target); err != nil {
			return &ParseError{URL: full, Err: err}
		}
		return nil
	}

	return lastErr
}

// get issues a single timed GET and returns the response body.
func (c *Client) get(fullURL string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) || errors.Is(err, fasthttp.ErrDialTimeout) {
			return nil, &TimeoutError{URL: fullURL, Bound: c.timeout}
		}
		return nil, err
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, &HTTPError{
			URL:        fullURL,
			StatusCode: resp.StatusCode(),
			Body:       string(resp.Body()),
		}
	}

	// The response buffer is pooled, copy before release.
	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}

func (c *Client) base() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bases[c.curr]
}

func (c *Client) rotate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.curr = (c.curr + 1) % len(c.bases)
}
