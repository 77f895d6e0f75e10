package lcd

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"holdermap/models"
)

// PageFetcher fetches one page of balance-holding accounts. *Client
// implements it; tests substitute scripted fakes.
type PageFetcher interface {
	DenomOwners(denom string, offset, limit int) (*OwnersPage, error)
}

// OwnersIterator walks the denom owners listing one page at a time. It is a
// lazy, finite, non-restartable sequence: pagination is strictly sequential
// because each page's continuation cursor is only known after the prior page
// resolves. The iterator stops when a page comes back empty, when the API
// stops handing out a continuation cursor, or when maxRecords have been
// yielded.
type OwnersIterator struct {
	fetcher    PageFetcher
	denom      string
	pageSize   int
	maxRecords int
	limiter    *rate.Limiter

	offset  int
	yielded int
	done    bool
}

// Owners returns an iterator over all holders of denom. interval is the
// fixed inter-page delay, a throttle against upstream rate limits.
func (c *Client) Owners(denom string, pageSize, maxRecords int, interval time.Duration) *OwnersIterator {
	return NewOwnersIterator(c, denom, pageSize, maxRecords, interval)
}

// NewOwnersIterator builds an iterator over an arbitrary PageFetcher.
func NewOwnersIterator(f PageFetcher, denom string, pageSize, maxRecords int, interval time.Duration) *OwnersIterator {
	return &OwnersIterator{
		fetcher:    f,
		denom:      denom,
		pageSize:   pageSize,
		maxRecords: maxRecords,
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Next returns the next page of records. A (nil, nil) return means the
// sequence is exhausted. After any error the iterator is spent; accumulation
// and the decision whether partial results are usable belong to the caller.
func (it *OwnersIterator) Next(ctx context.Context) ([]models.RawBalanceRecord, error) {
	if it.done {
		return nil, nil
	}

	// The limiter starts with one free token, so only pages after the
	// first actually wait.
	if err := it.limiter.Wait(ctx); err != nil {
		it.done = true
		return nil, err
	}

	page, err := it.fetcher.DenomOwners(it.denom, it.offset, it.pageSize)
	if err != nil {
		it.done = true
		return nil, err
	}

	if len(page.Owners) == 0 {
		it.done = true
		return nil, nil
	}

	records := page.Owners
	if it.yielded+len(records) >= it.maxRecords {
		records = records[:it.maxRecords-it.yielded]
		it.done = true
	}

	it.yielded += len(records)
	it.offset += it.pageSize

	if page.Pagination.NextKey == "" {
		it.done = true
	}

	return records, nil
}
