package lcd

import (
	"fmt"
	"time"
)

// TimeoutError reports a request that was aborted after exceeding the
// per-request bound. Callers message the user differently for timeouts than
// for other network failures.
type TimeoutError struct {
	URL   string
	Bound time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out after %s", e.URL, e.Bound)
}

// HTTPError reports a non-success status code from the ledger API.
type HTTPError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request to %s returned status %d: %s", e.URL, e.StatusCode, e.Body)
}

// ParseError reports a response body that could not be decoded.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NoDataError reports a refresh cycle that accumulated zero usable records.
// Err carries the failure that cut pagination short, if any.
type NoDataError struct {
	Denom string
	Err   error
}

func (e *NoDataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no holder records for %s: %v", e.Denom, e.Err)
	}
	return fmt.Sprintf("no holder records for %s", e.Denom)
}

func (e *NoDataError) Unwrap() error {
	return e.Err
}
