package lcd

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holdermap/models"
)

type scriptedPage struct {
	amounts []string
	nextKey string
	err     error
}

type scriptedFetcher struct {
	pages   []scriptedPage
	offsets []int
	calls   int
}

func (f *scriptedFetcher) DenomOwners(denom string, offset, limit int) (*OwnersPage, error) {
	f.offsets = append(f.offsets, offset)

	if f.calls >= len(f.pages) {
		return &OwnersPage{}, nil
	}

	p := f.pages[f.calls]
	f.calls++

	if p.err != nil {
		return nil, p.err
	}

	page := &OwnersPage{}
	page.Pagination.NextKey = p.nextKey
	for i, amount := range p.amounts {
		var rec models.RawBalanceRecord
		rec.Address = fmt.Sprintf("addr-%d-%d", offset, i)
		rec.Balance.Amount = amount
		page.Owners = append(page.Owners, rec)
	}
	return page, nil
}

func drain(t *testing.T, it *OwnersIterator) ([]models.RawBalanceRecord, error) {
	t.Helper()

	var all []models.RawBalanceRecord
	for {
		page, err := it.Next(context.Background())
		if err != nil {
			return all, err
		}
		if page == nil {
			return all, nil
		}
		all = append(all, page...)
	}
}

func TestOwnersStopsWithoutNextKey(t *testing.T) {
	f := &scriptedFetcher{pages: []scriptedPage{
		{amounts: []string{"1", "2"}, nextKey: "more"},
		{amounts: []string{"3"}, nextKey: ""},
	}}

	it := NewOwnersIterator(f, "udsm", 2, 500, time.Millisecond)

	all, err := drain(t, it)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, 2, f.calls)
	assert.Equal(t, []int{0, 2}, f.offsets)
}

func TestOwnersStopsOnEmptyPageDespiteNextKey(t *testing.T) {
	f := &scriptedFetcher{pages: []scriptedPage{
		{amounts: []string{"1", "2"}, nextKey: "more"},
		{amounts: nil, nextKey: "more"},
	}}

	it := NewOwnersIterator(f, "udsm", 2, 500, time.Millisecond)

	all, err := drain(t, it)
	require.NoError(t, err)

	// Previously accumulated records are preserved, and the walk ends.
	assert.Len(t, all, 2)
	assert.Equal(t, 2, f.calls)
}

func TestOwnersHonorsMaxRecords(t *testing.T) {
	f := &scriptedFetcher{pages: []scriptedPage{
		{amounts: []string{"1", "2"}, nextKey: "more"},
		{amounts: []string{"3", "4"}, nextKey: "more"},
		{amounts: []string{"5", "6"}, nextKey: "more"},
	}}

	it := NewOwnersIterator(f, "udsm", 2, 3, time.Millisecond)

	all, err := drain(t, it)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, 2, f.calls)
}

func TestOwnersSpentAfterError(t *testing.T) {
	f := &scriptedFetcher{pages: []scriptedPage{
		{amounts: []string{"1"}, nextKey: "more"},
		{err: &TimeoutError{URL: "http://lcd/denom_owners", Bound: time.Second}},
	}}

	it := NewOwnersIterator(f, "udsm", 1, 500, time.Millisecond)

	first, err := it.Next(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	_, err = it.Next(context.Background())
	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)

	// The sequence is non-restartable.
	page, err := it.Next(context.Background())
	require.NoError(t, err)
	assert.Nil(t, page)
	assert.Equal(t, 2, f.calls)
}

func TestOwnersStopsOnCanceledContext(t *testing.T) {
	f := &scriptedFetcher{pages: []scriptedPage{
		{amounts: []string{"1"}, nextKey: "more"},
		{amounts: []string{"2"}, nextKey: "more"},
	}}

	it := NewOwnersIterator(f, "udsm", 1, 500, 50*time.Millisecond)

	_, err := it.Next(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = it.Next(ctx)
	require.Error(t, err)
}
