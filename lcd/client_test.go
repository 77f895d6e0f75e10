package lcd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holdermap/util/log"
)

func TestMain(m *testing.M) {
	log.Init(false)
	code := m.Run()
	_ = os.RemoveAll("./logs")
	os.Exit(code)
}

func supplyPayload(amount string) map[string]interface{} {
	return map[string]interface{}{
		"amount": map[string]string{"denom": "udsm", "amount": amount},
	}
}

func TestTotalSupply(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cosmos/bank/v1beta1/supply/by_denom", r.URL.Path)
		require.Equal(t, "udsm", r.URL.Query().Get("denom"))
		_ = json.NewEncoder(w).Encode(supplyPayload("20000000"))
	}))
	defer ts.Close()

	client := NewClient([]string{ts.URL}, time.Second, 1_000_000)

	rec, err := client.TotalSupply("udsm")
	require.NoError(t, err)
	require.NotNil(t, rec.Total)

	major, _ := rec.Total.Float64()
	assert.Equal(t, 20.0, major)
}

func TestTotalSupplyUnknownAmount(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(supplyPayload(""))
	}))
	defer ts.Close()

	client := NewClient([]string{ts.URL}, time.Second, 1_000_000)

	rec, err := client.TotalSupply("udsm")
	require.NoError(t, err)
	assert.Nil(t, rec.Total)
}

func TestTotalSupplyHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "supply unavailable", http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewClient([]string{ts.URL}, time.Second, 1_000_000)

	_, err := client.TotalSupply("udsm")
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
}

func TestRequestTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(supplyPayload("1"))
	}))
	defer ts.Close()

	client := NewClient([]string{ts.URL}, 50*time.Millisecond, 1_000_000)

	_, err := client.TotalSupply("udsm")
	require.Error(t, err)

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
}

func TestDenomOwnersPage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cosmos/bank/v1beta1/denom_owners/udsm", r.URL.Path)
		require.Equal(t, "0", r.URL.Query().Get("pagination.offset"))
		require.Equal(t, "2", r.URL.Query().Get("pagination.limit"))

		_, _ = w.Write([]byte(`{
			"denom_owners": [
				{"address": "a1", "balance": {"denom": "udsm", "amount": "5000000"}},
				{"address": "a2", "balance": {"denom": "udsm", "amount": "15000000"}}
			],
			"pagination": {"next_key": null, "total": "2"}
		}`))
	}))
	defer ts.Close()

	client := NewClient([]string{ts.URL}, time.Second, 1_000_000)

	page, err := client.DenomOwners("udsm", 0, 2)
	require.NoError(t, err)
	require.Len(t, page.Owners, 2)
	assert.Equal(t, "a1", page.Owners[0].Address)
	assert.Equal(t, "15000000", page.Owners[1].Balance.Amount)
	assert.Empty(t, page.Pagination.NextKey)
}

func TestDenomOwnersMalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"denom_owners": [`))
	}))
	defer ts.Close()

	client := NewClient([]string{ts.URL}, time.Second, 1_000_000)

	_, err := client.DenomOwners("udsm", 0, 10)
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestEndpointFailover(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(supplyPayload("7000000"))
	}))
	defer ts.Close()

	// First endpoint refuses connections, second answers.
	client := NewClient([]string{"http://127.0.0.1:1", ts.URL}, time.Second, 1_000_000)

	rec, err := client.TotalSupply("udsm")
	require.NoError(t, err)
	require.NotNil(t, rec.Total)

	major, _ := rec.Total.Float64()
	assert.Equal(t, 7.0, major)
}

func TestProviders(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"moniker": "node-a", "address": "addr-a", "endpoint": "https://a", "status": "active"},
			{"moniker": "node-b", "address": "addr-b", "endpoint": "https://b", "status": "inactive"}
		]`))
	}))
	defer ts.Close()

	client := NewClient([]string{ts.URL}, time.Second, 1_000_000)

	providers, err := client.Providers(ts.URL + "/providers")
	require.NoError(t, err)
	require.Len(t, providers, 2)
	assert.Equal(t, "node-a", providers[0].Moniker)
}
