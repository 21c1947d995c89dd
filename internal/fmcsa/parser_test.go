package fmcsa

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

const carrierPage = `<!DOCTYPE html>
<html>
<body>
	<h2 class="company-name">Acme Freight LLC</h2>
	<span id="lblDOTNumber">DOT 1234567</span>
	<span class="authority-status">Active</span>
	<span class="authority-type">Common</span>
	<span class="authority-date">01/15/2019</span>
	<span id="lblInsuranceStatus">Insurance Active</span>
	<span class="insurance-expiry">12/31/2026</span>
	<span class="rating">Rating: 85</span>
	<span class="violations-count">3 violations</span>
	<span class="accidents-count">1</span>
	<span class="phone">(555) 123-4567</span>
	<span class="email">dispatch@acmefreight.example</span>
	<div class="carrier-address">100 Main St, Dallas, TX 75201</div>
</body>
</html>`

const notFoundPage = `<!DOCTYPE html>
<html>
<body>
	<div class="error-message">Carrier not found for the given search.</div>
</body>
</html>`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(
		WithBaseURL(srv.URL),
		WithLogger(arbor.NewLogger()),
		WithRateLimit(1000),
	)
}

func TestLookupParsesCarrierPage(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		w.Write([]byte(carrierPage))
	})

	snapshot, err := client.Lookup(context.Background(), "123456")
	require.NoError(t, err)

	assert.Equal(t, "123456", gotQuery)
	assert.Equal(t, "123456", snapshot.MCNumber)
	assert.Equal(t, "Acme Freight LLC", snapshot.CompanyName)
	assert.Equal(t, "DOT 1234567", snapshot.DOTNumber)
	assert.Equal(t, "Active", snapshot.AuthorityStatus)
	assert.Equal(t, "Common", snapshot.AuthorityType)
	assert.Equal(t, "01/15/2019", snapshot.AuthorityDate)
	assert.Equal(t, "Active", snapshot.InsuranceStatus)
	assert.Equal(t, "12/31/2026", snapshot.InsuranceExpiry)
	assert.Equal(t, "85", snapshot.SafetyRating)
	assert.Equal(t, 3, snapshot.Violations12Mo)
	assert.Equal(t, 1, snapshot.Accidents12Mo)
	assert.Equal(t, "(555) 123-4567", snapshot.Phone)
	assert.Equal(t, "dispatch@acmefreight.example", snapshot.Email)
	// State falls back to the two-letter code in the address block
	assert.Equal(t, "TX", snapshot.State)
}

func TestLookupSparsePageLeavesZeroValues(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><h2>Lone Star Hauling</h2></body></html>`))
	})

	snapshot, err := client.Lookup(context.Background(), "42")
	require.NoError(t, err)

	assert.Equal(t, "Lone Star Hauling", snapshot.CompanyName)
	assert.Empty(t, snapshot.AuthorityStatus)
	assert.Empty(t, snapshot.InsuranceStatus)
	assert.Equal(t, 0, snapshot.Violations12Mo)
	assert.Equal(t, 0, snapshot.Accidents12Mo)
}

func TestLookupExpiredInsurance(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><span id="lblInsuranceStatus">Lapsed 2024</span></body></html>`))
	})

	snapshot, err := client.Lookup(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "Expired", snapshot.InsuranceStatus)
}

func TestLookupNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(notFoundPage))
	})

	_, err := client.Lookup(context.Background(), "999")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "999", notFound.MCNumber)
	assert.Equal(t, "MC 999 not found", notFound.Error())
}

func TestLookupServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Lookup(context.Background(), "42")

	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, http.StatusServiceUnavailable, lookupErr.StatusCode)
}

func TestLookupHonorsContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(carrierPage))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Lookup(ctx, "42")
	assert.Error(t, err)
}

func TestLookupSendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(carrierPage))
	}))
	defer srv.Close()

	client := NewClient(
		WithBaseURL(srv.URL),
		WithUserAgent("carriervet-test/1.0"),
		WithRateLimit(1000),
	)

	_, err := client.Lookup(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "carriervet-test/1.0", gotUA)
}
