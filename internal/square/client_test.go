package square

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingFixture = `{
  "objects": [
    {"type": "ITEM", "item_data": {"name": "  Taco ", "variations": [
      {"item_variation_data": {"price_money": {"amount": 350}}}
    ]}},
    {"type": "ITEM", "item_data": {"name": "Burrito", "variations": [
      {"item_variation_data": {"price_money": {"amount": 725}}},
      {"item_variation_data": {"price_money": {"amount": 999}}}
    ]}},
    {"type": "CATEGORY", "item_data": {"name": "Lunch", "variations": [
      {"item_variation_data": {"price_money": {"amount": 100}}}
    ]}},
    {"type": "ITEM", "item_data": {"name": "Soda", "variations": []}},
    {"type": "ITEM", "item_data": {"name": "Chips", "variations": [
      {"item_variation_data": {"price_money": {}}}
    ]}},
    {"type": "ITEM", "item_data": {"name": "   ", "variations": [
      {"item_variation_data": {"price_money": {"amount": 200}}}
    ]}},
    {"type": "ITEM", "item_data": {"name": "Mystery", "variations": [
      {"item_variation_data": {"price_money": {"amount": -50}}}
    ]}},
    {"type": "ITEM", "item_data": {"name": "Salsa", "variations": [
      {"item_variation_data": {"price_money": {"amount": "oops"}}}
    ]}}
  ]
}`

func testCreds() Credentials {
	return Credentials{AccessToken: "test-token", LocationID: "L123"}
}

func newCatalogServer(t *testing.T, status int, body string) (*httptest.Server, *http.Request) {
	t.Helper()
	var captured http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = *r
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestFetchCatalogNormalizes(t *testing.T) {
	srv, captured := newCatalogServer(t, http.StatusOK, listingFixture)

	c := NewClient(srv.URL, "2023-09-20")
	catalog, err := c.FetchCatalog(context.Background(), testCreds())
	require.NoError(t, err)

	// Only the two fully parseable items survive; names are trimmed and
	// lowercased and the first variation's amount wins.
	assert.Equal(t, Catalog{"taco": 3.50, "burrito": 7.25}, catalog)

	assert.Equal(t, "/v2/catalog/list", captured.URL.Path)
	assert.Equal(t, "ITEM", captured.URL.Query().Get("types"))
	assert.Equal(t, "Bearer test-token", captured.Header.Get("Authorization"))
	assert.Equal(t, "2023-09-20", captured.Header.Get("Square-Version"))
}

func TestFetchCatalogDuplicateNamesLastWins(t *testing.T) {
	body := `{"objects": [
		{"type": "ITEM", "item_data": {"name": "Taco", "variations": [
			{"item_variation_data": {"price_money": {"amount": 100}}}]}},
		{"type": "ITEM", "item_data": {"name": "TACO", "variations": [
			{"item_variation_data": {"price_money": {"amount": 250}}}]}}
	]}`
	srv, _ := newCatalogServer(t, http.StatusOK, body)

	c := NewClient(srv.URL, "2023-09-20")
	catalog, err := c.FetchCatalog(context.Background(), testCreds())
	require.NoError(t, err)
	assert.Equal(t, Catalog{"taco": 2.50}, catalog)
}

func TestFetchCatalogEmptyObjects(t *testing.T) {
	for _, body := range []string{`{}`, `{"objects": []}`} {
		srv, _ := newCatalogServer(t, http.StatusOK, body)
		c := NewClient(srv.URL, "2023-09-20")
		catalog, err := c.FetchCatalog(context.Background(), testCreds())
		require.NoError(t, err)
		assert.Empty(t, catalog)
	}
}

func TestFetchCatalogIdempotent(t *testing.T) {
	srv, _ := newCatalogServer(t, http.StatusOK, listingFixture)
	c := NewClient(srv.URL, "2023-09-20")

	first, err := c.FetchCatalog(context.Background(), testCreds())
	require.NoError(t, err)
	second, err := c.FetchCatalog(context.Background(), testCreds())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFetchCatalogMissingCredentials(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()
	c := NewClient(srv.URL, "2023-09-20")

	for _, creds := range []Credentials{
		{},
		{AccessToken: "tok"},
		{LocationID: "L123"},
	} {
		_, err := c.FetchCatalog(context.Background(), creds)
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
	}
	assert.False(t, called, "no request should be issued without credentials")
}

func TestFetchCatalogNonSuccessStatus(t *testing.T) {
	srv, _ := newCatalogServer(t, http.StatusUnauthorized, `{"errors": [{"detail": "bad token"}]}`)
	c := NewClient(srv.URL, "2023-09-20")

	_, err := c.FetchCatalog(context.Background(), testCreds())
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusUnauthorized, transportErr.Status)
}

func TestFetchCatalogUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	c := NewClient(srv.URL, "2023-09-20")

	_, err := c.FetchCatalog(context.Background(), testCreds())
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Zero(t, transportErr.Status)
}
