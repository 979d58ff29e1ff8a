package square

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client fetches and normalizes the merchant catalog. It keeps a very small
// surface area: one listing call, no retries, no caching across calls.
type Client struct {
	httpClient *http.Client
	baseURL    string
	version    string
}

func NewClient(baseURL, version string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		version:    version,
	}
}

// FetchCatalog lists ITEM objects and builds the name->price table. Objects
// that cannot be parsed are skipped; they never abort the batch.
func (c *Client) FetchCatalog(ctx context.Context, creds Credentials) (Catalog, error) {
	if strings.TrimSpace(creds.AccessToken) == "" {
		return nil, &AuthError{Reason: "access token is required"}
	}
	if strings.TrimSpace(creds.LocationID) == "" {
		return nil, &AuthError{Reason: "location id is required"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/catalog/list?types=ITEM", nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
	req.Header.Set("Square-Version", c.version)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, &TransportError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	// Each object decodes independently so one malformed object cannot sink
	// the rest of the listing.
	var envelope struct {
		Objects []json.RawMessage `json:"objects"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, &TransportError{Err: err}
	}

	catalog := make(Catalog, len(envelope.Objects))
	for _, raw := range envelope.Objects {
		name, price, ok := parseItem(raw)
		if !ok {
			continue
		}
		catalog[name] = price
	}
	return catalog, nil
}

// parseItem extracts (normalized name, price) from one catalog object. The
// price comes from the first variation's minor-unit amount divided by 100.
func parseItem(raw json.RawMessage) (string, float64, bool) {
	var obj catalogObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", 0, false
	}
	if obj.Type != "ITEM" || obj.ItemData == nil {
		return "", 0, false
	}
	name := strings.ToLower(strings.TrimSpace(obj.ItemData.Name))
	if name == "" {
		return "", 0, false
	}
	if len(obj.ItemData.Variations) == 0 {
		return "", 0, false
	}
	ivd := obj.ItemData.Variations[0].ItemVariationData
	if ivd == nil || ivd.PriceMoney == nil || ivd.PriceMoney.Amount == nil {
		return "", 0, false
	}
	amount := *ivd.PriceMoney.Amount
	if amount < 0 {
		return "", 0, false
	}
	return name, float64(amount) / 100.0, true
}
