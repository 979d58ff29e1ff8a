package square

// Catalog maps a normalized (trimmed, lowercased) item name to its price in
// major units. Rebuilt wholesale on every fetch; later duplicates win.
type Catalog map[string]float64

// Credentials for the Square catalog API.
type Credentials struct {
	AccessToken string
	LocationID  string
}

// Minimal subset of the Square catalog list response.

type catalogObject struct {
	Type     string    `json:"type"`
	ItemData *itemData `json:"item_data"`
}

type itemData struct {
	Name       string      `json:"name"`
	Variations []variation `json:"variations"`
}

type variation struct {
	ItemVariationData *itemVariationData `json:"item_variation_data"`
}

type itemVariationData struct {
	PriceMoney *priceMoney `json:"price_money"`
}

type priceMoney struct {
	Amount *int64 `json:"amount"`
}
