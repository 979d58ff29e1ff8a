package types

import "hostbuddy-backend/internal/store"

type ChatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	SessionID string `json:"sessionId"`
	Reply     string `json:"reply"`
	Outcome   string `json:"outcome"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HistoryResponse struct {
	SessionID string          `json:"sessionId"`
	Messages  []store.Message `json:"messages"`
}

type CatalogItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type CatalogResponse struct {
	Items []CatalogItem `json:"items"`
}
