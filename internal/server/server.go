package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"hostbuddy-backend/internal/assistant"
	"hostbuddy-backend/internal/config"
	"hostbuddy-backend/internal/square"
	"hostbuddy-backend/internal/store"
	"hostbuddy-backend/internal/types"
)

type Server struct {
	router   *chi.Mux
	store    *store.MemoryStore
	catalog  square.Catalog
	resolver *assistant.Resolver
	cfg      config.Config
}

// NewServer fetches the catalog once and wires the resolver. A failed fetch
// degrades to an empty catalog; a missing OpenAI key degrades to a resolver
// without the classifier fallback. Neither is fatal.
func NewServer(cfg config.Config) *Server {
	catalog := fetchStartupCatalog(cfg)

	var classifier assistant.Classifier
	if cfg.OpenAIAPIKey != "" {
		client := openai.NewClient(cfg.OpenAIAPIKey)
		classifier = assistant.LoadItemClassifier(cfg.IntentSpecPath, client, cfg.Model)
	}
	return newServer(cfg, catalog, classifier)
}

func newServer(cfg config.Config, catalog square.Catalog, classifier assistant.Classifier) *Server {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Session-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s := &Server{
		router:   r,
		store:    store.NewMemoryStore(40),
		catalog:  catalog,
		resolver: assistant.NewResolver(catalog, classifier),
		cfg:      cfg,
	}
	s.routes()
	return s
}

func fetchStartupCatalog(cfg config.Config) square.Catalog {
	client := square.NewClient(cfg.SquareBaseURL, cfg.SquareVersion)
	catalog, err := client.FetchCatalog(context.Background(), square.Credentials{
		AccessToken: cfg.SquareAccessToken,
		LocationID:  cfg.SquareLocationID,
	})
	if err != nil {
		log.Printf("[catalog] fetch failed, starting with empty catalog: %v", err)
		return square.Catalog{}
	}
	log.Printf("[catalog] loaded %d items", len(catalog))
	return catalog
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/api/chat", s.handleChat)
	s.router.Get("/api/chat/history", s.handleHistory)
	s.router.Get("/api/catalog", s.handleCatalog)
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	sid := getSessionID(r)
	if sid == "" {
		sid = strings.TrimSpace(req.SessionID)
	}
	if sid == "" {
		sid = uuid.NewString()
		log.Printf("[session] creating new session: %s", sid)
		SetSessionCookie(w, sid)
	}
	s.store.Append(sid, store.Message{Role: "user", Content: req.Message})

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()
	out := s.resolver.Resolve(ctx, req.Message)
	if out.Err != nil {
		log.Printf("[chat] classifier error for session %s: %v", sid, out.Err)
	}
	reply := out.Reply()
	s.store.Append(sid, store.Message{Role: "assistant", Content: reply})

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Session-Id", sid)
	_ = json.NewEncoder(w).Encode(types.ChatResponse{
		SessionID: sid,
		Reply:     reply,
		Outcome:   string(out.Kind),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sid := getSessionID(r)
	if sid == "" {
		s.writeError(w, http.StatusBadRequest, "no session")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Session-Id", sid)
	_ = json.NewEncoder(w).Encode(types.HistoryResponse{
		SessionID: sid,
		Messages:  s.store.Get(sid),
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	items := make([]types.CatalogItem, 0, len(s.catalog))
	for name, price := range s.catalog {
		items = append(items, types.CatalogItem{Name: name, Price: price})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(types.CatalogResponse{Items: items})
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg})
}

// getSessionID retrieves the session ID from cookie, header, or query param
func getSessionID(r *http.Request) string {
	if cookie, err := GetSessionCookie(r); err == nil && cookie != "" {
		return cookie
	}
	if sid := r.Header.Get("X-Session-Id"); sid != "" {
		return sid
	}
	if sid := r.URL.Query().Get("sessionId"); sid != "" {
		return sid
	}
	return ""
}
