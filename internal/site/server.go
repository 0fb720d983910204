package site

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/docsitehq/docsite/internal/index"
	"github.com/docsitehq/docsite/internal/routes"
	"github.com/docsitehq/docsite/internal/semantic"
)

// ServerConfig holds the preview server settings.
type ServerConfig struct {
	Port int
	Open bool

	// AllowAllOrigins disables the localhost CORS allowlist. Useful when
	// previewing from another device on the network.
	AllowAllOrigins bool
}

// Server serves the built site along with search and live-preview
// endpoints. The route table is swappable so watch rebuilds take effect
// without restarting.
type Server struct {
	cfg   ServerConfig
	dir   string
	store *index.Store
	sem   *semantic.Store // nil when semantic search is off
	hub   *Hub

	mu    sync.RWMutex
	table *routes.Table

	router     chi.Router
	httpServer *http.Server
}

// NewServer wires routes for a built site directory. store backs the
// search endpoint; sem, when non-nil, takes precedence over it.
func NewServer(cfg ServerConfig, dir string, table *routes.Table, store *index.Store, sem *semantic.Store) *Server {
	s := &Server{cfg: cfg, dir: dir, store: store, sem: sem, table: table}
	s.hub = NewHub(s.Table)
	s.router = s.buildRouter()
	return s
}

// Table returns the current route table.
func (s *Server) Table() *routes.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// SetTable swaps the route table after a rebuild. Existing live sessions
// keep their trackers until the reload lands and they reconnect.
func (s *Server) SetTable(t *routes.Table) {
	s.mu.Lock()
	s.table = t
	s.mu.Unlock()
}

// Hub exposes the live-preview hub so the watch loop can broadcast
// reloads.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// The websocket route stays outside this group: a request timeout
	// would tear down long-lived connections.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(cors.Handler(s.corsOptions()))

		r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
		r.Post("/api/search", s.handleSearch)
	})

	r.Get("/ws", s.hub.ServeWS)
	r.Handle("/*", http.FileServer(http.Dir(s.dir)))

	return r
}

func (s *Server) corsOptions() cors.Options {
	opts := cors.Options{
		AllowedOrigins: []string{
			fmt.Sprintf("http://localhost:%d", s.cfg.Port),
			fmt.Sprintf("http://127.0.0.1:%d", s.cfg.Port),
		},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}
	if s.cfg.AllowAllOrigins {
		opts.AllowedOrigins = []string{"*"}
	}
	return opts
}

// searchRequest is the JSON body for the /api/search endpoint.
type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// searchResponse is the JSON response from the /api/search endpoint.
type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Path       string  `json:"path"`
	Fragment   string  `json:"fragment,omitempty"`
	Title      string  `json:"title"`
	Section    string  `json:"section,omitempty"`
	Snippet    string  `json:"snippet"`
	Similarity float64 `json:"similarity,omitempty"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		http.Error(w, `{"error":"query is required"}`, http.StatusBadRequest)
		return
	}
	limit := req.Limit
	if limit <= 0 || limit > 20 {
		limit = 8
	}

	results, err := s.search(r.Context(), query, limit)
	if err != nil {
		log.Printf("serve: search failed: %v", err)
		http.Error(w, `{"error":"search failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(searchResponse{Results: results})
}

func (s *Server) search(ctx context.Context, query string, limit int) ([]searchResult, error) {
	if s.sem != nil {
		hits, err := s.sem.Search(ctx, query, limit)
		if err != nil {
			return nil, err
		}
		results := make([]searchResult, 0, len(hits))
		for _, h := range hits {
			results = append(results, searchResult{
				Path:       h.Entry.Path,
				Fragment:   h.Entry.Fragment,
				Title:      h.Entry.Title,
				Section:    h.Entry.Section,
				Snippet:    index.Snippet(h.Entry.Content, query, 160),
				Similarity: float64(h.Similarity),
			})
		}
		return results, nil
	}

	entries, err := s.store.Search(query, limit)
	if err != nil {
		return nil, err
	}
	results := make([]searchResult, 0, len(entries))
	for _, e := range entries {
		results = append(results, searchResult{
			Path:     e.Path,
			Fragment: e.Fragment,
			Title:    e.Title,
			Section:  e.Section,
			Snippet:  index.Snippet(e.Content, query, 160),
		})
	}
	return results, nil
}

// Start runs the server until it fails or Shutdown is called.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	url := fmt.Sprintf("http://localhost:%d", s.cfg.Port)

	if s.cfg.Open {
		go openBrowser(url)
	}

	// No WriteTimeout: it would cut off websocket sessions.
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("serve: %s at %s", s.dir, url)
	return s.httpServer.ListenAndServe()
}

// Shutdown closes live sessions and stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("serve: could not open browser: %v", err)
	}
}
