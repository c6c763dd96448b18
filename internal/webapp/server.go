package webapp

import (
	_ "embed"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed index.html
var indexHTML []byte

// Server is the chat front end: it serves the chat page and proxies
// prompts and auth calls to the remote backend API.
type Server struct {
	client       *Client
	store        SessionStore
	logger       *slog.Logger
	historyLimit int

	registry      *prometheus.Registry
	requestsTotal *prometheus.CounterVec
}

func NewServer(client *Client, store SessionStore, historyLimit int) *Server {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zus_webapp_requests_total",
			Help: "Front end requests by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)
	registry.MustRegister(requests)

	return &Server{
		client:        client,
		store:         store,
		logger:        slog.Default().With("component", "webapp"),
		historyLimit:  historyLimit,
		registry:      registry,
		requestsTotal: requests,
	}
}

// Router wires the chi routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.handleIndex)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/session", s.handleSession)
		r.Post("/login", s.handleLogin)
		r.Post("/register", s.handleRegister)
		r.Post("/logout", s.handleLogout)
		r.Post("/chat", s.handleChat)
		r.Get("/products", s.handleProducts)
		r.Get("/outlets", s.handleOutlets)
	})

	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}
