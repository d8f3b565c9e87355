package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kakairsyad/Interior-market/internal/catalog"
	"github.com/kakairsyad/Interior-market/internal/session"
)

// Sessions resolves a visitor session by id.
type Sessions interface {
	Get(ctx context.Context, id string) (*session.Session, error)
}

// Pinger reports the health of a dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
	SecureCookies      bool
	// HealthChecks are pinged by GET /health, keyed by name.
	HealthChecks map[string]Pinger
}

type Server struct {
	catalog  catalog.Provider
	sessions Sessions
	logger   *zap.Logger
	opts     Options
}

func NewServer(provider catalog.Provider, sessions Sessions, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if opts.MaxRequestBodySize <= 0 {
		opts.MaxRequestBodySize = 1 << 20
	}
	return &Server{catalog: provider, sessions: sessions, logger: logger, opts: opts}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestIDMiddleware)
	r.Use(AccessLog(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", s.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", s.ListProducts)
		r.Get("/products/{id}", s.GetProduct)
		r.Get("/products/{id}/related", s.RelatedProducts)
		r.Get("/categories", s.ListCategories)
		r.Get("/categories/{name}/products", s.CategoryProducts)

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(s.opts.SecureCookies))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", s.GetCart)
				r.Delete("/", s.ClearCart)
				r.Post("/items", s.AddItem)
				r.Put("/items/{product_id}", s.UpdateQuantity)
				r.Delete("/items/{product_id}", s.RemoveItem)
				r.Post("/toggle", s.ToggleCart)
				r.Post("/open", s.OpenCart)
				r.Post("/close", s.CloseCart)
			})

			r.Get("/checkout", s.GetCheckout)
			r.Post("/checkout", s.SubmitCheckout)

			r.Route("/auth", func(r chi.Router) {
				r.Post("/login", s.Login)
				r.Post("/register", s.Register)
				r.Post("/logout", s.Logout)
				r.Get("/me", s.Me)
			})
		})
	})

	return r
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sessions.Get(r.Context(), getSessionID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return nil, false
	}
	return sess, true
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "ok", Checks: make(map[string]string, len(s.opts.HealthChecks))}
	status := http.StatusOK
	for name, p := range s.opts.HealthChecks {
		if err := p.Ping(ctx); err != nil {
			resp.Checks[name] = err.Error()
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	respondJSON(w, status, resp)
}
