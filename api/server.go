/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the quote frontend

ROUTE GROUPS:
  /api/quotes/*     Quote pricing and stored quotes
  /api/catalog/*    Pricing catalog CRUD
  /api/scenarios/*  Demo scenarios

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: handler implementations
  - cmd/server/main.go: server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Quote routes
		r.Route("/quotes", func(r chi.Router) {
			r.Post("/price", h.PriceQuote)
			r.Get("/", h.ListQuotes)
			r.Get("/{id}", h.GetQuote)
		})

		// Catalog routes
		r.Route("/catalog/{kind}", func(r chi.Router) {
			r.Get("/", h.ListCatalog)
			r.Post("/", h.CreateCatalogEntry)
			r.Get("/{id}", h.GetCatalogEntry)
			r.Delete("/{id}", h.DeleteCatalogEntry)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/load", h.LoadScenario)
		})
	})

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Lease Pricing Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Lease Pricing Engine API</h1>
<h2>API Endpoints</h2>
<ul>
<li>POST /api/quotes/price - Price a lease term</li>
<li><a href="/api/catalog/lease-terms">/api/catalog/lease-terms</a> - Lease terms</li>
<li><a href="/api/catalog/concessions">/api/catalog/concessions</a> - Concessions</li>
<li><a href="/api/catalog/fees">/api/catalog/fees</a> - Fees</li>
<li><a href="/api/scenarios">/api/scenarios</a> - Demo scenarios</li>
</ul>
</body>
</html>`))
	})

	return r
}
