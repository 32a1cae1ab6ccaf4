// Package router builds the HTTP handler: the route table plus the
// middleware every request passes through.
//
// Route table:
//
//	GET    /               → greeting
//	GET    /about          → service description
//	GET    /view           → full id→record mapping
//	GET    /patient/{id}   → one record
//	GET    /sort           → records ordered by ?sort_by= and ?order_by=
//	POST   /create         → create a patient
//	PUT    /edit/{id}      → partially update a patient
//	DELETE /delete/{id}    → delete a patient
//	GET    /metrics        → Prometheus metrics (when enabled)
package router

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/patients-api/internal/http/handlers/patient"
	"github.com/aanand-mishra/patients-api/internal/http/middleware"
	"github.com/aanand-mishra/patients-api/internal/metrics"
	"github.com/aanand-mishra/patients-api/internal/storage"
)

// Options configures optional parts of the router.
type Options struct {
	// Metrics, when non-nil, instruments every route and is served at
	// MetricsPath.
	Metrics     *metrics.Metrics
	MetricsPath string

	// Logger receives access logs and recovered panics. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// New returns the application's http.Handler backed by store.
func New(store storage.Storage, opts Options) http.Handler {
	guard := storage.NewGuard(store)

	mux := http.NewServeMux()

	// "GET /{$}" matches only the root, not every unmatched path.
	mux.HandleFunc("GET /{$}", patient.Home())
	mux.HandleFunc("GET /about", patient.About())
	mux.HandleFunc("GET /view", patient.View(guard))
	mux.HandleFunc("GET /patient/{id}", patient.GetByID(guard))
	mux.HandleFunc("GET /sort", patient.Sort(guard))
	mux.HandleFunc("POST /create", patient.New(guard))
	mux.HandleFunc("PUT /edit/{id}", patient.Update(guard))
	mux.HandleFunc("DELETE /delete/{id}", patient.Delete(guard))

	var h http.Handler = mux
	if opts.Metrics != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, opts.Metrics.Handler())
		h = opts.Metrics.Middleware(mux)
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	return middleware.Chain(h,
		middleware.RequestID,
		middleware.Logger(log),
		middleware.Recoverer(log),
	)
}
