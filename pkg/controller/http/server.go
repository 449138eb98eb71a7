package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/headcount/frontend"
	"github.com/secmon-lab/headcount/pkg/domain/model"
	"github.com/secmon-lab/headcount/pkg/domain/types"
	"github.com/secmon-lab/headcount/pkg/service/notify"
	"github.com/secmon-lab/headcount/pkg/usecase"
	"github.com/secmon-lab/headcount/pkg/utils/apperr"
)

// View is the set of ViewController operations exposed over HTTP
type View interface {
	ApplyFilter(ctx context.Context, filter model.FilterState) error
	ChangeSelection(ctx context.Context, selector model.DepartmentSelector) error
	ToggleViewMode(ctx context.Context) error
	Refresh(ctx context.Context) error
	Export(ctx context.Context) ([]string, error)
	State() usecase.ViewState
	Departments() []*model.Department
}

// ChartSource provides the latest rendered chart
type ChartSource interface {
	Format() types.SurfaceFormat
	Bytes() []byte
	Version() uint64
}

// MessageSource provides user-visible messages
type MessageSource interface {
	Since(after uint64) []notify.Message
}

// Server represents the HTTP server
type Server struct {
	*http.Server
	router chi.Router
}

// NewServer creates a new HTTP server
func NewServer(ctx context.Context, addr string, view View, chart ChartSource, messages MessageSource) (*Server, error) {
	if view == nil {
		return nil, goerr.New("view controller is required")
	}
	if chart == nil {
		return nil, goerr.New("chart source is required")
	}

	router := chi.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	h := &handler{view: view, chart: chart, messages: messages}

	// Health check
	router.Get("/health", handleHealth)

	// Chart of the latest run
	router.Get("/chart", h.handleChart)

	// Action API
	router.Route("/api", func(r chi.Router) {
		r.Get("/departments", h.handleDepartments)
		r.Get("/state", h.handleState)
		r.Get("/messages", h.handleMessages)
		r.Post("/filter", h.handleFilter)
		r.Post("/selection", h.handleSelection)
		r.Post("/view/toggle", h.handleToggle)
		r.Post("/refresh", h.handleRefresh)
		r.Post("/export", h.handleExport)
	})

	// UI page (embedded)
	fs, err := frontend.GetHTTPFS()
	if err != nil {
		ctxlog.From(ctx).Warn("Failed to get embedded frontend, using fallback",
			"error", err,
		)
		router.Get("/*", handleFallbackHome)
	} else {
		static, err := NewStaticHandler(fs)
		if err != nil {
			return nil, err
		}
		ctxlog.From(ctx).Info("Serving frontend from embedded files")
		router.Handle("/*", static)
	}

	server := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router: router,
	}

	return server, nil
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "headcount",
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}

// handleFallbackHome serves a bare chart page when the UI is not embedded
func handleFallbackHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>Headcount</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Arial, sans-serif; margin: 0; }
        iframe { border: 0; width: 100%; height: 100vh; }
    </style>
</head>
<body>
    <iframe src="/chart" title="Number of employees per department"></iframe>
</body>
</html>`)); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write fallback home page", "error", err)
	}
}

// statusOf maps an error tag to an HTTP status code
func statusOf(err error) int {
	switch {
	case goerr.HasTag(err, model.ErrTagInvalidFilter):
		return http.StatusBadRequest
	case goerr.HasTag(err, model.ErrTagConnection):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes an error response
func writeError(w http.ResponseWriter, r *http.Request, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": apperr.Message(err),
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode error response", "error", err)
	}
}

// writeJSON writes a successful JSON response
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}
