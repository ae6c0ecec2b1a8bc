package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	appai "github.com/bryanwahyu/neurolink/internal/application/ai"
	appsentiment "github.com/bryanwahyu/neurolink/internal/application/sentiment"
	"github.com/bryanwahyu/neurolink/internal/middleware"
)

// Deps is everything the HTTP layer needs.
type Deps struct {
	AI             *appai.Service
	Sentiment      *appsentiment.Service
	Logger         *zap.Logger
	Metrics        *middleware.Metrics
	Limiter        *middleware.RateLimiter
	Checkers       map[string]middleware.HealthChecker
	AllowedOrigins []string
}

type Router struct {
	aiSvc   *appai.Service
	sentSvc *appsentiment.Service
	metrics *middleware.Metrics
	log     *zap.Logger
}

func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Metrics == nil {
		d.Metrics = middleware.NewMetrics()
	}
	if len(d.AllowedOrigins) == 0 {
		d.AllowedOrigins = []string{"*"}
	}
	r := &Router{aiSvc: d.AI, sentSvc: d.Sentiment, metrics: d.Metrics, log: d.Logger}

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(middleware.Logging(d.Logger))
	mux.Use(chimw.Recoverer)
	mux.Use(d.Metrics.Middleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))
	if d.Limiter != nil {
		mux.Use(d.Limiter.Middleware(d.Metrics))
	}

	mux.Get("/health", middleware.HealthHandler(d.AI.Provider().Vendor(), d.Checkers))
	mux.Get("/health/ready", middleware.ReadinessHandler)
	mux.Get("/health/live", middleware.LivenessHandler)
	mux.Get("/metrics", d.Metrics.Handler)

	mux.Route("/api/ai", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Post("/code", r.wrap(r.handleGenerateCode))
		rt.Get("/insights", r.wrap(r.handleInsights))
		rt.Get("/latest/{userId}", r.wrap(r.handleLatest))
		rt.Get("/incidents", r.wrap(r.handleIncidents))
	})
	mux.Route("/api/sentiment", func(rt chi.Router) {
		rt.Get("/feed", r.wrap(r.handleFeed))
		rt.Post("/add", r.wrap(r.handleAddSentiment))
		rt.Get("/stats", r.wrap(r.handleStats))
		rt.Get("/regions", r.wrap(r.handleRegions))
	})

	return mux
}

var errBadRequest = errors.New("bad request")

func badRequest(err error) error {
	return errors.Join(errBadRequest, err)
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		switch {
		case errors.Is(err, errBadRequest), errors.Is(err, appsentiment.ErrInvalidSentiment):
			writeJSON(w, http.StatusBadRequest, errorBody(unwrapBadRequest(err)))
		case errors.Is(err, appai.ErrNoStore):
			writeJSON(w, http.StatusServiceUnavailable, errorBody(err.Error()))
		case errors.Is(err, context.Canceled):
			// client gone
		default:
			r.log.Error("handler failed", zap.String("path", req.URL.Path), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorBody("Server error"))
		}
	}
}

// unwrapBadRequest drops the sentinel from the message shown to clients.
func unwrapBadRequest(err error) string {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			if e != errBadRequest {
				return e.Error()
			}
		}
	}
	return err.Error()
}

func errorBody(msg string) map[string]any {
	return map[string]any{"success": false, "message": msg}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
