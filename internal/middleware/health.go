package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"sort"
	"time"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	checkTimeout    = 2 * time.Second
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// CheckFunc adapts a function to HealthChecker.
type CheckFunc func(ctx context.Context) error

func (f CheckFunc) Check(ctx context.Context) error { return f(ctx) }

// PingDB checks a SQL pool.
func PingDB(db *sql.DB) HealthChecker {
	return CheckFunc(db.PingContext)
}

type CheckStatus struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency"`
}

// HealthReport is the /health body. Running without an AI provider is healthy;
// the provider is only reported.
type HealthReport struct {
	Status    string        `json:"status"`
	Provider  string        `json:"provider"`
	Timestamp time.Time     `json:"timestamp"`
	Checks    []CheckStatus `json:"checks"`
}

// Healthy reports whether every dependency answered.
func (h HealthReport) Healthy() bool { return h.Status == statusHealthy }

// RunChecks runs every checker with its own timeout, sorted by name.
func RunChecks(ctx context.Context, provider string, checkers map[string]HealthChecker) HealthReport {
	rep := HealthReport{
		Status:    statusHealthy,
		Provider:  provider,
		Timestamp: time.Now().UTC(),
		Checks:    make([]CheckStatus, 0, len(checkers)),
	}
	for name, c := range checkers {
		cctx, cancel := context.WithTimeout(ctx, checkTimeout)
		start := time.Now()
		err := c.Check(cctx)
		cancel()

		st := CheckStatus{Name: name, Status: statusHealthy, Latency: time.Since(start).Round(time.Millisecond).String()}
		if err != nil {
			st.Status, st.Message = statusUnhealthy, err.Error()
			rep.Status = statusUnhealthy
		}
		rep.Checks = append(rep.Checks, st)
	}
	sort.Slice(rep.Checks, func(i, j int) bool { return rep.Checks[i].Name < rep.Checks[j].Name })
	return rep
}

// HealthHandler answers 200 when all checks pass, 503 otherwise.
func HealthHandler(provider string, checkers map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep := RunChecks(r.Context(), provider, checkers)
		code := http.StatusOK
		if !rep.Healthy() {
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(rep)
	}
}

// ReadinessHandler answers once the router is serving.
func ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "ready",
		"timestamp": time.Now().UTC(),
	})
}

// LivenessHandler is the cheapest probe.
func LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
