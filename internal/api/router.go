package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/ozgurk/ledgerlens/internal/api/handlers"
	"github.com/ozgurk/ledgerlens/pkg/logger"
)

// NewRouter creates and configures the HTTP router. Routing lives in
// this function only.
func NewRouter(statsHandler *handlers.StatsHandler, healthHandler *handlers.HealthHandler, log *logger.Logger, rps int) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthHandler.GetHealth).Methods("GET")

	// Stats endpoints
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/stats/summary", statsHandler.GetSummary).Methods("GET")
	api.HandleFunc("/stats/trend", statsHandler.GetTrend).Methods("GET")
	api.HandleFunc("/stats/balance/{accountID}", statsHandler.GetBalance).Methods("GET")
	api.HandleFunc("/stats/accounts", statsHandler.GetAccounts).Methods("GET")
	api.HandleFunc("/stats/top/{kind}", statsHandler.GetTopN).Methods("GET")
	api.HandleFunc("/stats/stock", statsHandler.GetStock).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))
	api.Use(rateLimitMiddleware(rps))

	return r
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimitMiddleware bounds how fast the stats endpoints can be hit.
// Every request re-runs a full fetch-and-aggregate pass against the
// backing store, so an unbounded client could saturate the pool.
func rateLimitMiddleware(rps int) mux.MiddlewareFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), rps*2)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "rate limit exceeded",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
