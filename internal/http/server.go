// Package http exposes the ledger over a JSON API. Chart and table rendering
// is the front-end's job; this layer only serves the derived data.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"financetrack/internal/cache"
	"financetrack/internal/core"
	"financetrack/internal/log"
	"financetrack/internal/services"
)

type Server struct {
	http.Server
	svc         *services.LedgerService
	window      int
	rateLimiter *rateLimiter

	// Derived summaries are memoized between mutations. The core always
	// recomputes from scratch; this only spares repeated identical reads.
	summaryCache   *cache.LRU[summaryResponse]
	evolutionCache *cache.LRU[[]core.EvolutionPoint]

	// now is swapped in tests to pin the current month.
	now func() time.Time
}

// Options tune the server beyond its address.
type Options struct {
	EvolutionWindow int
	CacheTTL        time.Duration
}

// NewServer configures routes and returns a ready-to-run server.
func NewServer(addr string, svc *services.LedgerService, opts Options) *Server {
	if opts.EvolutionWindow < 1 {
		opts.EvolutionWindow = 6
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		svc:            svc,
		window:         opts.EvolutionWindow,
		rateLimiter:    newRateLimiter(),
		summaryCache:   cache.NewLRU[summaryResponse](100, opts.CacheTTL),
		evolutionCache: cache.NewLRU[[]core.EvolutionPoint](25, opts.CacheTTL),
		now:            time.Now,
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/transactions", s.withMiddleware(s.handleCreateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withMiddleware(s.handleDeleteTransaction))
	mux.HandleFunc("GET /api/transactions", s.withMiddleware(s.handleListTransactions))
	mux.HandleFunc("GET /api/summary", s.withMiddleware(s.handleSummary))
	mux.HandleFunc("GET /api/evolution", s.withMiddleware(s.handleEvolution))
	mux.HandleFunc("GET /api/statement", s.withMiddleware(s.handleStatement))

	return s
}

// Caches exposes the sweepable caches for the janitor.
func (s *Server) Caches() []cache.Cleaner {
	return []cache.Cleaner{s.summaryCache, s.evolutionCache, s.rateLimiter}
}

// withMiddleware adds request IDs, security headers, rate limiting and
// request logging around a handler.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldClientIP, clientIP)

		// Mutations are rate limited per client
		if r.Method == http.MethodPost || r.Method == http.MethodDelete {
			if !s.rateLimiter.allow(clientIP) {
				slog.WarnContext(ctx, "Rate limit exceeded", log.FieldClientIP, clientIP, log.FieldMethod, r.Method, log.FieldPath, r.URL.Path)
				w.Header().Set("Retry-After", "60")
				writeJSON(w, http.StatusTooManyRequests, errorResponse{
					Error:   "rate_limited",
					Message: "rate limit exceeded, try again later",
				})
				return
			}
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds())
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// invalidateDerived drops memoized summaries after a mutation.
func (s *Server) invalidateDerived() {
	s.summaryCache.Purge()
	s.evolutionCache.Purge()
}

// rateLimiter allows up to 60 requests per minute per client.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientInfo
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	return &rateLimiter{clients: make(map[string]*clientInfo)}
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]
	if !exists {
		rl.clients[clientIP] = &clientInfo{lastRequest: now, requests: 1}
		return true
	}

	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	client.requests++
	client.lastRequest = now
	return client.requests <= 60
}

// CleanExpired drops clients idle for more than ten minutes, letting the
// cache janitor sweep the limiter alongside the response caches.
func (rl *rateLimiter) CleanExpired() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	removed := 0
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
			removed++
		}
	}
	return removed
}
