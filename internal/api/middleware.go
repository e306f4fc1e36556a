package api

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Headers required by Solana Action clients.
const (
	actionVersion = "2.1.3"
	blockchainIDs = "solana:5eykt4UsFv8P8NJdTREpY1vzqKqZKvdp"
)

// CORSConfig controls the cross-origin headers set on every response.
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	ExposedHeaders []string
}

// CORS sets cross-origin headers and hands every request, preflight included,
// to the next handler so OPTIONS routes can answer with a body.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	methods := cfg.AllowedMethods
	if len(methods) == 0 {
		methods = []string{"GET", "POST", "PUT", "OPTIONS"}
	}
	headers := cfg.AllowedHeaders
	if len(headers) == 0 {
		headers = []string{
			"Content-Type", "Authorization", "Content-Encoding", "Accept-Encoding",
			"X-Action-Version", "X-Blockchain-Ids", "X-User-Public-Key",
		}
	}
	exposed := cfg.ExposedHeaders
	if len(exposed) == 0 {
		exposed = []string{"X-Action-Version", "X-Blockchain-Ids"}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origins[0])
			h.Set("Access-Control-Allow-Methods", strings.Join(methods, ", "))
			h.Set("Access-Control-Allow-Headers", strings.Join(headers, ", "))
			h.Set("Access-Control-Expose-Headers", strings.Join(exposed, ", "))
			h.Set("X-Action-Version", actionVersion)
			h.Set("X-Blockchain-Ids", blockchainIDs)
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimiter limits requests per client address.
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
	clockNow  func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitorTTL is how long an idle client keeps its limiter.
const visitorTTL = 5 * time.Minute

// NewRateLimiter allows perSecond requests per client with the given burst.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if perSecond <= 0 {
		perSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		visitors: make(map[string]*visitor),
		clockNow: time.Now,
	}
}

// Middleware rejects requests over the limit with 429.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientID(r)) {
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) allow(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clockNow()
	if now.Sub(l.lastSweep) > visitorTTL {
		for key, v := range l.visitors {
			if now.Sub(v.lastSeen) > visitorTTL {
				delete(l.visitors, key)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[id]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[id] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func clientID(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if parsed := net.ParseIP(strings.TrimSpace(first)); parsed != nil {
			return parsed.String()
		}
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
