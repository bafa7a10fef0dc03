// Package server implements the HTTP server for the Review Cost API.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/codeGROOVE-dev/reviewcost/pkg/cost"
)

const (
	// DefaultRateLimit is the default requests per second limit.
	DefaultRateLimit = 100
	// DefaultRateBurst is the default burst size for rate limiting.
	DefaultRateBurst = 100
	// errorKey is the logging key for error messages.
	errorKey = "error"
	// maxRequestSize caps POST bodies.
	maxRequestSize = 1 << 20 // 1MB
	// maxLimiters bounds the per-IP limiter map.
	maxLimiters = 10000
)

// Query parameter names for GET /v1/estimate. They match the JSON field names of cost.Inputs.
const (
	paramEmployees      = "employees"
	paramManagerSalary  = "manager_salary"
	paramEmployeeSalary = "employee_salary"
	paramManagerHours   = "manager_hours"
	paramEmployeeHours  = "employee_hours"
	paramAdminHours     = "admin_hours"
)

//go:embed static/*
var staticFS embed.FS

// Server handles HTTP requests for the Review Cost API.
//
//nolint:govet // fieldalignment: struct field ordering optimized for readability over memory
type Server struct {
	logger         *slog.Logger
	csrfProtection *http.CrossOriginProtection
	// Per-IP rate limiting.
	ipLimiters     map[string]*rate.Limiter
	allowedOrigins []string
	ipLimitersMu   sync.RWMutex
	serverCommit   string
	rateLimit      int
	rateBurst      int
	allowAllCors   bool
	now            func() time.Time
}

// EstimateRequest represents a request to estimate review costs.
// Fields missing from Inputs keep their default values.
type EstimateRequest struct {
	Inputs cost.Inputs `json:"inputs"`
}

// FormattedResult holds display-ready strings for the headline figures.
type FormattedResult struct {
	TotalCost          string  `json:"total_cost"`
	TotalHours         string  `json:"total_hours"`
	ProductivityImpact string  `json:"productivity_impact"`
	FTEEquivalent      float64 `json:"fte_equivalent"`
}

// EstimateResponse represents the response from a cost estimate.
//
//nolint:govet // fieldalignment: API struct field order optimized for readability
type EstimateResponse struct {
	Inputs    cost.Inputs     `json:"inputs"`
	Result    cost.Result     `json:"result"`
	Breakdown cost.Breakdown  `json:"breakdown"`
	Formatted FormattedResult `json:"formatted"`
	Timestamp time.Time       `json:"timestamp"`
	Commit    string          `json:"commit"`
}

// New creates a new Server instance.
func New() *Server {
	ctx := context.Background()
	logger := slog.Default().With("component", "reviewcost-server")

	// Configure CSRF protection using Sec-Fetch-Site and Origin headers.
	// GET, HEAD, and OPTIONS are safe methods and automatically allowed.
	csrfProtection := http.NewCrossOriginProtection()

	logger.InfoContext(ctx, "Server initialized with CSRF protection enabled")

	return &Server{
		logger:         logger,
		csrfProtection: csrfProtection,
		ipLimiters:     make(map[string]*rate.Limiter),
		rateLimit:      DefaultRateLimit,
		rateBurst:      DefaultRateBurst,
		now:            time.Now,
	}
}

// SetCommit sets the server commit hash.
func (s *Server) SetCommit(commit string) {
	s.serverCommit = commit
}

// SetCORSConfig sets the CORS configuration.
//
//nolint:revive // flag-parameter: allowAll is a clear boolean flag for CORS configuration
func (s *Server) SetCORSConfig(origins string, allowAll bool) {
	ctx := context.Background()
	if allowAll {
		s.allowAllCors = true
		s.logger.WarnContext(ctx, "CORS configured to allow all origins - DEVELOPMENT MODE ONLY")
		return
	}

	s.allowAllCors = false
	s.allowedOrigins = nil
	if origins == "" {
		return
	}
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}

		// Validate wildcard patterns: must be *.domain.com or https://*.domain.com
		if strings.Contains(origin, "*") {
			valid := strings.HasPrefix(origin, "*.") ||
				strings.HasPrefix(origin, "https://*.") ||
				strings.HasPrefix(origin, "http://*.")
			if !valid || strings.Count(origin, "*") > 1 {
				s.logger.ErrorContext(ctx, "Invalid wildcard CORS origin", "origin", origin)
				continue
			}
		}

		s.allowedOrigins = append(s.allowedOrigins, origin)
	}
	s.logger.InfoContext(ctx, "CORS origins configured", "origins", s.allowedOrigins)
}

// SetRateLimit sets the rate limiting configuration.
func (s *Server) SetRateLimit(rps int, burst int) {
	ctx := context.Background()
	s.rateLimit = rps
	s.rateBurst = burst
	s.logger.InfoContext(ctx, "Rate limit configured (per-IP)", "requests_per_sec", rps, "burst", burst)
}

// limiter returns a rate limiter for the given IP address.
func (s *Server) limiter(ctx context.Context, ip string) *rate.Limiter {
	s.ipLimitersMu.RLock()
	limiter, exists := s.ipLimiters[ip]
	s.ipLimitersMu.RUnlock()

	if exists {
		return limiter
	}

	s.ipLimitersMu.Lock()
	defer s.ipLimitersMu.Unlock()

	// Double-check after acquiring write lock.
	if existing, exists := s.ipLimiters[ip]; exists {
		return existing
	}

	limiter = rate.NewLimiter(rate.Limit(s.rateLimit), s.rateBurst)
	s.ipLimiters[ip] = limiter

	if len(s.ipLimiters) > maxLimiters {
		count := 0
		target := len(s.ipLimiters) / 2
		for key := range s.ipLimiters {
			if key == ip {
				continue
			}
			delete(s.ipLimiters, key)
			count++
			if count >= target {
				break
			}
		}
		s.logger.InfoContext(ctx, "Cleaned up old IP rate limiters", "removed", count, "remaining", len(s.ipLimiters))
	}

	return limiter
}

// Shutdown gracefully shuts down the server.
func (*Server) Shutdown() {
	// Nothing to do - in-memory structures will be garbage collected.
}

// ServeHTTP implements http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Apply CSRF protection FIRST - blocks cross-origin POST requests.
	if s.csrfProtection != nil {
		if err := s.csrfProtection.Check(r); err != nil {
			s.logger.WarnContext(r.Context(), "CSRF check failed - cross-origin request denied",
				"origin", r.Header.Get("Origin"),
				"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
				"path", r.URL.Path,
				"method", r.Method,
				"remote_addr", r.RemoteAddr,
				errorKey, err)
			http.Error(w, "Cross-origin request denied", http.StatusForbidden)
			return
		}
	}

	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("X-XSS-Protection", "1; mode=block")
	w.Header().Set("Referrer-Policy", "no-referrer")
	w.Header().Set("Cross-Origin-Resource-Policy", "cross-origin")

	// Handle CORS.
	origin := r.Header.Get("Origin")
	if s.allowAllCors {
		// Never use wildcard with credentials - echo the origin even in dev mode.
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			s.logger.DebugContext(r.Context(), "CORS allowed (dev mode)", "origin", origin)
		}
	} else if origin != "" && s.isOriginAllowed(origin) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Vary", "Origin")
	}
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	// Handle preflight OPTIONS request.
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	// Route requests.
	switch {
	case r.URL.Path == "/v1/estimate":
		if r.Method != http.MethodPost && r.Method != http.MethodGet {
			writeError(w, ErrMethodNotAllowed)
			return
		}
		s.handleEstimate(w, r)
	case r.URL.Path == "/health":
		s.handleHealth(w, r)
	case strings.HasPrefix(r.URL.Path, "/static/"):
		s.handleStatic(w, r)
	case r.URL.Path == "/":
		s.handleWebUI(w, r)
	default:
		http.NotFound(w, r)
	}
}

// clientIP extracts the caller address used for rate limiting and logging.
// X-Forwarded-For is trusted because the service runs behind a proxy that rewrites it.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx > 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// handleEstimate processes review cost estimate requests.
func (s *Server) handleEstimate(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	ip := clientIP(request)

	s.logger.InfoContext(ctx, "[handleEstimate] Incoming request", "client_ip", ip, "method", request.Method, "path", request.URL.Path)

	// Per-IP rate limiting keeps one client from starving the rest.
	if !s.limiter(ctx, ip).Allow() {
		s.logger.WarnContext(ctx, "[handleEstimate] Rate limit exceeded", "client_ip", ip, "path", request.URL.Path)
		writeError(writer, ErrRateLimit)
		return
	}

	req, err := s.parseRequest(ctx, request)
	if err != nil {
		s.logger.WarnContext(ctx, "[handleEstimate] Failed to parse request", "client_ip", ip, errorKey, err)
		writeError(writer, err)
		return
	}

	response := s.processRequest(req)

	writer.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(writer).Encode(response); err != nil {
		// Headers have been sent, so the status code cannot change.
		s.logger.ErrorContext(ctx, "[handleEstimate] Error encoding response", errorKey, err)
		return
	}

	s.logger.InfoContext(ctx, "[handleEstimate] Request completed",
		"employees", req.Inputs.Employees, "total_cost", response.Result.TotalCost, "total_hours", response.Result.TotalHours)
}

// parseRequest parses the incoming request and clamps its inputs.
func (s *Server) parseRequest(ctx context.Context, r *http.Request) (*EstimateRequest, error) {
	req := EstimateRequest{Inputs: cost.DefaultInputs()}

	if r.Method == http.MethodGet {
		req.Inputs = parseInputsFromQuery(r.URL.Query(), req.Inputs)
	} else {
		r.Body = http.MaxBytesReader(nil, r.Body, maxRequestSize)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.logger.WarnContext(ctx, "[parseRequest] Failed to decode JSON", errorKey, err)
			return nil, fmt.Errorf("%w: invalid JSON: %w", ErrInvalidRequest, err)
		}
	}

	req.Inputs = req.Inputs.Clamp()
	return &req, nil
}

// parseInputsFromQuery overrides base with every parameter present in the query.
// Present parameters follow the form policy: non-numeric reads as 0, negatives clamp to 0.
func parseInputsFromQuery(query url.Values, base cost.Inputs) cost.Inputs {
	fields := []struct {
		name string
		dst  *float64
	}{
		{paramEmployees, &base.Employees},
		{paramManagerSalary, &base.ManagerSalary},
		{paramEmployeeSalary, &base.EmployeeSalary},
		{paramManagerHours, &base.ManagerHours},
		{paramEmployeeHours, &base.EmployeeHours},
		{paramAdminHours, &base.AdminHours},
	}
	for _, f := range fields {
		if query.Has(f.name) {
			*f.dst = cost.ParseInput(query.Get(f.name))
		}
	}
	return base
}

// processRequest runs the estimate and assembles the response.
func (s *Server) processRequest(req *EstimateRequest) *EstimateResponse {
	b := cost.Detail(req.Inputs)
	r := b.Result()
	return &EstimateResponse{
		Inputs:    req.Inputs,
		Result:    r,
		Breakdown: b,
		Formatted: FormattedResult{
			TotalCost:          cost.FormatCurrency(r.TotalCost),
			TotalHours:         cost.FormatHours(r.TotalHours),
			ProductivityImpact: cost.FormatCurrency(r.ProductivityImpact),
			FTEEquivalent:      b.FTEEquivalent(),
		},
		Timestamp: s.now().UTC(),
		Commit:    s.serverCommit,
	}
}

// isOriginAllowed checks if an origin is in the allowed list.
// Supports exact matches and wildcard subdomain patterns (*.example.com or https://*.example.com).
func (s *Server) isOriginAllowed(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return false
	}
	host := u.Hostname()

	for _, allowed := range s.allowedOrigins {
		if allowed == origin {
			return true
		}
		if !strings.Contains(allowed, "*") {
			continue
		}

		var wildcardDomain string
		switch {
		case strings.HasPrefix(allowed, "http://"), strings.HasPrefix(allowed, "https://"):
			scheme, rest, _ := strings.Cut(allowed, "://")
			if scheme != u.Scheme || !strings.HasPrefix(rest, "*.") {
				continue
			}
			wildcardDomain = rest[2:]
		case strings.HasPrefix(allowed, "*."):
			wildcardDomain = allowed[2:]
		default:
			continue
		}

		// Matches example.com and any subdomain, but not notexample.com.
		if host == wildcardDomain || strings.HasSuffix(host, "."+wildcardDomain) {
			return true
		}
	}
	return false
}

// handleHealth provides a simple health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "healthy"}); err != nil {
		s.logger.ErrorContext(ctx, "[handleHealth] Error encoding response", errorKey, err)
	}
}

// handleWebUI serves the embedded calculator page.
func (s *Server) handleWebUI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	htmlContent, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		s.logger.ErrorContext(ctx, "[handleWebUI] Failed to read index.html", errorKey, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(htmlContent); err != nil {
		s.logger.ErrorContext(ctx, "[handleWebUI] Error writing response", errorKey, err)
	}
}

// handleStatic serves embedded static files.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Strip leading slash to match embed.FS structure
	path := strings.TrimPrefix(r.URL.Path, "/")

	content, err := staticFS.ReadFile(path)
	if err != nil {
		s.logger.WarnContext(ctx, "[handleStatic] File not found", "path", path, errorKey, err)
		http.NotFound(w, r)
		return
	}

	var contentType string
	switch {
	case strings.HasSuffix(path, ".css"):
		contentType = "text/css; charset=utf-8"
	case strings.HasSuffix(path, ".js"):
		contentType = "application/javascript; charset=utf-8"
	case strings.HasSuffix(path, ".html"):
		contentType = "text/html; charset=utf-8"
	case strings.HasSuffix(path, ".ico"):
		contentType = "image/x-icon"
	default:
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		s.logger.ErrorContext(ctx, "[handleStatic] Error writing response", errorKey, err)
	}
}
