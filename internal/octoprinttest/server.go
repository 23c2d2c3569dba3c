// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package octoprinttest

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// APIKey is the key the fake host accepts unless Server.SetAPIKey changes it.
const APIKey = "test-api-key"

// Route patterns served by the fake host. Replies are configured per
// method and pattern.
const (
	RouteVersion    = "/api/version"
	RouteConnection = "/api/connection"
	RouteFiles      = "/api/files"
	RouteOrigin     = "/api/files/{origin}"
	RouteFile       = "/api/files/{origin}/*"
	RouteJob        = "/api/job"
	RoutePrinter    = "/api/printer"
	RoutePrinthead  = "/api/printer/printhead"
	RouteTool       = "/api/printer/tool"
	RouteBed        = "/api/printer/bed"
	RouteSD         = "/api/printer/sd"
	RouteCommand    = "/api/printer/command"
)

var routes = []string{
	RouteVersion, RouteConnection, RouteFiles, RouteOrigin, RouteFile, RouteJob,
	RoutePrinter, RoutePrinthead, RouteTool, RouteBed, RouteSD, RouteCommand,
}

// Reply is a canned answer.
type Reply struct {
	Status int
	Body   string
}

// Request is one request received by the fake host.
type Request struct {
	Method string
	// Pattern is the route pattern the request matched, "" when none did.
	Pattern string
	// Path is the escaped request path.
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// Server is a fake OctoPrint host. Requests are recorded in arrival order
// before the API key is checked.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	apiKey   string
	replies  map[string]Reply
	handlers map[string]http.HandlerFunc
	requests []Request
	limiter  func(http.Handler) http.Handler
}

// NewServer starts a fake host that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		apiKey:   APIKey,
		replies:  make(map[string]Reply),
		handlers: make(map[string]http.HandlerFunc),
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(s.record)
	r.Use(s.authenticate)
	r.Use(s.throttle)
	for _, pattern := range routes {
		r.HandleFunc(pattern, s.serve)
	}
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeReply(w, Reply{Status: http.StatusNotFound, Body: `{"error":"route not found"}`})
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

func key(method, pattern string) string {
	return method + " " + pattern
}

// Reply configures the answer for method and pattern.
func (s *Server) Reply(method, pattern string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[key(method, pattern)] = Reply{Status: status, Body: body}
}

// HandleFunc installs a custom handler for method and pattern, taking
// precedence over Reply.
func (s *Server) HandleFunc(method, pattern string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[key(method, pattern)] = h
}

// SetAPIKey changes the accepted key; "" accepts any request.
func (s *Server) SetAPIKey(k string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKey = k
}

// Requests returns a copy of the recorded requests.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestCount returns how many requests were received.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// LastRequest returns the most recent request. ok is false when none arrived.
func (s *Server) LastRequest() (req Request, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// Host returns the host name the fake listens on.
func (s *Server) Host() string {
	host, _, _ := net.SplitHostPort(s.Listener.Addr().String())
	return host
}

// Port returns the TCP port the fake listens on.
func (s *Server) Port() uint16 {
	_, port, _ := net.SplitHostPort(s.Listener.Addr().String())
	n, _ := strconv.ParseUint(port, 10, 16)
	return uint16(n)
}

type requestIndexKey struct{}

// record stores the request. serve fills in the route pattern.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()

		s.mu.Lock()
		idx := len(s.requests)
		s.requests = append(s.requests, Request{
			Method:   r.Method,
			Path:     r.URL.EscapedPath(),
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			Body:     body,
		})
		s.mu.Unlock()

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIndexKey{}, idx)))
	})
}

// authenticate answers 403 like OctoPrint does for a missing or wrong key.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		want := s.apiKey
		s.mu.Unlock()

		if want != "" && r.Header.Get("X-Api-Key") != want {
			writeReply(w, Reply{Status: http.StatusForbidden, Body: `{"error":"You don't have the permission to access the requested resource."}`})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Throttle makes the host answer 429 once more than n requests arrive within
// window. Throttled requests are still recorded.
func (s *Server) Throttle(n int, window time.Duration) {
	limiter := httprate.LimitAll(n, window)
	s.mu.Lock()
	s.limiter = limiter
	s.mu.Unlock()
}

func (s *Server) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		limiter := s.limiter
		s.mu.Unlock()

		if limiter == nil {
			next.ServeHTTP(w, r)
			return
		}
		limiter(next).ServeHTTP(w, r)
	})
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	pattern := chi.RouteContext(r.Context()).RoutePattern()
	k := key(r.Method, pattern)

	s.mu.Lock()
	if idx, ok := r.Context().Value(requestIndexKey{}).(int); ok {
		s.requests[idx].Pattern = pattern
	}
	h, hasHandler := s.handlers[k]
	reply, hasReply := s.replies[k]
	s.mu.Unlock()

	switch {
	case hasHandler:
		h(w, r)
	case hasReply:
		writeReply(w, reply)
	default:
		writeReply(w, Reply{Status: http.StatusNotImplemented, Body: `{"error":"no reply configured for ` + k + `"}`})
	}
}

func writeReply(w http.ResponseWriter, reply Reply) {
	if reply.Body != "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(reply.Status)
	if reply.Body != "" {
		_, _ = io.WriteString(w, reply.Body)
	}
}
