// Package pgwtest runs an in-process fake of the payment gateway for tests.
// Only correctly signed requests reach the fake's model of the card payment
// endpoints. Any route can be overridden with a canned reply.
package pgwtest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/klogs-hub/klogs-pgw-go/msync"
	"github.com/klogs-hub/klogs-pgw-go/signer"
)

// Request is a request as received by the fake.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// JSON decodes the request body into v.
func (r Request) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Reply is a canned response.
type Reply struct {
	Status int
	Body   string
}

type route struct {
	method string
	path   string
}

type Server struct {
	*httptest.Server

	apiKey    string
	secretKey string
	log       *zap.Logger

	requests msync.Log[Request]
	replies  *msync.MuMap[route, Reply]
	delay    *msync.Mu[time.Duration]
	gateway  *gateway
}

// NewServer starts a fake gateway that accepts requests signed with apiKey
// and secretKey. It is closed when the test ends.
func NewServer(tb testing.TB, apiKey, secretKey string) *Server {
	tb.Helper()

	s := &Server{
		apiKey:    apiKey,
		secretKey: secretKey,
		log:       zaptest.NewLogger(tb).Named("pgwtest"),
		replies:   msync.NewMuMap[route, Reply](),
		delay:     msync.NewMu(time.Duration(0)),
		gateway:   newGateway(),
	}

	router := chi.NewRouter()
	router.Use(s.record, s.authenticate, s.canned)
	s.gateway.AppendRoutes(router)
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeFailure(w, http.StatusNotFound, "resource not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeFailure(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	s.Server = httptest.NewServer(router)
	s.gateway.baseUrl = s.Server.URL
	tb.Cleanup(s.Close)
	return s
}

// Reply makes every later request to method and path answer with status and
// the raw body, after signature checks.
func (s *Server) Reply(method, path string, status int, body string) {
	s.replies.Set(route{method: method, path: path}, Reply{Status: status, Body: body})
}

// ClearReply restores the default behavior of a route.
func (s *Server) ClearReply(method, path string) {
	s.replies.Take(route{method: method, path: path})
}

// SetDelay holds every response for d or until the request is cancelled.
func (s *Server) SetDelay(d time.Duration) {
	s.delay.Set(d)
}

func (s *Server) Requests() []Request {
	return s.requests.Snapshot()
}

func (s *Server) LastRequest() (Request, bool) {
	return s.requests.Last()
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeFailure(w, http.StatusBadRequest, "failed to read body")
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.requests.Append(Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.log.Debug("request received", zap.String("method", r.Method), zap.String("path", r.URL.Path))

		if delay := s.delay.Get(); delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(signer.HeaderApiKey) != s.apiKey {
			s.log.Debug("unknown api key")
			writeFailure(w, http.StatusUnauthorized, "invalid api key")
			return
		}
		if !signer.Verify(r.Header, s.apiKey, s.secretKey) {
			s.log.Debug("signature mismatch")
			writeFailure(w, http.StatusUnauthorized, "invalid signature")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) canned(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reply, ok := s.replies.Get(route{method: r.Method, path: r.URL.Path})
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", signer.ContentTypeJSON)
		w.WriteHeader(reply.Status)
		_, _ = io.WriteString(w, reply.Body)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", signer.ContentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeFailure(w http.ResponseWriter, status int, summary string) {
	writeJSON(w, status, failure(summary))
}

func failure(summary string) map[string]any {
	return map[string]any{
		"success": false,
		"error":   map[string]any{"summary": summary},
	}
}
