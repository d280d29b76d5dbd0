// Package server contains an HTTP REST server that tokenizes cicak source text
// sent to it. The server is stateless; each request is tokenized on its own
// and nothing is kept between requests.
//
// Endpoints:
//
//	POST /api/v1/tokens - tokenize the "source" of the JSON request body.
//	GET  /api/v1/info   - get version info on the server and tokenizer.
package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/dekarrin/cicak/server/result"
	"github.com/go-chi/chi/v5"
)

const (
	// PathPrefix is the prefix of all paths in the API.
	PathPrefix = "/api/v1"

	// DefaultMaxSourceSize is the default largest request body, in bytes,
	// that the server will accept.
	DefaultMaxSourceSize = 1 << 20
)

// Server is an HTTP REST server that tokenizes cicak source text. The zero
// value should not be used directly; call New to get one ready for use.
type Server struct {
	router http.Handler

	// MaxSourceSize is the largest request body in bytes that is accepted.
	MaxSourceSize int64
}

// New creates a new Server.
func New() *Server {
	s := &Server{
		MaxSourceSize: DefaultMaxSourceSize,
	}
	s.router = newRouter(s)
	return s
}

// ServeHTTP routes the request to the matching endpoint.
func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.router.ServeHTTP(w, req)
}

// ServeForever begins listening on the given address and port for HTTP REST
// client requests. If address is kept as "", it will default to
// "localhost". If port is less than 1, it will default to 8080.
//
// This function will block forever, or until the server fails.
func (s *Server) ServeForever(address string, port int) error {
	if address == "" {
		address = "localhost"
	}
	if port < 1 {
		port = 8080
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", address, port),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("INFO  Listening on %s", srv.Addr)
	return srv.ListenAndServe()
}

func newRouter(s *Server) chi.Router {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Mount(PathPrefix, newAPIRouter(s))

	return r
}

func newAPIRouter(s *Server) chi.Router {
	r := chi.NewRouter()

	r.Post("/tokens", Endpoint(s.epTokenize))
	r.Get("/info", Endpoint(s.epGetInfo))

	r.NotFound(Endpoint(func(req *http.Request) result.Result {
		return result.NotFound()
	}))
	r.MethodNotAllowed(Endpoint(func(req *http.Request) result.Result {
		return result.MethodNotAllowed(req)
	}))

	return r
}
