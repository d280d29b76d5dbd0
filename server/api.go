package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/dekarrin/cicak/server/result"
	"github.com/google/uuid"
)

type ctxKey int

const (
	ctxRequestID ctxKey = iota
)

// HeaderRequestID is the response header that gives the ID assigned to the
// request.
const HeaderRequestID = "X-Request-ID"

var (
	ErrBodyUnmarshal = errors.New("malformed data in request")
	ErrBodyTooLarge  = errors.New("request body is too large")
)

// EndpointFunc handles a request and gives the result to respond with.
type EndpointFunc func(req *http.Request) result.Result

// RequestID is middleware that assigns a new random ID to each request. The ID
// is set in the request context, from which it can be retrieved with
// GetRequestID. Endpoint gives it back in the HeaderRequestID header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := uuid.New()

		ctx := context.WithValue(req.Context(), ctxRequestID, id)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// GetRequestID returns the ID assigned to the request by RequestID. If no ID
// was assigned, uuid.Nil is returned.
func GetRequestID(req *http.Request) uuid.UUID {
	id, ok := req.Context().Value(ctxRequestID).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// Endpoint wraps an EndpointFunc into an http.HandlerFunc that logs and writes
// the result along with the ID of the request. Panics within the endpoint are
// converted to an HTTP-500.
func Endpoint(ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer panicTo500(w, req)
		r := ep(req)

		// if this hasn't been properly created, output error directly and do
		// not try to read properties
		if r.Status == 0 {
			logHttpResponse("ERROR", req, http.StatusInternalServerError, "endpoint result was never populated")
			w.Header().Set(HeaderRequestID, GetRequestID(req).String())
			http.Error(w, "An internal server error occurred", http.StatusInternalServerError)
			return
		}

		// pre-call PrepareMarshaledResponse bc if it fails in call to
		// WriteResponse, it will panic.
		if err := r.PrepareMarshaledResponse(); err != nil {
			r = result.Err(http.StatusInternalServerError, "An internal server error occurred", "could not marshal JSON response: "+err.Error())
		}

		if r.IsErr {
			logHttpResponse("ERROR", req, r.Status, r.InternalMsg)
		} else {
			logHttpResponse("INFO", req, r.Status, r.InternalMsg)
		}

		r = r.WithHeader(HeaderRequestID, GetRequestID(req).String())
		r.WriteResponse(w)
	}
}

func panicTo500(w http.ResponseWriter, req *http.Request) {
	if panicErr := recover(); panicErr != nil {
		r := result.TextErr(
			http.StatusInternalServerError,
			"An internal server error occurred",
			fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())),
		)
		logHttpResponse("ERROR", req, r.Status, r.InternalMsg)
		r = r.WithHeader(HeaderRequestID, GetRequestID(req).String())
		r.WriteResponse(w)
	}
}

func logHttpResponse(level string, req *http.Request, respStatus int, msg string) {
	if len(level) > 5 {
		level = level[0:5]
	}

	for len(level) < 5 {
		level += " "
	}

	// we don't really care about the ephemeral port from the client end
	remoteAddrParts := strings.SplitN(req.RemoteAddr, ":", 2)
	remoteIP := remoteAddrParts[0]

	log.Printf("%s %s %s %s %s: HTTP-%d %s", level, GetRequestID(req), remoteIP, req.Method, req.URL.Path, respStatus, msg)
}

// parseJSON reads the body of req as JSON into v, which must be a pointer to
// a type. At most maxSize bytes are read. Will return an error such that
// errors.Is(err, ErrBodyUnmarshal) returns true if it is a problem decoding
// the JSON itself, or errors.Is(err, ErrBodyTooLarge) if the body is more
// than maxSize bytes.
func parseJSON(req *http.Request, maxSize int64, v interface{}) error {
	contentType := req.Header.Get("Content-Type")

	mediaType := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	if strings.ToLower(mediaType) != "application/json" {
		return fmt.Errorf("request content-type is not application/json")
	}

	bodyData, err := io.ReadAll(io.LimitReader(req.Body, maxSize+1))
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	defer func() {
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewBuffer(bodyData))
	}()

	if int64(len(bodyData)) > maxSize {
		return fmt.Errorf("body is over %d bytes: %w", maxSize, ErrBodyTooLarge)
	}

	err = json.Unmarshal(bodyData, v)
	if err != nil {
		return fmt.Errorf("%s: %w", err.Error(), ErrBodyUnmarshal)
	}

	return nil
}
