package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dekarrin/cicak/internal/version"
	"github.com/dekarrin/cicak/server/result"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func doRequest(s *Server, method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func Test_Server_Tokenize(t *testing.T) {
	testCases := []struct {
		name         string
		contentType  string
		body         string
		expectStatus int
		expectTokens []TokenModel
	}{
		{
			name:         "tokens",
			contentType:  "application/json",
			body:         `{"source": "x = [1.5]"}`,
			expectStatus: http.StatusOK,
			expectTokens: []TokenModel{
				{Class: "ident", Lexeme: "x", Value: "x", Start: 0, End: 1, Line: 1, Column: 0},
				{Class: "spaces", Lexeme: " ", Start: 1, End: 2, Line: 1, Column: 1},
				{Class: "equal", Lexeme: "=", Start: 2, End: 3, Line: 1, Column: 2},
				{Class: "spaces", Lexeme: " ", Start: 3, End: 4, Line: 1, Column: 3},
				{Class: "delimiter", Bracket: "square", State: "open", Lexeme: "[", Start: 4, End: 5, Line: 1, Column: 4},
				{Class: "number", Kind: "decimal", Lexeme: "1.5", Value: "1.5", Start: 5, End: 8, Line: 1, Column: 5},
				{Class: "delimiter", Bracket: "square", State: "closed", Lexeme: "]", Start: 8, End: 9, Line: 1, Column: 8},
			},
		},
		{
			name:         "string value is decoded",
			contentType:  "application/json; charset=utf-8",
			body:         `{"source": "\"\\u{48}i\""}`,
			expectStatus: http.StatusOK,
			expectTokens: []TokenModel{
				{Class: "string", Lexeme: `"\u{48}i"`, Value: "Hi", Start: 0, End: 9, Line: 1, Column: 0},
			},
		},
		{
			name:         "empty source",
			contentType:  "application/json",
			body:         `{"source": ""}`,
			expectStatus: http.StatusOK,
			expectTokens: []TokenModel{},
		},
		{
			name:         "missing source",
			contentType:  "application/json",
			body:         `{}`,
			expectStatus: http.StatusBadRequest,
		},
		{
			name:         "malformed json",
			contentType:  "application/json",
			body:         `{"source": `,
			expectStatus: http.StatusBadRequest,
		},
		{
			name:         "wrong content type",
			contentType:  "text/plain",
			body:         `{"source": "x"}`,
			expectStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			rec := doRequest(New(), http.MethodPost, "/api/v1/tokens", tc.contentType, tc.body)

			assert.Equal(tc.expectStatus, rec.Code)
			_, err := uuid.Parse(rec.Header().Get(HeaderRequestID))
			assert.NoError(err, "response should have a request ID")

			if tc.expectStatus != http.StatusOK {
				return
			}

			var resp TokenizeResponse
			if !assert.NoError(json.Unmarshal(rec.Body.Bytes(), &resp)) {
				return
			}
			assert.Equal(len(tc.expectTokens), resp.Count)
			assert.Equal(tc.expectTokens, resp.Tokens)
		})
	}
}

func Test_Server_Tokenize_lexError(t *testing.T) {
	assert := assert.New(t)

	rec := doRequest(New(), http.MethodPost, "/api/v1/tokens", "application/json", `{"source": "1.2.3"}`)

	if !assert.Equal(http.StatusUnprocessableEntity, rec.Code) {
		return
	}

	var resp LexErrorResponse
	if !assert.NoError(json.Unmarshal(rec.Body.Bytes(), &resp)) {
		return
	}
	assert.Equal(http.StatusUnprocessableEntity, resp.Status)
	assert.Equal("Number", resp.Kind)
	assert.Equal(1, resp.Line)
	assert.Equal(3, resp.Column)
	assert.Equal([]string{"an error occurred during lexing (see causes)", "too many decimal points in number"}, resp.Causes)
	assert.Contains(resp.Message, "[ at line 1, column 3 ]")
}

func Test_Server_Tokenize_bodyTooLarge(t *testing.T) {
	assert := assert.New(t)

	s := New()
	s.MaxSourceSize = 16

	rec := doRequest(s, http.MethodPost, "/api/v1/tokens", "application/json", `{"source": "abcdefghijklmnop"}`)

	assert.Equal(http.StatusBadRequest, rec.Code)
}

func Test_Server_Info(t *testing.T) {
	assert := assert.New(t)

	rec := doRequest(New(), http.MethodGet, "/api/v1/info", "", "")

	if !assert.Equal(http.StatusOK, rec.Code) {
		return
	}

	var resp InfoModel
	if !assert.NoError(json.Unmarshal(rec.Body.Bytes(), &resp)) {
		return
	}
	assert.Equal(version.Current, resp.Version.Cicak)
	assert.Equal(version.ServerCurrent, resp.Version.Server)
}

func Test_Server_routing(t *testing.T) {
	testCases := []struct {
		name         string
		method       string
		path         string
		expectStatus int
	}{
		{name: "unknown path", method: http.MethodGet, path: "/api/v1/nope", expectStatus: http.StatusNotFound},
		{name: "wrong method", method: http.MethodGet, path: "/api/v1/tokens", expectStatus: http.StatusMethodNotAllowed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			rec := doRequest(New(), tc.method, tc.path, "", "")

			assert.Equal(tc.expectStatus, rec.Code)
			_, err := uuid.Parse(rec.Header().Get(HeaderRequestID))
			assert.NoError(err, "response should have a request ID")
		})
	}
}

func Test_Endpoint_requestID(t *testing.T) {
	testCases := []struct {
		name         string
		ep           EndpointFunc
		expectStatus int
	}{
		{
			name: "result",
			ep: func(req *http.Request) result.Result {
				return result.OK(map[string]string{"a": "b"})
			},
			expectStatus: http.StatusOK,
		},
		{
			name: "panic",
			ep: func(req *http.Request) result.Result {
				panic("endpoint exploded")
			},
			expectStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			var seenID uuid.UUID
			h := RequestID(Endpoint(func(req *http.Request) result.Result {
				seenID = GetRequestID(req)
				return tc.ep(req)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(tc.expectStatus, rec.Code)
			assert.NotEqual(uuid.Nil, seenID)
			assert.Equal(seenID.String(), rec.Header().Get(HeaderRequestID))
		})
	}
}
