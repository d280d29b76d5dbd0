package server

import (
	"errors"
	"net/http"

	"github.com/dekarrin/cicak/internal/version"
	"github.com/dekarrin/cicak/lex"
	"github.com/dekarrin/cicak/lexerr"
	"github.com/dekarrin/cicak/server/result"
)

// TokenizeRequest is the body of a request to POST /tokens.
type TokenizeRequest struct {
	Source *string `json:"source"`
}

// TokenModel is the JSON form of a single lex.Token. Only the fields that apply
// to the Class are included.
type TokenModel struct {
	Class   string `json:"class"`
	Bracket string `json:"bracket,omitempty"`
	State   string `json:"state,omitempty"`
	Side    string `json:"side,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Lexeme  string `json:"lexeme"`
	Value   string `json:"value,omitempty"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

// TokenizeResponse is the body of a successful response to POST /tokens.
type TokenizeResponse struct {
	Tokens []TokenModel `json:"tokens"`
	Count  int          `json:"count"`
}

// LexErrorResponse is the body of a response to POST /tokens whose source
// could not be tokenized.
type LexErrorResponse struct {
	Error   string   `json:"error"`
	Status  int      `json:"status"`
	Kind    string   `json:"kind"`
	Line    int      `json:"line"`
	Column  int      `json:"column"`
	Causes  []string `json:"causes"`
	Message string   `json:"message"`
}

// InfoModel is the body of a response to GET /info.
type InfoModel struct {
	Version struct {
		Server string `json:"server"`
		Cicak  string `json:"cicak"`
	} `json:"version"`
}

// NewTokenModel creates the JSON form of tok.
func NewTokenModel(tok lex.Token) TokenModel {
	m := TokenModel{
		Class:  tok.Class.String(),
		Lexeme: tok.Lexeme,
		Start:  tok.Start,
		End:    tok.End,
		Line:   tok.Pos.Line,
		Column: tok.Pos.Column,
	}

	switch tok.Class {
	case lex.Delimiter:
		m.Bracket = tok.Bracket.String()
		m.State = tok.State.String()
	case lex.Comparison:
		m.Side = tok.Side.String()
	case lex.Number:
		m.Kind = tok.Kind.String()
		m.Value = tok.Value
	case lex.Ident, lex.String:
		m.Value = tok.Value
	}

	return m
}

// POST /tokens: tokenize the given source.
func (s *Server) epTokenize(req *http.Request) result.Result {
	var body TokenizeRequest
	if err := parseJSON(req, s.MaxSourceSize, &body); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if body.Source == nil {
		return result.BadRequest("source: property is empty or missing from request", "missing source")
	}

	tokens, err := lex.Tokenize(*body.Source)
	if err != nil {
		var spanned *lexerr.SpannedError
		if !errors.As(err, &spanned) {
			return result.InternalServerError("tokenize returned non-spanned error: %s", err.Error())
		}

		resp := LexErrorResponse{
			Error:   "The source could not be tokenized",
			Status:  http.StatusUnprocessableEntity,
			Line:    spanned.At.Line,
			Column:  spanned.At.Column,
			Causes:  spanned.Chain(),
			Message: spanned.FullMessage(),
		}

		var lexErr lexerr.LexError
		if errors.As(err, &lexErr) {
			resp.Kind = lexErr.Kind().String()
		}

		return result.Unprocessable(resp, "lex error: %s", err.Error())
	}

	resp := TokenizeResponse{
		Tokens: make([]TokenModel, len(tokens)),
		Count:  len(tokens),
	}
	for i := range tokens {
		resp.Tokens[i] = NewTokenModel(tokens[i])
	}

	return result.OK(resp, "tokenized %d bytes into %d tokens", len(*body.Source), len(tokens))
}

// GET /info: get version info.
func (s *Server) epGetInfo(req *http.Request) result.Result {
	var resp InfoModel
	resp.Version.Server = version.ServerCurrent
	resp.Version.Cicak = version.Current

	return result.OK(resp, "got API info")
}
