package lex

import (
	"fmt"

	"github.com/dekarrin/rezi"
)

// This file contains the REZI binary encoding of tokens, used for writing
// token dumps that can be read back in later without the original source.

// MarshalBinary encodes the token into REZI-compatible binary data. All
// fields are encoded, including the lexeme; the decoded token does not share
// memory with any source.
func (tok Token) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncInt(int(tok.Class))...)
	data = append(data, rezi.EncInt(int(tok.Bracket))...)
	data = append(data, rezi.EncInt(int(tok.State))...)
	data = append(data, rezi.EncInt(int(tok.Side))...)
	data = append(data, rezi.EncInt(int(tok.Kind))...)
	data = append(data, rezi.EncString(tok.Lexeme)...)
	data = append(data, rezi.EncString(tok.Value)...)
	data = append(data, rezi.EncInt(tok.Start)...)
	data = append(data, rezi.EncInt(tok.End)...)
	data = append(data, rezi.EncInt(tok.Pos.Line)...)
	data = append(data, rezi.EncInt(tok.Pos.Column)...)

	return data, nil
}

// UnmarshalBinary decodes REZI-compatible binary data produced by
// MarshalBinary into the token.
func (tok *Token) UnmarshalBinary(data []byte) error {
	var ints [9]int
	var n int
	var err error

	// five enumerations, then lexeme and value, then offsets and position.
	for i := 0; i < 5; i++ {
		ints[i], n, err = rezi.DecInt(data)
		if err != nil {
			return fmt.Errorf("field %d: %w", i, err)
		}
		data = data[n:]
	}

	tok.Lexeme, n, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("lexeme: %w", err)
	}
	data = data[n:]

	tok.Value, n, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("value: %w", err)
	}
	data = data[n:]

	for i := 5; i < 9; i++ {
		ints[i], n, err = rezi.DecInt(data)
		if err != nil {
			return fmt.Errorf("field %d: %w", i+2, err)
		}
		data = data[n:]
	}

	tok.Class = Class(ints[0])
	tok.Bracket = BracketKind(ints[1])
	tok.State = DelimState(ints[2])
	tok.Side = Side(ints[3])
	tok.Kind = NumberKind(ints[4])
	tok.Start = ints[5]
	tok.End = ints[6]
	tok.Pos.Line = ints[7]
	tok.Pos.Column = ints[8]

	if _, known := classNames[tok.Class]; !known {
		return fmt.Errorf("unknown token class %d", ints[0])
	}

	return nil
}

// EncodeTokens encodes a sequence of tokens into REZI-compatible binary data.
func EncodeTokens(tokens []Token) []byte {
	data := rezi.EncInt(len(tokens))
	for i := range tokens {
		data = append(data, rezi.EncBinary(tokens[i])...)
	}
	return data
}

// DecodeTokens decodes a sequence of tokens from REZI-compatible binary data
// produced by EncodeTokens. A sequence of zero tokens decodes to nil.
func DecodeTokens(data []byte) ([]Token, error) {
	count, n, err := rezi.DecInt(data)
	if err != nil {
		return nil, fmt.Errorf("token count: %w", err)
	}
	data = data[n:]

	if count < 0 {
		return nil, fmt.Errorf("token count < 0")
	}
	if count == 0 {
		return nil, nil
	}

	tokens := make([]Token, count)
	for i := range tokens {
		n, err = rezi.DecBinary(data, &tokens[i])
		if err != nil {
			return nil, fmt.Errorf("token #%d: %w", i, err)
		}
		data = data[n:]
	}

	return tokens, nil
}
