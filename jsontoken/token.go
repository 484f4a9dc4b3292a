// Package jsontoken provides a strict, allocation-conscious JSON parser that
// turns a UTF-8 byte buffer into an immutable jsonvalue.Value tree.
//
// The accepted grammar is RFC 7159 without extensions: no comments, no
// trailing commas, no unquoted keys. Input must be UTF-8, optionally
// preceded by a byte-order mark; UTF-16 and UTF-32 inputs are rejected
// before grammar parsing begins.
//
// Numbers are decoded to the best representation available:
//   - integers in int64 range become Int values
//   - literals with a fraction or exponent become Double values
//   - literals whose value does not fit either (integer overflow, double
//     overflow or underflow) become String values holding the exact
//     literal text, so no precision is lost
//
// Object members with duplicate names are accepted; the last one wins.
//
// Every failure is a *jsonerr.Error carrying a Kind and a byte offset.
// Parsing is synchronous and uses no shared mutable state, so independent
// calls may run concurrently over the same input buffer.
package jsontoken

import (
	"github.com/lattice-substrate/json-parse/jsonenc"
	"github.com/lattice-substrate/json-parse/jsonerr"
	"github.com/lattice-substrate/json-parse/jsonvalue"
)

// MaxDepth is the maximum nesting depth of arrays and objects.
const MaxDepth = 512

// parser holds the state of a single Parse call. It is never shared.
type parser struct {
	data  []byte
	pos   int
	depth int

	// scratch accumulates decoded string bytes. It is reset, not
	// reallocated, at the start of every string.
	scratch []byte

	elems bufferPool[jsonvalue.Value]
	pairs bufferPool[member]
}

// Parse parses a complete JSON text. The input is only read, never
// retained or modified.
//
// Leading and trailing whitespace is permitted. Anything else after the
// root value is a TRAILING_GARBAGE error.
func Parse(data []byte) (jsonvalue.Value, error) {
	p := &parser{data: data}
	return p.parseDocument()
}

// ParseString is like Parse for a string input.
func ParseString(s string) (jsonvalue.Value, error) {
	return Parse([]byte(s))
}

func (p *parser) parseDocument() (jsonvalue.Value, error) {
	enc, bom := jsonenc.Detect(p.data)
	if enc != jsonenc.UTF8 {
		return jsonvalue.Value{}, jsonerr.NewInvalidEncoding(enc.String())
	}
	p.pos = bom

	v, err := p.parseValue()
	if err != nil {
		return jsonvalue.Value{}, err
	}
	p.skipWhitespace()
	if p.pos != len(p.data) {
		return jsonvalue.Value{}, jsonerr.New(jsonerr.TrailingGarbage, p.pos, "trailing content after JSON value")
	}
	return v, nil
}

func (p *parser) errEOF() *jsonerr.Error {
	return jsonerr.New(jsonerr.UnexpectedEndOfInput, len(p.data), "unexpected end of input")
}

func (p *parser) skipWhitespace() {
	for p.pos < len(p.data) {
		switch p.data[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

// parseValue parses exactly one value after optional whitespace and leaves
// the cursor immediately after it.
func (p *parser) parseValue() (jsonvalue.Value, error) {
	p.skipWhitespace()
	if p.pos >= len(p.data) {
		return jsonvalue.Value{}, p.errEOF()
	}

	switch c := p.data[p.pos]; c {
	case '{', '[':
		if p.depth >= MaxDepth {
			return jsonvalue.Value{}, jsonerr.Newf(jsonerr.ExceededNestingLimit, p.pos,
				"nesting depth exceeds maximum %d", MaxDepth)
		}
		p.depth++
		var v jsonvalue.Value
		var err error
		if c == '{' {
			v, err = p.parseObject()
		} else {
			v, err = p.parseArray()
		}
		p.depth--
		return v, err
	case '"':
		s, err := p.parseString()
		if err != nil {
			return jsonvalue.Value{}, err
		}
		return jsonvalue.String(s), nil
	case 't':
		return p.parseLiteral("true", jsonvalue.Bool(true))
	case 'f':
		return p.parseLiteral("false", jsonvalue.Bool(false))
	case 'n':
		return p.parseLiteral("null", jsonvalue.Null())
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return p.parseNumber()
	default:
		return jsonvalue.Value{}, jsonerr.NewInvalidValue(p.data, p.pos)
	}
}

// parseLiteral matches one of the keywords true, false and null. A keyword
// cut short by the end of input is reported as UNEXPECTED_END_OF_INPUT.
func (p *parser) parseLiteral(lit string, v jsonvalue.Value) (jsonvalue.Value, error) {
	rest := p.data[p.pos:]
	if len(rest) >= len(lit) && string(rest[:len(lit)]) == lit {
		p.pos += len(lit)
		return v, nil
	}
	if len(rest) < len(lit) && string(rest) == lit[:len(rest)] {
		return jsonvalue.Value{}, p.errEOF()
	}
	return jsonvalue.Value{}, jsonerr.Newf(jsonerr.InvalidLiteral, p.pos, "invalid literal, expected %q", lit)
}
