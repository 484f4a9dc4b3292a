package jsontoken

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/lattice-substrate/json-parse/jsonerr"
)

// parseString decodes a string literal. The cursor sits on the opening
// quote and is left one past the closing quote.
//
// Unescaped bytes are copied verbatim; the decoded result must be valid
// UTF-8 as a whole.
func (p *parser) parseString() (string, error) {
	start := p.pos
	p.pos++
	p.scratch = p.scratch[:0]

	for {
		i := p.pos
		for i < len(p.data) && p.data[i] != '"' && p.data[i] != '\\' {
			i++
		}
		p.scratch = append(p.scratch, p.data[p.pos:i]...)
		p.pos = i

		if p.pos >= len(p.data) {
			return "", p.errEOF()
		}

		if p.data[p.pos] == '"' {
			p.pos++
			if !utf8.Valid(p.scratch) {
				return "", jsonerr.New(jsonerr.InvalidUnicodeEscape, start, "string is not valid UTF-8")
			}
			return string(p.scratch), nil
		}

		if err := p.parseEscape(); err != nil {
			return "", err
		}
	}
}

// parseEscape decodes one escape sequence into scratch. The cursor sits on
// the backslash.
func (p *parser) parseEscape() error {
	escStart := p.pos
	p.pos++
	if p.pos >= len(p.data) {
		return p.errEOF()
	}
	b := p.data[p.pos]
	p.pos++

	switch b {
	case '"', '\\', '/':
		p.scratch = append(p.scratch, b)
	case 'b':
		p.scratch = append(p.scratch, '\b')
	case 'f':
		p.scratch = append(p.scratch, '\f')
	case 'n':
		p.scratch = append(p.scratch, '\n')
	case 'r':
		p.scratch = append(p.scratch, '\r')
	case 't':
		p.scratch = append(p.scratch, '\t')
	case 'u':
		r, err := p.parseUnicodeEscape(escStart)
		if err != nil {
			return err
		}
		p.scratch = utf8.AppendRune(p.scratch, r)
	default:
		return jsonerr.Newf(jsonerr.UnrecognizedControlCharacter, escStart, "invalid escape character %q", b)
	}
	return nil
}

// parseUnicodeEscape decodes \uXXXX, and \uXXXX\uXXXX for surrogate pairs.
// The cursor sits after the 'u'; escStart is the offset of the backslash.
func (p *parser) parseUnicodeEscape(escStart int) (rune, error) {
	r1, ok := p.readHex4()
	if !ok {
		return 0, jsonerr.New(jsonerr.InvalidUnicodeEscape, escStart, "invalid or incomplete \\u escape")
	}
	if !utf16.IsSurrogate(r1) {
		return r1, nil
	}
	if r1 >= 0xDC00 {
		return 0, jsonerr.Newf(jsonerr.InvalidUnicodeEscape, escStart, "lone trailing surrogate U+%04X", r1)
	}

	if p.pos+1 >= len(p.data) || p.data[p.pos] != '\\' || p.data[p.pos+1] != 'u' {
		return 0, jsonerr.Newf(jsonerr.InvalidUnicodeEscape, escStart,
			"leading surrogate U+%04X not followed by a \\u escape", r1)
	}
	secondStart := p.pos
	p.pos += 2
	r2, ok := p.readHex4()
	if !ok {
		return 0, jsonerr.New(jsonerr.InvalidUnicodeEscape, secondStart, "invalid or incomplete \\u escape")
	}
	r := utf16.DecodeRune(r1, r2)
	if r == utf8.RuneError {
		return 0, jsonerr.Newf(jsonerr.InvalidUnicodeEscape, escStart,
			"leading surrogate U+%04X followed by U+%04X", r1, r2)
	}
	return r, nil
}

// readHex4 reads exactly four hex digits.
func (p *parser) readHex4() (rune, bool) {
	if p.pos+4 > len(p.data) {
		return 0, false
	}
	var r rune
	for _, c := range p.data[p.pos : p.pos+4] {
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			r |= rune(c - 'A' + 10)
		default:
			return 0, false
		}
	}
	p.pos += 4
	return r, true
}
