package jsontoken

import (
	"github.com/lattice-substrate/json-parse/jsonerr"
	"github.com/lattice-substrate/json-parse/jsonvalue"
)

// parseArray decodes an array. The cursor sits on '['.
func (p *parser) parseArray() (jsonvalue.Value, error) {
	p.pos++

	buf := p.elems.get()
	defer func() { p.elems.put(buf) }()

	for first := true; ; first = false {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return jsonvalue.Value{}, p.errEOF()
		}
		if p.data[p.pos] == ']' {
			p.pos++
			out := make([]jsonvalue.Value, len(buf))
			copy(out, buf)
			return jsonvalue.ArrayOf(out), nil
		}
		if !first {
			if err := p.expectSeparator(']'); err != nil {
				return jsonvalue.Value{}, err
			}
		}

		v, err := p.parseValue()
		if err != nil {
			return jsonvalue.Value{}, err
		}
		buf = append(buf, v)
	}
}

// parseObject decodes an object. The cursor sits on '{'. Later members
// overwrite earlier members with the same name.
func (p *parser) parseObject() (jsonvalue.Value, error) {
	p.pos++

	pairs := p.pairs.get()
	defer func() { p.pairs.put(pairs) }()

	for first := true; ; first = false {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return jsonvalue.Value{}, p.errEOF()
		}
		if p.data[p.pos] == '}' {
			p.pos++
			m := make(map[string]jsonvalue.Value, len(pairs))
			for i := range pairs {
				m[pairs[i].key] = pairs[i].val
			}
			return jsonvalue.Object(m), nil
		}
		if !first {
			if err := p.expectSeparator('}'); err != nil {
				return jsonvalue.Value{}, err
			}
		}

		if p.data[p.pos] != '"' {
			return jsonvalue.Value{}, jsonerr.Newf(jsonerr.MissingKey, p.pos,
				"expected string key, got %q", p.data[p.pos])
		}
		key, err := p.parseString()
		if err != nil {
			return jsonvalue.Value{}, err
		}

		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return jsonvalue.Value{}, p.errEOF()
		}
		if p.data[p.pos] != ':' {
			return jsonvalue.Value{}, jsonerr.Newf(jsonerr.MissingSeparator, p.pos,
				"expected ':' after object key, got %q", p.data[p.pos])
		}
		p.pos++

		v, err := p.parseValue()
		if err != nil {
			return jsonvalue.Value{}, err
		}
		pairs = append(pairs, member{key: key, val: v})
	}
}

// expectSeparator consumes the ',' between two container entries and the
// whitespace after it, leaving the cursor on the next entry. A closing
// delimiter right after the comma is a trailing comma and is rejected.
func (p *parser) expectSeparator(closing byte) error {
	if c := p.data[p.pos]; c != ',' {
		return jsonerr.Newf(jsonerr.MissingSeparator, p.pos, "expected ',' or %q, got %q", closing, c)
	}
	p.pos++
	p.skipWhitespace()
	if p.pos >= len(p.data) {
		return p.errEOF()
	}
	if p.data[p.pos] == closing {
		return jsonerr.Newf(jsonerr.MissingSeparator, p.pos, "trailing comma before %q", closing)
	}
	return nil
}
