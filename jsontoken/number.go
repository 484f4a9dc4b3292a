package jsontoken

import (
	"errors"
	"math"
	"strconv"

	"github.com/lattice-substrate/json-parse/jsonerr"
	"github.com/lattice-substrate/json-parse/jsonvalue"
)

// errNumberRange signals that a numeric literal is grammatical but its
// value does not fit an int64 or a finite, non-underflowing float64. It is
// handled inside parseNumber and never returned from Parse.
var errNumberRange = errors.New("jsontoken: numeric literal out of range")

// exactMantissa is the largest integer every value up to which is exactly
// representable as a float64.
const exactMantissa = 1 << 53

// exactPow10 holds the powers of ten that are exact float64 values.
var exactPow10 = [...]float64{
	1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10,
	1e11, 1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19, 1e20, 1e21, 1e22,
}

// maxExponent caps exponent accumulation. Any larger magnitude is out of
// range for a float64 regardless of the significand.
const maxExponent = 1 << 20

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// parseNumber decodes a number. The cursor sits on '-' or a digit.
//
// A literal whose value is out of range is re-scanned by the grammar-only
// validator from its first byte, and its exact text becomes a String value.
func (p *parser) parseNumber() (jsonvalue.Value, error) {
	start := p.pos
	v, err := p.decodeNumber()
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, errNumberRange) {
		return jsonvalue.Value{}, err
	}

	p.pos = start
	if err := p.skipNumber(); err != nil {
		return jsonvalue.Value{}, err
	}
	return jsonvalue.String(string(p.data[start:p.pos])), nil
}

// numberState accumulates the pieces of a decimal literal.
type numberState struct {
	neg     bool
	isFloat bool
	nonzero bool // some significand digit is not '0'

	// integer part magnitude, bounded by the int64 range for the sign
	intPart uint64

	// significand digits for the float fast path, and whether it is exact
	sig   uint64
	exact bool
	scale int // digits of sig after the decimal point

	exp int
}

func (p *parser) decodeNumber() (jsonvalue.Value, error) {
	start := p.pos
	var st numberState

	if p.data[p.pos] == '-' {
		st.neg = true
		p.pos++
		if p.pos >= len(p.data) {
			return jsonvalue.Value{}, p.errEOF()
		}
		if !isDigit(p.data[p.pos]) {
			return jsonvalue.Value{}, jsonerr.Newf(jsonerr.MissingDigitsAfterSign, p.pos,
				"expected digit after '-', got %q", p.data[p.pos])
		}
	}

	if err := p.decodeInteger(&st); err != nil {
		return jsonvalue.Value{}, err
	}
	st.sig = st.intPart
	st.exact = st.intPart <= exactMantissa

	if p.pos < len(p.data) && p.data[p.pos] == '.' {
		st.isFloat = true
		p.pos++
		if err := p.requireDigit(jsonerr.MissingFractionalDigits, "after decimal point"); err != nil {
			return jsonvalue.Value{}, err
		}
		p.decodeFraction(&st)
	}

	if p.pos < len(p.data) && (p.data[p.pos] == 'e' || p.data[p.pos] == 'E') {
		st.isFloat = true
		p.pos++
		if err := p.decodeExponent(&st); err != nil {
			return jsonvalue.Value{}, err
		}
	}

	if !st.isFloat {
		if st.neg {
			return jsonvalue.Int(int64(-st.intPart)), nil
		}
		return jsonvalue.Int(int64(st.intPart)), nil
	}

	f, err := st.float(p.data[start:p.pos])
	if err != nil {
		return jsonvalue.Value{}, err
	}
	return jsonvalue.Float(f), nil
}

// decodeInteger accumulates the integer part. A leading zero is the whole
// integer part; a digit after it is left for the caller's grammar.
func (p *parser) decodeInteger(st *numberState) error {
	if p.data[p.pos] == '0' {
		p.pos++
		return nil
	}

	limit := uint64(math.MaxInt64)
	if st.neg {
		limit++
	}
	for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
		d := uint64(p.data[p.pos] - '0')
		if st.intPart > (limit-d)/10 {
			return errNumberRange
		}
		st.intPart = st.intPart*10 + d
		p.pos++
	}
	st.nonzero = true
	return nil
}

// decodeFraction accumulates fractional digits into the significand while
// it stays exact. The cursor sits on the first digit.
func (p *parser) decodeFraction(st *numberState) {
	for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
		d := uint64(p.data[p.pos] - '0')
		if d != 0 {
			st.nonzero = true
		}
		if st.exact && st.sig <= (exactMantissa-d)/10 {
			st.sig = st.sig*10 + d
			st.scale++
		} else {
			st.exact = false
		}
		p.pos++
	}
}

// decodeExponent accumulates the exponent. The cursor sits after 'e'/'E'.
func (p *parser) decodeExponent(st *numberState) error {
	negExp := false
	if p.pos < len(p.data) && (p.data[p.pos] == '+' || p.data[p.pos] == '-') {
		negExp = p.data[p.pos] == '-'
		p.pos++
	}
	if err := p.requireDigit(jsonerr.MissingExponentDigits, "in exponent"); err != nil {
		return err
	}
	for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
		if st.exp < maxExponent {
			st.exp = st.exp*10 + int(p.data[p.pos]-'0')
		}
		p.pos++
	}
	if negExp {
		st.exp = -st.exp
	}
	return nil
}

// float computes the double value of the literal in raw and checks that it
// is finite and did not underflow to zero.
func (st *numberState) float(raw []byte) (float64, error) {
	var f float64
	e10 := st.exp - st.scale
	switch {
	case !st.nonzero:
		f = 0
	case st.exact && e10 >= 0 && e10 < len(exactPow10):
		f = float64(st.sig) * exactPow10[e10]
	case st.exact && e10 < 0 && -e10 < len(exactPow10):
		f = float64(st.sig) / exactPow10[-e10]
	default:
		// Outside the exact range, defer to correctly rounded conversion of
		// the already validated literal.
		var err error
		f, err = strconv.ParseFloat(string(raw), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, err
		}
		f = math.Abs(f)
	}

	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, errNumberRange
	}
	if f == 0 && st.nonzero {
		return 0, errNumberRange
	}
	if st.neg {
		f = -f
	}
	return f, nil
}

// requireDigit checks that the cursor sits on a digit. Running out of input
// is UNEXPECTED_END_OF_INPUT; any other byte is reported with kind.
func (p *parser) requireDigit(kind jsonerr.Kind, where string) error {
	if p.pos >= len(p.data) {
		return p.errEOF()
	}
	if !isDigit(p.data[p.pos]) {
		return jsonerr.Newf(kind, p.pos, "expected digit %s, got %q", where, p.data[p.pos])
	}
	return nil
}

// skipNumber advances past a syntactically valid number without computing
// its value. It follows the same stages and reports the same grammar
// errors as decodeNumber.
func (p *parser) skipNumber() error {
	if p.data[p.pos] == '-' {
		p.pos++
		if p.pos >= len(p.data) {
			return p.errEOF()
		}
		if !isDigit(p.data[p.pos]) {
			return jsonerr.Newf(jsonerr.MissingDigitsAfterSign, p.pos,
				"expected digit after '-', got %q", p.data[p.pos])
		}
	}

	if p.data[p.pos] == '0' {
		p.pos++
	} else {
		p.skipDigits()
	}

	if p.pos < len(p.data) && p.data[p.pos] == '.' {
		p.pos++
		if err := p.requireDigit(jsonerr.MissingFractionalDigits, "after decimal point"); err != nil {
			return err
		}
		p.skipDigits()
	}

	if p.pos < len(p.data) && (p.data[p.pos] == 'e' || p.data[p.pos] == 'E') {
		p.pos++
		if p.pos < len(p.data) && (p.data[p.pos] == '+' || p.data[p.pos] == '-') {
			p.pos++
		}
		if err := p.requireDigit(jsonerr.MissingExponentDigits, "in exponent"); err != nil {
			return err
		}
		p.skipDigits()
	}
	return nil
}

func (p *parser) skipDigits() {
	for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
		p.pos++
	}
}
