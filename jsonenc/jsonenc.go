// Package jsonenc classifies the character encoding of a JSON text from its
// leading bytes.
//
// Classification follows the byte-order-mark signatures and the null-byte
// patterns of RFC 4627 §3: the first two characters of a JSON text are
// always ASCII, so the position of zero bytes in the first four octets
// identifies UTF-16 and UTF-32 in either byte order.
//
// Detect is a pure function. Deciding which encodings are acceptable is the
// caller's concern.
package jsonenc

// Encoding identifies a detected stream encoding.
type Encoding int

const (
	UTF8 Encoding = iota
	UTF16BE
	UTF16LE
	UTF32BE
	UTF32LE
)

// String returns the conventional IANA-style name of the encoding.
func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "UTF-8"
	case UTF16BE:
		return "UTF-16BE"
	case UTF16LE:
		return "UTF-16LE"
	case UTF32BE:
		return "UTF-32BE"
	case UTF32LE:
		return "UTF-32LE"
	default:
		return "unknown"
	}
}

// Detect inspects up to the first four bytes of data and returns the
// detected encoding together with the length of its byte-order mark
// (zero when no BOM is present).
//
// Inputs shorter than the signatures they could match fall through to the
// shorter patterns, and anything unrecognised is reported as UTF-8.
func Detect(data []byte) (Encoding, int) {
	n := len(data)
	if n > 4 {
		n = 4
	}
	b := data[:n]

	// BOM signatures. UTF-32LE must be tested before UTF-16LE because its
	// mark begins with the UTF-16LE mark.
	switch {
	case n >= 4 && b[0] == 0x00 && b[1] == 0x00 && b[2] == 0xFE && b[3] == 0xFF:
		return UTF32BE, 4
	case n >= 4 && b[0] == 0xFF && b[1] == 0xFE && b[2] == 0x00 && b[3] == 0x00:
		return UTF32LE, 4
	case n >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF:
		return UTF8, 3
	case n >= 2 && b[0] == 0xFE && b[1] == 0xFF:
		return UTF16BE, 2
	case n >= 2 && b[0] == 0xFF && b[1] == 0xFE:
		return UTF16LE, 2
	}

	// Null-byte patterns (RFC 4627 §3).
	switch {
	case n >= 4 && b[0] == 0x00 && b[1] == 0x00 && b[2] == 0x00 && b[3] != 0x00:
		return UTF32BE, 0
	case n >= 4 && b[0] != 0x00 && b[1] == 0x00 && b[2] == 0x00 && b[3] == 0x00:
		return UTF32LE, 0
	case n >= 2 && b[0] == 0x00 && b[1] != 0x00:
		return UTF16BE, 0
	case n >= 2 && b[0] != 0x00 && b[1] == 0x00:
		return UTF16LE, 0
	}
	return UTF8, 0
}
