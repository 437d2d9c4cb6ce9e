package utf7

import (
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

type decoder struct {
	// ascii is true when the last emitted code point came from a printable
	// ASCII byte or an escaped "&". Two consecutive base64 runs are invalid.
	ascii bool
}

func (d *decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for i := 0; i < len(src); i++ {
		ch := src[i]
		if ch < min || ch > max {
			return nDst, nSrc, ErrInvalidUTF7
		}

		if ch != '&' {
			if nDst+1 > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = ch
			nDst++
			nSrc++
			d.ascii = true
			continue
		}

		start := i + 1
		for i++; i < len(src) && src[i] != '-'; i++ {
			if src[i] < min || src[i] > max {
				return nDst, nSrc, ErrInvalidUTF7
			}
		}
		if i == len(src) {
			// The shift back to ASCII is missing
			if atEOF {
				return nDst, nSrc, ErrInvalidUTF7
			}
			return nDst, nSrc, transform.ErrShortSrc
		}

		var b []byte
		escaped := i == start
		if escaped {
			b = []byte{'&'}
		} else {
			if !d.ascii {
				return nDst, nSrc, ErrInvalidUTF7
			}
			b = decodeBase64(src[start:i])
		}
		if len(b) == 0 {
			return nDst, nSrc, ErrInvalidUTF7
		}

		if nDst+len(b) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], b)
		nSrc = i + 1
		d.ascii = escaped
	}
	if atEOF {
		d.ascii = true
	}
	return nDst, nSrc, nil
}

func (d *decoder) Reset() {
	d.ascii = true
}

// decodeBase64 decodes a base64 run holding UTF-16BE code units into UTF-8.
// It returns nil if the run is invalid or encodes printable ASCII.
func decodeBase64(run []byte) []byte {
	if run[len(run)-1] == '=' {
		return nil
	}

	padded := make([]byte, len(run), len(run)+3)
	copy(padded, run)
	for len(padded)%4 != 0 {
		padded = append(padded, '=')
	}

	raw := make([]byte, b64Enc.DecodedLen(len(padded)))
	n, err := b64Enc.Decode(raw, padded)
	if err != nil || n%2 != 0 {
		return nil
	}
	raw = raw[:n]

	var out []byte
	for i := 0; i < n; i += 2 {
		r := rune(raw[i])<<8 | rune(raw[i+1])
		if utf16.IsSurrogate(r) {
			i += 2
			if i == n {
				return nil
			}
			r2 := rune(raw[i])<<8 | rune(raw[i+1])
			if r = utf16.DecodeRune(r, r2); r == repl {
				return nil
			}
		} else if min <= r && r <= max {
			return nil
		}
		out = utf8.AppendRune(out, r)
	}
	return out
}
