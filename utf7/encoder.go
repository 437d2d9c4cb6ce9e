package utf7

import (
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

type encoder struct{}

func (e *encoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for i := 0; i < len(src); {
		ch := src[i]

		var b []byte
		if min <= ch && ch <= max {
			b = []byte{ch}
			if ch == '&' {
				b = append(b, '-')
			}
			i++
		} else {
			start := i
			for i++; i < len(src) && (src[i] < min || src[i] > max); i++ {
			}
			if !atEOF && i == len(src) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			b = encodeBase64(src[start:i])
		}

		if nDst+len(b) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], b)
		nSrc = i
	}
	return nDst, nSrc, nil
}

func (e *encoder) Reset() {}

// encodeBase64 converts a run of non-printable or non-ASCII UTF-8 into a
// shifted "&...-" sequence. Invalid UTF-8 is replaced with U+FFFD.
func encodeBase64(s []byte) []byte {
	var units []uint16
	for len(s) > 0 {
		r, size := utf8.DecodeRune(s)
		units = append(units, utf16.Encode([]rune{r})...)
		s = s[size:]
	}

	raw := make([]byte, 2*len(units))
	for i, u := range units {
		raw[2*i] = byte(u >> 8)
		raw[2*i+1] = byte(u)
	}

	out := make([]byte, b64RawEnc.EncodedLen(len(raw))+2)
	out[0] = '&'
	b64RawEnc.Encode(out[1:], raw)
	out[len(out)-1] = '-'
	return out
}
