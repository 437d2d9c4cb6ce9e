// Package utf7 implements the modified UTF-7 encoding used for IMAP mailbox
// names.
//
// The encoding is defined in RFC 3501 section 5.1.3.
package utf7

import (
	"encoding/base64"
	"errors"

	"golang.org/x/text/encoding"
)

const (
	min = 0x20 // Minimum self-representing UTF-7 value
	max = 0x7E // Maximum self-representing UTF-7 value

	repl = '\uFFFD' // Unicode replacement code point
)

// ErrInvalidUTF7 is returned by the decoder when the input is not valid
// modified UTF-7.
var ErrInvalidUTF7 = errors.New("utf7: invalid UTF-7")

var (
	b64Enc    = base64.NewEncoding("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+,")
	b64RawEnc = b64Enc.WithPadding(base64.NoPadding)
)

type utf7Encoding struct{}

func (utf7Encoding) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: &decoder{ascii: true}}
}

func (utf7Encoding) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: &encoder{}}
}

// Encoding is the modified UTF-7 encoding. Its encoder converts UTF-8 to
// modified UTF-7 and its decoder converts modified UTF-7 to UTF-8.
var Encoding encoding.Encoding = utf7Encoding{}
