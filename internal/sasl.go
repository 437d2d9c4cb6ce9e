package internal

import (
	"github.com/emersion/go-imap-codec/internal/imapwire"
)

// ReadSASL reads base64-encoded SASL data. A single "=" stands for an empty
// response.
func ReadSASL(dec *imapwire.Decoder) ([]byte, error) {
	if dec.Special('=') {
		// go-sasl treats nil as no response, so return a non-nil empty
		// byte slice
		return []byte{}, nil
	}
	var b []byte
	if !dec.Expect(dec.Base64(&b), "base64 SASL data") {
		return nil, dec.Err()
	}
	return b, nil
}

// WriteSASL writes base64-encoded SASL data. An empty response is written
// as "=".
func WriteSASL(enc *imapwire.Encoder, b []byte) {
	if len(b) == 0 {
		enc.Special('=')
	} else {
		enc.Base64(b)
	}
}
