package imapcodec

import (
	"github.com/emersion/go-imap-codec"
	"github.com/emersion/go-imap-codec/internal/imapwire"
)

// GreetingCodec decodes and encodes the greeting sent by a server when a
// connection is opened.
type GreetingCodec struct{}

// Decode parses the greeting at the start of b.
func (GreetingCodec) Decode(b []byte) (remaining []byte, g *imap.Greeting, err error) {
	remaining, err = decode(b, 0, func(dec *imapwire.Decoder) (validator, string, error) {
		var err error
		g, err = readGreeting(dec)
		return g, "", err
	})
	if err != nil {
		return b, nil, err
	}
	return remaining, g, nil
}

// Encode encodes a greeting. The greeting must be valid.
func (GreetingCodec) Encode(g *imap.Greeting) *Encoded {
	enc := imapwire.NewEncoder()
	enc.Special('*').SP().Atom(string(g.Kind)).SP()
	enc.RespText(g.Code, g.Text)
	enc.CRLF()
	return newEncoded(enc)
}

func readGreeting(dec *imapwire.Decoder) (*imap.Greeting, error) {
	var kind string
	if !dec.ExpectSpecial('*') || !dec.ExpectSP() || !dec.ExpectKeyword(&kind) {
		return nil, dec.Err()
	}
	switch k := imap.GreetingKind(kind); k {
	case imap.GreetingKindOK, imap.GreetingKindPreAuth, imap.GreetingKindBye:
		// ok
	default:
		dec.Errorf("invalid greeting kind %q", kind)
		return nil, dec.Err()
	}
	if !dec.ExpectSP() {
		return nil, dec.Err()
	}
	code, text, err := readRespText(dec)
	if err != nil {
		return nil, err
	}
	if !dec.ExpectCRLF() {
		return nil, dec.Err()
	}
	return &imap.Greeting{Kind: imap.GreetingKind(kind), Code: code, Text: text}, nil
}
