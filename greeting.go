package imap

import (
	"fmt"

	"github.com/emersion/go-imap-codec/internal/imapwire"
)

// GreetingKind is the status of the greeting sent by the server when a
// connection is opened.
type GreetingKind string

const (
	GreetingKindOK      GreetingKind = "OK"
	GreetingKindPreAuth GreetingKind = "PREAUTH"
	GreetingKindBye     GreetingKind = "BYE"
)

// Greeting is the first message sent by the server.
//
// See RFC 9051 section 7.1.
type Greeting struct {
	Kind GreetingKind
	Code Code
	Text string
}

// NewGreeting creates a new greeting.
func NewGreeting(kind GreetingKind, code Code, text string) (*Greeting, error) {
	g := &Greeting{Kind: kind, Code: code, Text: text}
	return g, g.Validate()
}

func (g *Greeting) Validate() error {
	switch g.Kind {
	case GreetingKindOK, GreetingKindPreAuth, GreetingKindBye:
		// ok
	default:
		return fmt.Errorf("imap: invalid greeting kind %q", g.Kind)
	}
	if err := validateCode(g.Code); err != nil {
		return err
	}
	if err := validateText(g.Text); err != nil {
		return err
	}
	if g.Code == nil && g.Text[0] == '[' {
		return fmt.Errorf("imap: text without a response code must not start with '['")
	}
	return nil
}

// String returns the wire form of the greeting, including the final CRLF.
func (g *Greeting) String() string {
	enc := imapwire.NewEncoder()
	enc.Special('*').SP().Atom(string(g.Kind)).SP()
	enc.RespText(g.Code, g.Text)
	enc.CRLF()
	return lineString(enc)
}
