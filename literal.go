package imap

import (
	"fmt"

	"github.com/emersion/go-imap-codec/internal/imapwire"
)

// LiteralMode describes how a literal is announced on the wire.
type LiteralMode = imapwire.LiteralMode

const (
	// LiteralModeSync announces a literal with "{n}": the sender waits for a
	// continuation request before sending the data.
	LiteralModeSync = imapwire.LiteralModeSync
	// LiteralModeNonSync announces a literal with "{n+}": the data is sent
	// right away.
	LiteralModeNonSync = imapwire.LiteralModeNonSync
)

// Literal is a raw byte string of announced length. It may contain any
// octet. An empty literal has a non-nil empty Data, as decoders return it.
type Literal struct {
	Data []byte
	Mode LiteralMode
}

// NewLiteral creates a new literal.
func NewLiteral(b []byte, mode LiteralMode) (Literal, error) {
	if b == nil {
		b = []byte{}
	}
	lit := Literal{Data: b, Mode: mode}
	return lit, lit.Validate()
}

func (lit Literal) Validate() error {
	if lit.Data == nil {
		return fmt.Errorf("imap: missing literal data")
	}
	switch lit.Mode {
	case LiteralModeSync, LiteralModeNonSync:
		return nil
	default:
		return fmt.Errorf("imap: invalid literal mode %v", lit.Mode)
	}
}

func (lit Literal) Bytes() []byte {
	return lit.Data
}

func (lit Literal) String() string {
	return string(lit.Data)
}
