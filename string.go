package imap

import (
	"fmt"
	"strings"

	"github.com/emersion/go-imap-codec/internal/imapwire"
)

// AString is a string argument which keeps its wire form: an Atom, a Quoted
// string or a Literal.
type AString interface {
	// Bytes returns the string contents.
	Bytes() []byte

	aString()
}

// IString is a string which keeps its wire form: a Quoted string or a
// Literal. A nil IString stands for NIL where the grammar allows it.
type IString interface {
	Bytes() []byte

	iString()
}

var (
	_ AString = Atom("")
	_ AString = Quoted("")
	_ AString = Literal{}
	_ IString = Quoted("")
	_ IString = Literal{}
)

// Atom is a string sent without quoting. It is a non-empty string of
// ASTRING-CHAR.
type Atom string

func (Atom) aString() {}

func (s Atom) Bytes() []byte {
	return []byte(s)
}

func (s Atom) Validate() error {
	if !imapwire.ValidAStringAtom(string(s)) {
		return fmt.Errorf("imap: invalid atom %q", string(s))
	}
	return nil
}

// Quoted is a string sent between double quotes. It must not contain NUL,
// CR or LF.
type Quoted string

func (Quoted) aString() {}
func (Quoted) iString() {}

func (s Quoted) Bytes() []byte {
	return []byte(s)
}

func (s Quoted) Validate() error {
	if strings.ContainsAny(string(s), "\x00\r\n") {
		return fmt.Errorf("imap: quoted string contains NUL, CR or LF")
	}
	return nil
}

func (Literal) aString() {}
func (Literal) iString() {}

// NewAString picks the most compact wire form for s: an atom, a quoted
// string or a synchronizing literal.
func NewAString(s string) AString {
	switch {
	case imapwire.ValidAStringAtom(s) && !strings.EqualFold(s, "NIL"):
		return Atom(s)
	case imapwire.ValidQuoted(s):
		return Quoted(s)
	default:
		return Literal{Data: []byte(s), Mode: LiteralModeSync}
	}
}

// NewIString picks the most compact wire form for s: a quoted string or a
// synchronizing literal.
func NewIString(s string) IString {
	if imapwire.ValidQuoted(s) {
		return Quoted(s)
	}
	return Literal{Data: []byte(s), Mode: LiteralModeSync}
}

func validateAString(s AString) error {
	switch s := s.(type) {
	case Atom:
		return s.Validate()
	case Quoted:
		return s.Validate()
	case Literal:
		return s.Validate()
	case nil:
		return fmt.Errorf("imap: missing string")
	default:
		return fmt.Errorf("imap: unknown astring type %T", s)
	}
}

func validateIString(s IString) error {
	switch s := s.(type) {
	case Quoted:
		return s.Validate()
	case Literal:
		return s.Validate()
	case nil:
		return nil
	default:
		return fmt.Errorf("imap: unknown string type %T", s)
	}
}
